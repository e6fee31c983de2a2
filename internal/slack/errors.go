package slack

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Sentinel errors classifying Slack API failures. The CLI maps these to
// user-facing messages and a non-zero exit.
var (
	// ErrAuth covers credentials rejected by the API.
	ErrAuth = goerr.New("slack authentication failed")
	// ErrChannelNotFound covers unknown or inaccessible channel IDs.
	ErrChannelNotFound = goerr.New("channel not found")
	// ErrRateLimited is returned only when the retry policy gives up on a
	// persistently rate-limited call; ordinary rate limiting is waited out.
	ErrRateLimited = goerr.New("rate limited beyond retry budget")
)

// authErrorCodes are Slack API error codes that indicate authentication
// problems, with guidance for resolution.
var authErrorCodes = map[string]string{
	"invalid_auth":     "Authentication token is invalid. Check the --token value.",
	"token_expired":    "Authentication token has expired. Generate a new token.",
	"token_revoked":    "Authentication token has been revoked. Generate new credentials.",
	"account_inactive": "The Slack account is inactive or disabled.",
	"not_authed":       "No authentication token was accepted by Slack.",
}

// wrapAPIError classifies an error from a Slack API call. Auth failures and
// unknown channels get their own sentinels so callers can report them
// precisely; anything else keeps its cause and gains the operation name.
func wrapAPIError(operation string, err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()
	for code, guidance := range authErrorCodes {
		if strings.Contains(errStr, code) {
			return goerr.Wrap(ErrAuth, guidance,
				goerr.V("code", code),
				goerr.V("operation", operation))
		}
	}

	if strings.Contains(errStr, "channel_not_found") {
		return goerr.Wrap(ErrChannelNotFound, "check the channel ID",
			goerr.V("operation", operation))
	}

	return goerr.Wrap(err, operation+" failed")
}
