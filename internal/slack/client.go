// Package slack wraps the Slack Web API for channel history dumps.
package slack

import (
	"context"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// HistoryAPI defines the Slack API methods used by the client
//
//go:generate go tool mockgen -source=$GOFILE -destination=client_mocks.go -package=slack
type HistoryAPI interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)
	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
}

// Config holds configuration for the Slack client
type Config struct {
	Token  string      // Slack API token (required)
	Cookie string      // Slack cookie for xoxc token auth (optional)
	Retry  RetryPolicy // rate-limit retry bounds; zero fields use defaults
}

type Client struct {
	api    HistoryAPI
	retry  RetryPolicy
	logger *zap.Logger
}

func NewClient(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.Token == "" {
		return nil, goerr.New("slack token is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	opts := []slack.Option{}

	if cfg.Cookie != "" {
		logger.Info("Using cookie authentication for Slack client")
		httpClient := &http.Client{
			Transport: newCookieTransport(cfg.Cookie),
		}
		opts = append(opts, slack.OptionHTTPClient(httpClient))
	}

	return &Client{
		api:    slack.New(cfg.Token, opts...),
		retry:  cfg.Retry.withDefaults(),
		logger: logger,
	}, nil
}

// newClientWithAPI creates a client with a given HistoryAPI (for testing)
func newClientWithAPI(api HistoryAPI, retry RetryPolicy, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		api:    api,
		retry:  retry.withDefaults(),
		logger: logger,
	}
}

// VerifyAuth checks the token against auth.test before any history call,
// so bad credentials fail fast instead of midway through a dump.
func (c *Client) VerifyAuth(ctx context.Context) error {
	var resp *slack.AuthTestResponse
	err := withRetry(ctx, c.logger, c.retry, func() error {
		var e error
		resp, e = c.api.AuthTestContext(ctx)
		return e
	})
	if err != nil {
		return wrapAPIError("auth.test", err)
	}

	c.logger.Debug("Authenticated with Slack",
		zap.String("team", resp.Team),
		zap.String("user", resp.User))
	return nil
}

// IsChannelID checks if a string looks like a Slack channel ID.
// Channel IDs are uppercase alphanumeric strings starting with C, D, or G
// and are typically 9-11 characters long.
func IsChannelID(s string) bool {
	if len(s) < 9 {
		return false
	}

	// Must start with C, D, or G
	if s[0] != 'C' && s[0] != 'D' && s[0] != 'G' {
		return false
	}

	// Must be all uppercase alphanumeric
	for _, ch := range s {
		if !((ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9')) {
			return false
		}
	}

	return true
}
