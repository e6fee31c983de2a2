package slack

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

// cookieTransport wraps an http.RoundTripper to add cookie headers
type cookieTransport struct {
	transport http.RoundTripper
	cookie    string
}

func (t *cookieTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("Cookie", "d="+t.cookie)
	return t.transport.RoundTrip(req)
}

// newCookieTransport creates a transport with cookie authentication
func newCookieTransport(cookie string) *cookieTransport {
	return &cookieTransport{
		transport: http.DefaultTransport,
		cookie:    cookie,
	}
}

// RetryPolicy bounds the rate-limit retry loop. Rate limiting is expected
// behavior: each hit waits the server-advised interval and retries the same
// request without advancing. The bounds only exist so a persistently
// throttled run terminates instead of hanging forever.
type RetryPolicy struct {
	MaxAttempts int           // rate-limit hits tolerated per call (0 = default)
	MaxElapsed  time.Duration // total wait budget per call (0 = default)
	Fallback    time.Duration // wait used when Slack sends no Retry-After
}

const (
	defaultMaxAttempts = 10
	defaultMaxElapsed  = 10 * time.Minute
	defaultFallback    = 30 * time.Second
)

func (p RetryPolicy) withDefaults() RetryPolicy {
	if p.MaxAttempts == 0 {
		p.MaxAttempts = defaultMaxAttempts
	}
	if p.MaxElapsed == 0 {
		p.MaxElapsed = defaultMaxElapsed
	}
	if p.Fallback == 0 {
		p.Fallback = defaultFallback
	}
	return p
}

// withRetry runs fn, waiting out rate limits by respecting the Retry-After
// duration and retrying the same call. Any other error is returned as-is.
// Exceeding the policy bounds surfaces ErrRateLimited instead of waiting.
func withRetry(ctx context.Context, logger *zap.Logger, policy RetryPolicy, fn func() error) error {
	policy = policy.withDefaults()
	start := time.Now()

	for attempt := 1; ; attempt++ {
		err := fn()

		var rateLimitErr *slack.RateLimitedError
		if !errors.As(err, &rateLimitErr) {
			return err
		}

		if attempt >= policy.MaxAttempts {
			return goerr.Wrap(ErrRateLimited, "attempt limit reached",
				goerr.V("attempts", attempt))
		}

		wait := rateLimitErr.RetryAfter
		if wait <= 0 {
			wait = policy.Fallback
		}
		if elapsed := time.Since(start); elapsed+wait > policy.MaxElapsed {
			return goerr.Wrap(ErrRateLimited, "wait budget exhausted",
				goerr.V("elapsed", elapsed),
				goerr.V("budget", policy.MaxElapsed))
		}

		logger.Warn("Rate limited by Slack, backing off",
			zap.Duration("retry_after", wait),
			zap.Int("attempt", attempt))

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
