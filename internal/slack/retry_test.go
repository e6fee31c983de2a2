package slack

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/slack-go/slack"
	"go.uber.org/zap"
)

func TestCookieTransport_RoundTrip(t *testing.T) {
	var capturedCookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedCookie = r.Header.Get("Cookie")
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	transport := newCookieTransport("test-cookie-value")

	req, err := http.NewRequest("GET", server.URL, nil)
	if err != nil {
		t.Fatalf("Failed to create request: %v", err)
	}

	resp, err := transport.RoundTrip(req)
	if err != nil {
		t.Fatalf("RoundTrip failed: %v", err)
	}
	defer resp.Body.Close()

	want := "d=test-cookie-value"
	if capturedCookie != want {
		t.Errorf("Cookie header: got %q, want %q", capturedCookie, want)
	}
}

func TestWithRetry_SuccessOnFirstTry(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	callCount := 0
	err := withRetry(ctx, logger, RetryPolicy{}, func() error {
		callCount++
		return nil
	})

	if err != nil {
		t.Errorf("withRetry returned error: %v", err)
	}

	wantCalls := 1
	if callCount != wantCalls {
		t.Errorf("call count: got %d, want %d", callCount, wantCalls)
	}
}

func TestWithRetry_NonRateLimitError(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	expectedErr := errors.New("some other error")
	callCount := 0
	err := withRetry(ctx, logger, RetryPolicy{}, func() error {
		callCount++
		return expectedErr
	})

	if !errors.Is(err, expectedErr) {
		t.Errorf("error: got %v, want %v", err, expectedErr)
	}

	wantCalls := 1
	if callCount != wantCalls {
		t.Errorf("call count: got %d, want %d", callCount, wantCalls)
	}
}

func TestWithRetry_RateLimitThenSuccess(t *testing.T) {
	logger := newTestLogger()
	ctx := context.Background()

	callCount := 0
	err := withRetry(ctx, logger.Logger, RetryPolicy{}, func() error {
		callCount++
		if callCount == 1 {
			return &slack.RateLimitedError{RetryAfter: 1 * time.Millisecond}
		}
		return nil
	})

	if err != nil {
		t.Errorf("withRetry returned error: %v", err)
	}

	wantCalls := 2
	if callCount != wantCalls {
		t.Errorf("call count: got %d, want %d", callCount, wantCalls)
	}

	// Exactly one backoff wait happened.
	if got := logger.MessageCount("Rate limited by Slack, backing off"); got != 1 {
		t.Errorf("backoff log count: got %d, want 1", got)
	}
}

func TestWithRetry_FallbackWaitWhenNoRetryAfter(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	callCount := 0
	start := time.Now()
	err := withRetry(ctx, logger, RetryPolicy{Fallback: 5 * time.Millisecond}, func() error {
		callCount++
		if callCount == 1 {
			return &slack.RateLimitedError{}
		}
		return nil
	})

	if err != nil {
		t.Errorf("withRetry returned error: %v", err)
	}
	if callCount != 2 {
		t.Errorf("call count: got %d, want 2", callCount)
	}
	if elapsed := time.Since(start); elapsed < 5*time.Millisecond {
		t.Errorf("expected a fallback wait, elapsed only %v", elapsed)
	}
}

func TestWithRetry_AttemptLimit(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	callCount := 0
	err := withRetry(ctx, logger, RetryPolicy{MaxAttempts: 3, Fallback: time.Millisecond}, func() error {
		callCount++
		return &slack.RateLimitedError{RetryAfter: 1 * time.Millisecond}
	})

	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("error: got %v, want ErrRateLimited", err)
	}

	wantCalls := 3
	if callCount != wantCalls {
		t.Errorf("call count: got %d, want %d", callCount, wantCalls)
	}
}

func TestWithRetry_WaitBudgetExhausted(t *testing.T) {
	logger := zap.NewNop()
	ctx := context.Background()

	callCount := 0
	err := withRetry(ctx, logger, RetryPolicy{MaxElapsed: 10 * time.Millisecond}, func() error {
		callCount++
		return &slack.RateLimitedError{RetryAfter: 1 * time.Hour}
	})

	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("error: got %v, want ErrRateLimited", err)
	}

	wantCalls := 1
	if callCount != wantCalls {
		t.Errorf("call count: got %d, want %d", callCount, wantCalls)
	}
}

func TestWithRetry_ContextCancelledDuringWait(t *testing.T) {
	logger := zap.NewNop()
	ctx, cancel := context.WithCancel(context.Background())

	// The advised wait fits the elapsed budget, so the loop reaches the
	// backoff select and the cancelled context has to interrupt it.
	callCount := 0
	err := withRetry(ctx, logger, RetryPolicy{}, func() error {
		callCount++
		if callCount == 1 {
			cancel()
			return &slack.RateLimitedError{RetryAfter: time.Minute}
		}
		return nil
	})

	if !errors.Is(err, context.Canceled) {
		t.Errorf("error: got %v, want context.Canceled", err)
	}

	wantCalls := 1
	if callCount != wantCalls {
		t.Errorf("call count: got %d, want %d", callCount, wantCalls)
	}
}
