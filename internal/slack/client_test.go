package slack

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func TestNewClient_RequiresToken(t *testing.T) {
	_, err := NewClient(Config{}, nil)
	if err == nil {
		t.Fatal("expected an error for missing token")
	}
}

func TestVerifyAuth_Success(t *testing.T) {
	mock := newMockSlackServer()
	defer mock.close()

	mock.addHandler("/auth.test", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"ok":   true,
			"team": "testteam",
			"user": "dumper",
		})
	})

	client := newTestClient(t, mock)
	if err := client.VerifyAuth(context.Background()); err != nil {
		t.Errorf("VerifyAuth failed: %v", err)
	}
}

func TestVerifyAuth_InvalidToken(t *testing.T) {
	mock := newMockSlackServer()
	defer mock.close()

	mock.addHandler("/auth.test", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]any{
			"ok":    false,
			"error": "invalid_auth",
		})
	})

	client := newTestClient(t, mock)
	err := client.VerifyAuth(context.Background())
	if !errors.Is(err, ErrAuth) {
		t.Errorf("error: got %v, want ErrAuth", err)
	}
}

func TestIsChannelID(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"C123456789", true},
		{"D123456789", true},
		{"G123456789", true},
		{"CABCDEF123", true},
		{"c123456789", false},
		{"U123456789", false},
		{"C12345", false},
		{"general", false},
		{"#general", false},
		{"C12345678x", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := IsChannelID(tt.input); got != tt.want {
				t.Errorf("IsChannelID(%q): got %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
