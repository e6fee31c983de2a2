package cli

import (
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"

	"github.com/slack-tools/slackdump/internal/message"
)

func TestPrintPreview(t *testing.T) {
	color.NoColor = true

	msgs := make([]message.Message, 0, 12)
	for i := 0; i < 12; i++ {
		msgs = append(msgs, message.Message{
			User: "U111",
			Text: "hello",
			Time: time.Date(2024, 1, 15, 9, 30, i, 0, time.UTC),
		})
	}

	var buf strings.Builder
	printPreview(&buf, msgs)
	out := buf.String()

	gt.String(t, out).Contains("Fetched 12 messages. Showing first 10:")
	gt.String(t, out).Contains(" 1. [2024-01-15T09:30:00Z] U111: hello")
	gt.String(t, out).Contains("10. [2024-01-15T09:30:09Z] U111: hello")
	gt.Bool(t, strings.Contains(out, "11.")).False()
	gt.String(t, out).Contains("Use --output to save all 12 messages to a file.")
}

func TestPrintPreview_PrefersUserName(t *testing.T) {
	color.NoColor = true

	var buf strings.Builder
	printPreview(&buf, []message.Message{{
		User:     "U111",
		UserName: "alice",
		Text:     "hi",
		Time:     time.Date(2024, 1, 15, 9, 30, 0, 0, time.UTC),
	}})

	gt.String(t, buf.String()).Contains("alice: hi")
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("x", 120)
	gt.Value(t, truncate(long, 100)).Equal(strings.Repeat("x", 100) + "...")
	gt.Value(t, truncate("short", 100)).Equal("short")

	// Rune-aware: multibyte text is cut between characters, not mid-rune.
	jp := strings.Repeat("あ", 120)
	gt.Value(t, truncate(jp, 100)).Equal(strings.Repeat("あ", 100) + "...")
}
