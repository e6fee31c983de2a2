package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/slack-tools/slackdump/internal/message"
)

const (
	previewCount   = 10
	previewTextLen = 100
)

// printPreview shows the first few messages so a dump can be sanity-checked
// before committing to an output file.
func printPreview(w io.Writer, msgs []message.Message) {
	fmt.Fprintf(w, "Fetched %d messages. Showing first %d:\n\n", len(msgs), min(previewCount, len(msgs)))

	for i, m := range msgs {
		if i == previewCount {
			break
		}

		who := m.User
		if m.UserName != "" {
			who = m.UserName
		}
		fmt.Fprintf(w, "%2d. [%s] %s: %s\n",
			i+1,
			color.CyanString(m.Time.UTC().Format(time.RFC3339)),
			color.YellowString(who),
			truncate(m.Text, previewTextLen))
	}

	fmt.Fprintf(w, "\nUse --output to save all %d messages to a file.\n", len(msgs))
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
