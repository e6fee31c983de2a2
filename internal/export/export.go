// Package export serializes fetched messages to JSON or CSV.
package export

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/m-mizutani/goerr/v2"

	"github.com/slack-tools/slackdump/internal/message"
)

// Format selects the serialization of an export target.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// Sentinel errors for export failures.
var (
	ErrUnknownFormat = goerr.New("unknown output format")
	ErrWrite         = goerr.New("failed to write output")
)

// ParseFormat validates a format tag. Unknown tags are a configuration
// error, never a silent fallback.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatCSV:
		return f, nil
	default:
		return "", goerr.Wrap(ErrUnknownFormat, s,
			goerr.V("supported", []Format{FormatJSON, FormatCSV}))
	}
}

// Target is an output file path plus its format.
type Target struct {
	Path   string
	Format Format
}

// Record is the JSON shape of one exported message. Field order is stable
// across runs; timestamp carries the raw Slack ts and datetime its RFC 3339
// rendering.
type Record struct {
	Text       string             `json:"text"`
	User       string             `json:"user"`
	UserName   string             `json:"user_name,omitempty"`
	Timestamp  string             `json:"timestamp"`
	Datetime   string             `json:"datetime"`
	Channel    string             `json:"channel"`
	ThreadTS   string             `json:"thread_ts,omitempty"`
	ReplyCount int                `json:"reply_count,omitempty"`
	Reactions  []message.Reaction `json:"reactions,omitempty"`
}

// NewRecord converts a message to its export shape.
func NewRecord(m message.Message) Record {
	return Record{
		Text:       m.Text,
		User:       m.User,
		UserName:   m.UserName,
		Timestamp:  m.ID,
		Datetime:   m.Time.UTC().Format(time.RFC3339),
		Channel:    m.Channel,
		ThreadTS:   m.ThreadID,
		ReplyCount: m.ReplyCount,
		Reactions:  m.Reactions,
	}
}

// row is the CSV shape; gocsv derives the header from these tags.
type row struct {
	Datetime   string `csv:"datetime"`
	User       string `csv:"user"`
	Text       string `csv:"text"`
	Channel    string `csv:"channel"`
	ThreadTS   string `csv:"thread_ts"`
	ReplyCount int    `csv:"reply_count"`
}

// Export writes messages to the target path. Output is staged in a
// temporary file in the same directory and renamed into place, so a failed
// export never leaves a partial file at the target path.
func Export(msgs []message.Message, target Target) error {
	dir := filepath.Dir(target.Path)
	tmp, err := os.CreateTemp(dir, ".slackdump-*")
	if err != nil {
		return goerr.Wrap(ErrWrite, err.Error(), goerr.V("path", target.Path))
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if err := Write(msgs, tmp, target.Format); err != nil {
		return goerr.Wrap(err, "export aborted", goerr.V("path", target.Path))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(ErrWrite, err.Error(), goerr.V("path", target.Path))
	}
	if err := os.Rename(tmp.Name(), target.Path); err != nil {
		return goerr.Wrap(ErrWrite, err.Error(), goerr.V("path", target.Path))
	}
	return nil
}

// Write serializes messages to w in the given format.
func Write(msgs []message.Message, w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		return writeJSON(msgs, w)
	case FormatCSV:
		return writeCSV(msgs, w)
	default:
		return goerr.Wrap(ErrUnknownFormat, string(format))
	}
}

func writeJSON(msgs []message.Message, w io.Writer) error {
	records := make([]Record, 0, len(msgs))
	for _, m := range msgs {
		records = append(records, NewRecord(m))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(records); err != nil {
		return goerr.Wrap(ErrWrite, err.Error())
	}
	return nil
}

func writeCSV(msgs []message.Message, w io.Writer) error {
	rows := make([]row, 0, len(msgs))
	for _, m := range msgs {
		rows = append(rows, row{
			Datetime:   m.Time.UTC().Format(time.RFC3339),
			User:       m.User,
			Text:       m.Text,
			Channel:    m.Channel,
			ThreadTS:   m.ThreadID,
			ReplyCount: m.ReplyCount,
		})
	}
	if err := gocsv.Marshal(&rows, w); err != nil {
		return goerr.Wrap(ErrWrite, err.Error())
	}
	return nil
}
