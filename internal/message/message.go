// Package message defines the in-memory representation of one Slack
// channel history entry.
package message

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
)

// ErrBadTimestamp is returned when a Slack "ts" value cannot be parsed.
var ErrBadTimestamp = goerr.New("malformed slack timestamp")

// Reaction is an emoji reaction with its tally.
type Reaction struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Message is one channel history entry. ID carries the raw Slack "ts"
// value, which is unique within a channel and doubles as its sort key;
// Time is the same value parsed into wall-clock form. A Message is built
// once from an API response entry and never mutated afterwards, except
// for UserName which is filled in by an optional lookup pass.
type Message struct {
	ID         string
	Text       string
	User       string
	UserName   string
	Channel    string
	Time       time.Time
	ThreadID   string
	ReplyCount int
	Reactions  []Reaction
}

// FromSlack builds a Message from one API history entry. A malformed "ts"
// leaves Time at its zero value rather than discarding the message.
func FromSlack(msg slack.Message, channel string) Message {
	t, _ := ParseTS(msg.Timestamp)

	m := Message{
		ID:         msg.Timestamp,
		Text:       msg.Text,
		User:       msg.User,
		Channel:    channel,
		Time:       t,
		ThreadID:   msg.ThreadTimestamp,
		ReplyCount: msg.ReplyCount,
	}
	for _, r := range msg.Reactions {
		m.Reactions = append(m.Reactions, Reaction{Name: r.Name, Count: r.Count})
	}
	return m
}

// ParseTS converts a Slack "seconds.microseconds" timestamp (for example
// "1700000000.123456") to a UTC time. The fractional part is optional.
func ParseTS(ts string) (time.Time, error) {
	secStr, frac, _ := strings.Cut(ts, ".")

	sec, err := strconv.ParseInt(secStr, 10, 64)
	if err != nil {
		return time.Time{}, goerr.Wrap(ErrBadTimestamp, "seconds are not numeric", goerr.V("ts", ts))
	}

	var usec int64
	if frac != "" {
		if len(frac) > 6 {
			frac = frac[:6]
		}
		usec, err = strconv.ParseInt(frac, 10, 64)
		if err != nil {
			return time.Time{}, goerr.Wrap(ErrBadTimestamp, "fractional part is not numeric", goerr.V("ts", ts))
		}
		for i := len(frac); i < 6; i++ {
			usec *= 10
		}
	}

	return time.Unix(sec, usec*1000).UTC(), nil
}

// FormatTS renders a time as a Slack "seconds.microseconds" timestamp,
// the inverse of ParseTS. Used for the oldest/latest request bounds.
func FormatTS(t time.Time) string {
	return fmt.Sprintf("%d.%06d", t.Unix(), t.Nanosecond()/1000)
}
