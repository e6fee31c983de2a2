// Package filter implements client-side message predicates and their
// AND-composition into a chain.
package filter

import (
	"regexp"
	"time"

	"github.com/m-mizutani/goerr/v2"

	"github.com/slack-tools/slackdump/internal/message"
)

// Sentinel errors for filter construction.
var (
	ErrInvalidRange   = goerr.New("start time must not be after end time")
	ErrInvalidPattern = goerr.New("invalid regex pattern")
)

// Filter is a single message predicate.
type Filter interface {
	Matches(msg message.Message) bool
}

// Chain is an ordered set of filters combined with logical AND. Order does
// not change the result, only how much work the later filters see.
type Chain []Filter

// Apply returns the messages that pass every filter, preserving their
// relative order. An empty chain returns the input unchanged.
func (c Chain) Apply(msgs []message.Message) []message.Message {
	if len(c) == 0 {
		return msgs
	}
	out := make([]message.Message, 0, len(msgs))
	for _, msg := range msgs {
		if c.matches(msg) {
			out = append(out, msg)
		}
	}
	return out
}

func (c Chain) matches(msg message.Message) bool {
	for _, f := range c {
		if !f.Matches(msg) {
			return false
		}
	}
	return true
}

// TimeRange passes messages whose timestamp falls within [start, end].
// A nil bound is unbounded on that side; both bounds are inclusive.
type TimeRange struct {
	start, end *time.Time
}

func NewTimeRange(start, end *time.Time) (*TimeRange, error) {
	if start != nil && end != nil && start.After(*end) {
		return nil, goerr.Wrap(ErrInvalidRange, "bad time range",
			goerr.V("start", *start), goerr.V("end", *end))
	}
	return &TimeRange{start: start, end: end}, nil
}

func (f *TimeRange) Matches(msg message.Message) bool {
	if f.start != nil && msg.Time.Before(*f.start) {
		return false
	}
	if f.end != nil && msg.Time.After(*f.end) {
		return false
	}
	return true
}

// Regex passes messages whose text contains a match for the pattern
// (search semantics, not a full match). Matching is case-insensitive
// unless caseSensitive is set.
type Regex struct {
	re *regexp.Regexp
}

func NewRegex(pattern string, caseSensitive bool) (*Regex, error) {
	expr := pattern
	if !caseSensitive {
		expr = "(?i)" + expr
	}
	re, err := regexp.Compile(expr)
	if err != nil {
		return nil, goerr.Wrap(ErrInvalidPattern, err.Error(), goerr.V("pattern", pattern))
	}
	return &Regex{re: re}, nil
}

func (f *Regex) Matches(msg message.Message) bool {
	return f.re.MatchString(msg.Text)
}

// Users passes messages authored by any of the given user IDs. An empty
// set imposes no restriction at all, it does not reject everything.
type Users struct {
	ids map[string]struct{}
}

func NewUsers(ids []string) *Users {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &Users{ids: set}
}

func (f *Users) Matches(msg message.Message) bool {
	if len(f.ids) == 0 {
		return true
	}
	_, ok := f.ids[msg.User]
	return ok
}
