package cli

import (
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/slack-tools/slackdump/internal/export"
	"github.com/slack-tools/slackdump/internal/filter"
	slackclient "github.com/slack-tools/slackdump/internal/slack"
)

// ErrConfig covers bad or missing command-line arguments.
var ErrConfig = goerr.New("invalid configuration")

// timeFormats accepted by --start-time and --end-time.
var timeFormats = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

// ParseTime parses a date or date-time string in any accepted layout,
// interpreted as UTC.
func ParseTime(s string) (time.Time, error) {
	for _, layout := range timeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, goerr.Wrap(ErrConfig, "invalid date format",
		goerr.V("value", s),
		goerr.V("supported", timeFormats))
}

// Config carries every flag value for one invocation.
type Config struct {
	Token         string
	Cookie        string
	Channel       string
	Output        string
	Format        string
	Limit         int
	StartTime     string
	EndTime       string
	Regex         string
	CaseSensitive bool
	Users         string
	ResolveUsers  bool
	RetryMax      int
	RetryFallback time.Duration
	LogLevel      string
}

func (x *Config) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Slack API token (xoxb-... or xoxc-...)",
			Category:    "Slack",
			Required:    true,
			Destination: &x.Token,
			Sources:     cli.EnvVars("SLACK_TOKEN"),
		},
		&cli.StringFlag{
			Name:        "cookie",
			Usage:       "Slack 'd' cookie, required for xoxc tokens",
			Category:    "Slack",
			Destination: &x.Cookie,
			Sources:     cli.EnvVars("SLACK_COOKIE"),
		},
		&cli.StringFlag{
			Name:        "channel",
			Usage:       "Channel ID to dump (e.g. C1234567890)",
			Category:    "Slack",
			Required:    true,
			Destination: &x.Channel,
			Sources:     cli.EnvVars("SLACK_CHANNEL"),
		},
		&cli.StringFlag{
			Name:        "output",
			Usage:       "Output file path; omit to preview on stdout",
			Category:    "Output",
			Destination: &x.Output,
		},
		&cli.StringFlag{
			Name:        "format",
			Usage:       "Output format: json or csv",
			Category:    "Output",
			Value:       "json",
			Destination: &x.Format,
		},
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "Maximum number of messages to fetch (default: all)",
			Value:       -1,
			Destination: &x.Limit,
		},
		&cli.StringFlag{
			Name:        "start-time",
			Usage:       "Keep messages at or after this time (YYYY-MM-DD or YYYY-MM-DD HH:MM:SS)",
			Category:    "Filters",
			Destination: &x.StartTime,
		},
		&cli.StringFlag{
			Name:        "end-time",
			Usage:       "Keep messages at or before this time (YYYY-MM-DD or YYYY-MM-DD HH:MM:SS)",
			Category:    "Filters",
			Destination: &x.EndTime,
		},
		&cli.StringFlag{
			Name:        "regex",
			Usage:       "Keep messages whose text matches this pattern",
			Category:    "Filters",
			Destination: &x.Regex,
		},
		&cli.BoolFlag{
			Name:        "case-sensitive",
			Usage:       "Make --regex matching case sensitive",
			Category:    "Filters",
			Destination: &x.CaseSensitive,
		},
		&cli.StringFlag{
			Name:        "users",
			Usage:       "Keep messages from these user IDs (space-separated)",
			Category:    "Filters",
			Destination: &x.Users,
		},
		&cli.BoolFlag{
			Name:        "resolve-users",
			Usage:       "Look up display names for message authors",
			Destination: &x.ResolveUsers,
		},
		&cli.IntFlag{
			Name:        "retry-max",
			Usage:       "Rate-limit retries tolerated per API call",
			Category:    "Rate limiting",
			Destination: &x.RetryMax,
		},
		&cli.DurationFlag{
			Name:        "retry-fallback",
			Usage:       "Backoff used when Slack sends no Retry-After",
			Category:    "Rate limiting",
			Destination: &x.RetryFallback,
		},
		&cli.StringFlag{
			Name:        "log-level",
			Usage:       "Log level: debug, info, warn or error",
			Value:       "info",
			Destination: &x.LogLevel,
			Sources:     cli.EnvVars("LOG_LEVEL"),
		},
	}
}

// Validate rejects argument values that cannot be retried against the API.
func (x *Config) Validate() error {
	if !slackclient.IsChannelID(x.Channel) {
		return goerr.Wrap(ErrConfig, "channel must be a Slack channel ID like C1234567890",
			goerr.V("channel", x.Channel))
	}
	if _, err := export.ParseFormat(x.Format); err != nil {
		return goerr.Wrap(ErrConfig, err.Error(), goerr.V("format", x.Format))
	}
	return nil
}

// UserIDs returns the --users value split into individual IDs.
func (x *Config) UserIDs() []string {
	return strings.Fields(x.Users)
}

// TimeBounds parses the --start-time/--end-time flags; a nil bound means
// the flag was not given. Both the filter chain and the fetch request are
// built from these.
func (x *Config) TimeBounds() (start, end *time.Time, err error) {
	if x.StartTime != "" {
		t, err := ParseTime(x.StartTime)
		if err != nil {
			return nil, nil, err
		}
		start = &t
	}
	if x.EndTime != "" {
		t, err := ParseTime(x.EndTime)
		if err != nil {
			return nil, nil, err
		}
		end = &t
	}
	return start, end, nil
}

// BuildFilters assembles the filter chain from the configured flags.
// Cheap predicates come first so later ones see fewer messages.
func (x *Config) BuildFilters() (filter.Chain, error) {
	var chain filter.Chain

	if ids := x.UserIDs(); len(ids) > 0 {
		chain = append(chain, filter.NewUsers(ids))
	}

	if x.StartTime != "" || x.EndTime != "" {
		start, end, err := x.TimeBounds()
		if err != nil {
			return nil, err
		}
		tr, err := filter.NewTimeRange(start, end)
		if err != nil {
			return nil, goerr.Wrap(ErrConfig, err.Error())
		}
		chain = append(chain, tr)
	}

	if x.Regex != "" {
		re, err := filter.NewRegex(x.Regex, x.CaseSensitive)
		if err != nil {
			return nil, goerr.Wrap(ErrConfig, err.Error())
		}
		chain = append(chain, re)
	}

	return chain, nil
}

// RetryPolicy maps the retry flags onto the client policy; unset flags
// keep the client defaults.
func (x *Config) RetryPolicy() slackclient.RetryPolicy {
	return slackclient.RetryPolicy{
		MaxAttempts: x.RetryMax,
		Fallback:    x.RetryFallback,
	}
}
