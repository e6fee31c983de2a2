// Package cli wires the command-line surface to the fetch, filter and
// export layers.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/slack-tools/slackdump/internal/export"
	"github.com/slack-tools/slackdump/internal/message"
	slackclient "github.com/slack-tools/slackdump/internal/slack"
)

// Run parses args and executes the dump. It is the whole program minus
// signal handling.
func Run(ctx context.Context, args []string, version string) error {
	var cfg Config

	app := &cli.Command{
		Name:    "slackdump",
		Usage:   "Dump message history from a Slack channel to JSON or CSV",
		Version: version,
		Flags:   cfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			return run(ctx, &cfg)
		},
	}

	return app.Run(ctx, args)
}

func run(ctx context.Context, cfg *Config) error {
	logger := newLogger(cfg.LogLevel)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	filters, err := cfg.BuildFilters()
	if err != nil {
		return err
	}

	client, err := slackclient.NewClient(slackclient.Config{
		Token:  cfg.Token,
		Cookie: cfg.Cookie,
		Retry:  cfg.RetryPolicy(),
	}, logger)
	if err != nil {
		return err
	}
	if err := client.VerifyAuth(ctx); err != nil {
		return err
	}

	logger.Info("Fetching channel history",
		zap.String("channel", cfg.Channel),
		zap.Int("limit", cfg.Limit))

	// Time flags also narrow the request server-side; the filter chain
	// below remains the authority on what is kept.
	req := slackclient.FetchRequest{
		Channel: cfg.Channel,
		Limit:   cfg.Limit,
	}
	start, end, err := cfg.TimeBounds()
	if err != nil {
		return err
	}
	if start != nil {
		req.Oldest = message.FormatTS(*start)
	}
	if end != nil {
		req.Latest = message.FormatTS(*end)
	}

	msgs, err := client.CollectHistory(ctx, req)
	if err != nil {
		// A partial dump would be indistinguishable from a complete one,
		// so nothing fetched so far is written.
		return err
	}

	fetched := len(msgs)
	msgs = filters.Apply(msgs)
	logger.Info("Applied filters",
		zap.Int("fetched", fetched),
		zap.Int("kept", len(msgs)))

	if len(msgs) == 0 {
		fmt.Fprintln(os.Stderr, color.YellowString("No messages matched."))
		return nil
	}

	if cfg.ResolveUsers {
		client.ResolveUserNames(ctx, msgs)
	}

	if cfg.Output == "" {
		printPreview(os.Stdout, msgs)
		return nil
	}

	target := export.Target{Path: cfg.Output, Format: format}
	if err := export.Export(msgs, target); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, color.GreenString("Saved %d messages to %s", len(msgs), cfg.Output))
	return nil
}

// newLogger builds a JSON logger on stderr. Stdout stays clean for the
// message preview.
func newLogger(level string) *zap.Logger {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(os.Stderr),
		interpretLogLevel(level),
	)

	return zap.New(core)
}

func interpretLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "warn":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
