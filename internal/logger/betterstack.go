package logger

import (
	"log/slog"

	slogbetterstack "github.com/samber/slog-betterstack"
)

// newBetterStackHandler returns a Better Stack shipping handler, or nil when
// no source token is configured.
func newBetterStackHandler(level slog.Level, opts Options) slog.Handler {
	if opts.BetterStackToken == "" {
		return nil
	}
	option := slogbetterstack.Option{
		Level: level,
		Token: opts.BetterStackToken,
	}
	if opts.BetterStackEndpoint != "" {
		option.Endpoint = opts.BetterStackEndpoint
	}
	return option.NewBetterstackHandler()
}
