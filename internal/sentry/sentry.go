// Package sentry wires error tracking for the answer service. Events go
// to a Better Stack errors backend through the Sentry protocol; with no
// token configured the package is inert.
package sentry

import (
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/smartcampus/coursesearch/internal/config"
)

// Initialize sets up the Sentry SDK from the application configuration.
// Disabled (and nil) when SentryEnabled is false or no token is set.
// The DSN is built as https://$TOKEN@$HOST/1; the project ID segment is
// required by the SDK but ignored by Better Stack.
func Initialize(cfg *config.Config) error {
	if !cfg.SentryEnabled || cfg.SentryToken == "" {
		return nil
	}
	if cfg.SentryHost == "" {
		return fmt.Errorf("sentry host is required when sentry is enabled")
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              fmt.Sprintf("https://%s@%s/1", cfg.SentryToken, cfg.SentryHost),
		Environment:      cfg.SentryEnvironment,
		SampleRate:       1.0,
		AttachStacktrace: true,
	})
}

// IsEnabled returns true if Sentry is initialized and active.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// CaptureException sends an error to the backend. No-op when disabled.
func CaptureException(err error) {
	if IsEnabled() {
		sentry.CaptureException(err)
	}
}

// Flush waits for buffered events to be sent.
// Returns true if all events were delivered within the timeout.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}
