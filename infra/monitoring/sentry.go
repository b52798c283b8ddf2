// Package monitoring implements the core Monitor on top of Sentry.
package monitoring

import (
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/kilianp07/co2dash/config"
	coremon "github.com/kilianp07/co2dash/core/monitoring"
)

// NewSentryMonitor initialises the Sentry SDK. Every event carries the plant
// name and the configured tags. An empty DSN yields a NopMonitor.
func NewSentryMonitor(cfg config.SentryConfig, version, plant string) (coremon.Monitor, error) {
	if cfg.DSN == "" {
		return coremon.NopMonitor{}, nil
	}
	release := cfg.Release
	if release == "" {
		release = "co2dash@" + version
	}
	if err := sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          release,
		TracesSampleRate: cfg.TracesSampleRate,
	}); err != nil {
		return nil, err
	}
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		scope.SetTags(cfg.Tags)
		if plant != "" {
			scope.SetTag("plant", plant)
		}
	})
	return &sentryMonitor{hub: sentry.CurrentHub()}, nil
}

type sentryMonitor struct {
	hub *sentry.Hub
}

func (s *sentryMonitor) CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	s.hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		s.hub.CaptureException(err)
	})
}

func (s *sentryMonitor) Flush(timeout time.Duration) { s.hub.Flush(timeout) }
