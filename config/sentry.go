package config

import (
	"fmt"
	"time"
)

// SentryConfig enables error reporting to Sentry when DSN is set.
type SentryConfig struct {
	DSN              string        `json:"dsn"`
	Environment      string        `json:"environment"`
	Release          string        `json:"release"`
	TracesSampleRate float64       `json:"traces_sample_rate"`
	FlushTimeout     time.Duration `json:"flush_timeout"`
	// Tags are attached to every reported event, e.g. site: pune.
	Tags map[string]string `json:"tags"`
}

// SetDefaults fills unset fields.
func (c *SentryConfig) SetDefaults() {
	if c.Environment == "" {
		c.Environment = "production"
	}
	if c.FlushTimeout == 0 {
		c.FlushTimeout = 2 * time.Second
	}
}

// Validate checks the sample rate and flush timeout.
func (c SentryConfig) Validate() error {
	if c.TracesSampleRate < 0 || c.TracesSampleRate > 1 {
		return fmt.Errorf("traces_sample_rate must be within [0,1]")
	}
	if c.FlushTimeout < 0 {
		return fmt.Errorf("flush_timeout must be positive")
	}
	return nil
}
