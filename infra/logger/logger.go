// Package logger is the zerolog backend of core/logger. Call Configure once
// at startup; loggers created afterwards share its level and writers.
package logger

import corelogger "github.com/kilianp07/co2dash/core/logger"

type Logger = corelogger.Logger

// New returns a Logger tagged with component.
func New(component string) Logger {
	return NewZerologLogger(component)
}

// ForPlant returns a Logger tagged with component and plant.
func ForPlant(component, plant string) Logger {
	if plant == "" {
		return New(component)
	}
	mu.RLock()
	z := base.With().Timestamp().Str("component", component).Str("plant", plant).Logger()
	mu.RUnlock()
	return &ZerologLogger{log: z}
}

// NopLogger discards everything. Used in tests.
type NopLogger struct{}

func (NopLogger) Debugf(string, ...any)         {}
func (NopLogger) Infof(string, ...any)          {}
func (NopLogger) Warnf(string, ...any)          {}
func (NopLogger) Errorf(string, ...any)         {}
func (NopLogger) Debugw(string, map[string]any) {}
func (NopLogger) Infow(string, map[string]any)  {}
