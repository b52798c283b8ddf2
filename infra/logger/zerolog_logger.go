package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls the output of every logger created by New.
type Options struct {
	// Level is a zerolog level name; empty means info.
	Level string
	// Format is "json" or "console". Empty picks console when APP_ENV=dev.
	Format string
	// File, when set, receives a copy of the output rotated by lumberjack.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	// Out overrides the standard output writer.
	Out io.Writer
}

var (
	mu      sync.RWMutex
	base    = zerolog.New(defaultWriter(os.Stdout, "")).Level(zerolog.InfoLevel)
	rotator *lumberjack.Logger
)

func defaultWriter(out io.Writer, format string) io.Writer {
	if format == "" && strings.ToLower(os.Getenv("APP_ENV")) == "dev" {
		format = "console"
	}
	if format == "console" {
		return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	}
	return out
}

// Configure installs opts for loggers created afterwards.
func Configure(opts Options) error {
	lvl := zerolog.InfoLevel
	if opts.Level != "" {
		l, err := zerolog.ParseLevel(strings.ToLower(opts.Level))
		if err != nil {
			return fmt.Errorf("log level: %w", err)
		}
		lvl = l
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	w := defaultWriter(out, opts.Format)
	var rot *lumberjack.Logger
	if opts.File != "" {
		rot = &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
		}
		w = zerolog.MultiLevelWriter(w, rot)
	}
	mu.Lock()
	defer mu.Unlock()
	if rotator != nil {
		_ = rotator.Close()
	}
	rotator = rot
	base = zerolog.New(w).Level(lvl)
	return nil
}

// Close flushes and closes the rotating log file, if any.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if rotator == nil {
		return nil
	}
	err := rotator.Close()
	rotator = nil
	return err
}

// ZerologLogger implements Logger using rs/zerolog.
type ZerologLogger struct {
	log zerolog.Logger
}

// NewZerologLogger creates a ZerologLogger from the configured base logger.
// All logs include the provided component field.
func NewZerologLogger(component string) Logger {
	mu.RLock()
	z := base.With().Timestamp().Str("component", component).Logger()
	mu.RUnlock()
	return &ZerologLogger{log: z}
}

func (l *ZerologLogger) Debugf(format string, args ...any) {
	l.log.Debug().Msgf(format, args...)
}

func (l *ZerologLogger) Debugw(msg string, fields map[string]any) {
	l.log.Debug().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infow(msg string, fields map[string]any) {
	l.log.Info().Fields(fields).Msg(msg)
}

func (l *ZerologLogger) Infof(format string, args ...any) {
	l.log.Info().Msgf(format, args...)
}

func (l *ZerologLogger) Warnf(format string, args ...any) {
	l.log.Warn().Msgf(format, args...)
}

func (l *ZerologLogger) Errorf(format string, args ...any) {
	l.log.Error().Msgf(format, args...)
}
