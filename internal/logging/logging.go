// Package logging builds the zerolog loggers used across brgy.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
)

// Options controls logger construction.
type Options struct {
	Level string    // zerolog level name; unknown names mean info
	Out   io.Writer // console output, stderr when nil
	File  string    // when set, logs go to this file instead of Out
	Quiet bool      // only errors reach the console
}

// ParseLevel parses a level name, falling back to info.
func ParseLevel(level string) zerolog.Level {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		return zerolog.InfoLevel
	}
	return lvl
}

// New builds a logger. The returned close func releases the log file, if
// one was opened, and is always safe to call.
func New(opts Options) (zerolog.Logger, func() error, error) {
	lvl := ParseLevel(opts.Level)
	if opts.Quiet && lvl < zerolog.ErrorLevel {
		lvl = zerolog.ErrorLevel
	}

	closeFn := func() error { return nil }

	var w io.Writer
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o750); err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("creating log dir: %w", err)
		}
		f, err := os.OpenFile(opts.File, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
		if err != nil {
			return zerolog.Nop(), closeFn, fmt.Errorf("opening log file: %w", err)
		}
		w = f
		closeFn = f.Close
	} else {
		out := opts.Out
		if out == nil {
			out = os.Stderr
		}
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: time.Kitchen}
	}

	logger := zerolog.New(w).
		Level(lvl).
		With().
		Timestamp().
		Logger()
	return logger, closeFn, nil
}
