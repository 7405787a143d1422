// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package logger builds the structured loggers used by pkr.
package logger

import (
	"io"
	"log/slog"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a slog logger that writes through charm/log at level.
// Level names are those accepted by log.ParseLevel.
func New(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return NewWithLevel(w, lvl), nil
}

// NewWithLevel creates a logger with a specific level
func NewWithLevel(w io.Writer, level log.Level) *slog.Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return slog.New(l)
}

// Discard returns a logger that discards all output
func Discard() *slog.Logger {
	return NewWithLevel(io.Discard, log.FatalLevel)
}
