// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package logger_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/mdhender/pkr/internal/logger"
)

func TestNew(t *testing.T) {
	var buf bytes.Buffer
	l, err := logger.New(&buf, "warn")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	l.Info("hidden")
	l.Warn("shown", "slug", "packing")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info logged at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") || !strings.Contains(out, "slug=packing") {
		t.Errorf("warn line missing: %q", out)
	}
	if l.Enabled(context.Background(), slog.LevelDebug) {
		t.Errorf("debug enabled at warn level")
	}

	if _, err := logger.New(&buf, "chatty"); err == nil {
		t.Errorf("accepted an unknown level")
	}
}

func TestDiscard(t *testing.T) {
	if logger.Discard().Enabled(context.Background(), slog.LevelError) {
		t.Errorf("discard logger enabled at error level")
	}
}
