// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mdhender/pkr/model"
)

// Lister returns every note in a notes directory.
type Lister interface {
	List(ctx context.Context) ([]*model.Note, error)
}

// LoadFromLister reads all notes from src and syncs them into s.
func LoadFromLister(ctx context.Context, s model.Store, src Lister, logger *slog.Logger) error {
	started := time.Now()

	notes, err := src.List(ctx)
	if err != nil {
		return fmt.Errorf("list notes: %w", err)
	}
	if err := s.Sync(ctx, notes); err != nil {
		return fmt.Errorf("sync notes: %w", err)
	}

	if logger != nil {
		logger.Debug("store: synced notes", "notes", len(notes), "elapsed", time.Since(started))
	}
	return nil
}
