// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package model

import "context"

// Store is an interface for indexing notes.
type Store interface {
	// Sync makes the index match notes exactly.
	Sync(ctx context.Context, notes []*Note) error

	Notes(ctx context.Context, filter NoteFilter) ([]*Note, error)
	NoteBySlug(ctx context.Context, slug string) (*Note, error)
	Tags(ctx context.Context, includePrivate bool) ([]TagCount, error)
	Stats(ctx context.Context) (Stats, error)
}

// Stats holds store statistics.
type Stats struct {
	Notes  int
	Public int
	Tags   int
}
