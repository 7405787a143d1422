// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package repository

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound    = errors.New("note not found")
	ErrInvalidSlug = errors.New("invalid slug")
)

// ErrReadNote is returned when note file I/O fails.
type ErrReadNote struct {
	Op   string // list, stat, read, write
	Path string
	Err  error
}

func (e *ErrReadNote) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ErrReadNote) Unwrap() error {
	return e.Err
}
