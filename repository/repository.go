// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package repository lists and loads notes from a directory of ".md" files.
package repository

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/mdhender/pkr/model"
	"github.com/spf13/afero"
)

var (
	// a slug is a single path element and never a hidden file
	slugPattern = regexp.MustCompile(`^[A-Za-z0-9_-][A-Za-z0-9._-]*$`)
)

// Repository reads notes from a directory.
type Repository struct {
	fs      afero.Fs
	root    string
	stripCR bool
	logger  *slog.Logger
}

type Option func(r *Repository) error

// WithLogger logs skipped files and load failures.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Repository) error {
		r.logger = logger
		return nil
	}
}

// WithStripCR replaces CR+LF with LF before a note is parsed.
func WithStripCR(flag bool) Option {
	return func(r *Repository) error {
		r.stripCR = flag
		return nil
	}
}

// New returns a repository for the notes in root.
func New(fsys afero.Fs, root string, options ...Option) (*Repository, error) {
	r := &Repository{
		fs:     fsys,
		root:   root,
		logger: slog.Default(),
	}
	for _, option := range options {
		if err := option(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// ValidSlug reports whether slug can name a note.
func ValidSlug(slug string) bool {
	return slugPattern.MatchString(slug)
}

// List returns every note in the directory, sorted by slug.
// Files that can't be read are logged and skipped.
func (r *Repository) List(ctx context.Context) ([]*model.Note, error) {
	entries, err := afero.ReadDir(r.fs, r.root)
	if err != nil {
		return nil, &ErrReadNote{Op: "list", Path: r.root, Err: err}
	}

	var notes []*model.Note
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".md") || !ValidSlug(strings.TrimSuffix(name, ".md")) {
			continue
		}
		note, err := r.readNote(name)
		if err != nil {
			r.logger.Warn("repository: skipping note", "file", name, "error", err)
			continue
		}
		notes = append(notes, note)
	}

	sort.Slice(notes, func(i, j int) bool {
		return notes[i].Slug < notes[j].Slug
	})
	return notes, nil
}

// Load returns the note named by slug.
func (r *Repository) Load(ctx context.Context, slug string) (*model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}
	return r.readNote(slug + ".md")
}

// Save writes a note file, replacing any existing note with the same slug.
func (r *Repository) Save(ctx context.Context, slug string, data []byte) (*model.Note, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !ValidSlug(slug) {
		return nil, ErrInvalidSlug
	}
	path := filepath.Join(r.root, slug+".md")
	if err := afero.WriteFile(r.fs, path, data, 0o644); err != nil {
		return nil, &ErrReadNote{Op: "write", Path: path, Err: err}
	}
	r.logger.Info("repository: saved note", "slug", slug, "bytes", len(data))
	return r.readNote(slug + ".md")
}

func (r *Repository) readNote(fileName string) (*model.Note, error) {
	path := filepath.Join(r.root, fileName)
	fi, err := r.fs.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, &ErrReadNote{Op: "stat", Path: path, Err: err}
	} else if fi.IsDir() {
		return nil, ErrNotFound
	}
	note, err := ReadNote(r.fs, path, r.stripCR)
	if err != nil {
		return nil, err
	}
	return note, nil
}

// ReadNote loads a single note file from any path.
func ReadNote(fsys afero.Fs, path string, stripCR bool) (*model.Note, error) {
	fi, err := fsys.Stat(path)
	if err != nil {
		return nil, &ErrReadNote{Op: "stat", Path: path, Err: err}
	}
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, &ErrReadNote{Op: "read", Path: path, Err: err}
	}
	if stripCR {
		data = bytes.ReplaceAll(data, []byte{'\r', '\n'}, []byte{'\n'})
	}
	note := NewNote(filepath.Base(path), string(data), fi.ModTime())
	note.Path = path
	return note, nil
}
