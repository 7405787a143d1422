// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package parser loads a note file and parses its body.
package parser

import (
	"log/slog"

	"github.com/mdhender/pkr"
	"github.com/mdhender/pkr/model"
	"github.com/mdhender/pkr/repository"
	"github.com/spf13/afero"
)

type Parser struct {
	note   *model.Note
	logger *slog.Logger
}

type options struct {
	fs      afero.Fs
	stripCR bool
	logger  *slog.Logger
}

type Option func(o *options) error

// WithFs reads the file from fs instead of the operating system.
func WithFs(fs afero.Fs) Option {
	return func(o *options) error {
		o.fs = fs
		return nil
	}
}

func WithStripCR(flag bool) Option {
	return func(o *options) error {
		o.stripCR = flag
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// New reads the note at path and removes its front matter.
func New(path string, opts ...Option) (*Parser, error) {
	o := options{fs: afero.NewOsFs()}
	for _, opt := range opts {
		if err := opt(&o); err != nil {
			return nil, err
		}
	}
	note, err := repository.ReadNote(o.fs, path, o.stripCR)
	if err != nil {
		return nil, err
	}
	return &Parser{
		note:   note,
		logger: o.logger,
	}, nil
}

// Document is a note and its parsed body.
type Document struct {
	Note *model.Note `json:"note"`
	Root *pkr.Node   `json:"-"`
}

// Tree returns the serialized document tree.
func (d *Document) Tree() []any {
	return d.Root.Serialize()
}

// Parse parses the note body. It may be called more than once.
func (p *Parser) Parse() (*Document, error) {
	var options []pkr.Option
	if p.logger != nil {
		options = append(options, pkr.WithLogger(p.logger))
	}
	root, err := pkr.Parse(p.note.Body, options...)
	if err != nil {
		return nil, err
	}
	return &Document{Note: p.note, Root: root}, nil
}
