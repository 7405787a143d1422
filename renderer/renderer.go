// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package renderer turns parsed notes into HTML.
package renderer

import (
	"context"
	"io"
	"time"

	"github.com/a-h/templ"
)

type Renderer struct {
	trimText  bool
	siteTitle string
	now       func() time.Time
}

func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		siteTitle: "pkr",
		now:       time.Now,
	}
	for _, option := range options {
		err := option(r)
		if err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Must panics if New failed. It is meant for package-level renderers.
func Must(r *Renderer, err error) *Renderer {
	if err != nil {
		panic(err)
	}
	return r
}

var defaultRenderer = Must(New())

// Default returns the renderer used when no options are given.
func Default() *Renderer {
	return defaultRenderer
}

// htmlWriter keeps the first write error so callers can write without checking.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (hw *htmlWriter) raw(s string) {
	if hw.err == nil {
		_, hw.err = io.WriteString(hw.w, s)
	}
}

func (hw *htmlWriter) text(s string) {
	hw.raw(templ.EscapeString(s))
}

// component wraps body as a templ component.
func component(body func(ctx context.Context, hw *htmlWriter) error) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		hw := &htmlWriter{w: w}
		if err := body(ctx, hw); err != nil {
			return err
		}
		return hw.err
	})
}
