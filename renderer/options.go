// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer

import "time"

type Option func(p *Renderer) error

// WithTrimText drops trailing newlines from text nodes.
func WithTrimText(flag bool) Option {
	return func(p *Renderer) error {
		p.trimText = flag
		return nil
	}
}

// WithSiteTitle sets the title shown on every page.
func WithSiteTitle(title string) Option {
	return func(p *Renderer) error {
		p.siteTitle = title
		return nil
	}
}

// WithClock replaces time.Now when computing "updated ... ago".
func WithClock(now func() time.Time) Option {
	return func(p *Renderer) error {
		p.now = now
		return nil
	}
}
