// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package templates holds the templ components for the web pages.
package templates

//go:generate templ generate

import (
	"net/url"
	"time"

	"github.com/a-h/templ"
	"github.com/dustin/go-humanize"
)

// LayoutData is the data every page needs for its shell.
type LayoutData struct {
	Title     string // page title, shown before the site title
	SiteTitle string
	Owner     bool
	Version   string
	Now       time.Time // reference time for "updated ... ago"
}

func (d LayoutData) PageTitle() string {
	if d.Title == "" || d.Title == d.SiteTitle {
		return d.SiteTitle
	}
	return d.Title + " | " + d.SiteTitle
}

func (d LayoutData) Footer() string {
	if d.Version == "" {
		return "pkr"
	}
	return "pkr " + d.Version
}

func noteURL(slug string) templ.SafeURL {
	return templ.URL("/" + url.PathEscape(slug))
}

func tagURL(tag string) templ.SafeURL {
	return templ.URL("/?tag=" + url.QueryEscape(tag))
}

func relTime(t, now time.Time) string {
	return humanize.RelTime(t, now, "ago", "from now")
}

// countOf returns "1 note", "12 notes", "1,200 notes".
func countOf(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return humanize.Comma(int64(n)) + " " + noun + "s"
}
