// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package model

import (
	"time"
)

// Note is one markup file in the notes directory.
//
// Front matter lines (".key: value") are removed from Body and kept in Meta.
// Body is empty when a Note comes back from the index.
type Note struct {
	Slug     string            `json:"slug"               db:"slug"`      // file name without ".md"
	FileName string            `json:"fileName"           db:"file_name"` // e.g. "modern-javascript.md"
	Path     string            `json:"path,omitempty"`                    // full path in the repository
	Title    string            `json:"title"              db:"title"`     // from a leading "# " line, or the slug
	Public   bool              `json:"public"             db:"public"`    // ".public: true"
	Tags     []string          `json:"tags,omitempty"`                    // ".tags: a b c"
	Meta     map[string]string `json:"meta,omitempty"`
	Body     string            `json:"body,omitempty"`
	ModTime  time.Time         `json:"modTime"            db:"mod_time"`
}

// HasTag reports whether the note is tagged with tag.
func (n *Note) HasTag(tag string) bool {
	for _, t := range n.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NoteFilter selects notes from the index.
type NoteFilter struct {
	IncludePrivate bool   // owner view
	Tag            string // empty means any tag
}

// TagCount is a tag and the number of notes carrying it.
type TagCount struct {
	Tag   string `json:"tag"   db:"tag"`
	Count int    `json:"count" db:"count"`
}
