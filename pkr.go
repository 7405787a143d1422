// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package pkr parses personal notes into a document tree.
//
// The markup is line oriented:
//
//	# heading
//	* list item (or "- list item")
//	a paragraph, which may [link](https://example.com) or **bold** one span per line
//
// A blank line closes the current heading, list or paragraph.
package pkr

import (
	"github.com/maloquacious/semver"
)

var (
	version = semver.Version{
		Major: 0,
		Minor: 3,
		Patch: 0,
		Build: semver.Commit(),
	}
)

func Version() semver.Version {
	return version
}
