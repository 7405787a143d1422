// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package repository

import (
	"regexp"
	"strings"
	"time"

	"github.com/mdhender/pkr/model"
)

var (
	titlePattern       = regexp.MustCompile(`^# ?(.+)`)
	frontMatterPattern = regexp.MustCompile(`^\.(\w+):(.+)`)
)

// ExtractMetadata pulls front matter out of a note.
//
// The title comes from the first line when it is a heading. Every line of
// the form ".key: value" is removed from the body and stored under key;
// a ".title:" line overrides the heading. The remaining lines are joined
// back together unchanged, so the heading stays in the body.
func ExtractMetadata(text string) (meta map[string]string, body string) {
	meta = make(map[string]string)
	lines := strings.Split(text, "\n")

	if m := titlePattern.FindStringSubmatch(lines[0]); m != nil {
		meta["title"] = strings.TrimSpace(m[1])
	}

	bodyLines := make([]string, 0, len(lines))
	for _, line := range lines {
		if m := frontMatterPattern.FindStringSubmatch(line); m != nil {
			meta[m[1]] = strings.TrimSpace(m[2])
			continue
		}
		bodyLines = append(bodyLines, line)
	}

	return meta, strings.Join(bodyLines, "\n")
}

// NewNote builds a note from the contents of fileName.
func NewNote(fileName, text string, modTime time.Time) *model.Note {
	meta, body := ExtractMetadata(text)
	slug := strings.TrimSuffix(fileName, ".md")
	n := &model.Note{
		Slug:     slug,
		FileName: fileName,
		Title:    meta["title"],
		Public:   meta["public"] == "true",
		Tags:     strings.Fields(meta["tags"]),
		Meta:     meta,
		Body:     body,
		ModTime:  modTime,
	}
	if n.Title == "" {
		n.Title = slug
	}
	return n
}
