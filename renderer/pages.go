// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package renderer

import (
	"github.com/a-h/templ"
	"github.com/mdhender/pkr"
	"github.com/mdhender/pkr/model"
	"github.com/mdhender/pkr/web/templates"
)

type IndexData struct {
	Notes   []*model.Note
	Tags    []model.TagCount
	Tag     string // active tag filter
	Owner   bool
	Version string
}

type NoteData struct {
	Note    *model.Note
	Doc     *pkr.Node
	Owner   bool
	Version string
}

type LoginData struct {
	Error   string
	Version string
}

func (r *Renderer) layoutData(title string, owner bool, version string) templates.LayoutData {
	return templates.LayoutData{
		Title:     title,
		SiteTitle: r.siteTitle,
		Owner:     owner,
		Version:   version,
		Now:       r.now(),
	}
}

// IndexPage lists notes and the tag cloud.
func (r *Renderer) IndexPage(data IndexData) templ.Component {
	return templates.IndexPage(data.Notes, data.Tags, data.Tag, r.layoutData(r.siteTitle, data.Owner, data.Version))
}

// NotePage renders a single note.
func (r *Renderer) NotePage(data NoteData) templ.Component {
	return templates.NotePage(data.Note, r.Node(data.Doc), r.layoutData(data.Note.Title, data.Owner, data.Version))
}

// LoginPage asks for the owner password.
func (r *Renderer) LoginPage(data LoginData) templ.Component {
	return templates.LoginPage(data.Error, r.layoutData("Log in", false, data.Version))
}
