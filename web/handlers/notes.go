// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/mdhender/pkr"
	"github.com/mdhender/pkr/renderer"
	"github.com/mdhender/pkr/repository"
)

// Note renders the note named by the request path.
// With ?format=json it returns the serialized document tree instead.
//
// Private notes look exactly like missing ones to anyone but the owner.
func (h *Handlers) Note(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	session := h.session(w, r)
	owner := session != nil
	ctx := r.Context()

	slug := strings.TrimPrefix(r.URL.Path, "/")
	note, err := h.notes.Load(ctx, slug)
	if errors.Is(err, repository.ErrNotFound) || errors.Is(err, repository.ErrInvalidSlug) {
		http.NotFound(w, r)
		return
	} else if err != nil {
		h.logger.Error("note: load", "slug", slug, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	if !note.Public && !owner {
		http.NotFound(w, r)
		return
	}

	doc, err := pkr.Parse(note.Body, pkr.WithLogger(h.logger))
	if err != nil {
		h.logger.Error("note: parse", "slug", slug, "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if r.URL.Query().Get("format") == "json" {
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(doc.Serialize()); err != nil {
			h.logger.Error("note: encode", "slug", slug, "error", err)
		}
		return
	}

	data := renderer.NoteData{
		Note:    note,
		Doc:     doc,
		Owner:   owner,
		Version: h.version(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.NotePage(data).Render(ctx, w); err != nil {
		h.logger.Error("note: render", "slug", slug, "error", err)
	}
}
