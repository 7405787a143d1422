// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"net/http"

	"github.com/mdhender/pkr/model"
	"github.com/mdhender/pkr/renderer"
	store "github.com/mdhender/pkr/stores/sqlite"
)

// Index lists the notes, refreshing the index from the notes directory first.
func (h *Handlers) Index(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}

	session := h.session(w, r)
	owner := session != nil
	ctx := r.Context()

	if err := store.LoadFromLister(ctx, h.store, h.notes, h.logger); err != nil {
		h.logger.Error("index: sync", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	tag := r.URL.Query().Get("tag")
	notes, err := h.store.Notes(ctx, model.NoteFilter{IncludePrivate: owner, Tag: tag})
	if err != nil {
		h.logger.Error("index: notes", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	tags, err := h.store.Tags(ctx, owner)
	if err != nil {
		h.logger.Error("index: tags", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	data := renderer.IndexData{
		Notes:   notes,
		Tags:    tags,
		Tag:     tag,
		Owner:   owner,
		Version: h.version(),
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.IndexPage(data).Render(ctx, w); err != nil {
		h.logger.Error("index: render", "error", err)
	}
}
