// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"regexp"

	"github.com/mdhender/pkr"
)

var (
	noteFilePattern = regexp.MustCompile(`^([A-Za-z0-9_-][A-Za-z0-9._-]*)\.md$`)
)

const maxUploadSize = 100 << 10 // 100KB

type uploadResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Slug    string `json:"slug,omitempty"`
	Title   string `json:"title,omitempty"`
	Public  bool   `json:"public,omitempty"`
	Nodes   int    `json:"nodes,omitempty"`
}

func (h *Handlers) writeJSON(w http.ResponseWriter, status int, resp uploadResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error("upload: encode", "status", status, "error", err)
	}
}

// Upload handles POST requests that add or replace a note.
// Protected route: requires the owner.
// Accepts one multipart "file" field named SLUG.md.
func (h *Handlers) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.writeJSON(w, http.StatusMethodNotAllowed, uploadResponse{Error: "method not allowed"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+(10<<10))
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		h.writeJSON(w, http.StatusBadRequest, uploadResponse{Error: "failed to parse form: " + err.Error()})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeJSON(w, http.StatusBadRequest, uploadResponse{Error: "no file uploaded"})
		return
	}
	defer file.Close()

	matches := noteFilePattern.FindStringSubmatch(header.Filename)
	if matches == nil {
		h.writeJSON(w, http.StatusBadRequest, uploadResponse{Error: "invalid filename: must be SLUG.md"})
		return
	}
	slug := matches[1]

	data, err := io.ReadAll(io.LimitReader(file, maxUploadSize+1))
	if err != nil {
		h.writeJSON(w, http.StatusInternalServerError, uploadResponse{Error: "failed to read file: " + err.Error()})
		return
	} else if len(data) > maxUploadSize {
		h.writeJSON(w, http.StatusBadRequest, uploadResponse{Error: "file too large"})
		return
	}

	note, err := h.notes.Save(r.Context(), slug, data)
	if err != nil {
		h.logger.Error("upload: save", "slug", slug, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, uploadResponse{Error: "failed to save note"})
		return
	}

	doc, err := pkr.Parse(note.Body)
	if err != nil {
		h.logger.Error("upload: parse", "slug", slug, "error", err)
		h.writeJSON(w, http.StatusInternalServerError, uploadResponse{Error: "failed to parse note"})
		return
	}
	nodes := 0
	pkr.Walk(doc, func(*pkr.Node, int) bool {
		nodes++
		return true
	})

	h.writeJSON(w, http.StatusOK, uploadResponse{
		Success: true,
		Slug:    note.Slug,
		Title:   note.Title,
		Public:  note.Public,
		Nodes:   nodes,
	})
}
