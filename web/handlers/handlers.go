// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package handlers serves the notes directory over HTTP.
package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mdhender/pkr"
	"github.com/mdhender/pkr/model"
	"github.com/mdhender/pkr/renderer"
	"github.com/mdhender/pkr/web/auth"
)

// NoteSource is where notes come from. *repository.Repository implements it.
type NoteSource interface {
	List(ctx context.Context) ([]*model.Note, error)
	Load(ctx context.Context, slug string) (*model.Note, error)
	Save(ctx context.Context, slug string, data []byte) (*model.Note, error)
}

// Handlers holds dependencies for HTTP handlers.
type Handlers struct {
	notes        NoteSource
	store        model.Store
	sessions     *auth.SessionStore
	renderer     *renderer.Renderer
	logger       *slog.Logger
	ownerHash    string
	autoAuthUser *auth.User
}

// New creates a new Handlers. The renderer and logger may be nil.
func New(notes NoteSource, s model.Store, sessions *auth.SessionStore, r *renderer.Renderer, logger *slog.Logger) *Handlers {
	if r == nil {
		r = renderer.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		notes:    notes,
		store:    s,
		sessions: sessions,
		renderer: r,
		logger:   logger,
	}
}

// SetOwnerHash sets the bcrypt hash of the owner password.
// Without one, nobody can log in and private notes are never served.
func (h *Handlers) SetOwnerHash(hash string) {
	h.ownerHash = hash
}

// SetAutoAuth logs every request in as the owner. Testing only.
func (h *Handlers) SetAutoAuth() {
	h.autoAuthUser = &auth.User{Username: auth.OwnerName}
}

// session returns the owner's session, creating one when auto-auth is on.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) *auth.Session {
	session := auth.GetSessionFromRequest(r, h.sessions)
	if session == nil && h.autoAuthUser != nil {
		session = h.sessions.Create(*h.autoAuthUser)
		auth.SetSessionCookie(w, session)
	}
	return session
}

func (h *Handlers) version() string {
	return pkr.Version().String()
}

// Routes returns the server's handler, wrapped in the access log.
//
//	/        index
//	/login   owner login form (GET) and submit (POST)
//	/logout  end the owner session
//	/upload  owner note upload (POST)
//	/<slug>  one note
func (h *Handlers) Routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/login", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			h.Login(w, r)
		} else {
			h.LoginPage(w, r)
		}
	})
	mux.HandleFunc("/logout", h.Logout)
	mux.HandleFunc("/upload", h.RequireOwner(h.Upload))
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			h.Index(w, r)
		} else {
			h.Note(w, r)
		}
	})
	return h.AccessLog(mux)
}
