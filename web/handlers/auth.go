// Copyright (c) 2025 Michael D Henderson. All rights reserved.

package handlers

import (
	"net/http"

	"github.com/mdhender/pkr/renderer"
	"github.com/mdhender/pkr/web/auth"
)

func (h *Handlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if session := auth.GetSessionFromRequest(r, h.sessions); session != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	h.renderLogin(w, r, http.StatusOK, "")
}

func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseForm(); err != nil {
		h.renderLogin(w, r, http.StatusBadRequest, "Invalid form submission")
		return
	}

	user, ok := auth.ValidateCredentials(r.FormValue("password"), h.ownerHash)
	if !ok {
		h.logger.Warn("login: rejected", "remote", r.RemoteAddr)
		h.renderLogin(w, r, http.StatusUnauthorized, "Invalid password")
		return
	}

	session := h.sessions.Create(*user)
	auth.SetSessionCookie(w, session)

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handlers) renderLogin(w http.ResponseWriter, r *http.Request, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	data := renderer.LoginData{Error: message, Version: h.version()}
	if err := h.renderer.LoginPage(data).Render(r.Context(), w); err != nil {
		h.logger.Error("login: render", "error", err)
	}
}

func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(auth.SessionCookieName); err == nil {
		h.sessions.Delete(cookie.Value)
	}
	auth.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RequireOwner sends visitors to the login page.
func (h *Handlers) RequireOwner(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session := h.session(w, r); session == nil {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next(w, r)
	}
}
