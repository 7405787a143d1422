// Copyright (c) 2025 Michael D Henderson. All rights reserved.

// Package auth keeps the owner's login sessions.
package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"
)

// OwnerName is the only user the notes server knows about.
const OwnerName = "owner"

type User struct {
	Username string
}

type Session struct {
	ID        string
	User      User
	ExpiresAt time.Time
}

// SessionStore is an in-memory session table. It is safe for concurrent use.
type SessionStore struct {
	mu       sync.RWMutex
	ttl      time.Duration
	sessions map[string]*Session
}

func NewSessionStore() *SessionStore {
	return NewSessionStoreWithTTL(24 * time.Hour)
}

func NewSessionStoreWithTTL(ttl time.Duration) *SessionStore {
	return &SessionStore{
		ttl:      ttl,
		sessions: make(map[string]*Session),
	}
}

func (s *SessionStore) Create(user User) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := generateSessionID()
	session := &Session{
		ID:        id,
		User:      user,
		ExpiresAt: time.Now().Add(s.ttl),
	}
	s.sessions[id] = session
	return session
}

// Get returns nil for unknown or expired sessions.
func (s *SessionStore) Get(id string) *Session {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	if time.Now().After(session.ExpiresAt) {
		s.Delete(id)
		return nil
	}
	return session
}

func (s *SessionStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

// Len returns the number of stored sessions, expired or not.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func generateSessionID() string {
	b := make([]byte, 32)
	rand.Read(b)
	return hex.EncodeToString(b)
}

const SessionCookieName = "pkr_session"

// ValidateCredentials checks the owner password against the configured hash.
func ValidateCredentials(password, ownerHash string) (*User, bool) {
	password = strings.TrimSpace(password)
	if password == "" || !CheckPassword(password, ownerHash) {
		return nil, false
	}
	return &User{Username: OwnerName}, true
}

func SetSessionCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  session.ExpiresAt,
	})
}

func ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}

func GetSessionFromRequest(r *http.Request, store *SessionStore) *Session {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return nil
	}
	return store.Get(cookie.Value)
}
