// Package session holds the process-wide auth token and the read-only
// reference data shared across screens. Both are explicit injected
// objects with a single refresh/invalidate operation, never ambient
// globals.
package session

import (
	"strings"
	"sync"
)

// Store is the process-wide bearer token. It is mutated only by explicit
// login/logout; everything else reads it through the api.TokenSource
// interface.
type Store struct {
	mu    sync.RWMutex
	token string
}

// NewStore creates an empty (unauthenticated) store.
func NewStore() *Store { return &Store{} }

// Token returns the current token, or "" when not authenticated.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken installs a token obtained from login.
func (s *Store) SetToken(token string) {
	s.mu.Lock()
	s.token = strings.TrimSpace(token)
	s.mu.Unlock()
}

// Clear drops the token on logout or auth failure.
func (s *Store) Clear() {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
}

// Authenticated reports whether a token is present.
func (s *Store) Authenticated() bool { return s.Token() != "" }
