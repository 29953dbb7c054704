// Package auth implements the single-password session scheme of the web API.
package auth

import (
	"crypto/subtle"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CookieName is the session cookie set on login
const CookieName = "journal_session"

var (
	// ErrInvalidPassword is returned by Login for a wrong password
	ErrInvalidPassword = errors.New("invalid password")
	// ErrNoPassword is returned by Login when no password is configured
	ErrNoPassword = errors.New("no password configured")
)

// Sessions tracks issued session tokens and their expiry.
type Sessions struct {
	password string
	ttl      time.Duration
	now      func() time.Time

	mu     sync.RWMutex
	tokens map[string]time.Time
}

// NewSessions creates a session store accepting password. Tokens expire
// after ttl.
func NewSessions(password string, ttl time.Duration) *Sessions {
	return &Sessions{
		password: password,
		ttl:      ttl,
		now:      time.Now,
		tokens:   make(map[string]time.Time),
	}
}

// TTL returns the session lifetime.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Login checks password and issues a new session token.
func (s *Sessions) Login(password string) (string, time.Time, error) {
	if s.password == "" {
		return "", time.Time{}, ErrNoPassword
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) != 1 {
		return "", time.Time{}, ErrInvalidPassword
	}

	token := uuid.NewString()
	expires := s.now().Add(s.ttl)

	s.mu.Lock()
	s.tokens[token] = expires
	s.mu.Unlock()
	return token, expires, nil
}

// Valid reports whether token is a live session. Expired tokens are dropped.
func (s *Sessions) Valid(token string) bool {
	if token == "" {
		return false
	}

	s.mu.RLock()
	expires, ok := s.tokens[token]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if s.now().Before(expires) {
		return true
	}

	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
	return false
}

// Logout revokes token.
func (s *Sessions) Logout(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// Prune drops every expired session and returns how many were removed.
func (s *Sessions) Prune() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for token, expires := range s.tokens {
		if !now.Before(expires) {
			delete(s.tokens, token)
			n++
		}
	}
	return n
}

// Len returns the number of tracked sessions.
func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.tokens)
}
