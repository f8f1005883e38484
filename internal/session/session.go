// Package session holds the bearer credential for the current run.
// Presence of a credential gates which top-level view the app shows.
package session

import (
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Manager tracks the access token. It is safe for concurrent use: the
// API client clears it from command goroutines while the UI loop reads it.
type Manager struct {
	mu    sync.RWMutex
	token string
}

// NewManager creates an empty, unauthenticated session.
func NewManager() *Manager {
	return &Manager{}
}

// Token returns the stored credential, or "" when unauthenticated.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// SetToken stores the credential issued at login.
func (m *Manager) SetToken(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
}

// Clear drops the credential, forcing re-authentication on the next view.
func (m *Manager) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
}

// Authenticated reports whether a credential is present.
func (m *Manager) Authenticated() bool {
	return m.Token() != ""
}

// ExpiresAt peeks at the token's exp claim without verifying the
// signature; verification is the backend's job. Returns the zero time
// when no token is stored or the token is opaque.
func (m *Manager) ExpiresAt() time.Time {
	token := m.Token()
	if token == "" {
		return time.Time{}
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}
	}

	return exp.Time
}
