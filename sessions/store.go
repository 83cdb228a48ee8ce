// Package sessions keeps the authenticated admin sessions of the running
// process. Sessions are not persisted; a restart logs everybody out.
package sessions

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// ErrUnauthenticated is returned by Lookup for unknown or expired tokens
var ErrUnauthenticated = errors.New("sessions: unauthenticated")

const (
	// DefaultTTL is how long a session lives after creation
	DefaultTTL = time.Hour

	// CleanupInterval is how often Run sweeps expired sessions
	CleanupInterval = 5 * time.Minute

	tokenBytes = 32
)

// Session is one authenticated login
type Session struct {
	Token     string
	Principal string
	CreatedAt time.Time
	ExpiresAt time.Time
}

func (s Session) expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// Store maps opaque tokens to sessions
type Store interface {
	Create(principal string) (*Session, error)
	Lookup(token string) (*Session, error)
	Invalidate(token string)
	InvalidateByPrincipal(principal string) int
}

// MemoryStore is a mutex-guarded in-memory Store with a fixed TTL
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// NewMemoryStore creates an empty store. A non-positive ttl means DefaultTTL.
func NewMemoryStore(ttl time.Duration, logger *slog.Logger) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
	}
}

// TTL returns the lifetime given to new sessions
func (s *MemoryStore) TTL() time.Duration {
	return s.ttl
}

// Create issues a new session for principal
func (s *MemoryStore) Create(principal string) (*Session, error) {
	token, err := generateToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := s.now()
	session := Session{
		Token:     token,
		Principal: principal,
		CreatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	s.mu.Lock()
	s.sessions[token] = session
	s.mu.Unlock()

	return &session, nil
}

// Lookup returns the live session for token. Expired sessions are removed.
func (s *MemoryStore) Lookup(token string) (*Session, error) {
	if token == "" {
		return nil, ErrUnauthenticated
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	session, ok := s.sessions[token]
	if !ok {
		return nil, ErrUnauthenticated
	}
	if session.expired(s.now()) {
		delete(s.sessions, token)
		return nil, ErrUnauthenticated
	}

	return &session, nil
}

// Invalidate drops token; unknown tokens are ignored
func (s *MemoryStore) Invalidate(token string) {
	s.mu.Lock()
	delete(s.sessions, token)
	s.mu.Unlock()
}

// InvalidateByPrincipal drops every session of principal and returns how many there were
func (s *MemoryStore) InvalidateByPrincipal(principal string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, session := range s.sessions {
		if session.Principal == principal {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Len returns the number of stored sessions, expired ones included
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Sweep removes expired sessions and returns how many were removed
func (s *MemoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for token, session := range s.sessions {
		if session.expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Run sweeps expired sessions every interval until ctx is done
func (s *MemoryStore) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = CleanupInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			s.logger.Debug("session cleanup stopped")
			return
		case <-ticker.C:
			if removed := s.Sweep(); removed > 0 {
				s.logger.Debug("cleaned up expired sessions", "removed", removed)
			}
		}
	}
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
