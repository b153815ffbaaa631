// Package session holds the bearer token for the lifetime of the
// process. Nothing is persisted; callers seed it from wherever they
// keep the token between runs.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/relove-market/storefront/internal/errors"
)

type Session struct {
	mu    sync.RWMutex
	token string
	email string
}

func New() *Session {
	return &Session{}
}

func (s *Session) SetToken(token, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.email = email
}

func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.email = ""
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Email() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.email
}

// AuthorizationHeader returns the Authorization header value, or empty
// when no session is active.
func (s *Session) AuthorizationHeader() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" {
		return ""
	}
	return "Bearer " + s.token
}

func (s *Session) IsAuthenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token != ""
}

// Claims introspects the token's registered claims. The client holds no
// signing key, so the token is parsed without verification; the backend
// remains the authority on validity.
func (s *Session) Claims() (*jwt.RegisteredClaims, error) {
	s.mu.RLock()
	token := s.token
	s.mu.RUnlock()

	if token == "" {
		return nil, errors.ErrNotAuthenticated
	}
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser()
	_, _, err := parser.ParseUnverified(token, claims)
	if err != nil {
		return nil, fmt.Errorf("failed parsing claims with error=%w", errors.ErrTokenInvalid)
	}
	return claims, nil
}

// ExpiresAt reports the token expiry when the claim is present.
func (s *Session) ExpiresAt() (time.Time, bool) {
	claims, err := s.Claims()
	if err != nil || claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}
