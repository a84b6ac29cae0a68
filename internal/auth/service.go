// Package auth issues and checks the bearer tokens guarding the collection
// API. There is a single configured administrator account.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/cfohub/cfohub/internal/platform/httpx"
	"github.com/cfohub/cfohub/internal/shared"
)

// AdminUserID is the fixture user the administrator account maps to.
const AdminUserID = "1"

// Revoker stores logged-out token ids.
type Revoker interface {
	Revoke(ctx context.Context, id string, ttl time.Duration) error
	Revoked(ctx context.Context, id string) (bool, error)
}

// Options configures the Service.
type Options struct {
	Secret        string
	TTL           time.Duration
	AdminEmail    string
	AdminPassword string
}

// Service wraps authentication business rules.
type Service struct {
	signer  signer
	revoker Revoker
	email   string

	mu   sync.RWMutex
	hash []byte
}

// NewService hashes the configured admin password and prepares the signer.
// A nil revoker disables logout revocation.
func NewService(opts Options, revoker Revoker) (*Service, error) {
	if opts.Secret == "" {
		return nil, errors.New("auth: secret required")
	}
	if opts.TTL <= 0 {
		opts.TTL = 8 * time.Hour
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(opts.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash admin password: %w", err)
	}
	return &Service{
		signer:  signer{secret: []byte(opts.Secret), ttl: opts.TTL, now: time.Now},
		revoker: revoker,
		email:   opts.AdminEmail,
		hash:    hash,
	}, nil
}

// Login validates credentials and issues a bearer token.
func (s *Service) Login(ctx context.Context, email, password string) (Token, error) {
	if !strings.EqualFold(strings.TrimSpace(email), s.email) || !s.checkPassword(password) {
		return Token{}, shared.ErrInvalidCredentials
	}
	raw, err := s.signer.issue(AdminUserID, s.email, "admin")
	if err != nil {
		return Token{}, err
	}
	return Token{AccessToken: raw, TokenType: "bearer"}, nil
}

// Authenticate parses a bearer token and returns its principal.
func (s *Service) Authenticate(ctx context.Context, raw string) (*shared.Principal, error) {
	claims, err := s.signer.parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", httpx.ErrUnauthorized, err)
	}
	if s.revoker != nil {
		revoked, err := s.revoker.Revoked(ctx, claims.ID)
		if err != nil {
			return nil, err
		}
		if revoked {
			return nil, shared.ErrTokenRevoked
		}
	}
	return &shared.Principal{
		UserID:  claims.Subject,
		Email:   claims.Email,
		Role:    claims.Role,
		TokenID: claims.ID,
	}, nil
}

// Logout revokes the token until its natural expiry. Invalid tokens are
// ignored so logout always succeeds.
func (s *Service) Logout(ctx context.Context, raw string) error {
	if raw == "" || s.revoker == nil {
		return nil
	}
	claims, err := s.signer.parse(raw)
	if err != nil {
		return nil
	}
	ttl := claims.ExpiresAt.Time.Sub(s.signer.now())
	return s.revoker.Revoke(ctx, claims.ID, ttl)
}

// ChangePassword replaces the admin password after checking the current one.
func (s *Service) ChangePassword(ctx context.Context, current, next string) error {
	if !s.checkPassword(current) {
		return shared.ErrInvalidCredentials
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("auth: hash password: %w", err)
	}
	s.mu.Lock()
	s.hash = hash
	s.mu.Unlock()
	return nil
}

func (s *Service) checkPassword(password string) bool {
	s.mu.RLock()
	hash := s.hash
	s.mu.RUnlock()
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
