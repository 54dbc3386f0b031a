package cookiestore

// Package cookiestore keeps the whole session in the browser as an HS256-signed token.
// Nothing is stored server-side; the cookie value is the session.

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	domainauth "github.com/squidword/squidword/internal/domain/auth"
	"github.com/squidword/squidword/internal/ports"
)

var _ ports.SessionStore = (*Store)(nil)

// Store is a stateless, signed-cookie session store.
type Store struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

// Options configures a Store.
type Options struct {
	Secret []byte
	// TTL applies to sessions saved without an ExpiresAt; defaults to 24h.
	TTL time.Duration
	// Now overrides the clock (tests).
	Now func() time.Time
}

type sessionClaims struct {
	State     string `json:"state,omitempty"`
	FirstName string `json:"firstName,omitempty"`
	Role      string `json:"userRole,omitempty"`
	jwt.RegisteredClaims
}

// New creates a signed-cookie session store.
func New(opts Options) (*Store, error) {
	if len(opts.Secret) == 0 {
		return nil, errors.New("session secret is required")
	}
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		key: append([]byte(nil), opts.Secret...),
		ttl: ttl,
		now: now,
	}, nil
}

// Save signs the session and returns the cookie value.
func (s *Store) Save(_ context.Context, sess domainauth.Session) (string, error) {
	now := s.now()
	exp := sess.ExpiresAt
	if exp.IsZero() {
		exp = now.Add(s.ttl)
	}
	if !exp.After(now) {
		return "", errors.New("session is expired")
	}

	claims := sessionClaims{
		State:     sess.State,
		FirstName: sess.FirstName,
		Role:      string(sess.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// Load verifies the cookie value and returns the session it carries.
func (s *Store) Load(_ context.Context, handle string) (domainauth.Session, error) {
	if handle == "" {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}

	var claims sessionClaims
	_, err := jwt.ParseWithClaims(handle, &claims,
		func(*jwt.Token) (any, error) { return s.key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return domainauth.Session{}, fmt.Errorf("%w: %w", domainauth.ErrSessionNotFound, err)
	}

	return domainauth.Session{
		State:     claims.State,
		FirstName: claims.FirstName,
		Role:      domainauth.Role(claims.Role),
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

// Delete is a no-op; the caller clears the cookie.
func (s *Store) Delete(context.Context, string) error { return nil }
