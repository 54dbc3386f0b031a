package ports

// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters; orchestration in internal/service.

import (
	"context"

	domainauth "github.com/squidword/squidword/internal/domain/auth"
)

// AuthURLBuilder builds the provider authorization URL for a state token.
type AuthURLBuilder interface {
	AuthCodeURL(state string) string
}

// TokenExchanger trades an authorization code for a bearer token.
type TokenExchanger interface {
	ExchangeCode(ctx context.Context, code string) (string, error)
}

// ProfileFetcher performs authenticated GETs against the provider API and
// returns the decoded JSON document.
type ProfileFetcher interface {
	Get(ctx context.Context, endpoint, token string) (any, error)
}

// IdentityProvider is the full provider surface used by the auth service.
type IdentityProvider interface {
	AuthURLBuilder
	TokenExchanger
	ProfileFetcher
}

// RoleMapper maps provider role claims to the single application role.
type RoleMapper interface {
	Map(claims []string) domainauth.Role
}

// SessionStore persists per-browser sessions. The handle is the value carried
// in the browser cookie; what it contains depends on the implementation.
type SessionStore interface {
	Load(ctx context.Context, handle string) (domainauth.Session, error)
	Save(ctx context.Context, sess domainauth.Session) (handle string, err error)
	Delete(ctx context.Context, handle string) error
}
