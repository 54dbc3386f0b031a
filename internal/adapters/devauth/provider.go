package devauth

// Package devauth provides a config-driven, offline stand-in for the Clever
// provider so the full sign-in flow can run locally without credentials.

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	apperrors "github.com/squidword/squidword/internal/errors"
	"github.com/squidword/squidword/internal/ports"
)

var _ ports.IdentityProvider = (*Provider)(nil)

// Token is the bearer token handed out for every successful exchange.
const Token = "dev-token"

// Config controls the identity served by the dev provider.
// UserID and FirstName are required; Roles may be empty.
type Config struct {
	UserID    string
	FirstName string
	LastName  string
	Roles     []string
	// CallbackPath is where AuthCodeURL points; defaults to /oauth/callback.
	CallbackPath string
}

// Provider implements ports.IdentityProvider for local development.
// AuthCodeURL redirects straight back to our own callback with code=dev.
// Get serves the identity and user documents built from Config, so the
// real resolver and role policy run unchanged.
type Provider struct {
	cfg Config
}

// NewProvider constructs a dev provider from Config.
func NewProvider(cfg Config) (*Provider, error) {
	if cfg.UserID == "" {
		return nil, errors.New("dev auth: UserID is required")
	}
	if cfg.FirstName == "" {
		return nil, errors.New("dev auth: FirstName is required")
	}
	if cfg.CallbackPath == "" {
		cfg.CallbackPath = "/oauth/callback"
	}
	cfg.Roles = append([]string(nil), cfg.Roles...)
	return &Provider{cfg: cfg}, nil
}

func (p *Provider) AuthCodeURL(state string) string {
	q := url.Values{"code": {"dev"}, "state": {state}}
	return p.cfg.CallbackPath + "?" + q.Encode()
}

// ExchangeCode accepts any non-empty code.
func (p *Provider) ExchangeCode(_ context.Context, code string) (string, error) {
	if code == "" {
		return "", apperrors.MissingCode()
	}
	return Token, nil
}

func (p *Provider) Get(_ context.Context, endpoint, token string) (any, error) {
	if token != Token {
		return nil, apperrors.FetchFailed(endpoint, errors.New("unexpected status 401"))
	}
	path := endpoint
	if u, err := url.Parse(endpoint); err == nil {
		path = u.EscapedPath()
	}

	switch path {
	case "/v3.0/me":
		return map[string]any{
			"type": "user",
			"data": map[string]any{
				"id":   p.cfg.UserID,
				"type": "user",
			},
		}, nil
	case "/v3.0/users/" + url.PathEscape(p.cfg.UserID):
		return p.userDocument(), nil
	default:
		return nil, apperrors.FetchFailed(endpoint, fmt.Errorf("unexpected status %d", 404))
	}
}

func (p *Provider) userDocument() map[string]any {
	roles := make(map[string]any, len(p.cfg.Roles))
	for _, r := range p.cfg.Roles {
		roles[r] = map[string]any{}
	}
	return map[string]any{
		"data": map[string]any{
			"id": p.cfg.UserID,
			"name": map[string]any{
				"first": p.cfg.FirstName,
				"last":  p.cfg.LastName,
			},
			"roles": roles,
		},
	}
}
