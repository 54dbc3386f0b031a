package config

import (
	"fmt"
	"strings"
	"time"
)

// AuthMode represents the authentication mode for the application.
type AuthMode string

const (
	// AuthModeOAuth talks to the real Clever OAuth and Data APIs.
	AuthModeOAuth AuthMode = "oauth"
	// AuthModeMock serves a canned identity without network access (for development only).
	AuthModeMock AuthMode = "mock"
)

// UnmarshalText implements encoding.TextUnmarshaler for AuthMode.
func (a *AuthMode) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "oauth", "mock":
		*a = AuthMode(v)
		return nil
	default:
		return fmt.Errorf("invalid AuthMode: %q (valid options: oauth, mock)", v)
	}
}

// CleverConfig contains the OAuth client credentials and provider endpoints.
type CleverConfig struct {
	ClientID     string `env:"CLIENT_ID,required"`
	ClientSecret string `env:"CLIENT_SECRET,required"`

	AuthorizeURL string `env:"AUTHORIZE_URL" envDefault:"https://clever.com/oauth/authorize"`
	TokenURL     string `env:"TOKEN_URL"     envDefault:"https://clever.com/oauth/tokens"`
	APIBaseURL   string `env:"API_BASE_URL"  envDefault:"https://api.clever.com"`

	// HTTPTimeout bounds each outbound call (token exchange and profile fetches).
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
}

// DevAuthConfig controls the identity served when AUTH_MODE=mock.
type DevAuthConfig struct {
	UserID    string   `env:"USER_ID"    envDefault:"dev-user"`
	FirstName string   `env:"FIRST_NAME" envDefault:"Dev"`
	LastName  string   `env:"LAST_NAME"  envDefault:"User"`
	Roles     []string `env:"ROLES"      envDefault:"teacher" envSeparator:";"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Mode determines which provider implementation is wired.
	Mode AuthMode `env:"AUTH_MODE" envDefault:"oauth"`

	// Clever credentials are required in every mode so a misconfigured
	// deployment fails at startup rather than mid-handshake.
	Clever CleverConfig `envPrefix:"CLEVER_"`

	// DevAuth configuration (used when Mode=mock).
	DevAuth DevAuthConfig `envPrefix:"DEV_AUTH_"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	const (
		minTimeout = time.Second
		maxTimeout = time.Minute
	)
	if a.Clever.HTTPTimeout < minTimeout {
		a.Clever.HTTPTimeout = minTimeout
	}
	if a.Clever.HTTPTimeout > maxTimeout {
		a.Clever.HTTPTimeout = maxTimeout
	}
	a.Clever.APIBaseURL = strings.TrimSuffix(strings.TrimSpace(a.Clever.APIBaseURL), "/")
}
