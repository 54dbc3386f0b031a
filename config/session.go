package config

import (
	"fmt"
	"strings"
	"time"
)

// SessionStoreKind selects where session state lives.
type SessionStoreKind string

const (
	// SessionStoreCookie keeps the whole session in a signed browser cookie.
	SessionStoreCookie SessionStoreKind = "cookie"
	// SessionStoreRedis keeps the session in Redis; the cookie carries only its ID.
	SessionStoreRedis SessionStoreKind = "redis"
)

// UnmarshalText implements encoding.TextUnmarshaler for SessionStoreKind.
func (k *SessionStoreKind) UnmarshalText(text []byte) error {
	v := strings.ToLower(strings.TrimSpace(string(text)))
	switch v {
	case "cookie", "redis":
		*k = SessionStoreKind(v)
		return nil
	default:
		return fmt.Errorf("invalid SessionStoreKind: %q (valid options: cookie, redis)", v)
	}
}

// MinSecretLength is the shortest accepted session signing secret, in bytes.
const MinSecretLength = 16

// SessionConfig contains browser session configuration.
type SessionConfig struct {
	// Secret signs session cookies.
	Secret string `env:"SECRET_KEY,required"`

	Store      SessionStoreKind `env:"SESSION_STORE"       envDefault:"cookie"`
	TTL        time.Duration    `env:"SESSION_TTL"         envDefault:"24h"`
	CookieName string           `env:"SESSION_COOKIE_NAME" envDefault:"session"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL < time.Minute {
		s.TTL = time.Minute
	}
	if strings.TrimSpace(s.CookieName) == "" {
		s.CookieName = "session"
	}
}
