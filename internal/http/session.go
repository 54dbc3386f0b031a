package httpx

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/squidword/squidword/internal/domain/auth"
	"github.com/squidword/squidword/internal/ports"
)

// DefaultSessionCookieName is used when SessionCookies.Name is empty.
const DefaultSessionCookieName = "session"

// SessionCookies binds a SessionStore to the browser session cookie.
type SessionCookies struct {
	Store  ports.SessionStore
	Name   string
	Domain string
	TTL    time.Duration
	// IsDev allows the cookie over plain http; otherwise it is always Secure.
	IsDev  bool
	Logger *slog.Logger

	// Now overrides the clock (tests).
	Now func() time.Time
}

func (c *SessionCookies) name() string {
	if c.Name == "" {
		return DefaultSessionCookieName
	}
	return c.Name
}

func (c *SessionCookies) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

func (c *SessionCookies) ttl() time.Duration {
	if c.TTL <= 0 {
		return 24 * time.Hour
	}
	return c.TTL
}

func (c *SessionCookies) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// Load returns the request's session. A missing, invalid or expired cookie
// yields a fresh anonymous session.
func (c *SessionCookies) Load(r *http.Request) domainauth.Session {
	if ck, err := r.Cookie(c.name()); err == nil && ck.Value != "" {
		sess, loadErr := c.Store.Load(r.Context(), ck.Value)
		if loadErr == nil {
			return sess
		}
		if !errors.Is(loadErr, domainauth.ErrSessionNotFound) {
			c.logger().WarnContext(r.Context(), "session load failed", "error", loadErr)
		}
	}
	return domainauth.Session{ExpiresAt: c.now().Add(c.ttl())}
}

// Save persists the session and writes its cookie.
func (c *SessionCookies) Save(w http.ResponseWriter, r *http.Request, sess domainauth.Session) error {
	if sess.ExpiresAt.IsZero() {
		sess.ExpiresAt = c.now().Add(c.ttl())
	}
	handle, err := c.Store.Save(r.Context(), sess)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     c.name(),
		Value:    handle,
		Path:     "/",
		Domain:   c.Domain,
		HttpOnly: true,
		Secure:   c.secure(r),
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(sess.ExpiresAt.Sub(c.now()).Seconds()),
	})
	return nil
}

// Rotate saves sess under a new handle with a fresh expiry, then drops the old one.
func (c *SessionCookies) Rotate(w http.ResponseWriter, r *http.Request, sess domainauth.Session) error {
	old := sess.ID
	sess.ID = ""
	sess.ExpiresAt = c.now().Add(c.ttl())
	if err := c.Save(w, r, sess); err != nil {
		return err
	}
	if old == "" {
		return nil
	}
	if err := c.Store.Delete(r.Context(), old); err != nil {
		c.logger().WarnContext(r.Context(), "stale session delete failed", "error", err)
	}
	return nil
}

func (c *SessionCookies) secure(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") || !c.IsDev
}
