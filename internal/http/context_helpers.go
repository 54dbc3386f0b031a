package httpx

import (
	"context"

	domainauth "github.com/squidword/squidword/internal/domain/auth"
)

// sessionKey is an unexported context key type to avoid collisions across packages.
type sessionKey struct{}

// SetSessionInContext returns a child context carrying the signed-in session.
func SetSessionInContext(ctx context.Context, sess domainauth.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, sess)
}

// SessionFromContext returns the session stored by RequireSignedIn.
// The boolean is false when no signed-in session is present.
func SessionFromContext(ctx context.Context) (domainauth.Session, bool) {
	sess, ok := ctx.Value(sessionKey{}).(domainauth.Session)
	if !ok || !sess.Authenticated() {
		return domainauth.Session{}, false
	}
	return sess, true
}
