package httpx

import (
	"context"
	"crypto/subtle"
	"io"
	"log/slog"
	"net/http"

	domainauth "github.com/squidword/squidword/internal/domain/auth"
	apperrors "github.com/squidword/squidword/internal/errors"
	"github.com/squidword/squidword/internal/service"
)

// Plain-text callback responses.
const (
	msgInvalidState  = "Invalid state parameter"
	msgNoValidCode   = "No Valid Code"
	msgTokenFailed   = "Token request fail"
	msgRequestFailed = "Request failed"
)

// HomePath is where a successful sign-in lands.
const HomePath = "/home"

// AuthServiceInterface defines the interface for auth service operations.
type AuthServiceInterface interface {
	BeginLogin() service.BeginLoginResult
	CompleteLogin(ctx context.Context, code string) (domainauth.User, error)
}

// AuthHandlers provides the login page, the OAuth callback and the home page.
type AuthHandlers struct {
	Svc      AuthServiceInterface
	Sessions *SessionCookies
	Renderer *TemplateRenderer
	Logger   *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// Index renders the login page with a freshly issued state.
// GET /.
func (h *AuthHandlers) Index(w http.ResponseWriter, r *http.Request) {
	sess := h.Sessions.Load(r)
	login := h.Svc.BeginLogin()
	sess.State = login.State
	if !h.saveSession(w, r, sess) {
		return
	}

	if err := h.Renderer.Render(w, PageIndex, PageData{Title: "Log in", AuthLink: login.AuthURL}); err != nil {
		writeText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// Callback completes the authorization-code handshake.
// GET /oauth/callback?code=<code>&state=<state>.
func (h *AuthHandlers) Callback(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	sess := h.Sessions.Load(r)

	// Provider-initiated logins arrive without state; restart with one of ours.
	state := q.Get("state")
	if state == "" {
		login := h.Svc.BeginLogin()
		sess.State = login.State
		if !h.saveSession(w, r, sess) {
			return
		}
		http.Redirect(w, r, login.AuthURL, http.StatusFound)
		return
	}

	if sess.State == "" || subtle.ConstantTimeCompare([]byte(state), []byte(sess.State)) != 1 {
		err := apperrors.InvalidState()
		h.logger().WarnContext(r.Context(), "oauth callback rejected",
			"code", apperrors.GetCode(err),
			"has_session_state", sess.State != "",
			"error", err)
		writeText(w, http.StatusUnauthorized, msgInvalidState)
		return
	}
	// State is single-use.
	sess.State = ""

	user, err := h.Svc.CompleteLogin(r.Context(), q.Get("code"))
	if err != nil {
		if !h.saveSession(w, r, sess) {
			return
		}
		writeText(w, http.StatusOK, callbackFailureMessage(err))
		return
	}

	sess.SignIn(user)
	if err = h.Sessions.Rotate(w, r, sess); err != nil {
		h.logger().ErrorContext(r.Context(), "session rotate failed", "error", err)
		writeText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return
	}
	http.Redirect(w, r, HomePath, http.StatusFound)
}

// Home greets the signed-in user. It runs behind RequireSignedIn.
// GET /home.
func (h *AuthHandlers) Home(w http.ResponseWriter, r *http.Request) {
	sess, ok := SessionFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	data := PageData{Title: "Home", FirstName: sess.FirstName, Role: string(sess.Role)}
	if err := h.Renderer.Render(w, PageHome, data); err != nil {
		writeText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

func callbackFailureMessage(err error) string {
	switch {
	case apperrors.IsMissingCode(err):
		return msgNoValidCode
	case apperrors.IsTokenExchangeFailed(err):
		return msgTokenFailed
	default:
		return msgRequestFailed
	}
}

func (h *AuthHandlers) saveSession(w http.ResponseWriter, r *http.Request, sess domainauth.Session) bool {
	if err := h.Sessions.Save(w, r, sess); err != nil {
		h.logger().ErrorContext(r.Context(), "session save failed", "error", err)
		writeText(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
		return false
	}
	return true
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, msg); err != nil {
		// Nothing more to do if the client connection is gone.
		return
	}
}
