package config

import "strings"

// CallbackPath is the route Clever redirects back to after authorization.
const CallbackPath = "/oauth/callback"

// DefaultHTTPAddr is used when HTTP_ADDR is empty.
const DefaultHTTPAddr = ":5000"

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Addr is the address to bind the HTTP server to.
	Addr string `env:"HTTP_ADDR" envDefault:":5000"`

	// BaseURL is the public base URL of the application (e.g., "https://app.example.com").
	// The OAuth redirect URI is derived from it.
	BaseURL string `env:"BASE_URL,required"`

	// CookieDomain is the domain for session cookies.
	// Leave empty to use the request domain.
	CookieDomain string `env:"APP_COOKIE_DOMAIN" envDefault:""`
}

// Sanitize applies guardrails to HTTP configuration values.
func (h *HTTPConfig) Sanitize() {
	h.BaseURL = strings.TrimSuffix(strings.TrimSpace(h.BaseURL), "/")
	if strings.TrimSpace(h.Addr) == "" {
		h.Addr = DefaultHTTPAddr
	}
}

// RedirectURL returns the absolute OAuth redirect URI registered with Clever.
func (h HTTPConfig) RedirectURL() string {
	return h.BaseURL + CallbackPath
}
