package clever

// Package clever implements the provider ports against Clever's OAuth and Data APIs.

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/squidword/squidword/internal/errors"
	"github.com/squidword/squidword/internal/ports"
	"golang.org/x/oauth2"
)

var _ ports.IdentityProvider = (*Client)(nil)

// maxLoggedBody caps how much of a failed response body is written to the log.
const maxLoggedBody = 64 << 10

// Client implements AuthURLBuilder, TokenExchanger and ProfileFetcher for Clever.
type Client struct {
	config     *oauth2.Config
	apiBase    string
	httpClient *http.Client
	logger     *slog.Logger
}

// Config holds configuration for the Clever client.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	AuthorizeURL string
	TokenURL     string
	APIBaseURL   string
	Timeout      time.Duration // applied when HTTPClient is nil; defaults to 10s
	HTTPClient   *http.Client  // Optional
	Logger       *slog.Logger  // Optional, defaults to slog.Default()
}

// NewClient creates a new Clever client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}
	if cfg.AuthorizeURL == "" || cfg.TokenURL == "" {
		return nil, errors.New("authorize and token URLs are required")
	}
	if cfg.APIBaseURL == "" {
		return nil, errors.New("API base URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Client{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Endpoint: oauth2.Endpoint{
				AuthURL:  cfg.AuthorizeURL,
				TokenURL: cfg.TokenURL,
				// Clever expects client credentials via HTTP Basic.
				AuthStyle: oauth2.AuthStyleInHeader,
			},
		},
		apiBase:    strings.TrimSuffix(cfg.APIBaseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}, nil
}

// AuthCodeURL returns the Clever authorization URL carrying the given state.
func (c *Client) AuthCodeURL(state string) string {
	return c.config.AuthCodeURL(state)
}

// ExchangeCode trades an authorization code for a bearer token.
// Every failure maps to TokenExchangeFailed; the provider's error code is only logged.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	if code == "" {
		return "", apperrors.MissingCode()
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	tok, err := c.config.Exchange(ctx, code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.Response != nil {
			c.logger.WarnContext(ctx, "token exchange rejected",
				"status", re.Response.StatusCode,
				"error_code", re.ErrorCode,
			)
		} else {
			c.logger.WarnContext(ctx, "token exchange failed", "error", err)
		}
		return "", apperrors.TokenExchangeFailed(err)
	}

	return tok.AccessToken, nil
}

// Get performs an authenticated GET and decodes the JSON body.
// endpoint may be absolute or a path relative to the API base URL.
func (c *Client) Get(ctx context.Context, endpoint, token string) (any, error) {
	target := c.resolve(endpoint)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, apperrors.FetchFailed(target, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.bearerClient(ctx, token).Do(req)
	if err != nil {
		return nil, apperrors.FetchFailed(target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxLoggedBody))
		c.logger.WarnContext(ctx, "provider request failed",
			"endpoint", target,
			"status", resp.StatusCode,
			"body", string(body),
		)
		return nil, apperrors.FetchFailed(target, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, apperrors.FetchFailed(target, fmt.Errorf("decode response: %w", err))
	}
	return doc, nil
}

// bearerClient returns an HTTP client that sets "Authorization: Bearer <token>".
func (c *Client) bearerClient(ctx context.Context, token string) *http.Client {
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token}))
	// oauth2.NewClient keeps only the base transport.
	client.Timeout = c.httpClient.Timeout
	return client
}

func (c *Client) resolve(endpoint string) string {
	if u, err := url.Parse(endpoint); err == nil && u.IsAbs() {
		return endpoint
	}
	return c.apiBase + "/" + strings.TrimPrefix(endpoint, "/")
}
