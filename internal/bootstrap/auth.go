package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/squidword/squidword/config"
	"github.com/squidword/squidword/internal/adapters/authroles"
	"github.com/squidword/squidword/internal/adapters/clever"
	"github.com/squidword/squidword/internal/adapters/devauth"
	"github.com/squidword/squidword/internal/observability/statsd"
	"github.com/squidword/squidword/internal/ports"
	"github.com/squidword/squidword/internal/service"
)

// AuthConfig contains configuration for auth service.
type AuthConfig struct {
	Auth        config.AuthConfig
	RedirectURL string
	Metrics     statsd.Sink
	Logger      *slog.Logger
}

// BuildAuthService creates an auth service based on the configured auth mode.
func BuildAuthService(cfg AuthConfig) (*service.AuthService, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var (
		provider ports.IdentityProvider
		err      error
	)
	switch cfg.Auth.Mode {
	case config.AuthModeMock:
		logger.Warn("AUTH_MODE=mock: signing in with the local dev identity, Clever is not contacted",
			"user_id", cfg.Auth.DevAuth.UserID)
		provider, err = buildDevProvider(cfg.Auth.DevAuth)
	case config.AuthModeOAuth, "":
		provider, err = buildCleverProvider(cfg, logger)
	default:
		return nil, fmt.Errorf("unsupported auth mode %q", cfg.Auth.Mode)
	}
	if err != nil {
		return nil, err
	}

	return service.NewAuthService(service.AuthServiceOptions{
		Provider: provider,
		Roles:    authroles.PriorityMapper{},
		Logger:   logger,
		Metrics:  cfg.Metrics,
	})
}

//nolint:ireturn // both providers satisfy the same port.
func buildDevProvider(cfg config.DevAuthConfig) (ports.IdentityProvider, error) {
	prov, err := devauth.NewProvider(devauth.Config{
		UserID:       cfg.UserID,
		FirstName:    cfg.FirstName,
		LastName:     cfg.LastName,
		Roles:        cfg.Roles,
		CallbackPath: config.CallbackPath,
	})
	if err != nil {
		return nil, fmt.Errorf("create dev auth provider: %w", err)
	}
	return prov, nil
}

//nolint:ireturn // both providers satisfy the same port.
func buildCleverProvider(cfg AuthConfig, logger *slog.Logger) (ports.IdentityProvider, error) {
	c := cfg.Auth.Clever
	client, err := clever.NewClient(clever.Config{
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		RedirectURL:  cfg.RedirectURL,
		AuthorizeURL: c.AuthorizeURL,
		TokenURL:     c.TokenURL,
		APIBaseURL:   c.APIBaseURL,
		Timeout:      c.HTTPTimeout,
		Logger:       logger,
	})
	if err != nil {
		return nil, fmt.Errorf("create clever client: %w", err)
	}
	return client, nil
}
