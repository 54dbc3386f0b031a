package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// AppConfig is the main application configuration struct that composes
// domain-specific configuration from separate files.
//
// Configuration is loaded from environment variables using the
// github.com/caarlos0/env library. See individual domain config
// files for details on available environment variables:
//   - auth.go: Clever credentials, endpoints and auth mode
//   - http.go: HTTP server and public base URL
//   - session.go: session signing secret and store selection
//   - redis.go: Redis connection for the server-side session store
//   - observability.go: StatsD login metrics
type AppConfig struct {
	// IsDev controls development mode behavior (cookies allowed over plain http).
	// Set DEV=true or NODE_ENV=development for development mode.
	IsDev bool `env:"DEV" envDefault:"false"`

	// Authentication configuration
	Auth AuthConfig

	// HTTP server configuration
	HTTP HTTPConfig

	// Session configuration
	Session SessionConfig

	// Redis configuration (used when Session.Store=redis)
	Redis RedisConfig `envPrefix:"REDIS_"`

	// Metrics configuration
	Metrics MetricsConfig
}

// Sanitize applies guardrails to configuration values loaded from env.
// This should be called after loading configuration from environment variables.
func (c *AppConfig) Sanitize() {
	c.Auth.Sanitize()
	c.HTTP.Sanitize()
	c.Session.Sanitize()
	c.Redis.Sanitize()
	c.Metrics.Sanitize()

	// Check NODE_ENV for dev mode
	c.detectDevMode()
}

// Validate checks cross-field rules that env tags cannot express.
func (c *AppConfig) Validate() error {
	var errs []error

	u, err := url.Parse(c.HTTP.BaseURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		errs = append(errs, fmt.Errorf("BASE_URL must be an absolute URL, got %q", c.HTTP.BaseURL))
	}
	if len(c.Session.Secret) < MinSecretLength {
		errs = append(errs, fmt.Errorf("SECRET_KEY must be at least %d bytes", MinSecretLength))
	}
	if c.Session.Store == SessionStoreRedis {
		switch {
		case c.Redis.UseCluster:
			if len(c.Redis.ClusterNodes) == 0 && c.Redis.URI == "" {
				errs = append(errs, errors.New("REDIS_CLUSTER_NODES or REDIS_URI is required when REDIS_USE_CLUSTER=true"))
			}
		case c.Redis.UseSentinel:
			if len(c.Redis.SentinelNodes) == 0 {
				errs = append(errs, errors.New("REDIS_SENTINEL_NODES is required when REDIS_USE_SENTINEL=true"))
			}
		case strings.TrimSpace(c.Redis.URI) == "":
			errs = append(errs, errors.New("REDIS_URI is required when SESSION_STORE=redis"))
		}
	}

	return errors.Join(errs...)
}

// detectDevMode checks both DEV and NODE_ENV environment variables.
// This is called by Sanitize() to ensure IsDev is set correctly.
// NODE_ENV is checked as a fallback (common in frontend tooling).
func (c *AppConfig) detectDevMode() {
	if !c.IsDev {
		nodeEnv := strings.ToLower(os.Getenv("NODE_ENV"))
		c.IsDev = nodeEnv == "development" || nodeEnv == "dev"
	}
}
