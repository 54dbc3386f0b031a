package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainauth "github.com/squidword/squidword/internal/domain/auth"
	apperrors "github.com/squidword/squidword/internal/errors"
	"github.com/squidword/squidword/internal/observability/metrics"
	"github.com/squidword/squidword/internal/observability/statsd"
	"github.com/squidword/squidword/internal/ports"
)

// IdentityEndpoint returns the principal behind a bearer token.
const IdentityEndpoint = "/v3.0/me"

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Provider ports.IdentityProvider // Required
	Roles    ports.RoleMapper       // Optional
	Logger   *slog.Logger           // Optional
	Metrics  statsd.Sink            // Optional: login counters and latency

	// NewState overrides state generation (tests).
	NewState func() string
}

// AuthService orchestrates the authorization-code handshake: state issuance,
// code exchange and user resolution. Session persistence belongs to the caller.
type AuthService struct {
	provider ports.IdentityProvider
	resolver *UserResolver
	logger   *slog.Logger
	metrics  statsd.Sink
	newState func() string
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Provider == nil {
		return nil, errors.New("IdentityProvider is required")
	}
	resolver, err := NewUserResolver(UserResolverOptions{
		Fetcher: opts.Provider,
		Roles:   opts.Roles,
	})
	if err != nil {
		return nil, err
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	newState := opts.NewState
	if newState == nil {
		newState = NewStateToken
	}
	return &AuthService{
		provider: opts.Provider,
		resolver: resolver,
		logger:   logger.With("component", "auth_service"),
		metrics:  opts.Metrics,
		newState: newState,
	}, nil
}

// BeginLoginResult contains the result of beginning a login flow.
type BeginLoginResult struct {
	AuthURL string
	State   string
}

// BeginLogin issues a new state token and the provider authorize URL carrying it.
func (s *AuthService) BeginLogin() BeginLoginResult {
	state := s.newState()
	metrics.EmitLoginStarted(s.metrics)
	return BeginLoginResult{
		AuthURL: s.provider.AuthCodeURL(state),
		State:   state,
	}
}

// CompleteLogin exchanges the authorization code and resolves the signed-in user.
// Errors are *apperrors.AppError with code missing_code, token_exchange_failed,
// fetch_failed, unsupported_subject_type or malformed_profile.
func (s *AuthService) CompleteLogin(ctx context.Context, code string) (domainauth.User, error) {
	start := time.Now()
	user, err := s.completeLogin(ctx, code)
	metrics.EmitLoginCompleted(s.metrics, metrics.LoginMetric{
		Role:     string(user.ResolvedRole),
		Duration: time.Since(start),
		Err:      err,
	})
	return user, err
}

func (s *AuthService) completeLogin(ctx context.Context, code string) (domainauth.User, error) {
	if code == "" {
		return domainauth.User{}, apperrors.MissingCode()
	}

	token, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		if !apperrors.IsTokenExchangeFailed(err) {
			err = apperrors.TokenExchangeFailed(err)
		}
		s.logger.WarnContext(ctx, "token exchange failed", "error", err)
		return domainauth.User{}, err
	}

	identity, err := s.provider.Get(ctx, IdentityEndpoint, token)
	if err != nil {
		if !apperrors.IsFetchFailed(err) {
			err = apperrors.FetchFailed(IdentityEndpoint, err)
		}
		s.logger.WarnContext(ctx, "identity fetch failed", "error", err)
		return domainauth.User{}, err
	}

	user, err := s.resolver.Resolve(ctx, identity, token)
	if err != nil {
		s.logger.WarnContext(ctx, "user resolution failed",
			"code", apperrors.GetCode(err),
			"field", apperrors.GetField(err),
			"error", err)
		return domainauth.User{}, err
	}

	s.logger.InfoContext(ctx, "user signed in", "user_id", user.ID, "role", string(user.ResolvedRole))
	return user, nil
}
