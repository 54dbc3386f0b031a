// Package mocks provides mock implementations of the auth ports for tests.
//
// This package uses go.uber.org/mock (gomock) to generate type-safe mocks for the port interfaces.
// The mocks are generated using go:generate directives and provide a fluent API for setting up test expectations.
//
// To regenerate mocks after interface changes, run:
//
//	go generate ./internal/mocks
//
// Usage in tests:
//
//	ctrl := gomock.NewController(t)
//	provider := mocks.NewMockIdentityProvider(ctrl)
//	provider.EXPECT().ExchangeCode(gomock.Any(), "code").Return("token", nil)
package mocks

// Generate mock for IdentityProvider interface from internal/ports package.
// This creates MockIdentityProvider with methods for all embedded provider ports:
// AuthCodeURL, ExchangeCode, Get
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=identity_provider_mock.go github.com/squidword/squidword/internal/ports IdentityProvider

// Generate mock for ProfileFetcher interface from internal/ports package.
// This creates MockProfileFetcher with methods for all ProfileFetcher interface methods:
// Get
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=profile_fetcher_mock.go github.com/squidword/squidword/internal/ports ProfileFetcher

// Generate mock for RoleMapper interface from internal/ports package.
// This creates MockRoleMapper with methods for all RoleMapper interface methods:
// Map
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=role_mapper_mock.go github.com/squidword/squidword/internal/ports RoleMapper

// Generate mock for SessionStore interface from internal/ports package.
// This creates MockSessionStore with methods for all SessionStore interface methods:
// Load, Save, Delete
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=session_store_mock.go github.com/squidword/squidword/internal/ports SessionStore

// Generate mock for the metrics Sink interface from internal/observability/statsd package.
// This creates MockSink with methods for all Sink interface methods:
// Count, Timing
//go:generate go run go.uber.org/mock/mockgen@v0.6.0 -package=mocks -destination=sink_mock.go github.com/squidword/squidword/internal/observability/statsd Sink
