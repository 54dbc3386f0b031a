package auth

// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	domainauth "github.com/squidword/squidword/internal/domain/auth"
	apperrors "github.com/squidword/squidword/internal/errors"
	"github.com/squidword/squidword/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.IdentityProvider = (*MockIdentityProvider)(nil)
	_ ports.SessionStore     = (*MemorySessionStore)(nil)
	_ ports.RoleMapper       = (*StaticRoleMapper)(nil)
)

// MockIdentityProvider simulates the provider with canned documents keyed by endpoint.
// It counts exchanges so tests can assert that no exchange was attempted.
type MockIdentityProvider struct {
	ExchangeFunc func(ctx context.Context, code string) (string, error)
	GetFunc      func(ctx context.Context, endpoint, token string) (any, error)

	// Deterministic values for predictable testing
	AuthURL   string
	Token     string
	Documents map[string]any

	mu        sync.Mutex
	exchanges int
	gets      []string
}

// NewMockIdentityProvider creates a provider serving a teacher named Mock.
func NewMockIdentityProvider() *MockIdentityProvider {
	return &MockIdentityProvider{
		AuthURL: "https://mock-idp/authorize",
		Token:   "mock-token",
		Documents: map[string]any{
			"/v3.0/me": map[string]any{
				"data": map[string]any{"id": "mock-user-1", "type": "user"},
			},
			"/v3.0/users/mock-user-1": map[string]any{
				"data": map[string]any{
					"name":  map[string]any{"first": "Mock", "last": "User"},
					"roles": []any{"teacher"},
				},
			},
		},
	}
}

func (m *MockIdentityProvider) AuthCodeURL(state string) string {
	return m.AuthURL + "?" + url.Values{"state": {state}}.Encode()
}

func (m *MockIdentityProvider) ExchangeCode(ctx context.Context, code string) (string, error) {
	m.mu.Lock()
	m.exchanges++
	m.mu.Unlock()

	if m.ExchangeFunc != nil {
		return m.ExchangeFunc(ctx, code)
	}
	if code == "" {
		return "", apperrors.MissingCode()
	}
	return m.Token, nil
}

func (m *MockIdentityProvider) Get(ctx context.Context, endpoint, token string) (any, error) {
	m.mu.Lock()
	m.gets = append(m.gets, endpoint)
	m.mu.Unlock()

	if m.GetFunc != nil {
		return m.GetFunc(ctx, endpoint, token)
	}
	if token != m.Token {
		return nil, apperrors.FetchFailed(endpoint, fmt.Errorf("unexpected status %d", 401))
	}
	doc, ok := m.Documents[endpoint]
	if !ok {
		return nil, apperrors.FetchFailed(endpoint, fmt.Errorf("unexpected status %d", 404))
	}
	return doc, nil
}

// Exchanges returns how many times ExchangeCode was called.
func (m *MockIdentityProvider) Exchanges() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exchanges
}

// Gets returns the endpoints requested so far.
func (m *MockIdentityProvider) Gets() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.gets...)
}

// MemorySessionStore is an in-memory session store for unit tests.
// Handles are the session IDs, assigned on first save.
type MemorySessionStore struct {
	mu       sync.Mutex
	sessions map[string]domainauth.Session
	next     int
}

// NewMemorySessionStore creates a new in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{
		sessions: make(map[string]domainauth.Session),
	}
}

func (m *MemorySessionStore) Save(_ context.Context, sess domainauth.Session) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sess.ID == "" {
		m.next++
		sess.ID = fmt.Sprintf("mem-%d", m.next)
	}
	m.sessions[sess.ID] = sess
	return sess.ID, nil
}

func (m *MemorySessionStore) Load(_ context.Context, id string) (domainauth.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, domainauth.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len returns the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// StaticRoleMapper maps every claim set to the same role.
type StaticRoleMapper struct {
	Role domainauth.Role
}

func (m StaticRoleMapper) Map([]string) domainauth.Role { return m.Role }
