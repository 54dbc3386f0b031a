package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/squidword/squidword/internal/domain/auth"
	apperrors "github.com/squidword/squidword/internal/errors"
)

func TestMockIdentityProvider_Defaults(t *testing.T) {
	provider := NewMockIdentityProvider()
	ctx := context.Background()

	assert.Equal(t, "https://mock-idp/authorize?state=s1", provider.AuthCodeURL("s1"))

	tok, err := provider.ExchangeCode(ctx, "code")
	require.NoError(t, err)
	assert.Equal(t, "mock-token", tok)
	assert.Equal(t, 1, provider.Exchanges())

	doc, err := provider.Get(ctx, "/v3.0/me", tok)
	require.NoError(t, err)
	assert.NotNil(t, doc)

	_, err = provider.Get(ctx, "/v3.0/districts/d1", tok)
	assert.True(t, apperrors.IsFetchFailed(err))

	_, err = provider.Get(ctx, "/v3.0/me", "stale")
	assert.True(t, apperrors.IsFetchFailed(err))

	assert.Equal(t, []string{"/v3.0/me", "/v3.0/districts/d1", "/v3.0/me"}, provider.Gets())
}

func TestMockIdentityProvider_CustomFuncs(t *testing.T) {
	boom := errors.New("boom")
	provider := &MockIdentityProvider{
		ExchangeFunc: func(context.Context, string) (string, error) { return "", boom },
		GetFunc:      func(context.Context, string, string) (any, error) { return nil, boom },
	}
	ctx := context.Background()

	_, err := provider.ExchangeCode(ctx, "c")
	require.ErrorIs(t, err, boom)
	_, err = provider.Get(ctx, "/x", "t")
	require.ErrorIs(t, err, boom)
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	id, err := store.Save(ctx, domainauth.Session{State: "s"})
	require.NoError(t, err)
	assert.Equal(t, "mem-1", id)

	got, err := store.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "s", got.State)
	assert.Equal(t, 1, store.Len())

	require.NoError(t, store.Delete(ctx, id))
	_, err = store.Load(ctx, id)
	require.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestStaticRoleMapper(t *testing.T) {
	m := StaticRoleMapper{Role: domainauth.RoleStaff}
	assert.Equal(t, domainauth.RoleStaff, m.Map([]string{"student"}))
}
