package cookiestore

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainauth "github.com/squidword/squidword/internal/domain/auth"
	"github.com/squidword/squidword/internal/testutil"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

func newStore(t *testing.T, now func() time.Time) *Store {
	t.Helper()
	s, err := New(Options{Secret: testSecret, TTL: time.Hour, Now: now})
	require.NoError(t, err)
	return s
}

func TestNew_RequiresSecret(t *testing.T) {
	_, err := New(Options{})
	require.Error(t, err)
}

func TestStore_SaveAndLoad(t *testing.T) {
	s := newStore(t, nil)
	ctx := context.Background()

	handle, err := s.Save(ctx, domainauth.Session{
		State:     "abc",
		FirstName: "Ada",
		Role:      domainauth.RoleDistrictAdmin,
	})
	require.NoError(t, err)
	require.NotEmpty(t, handle)

	got, err := s.Load(ctx, handle)
	require.NoError(t, err)
	assert.Empty(t, got.ID)
	assert.Equal(t, "abc", got.State)
	assert.Equal(t, "Ada", got.FirstName)
	assert.Equal(t, domainauth.RoleDistrictAdmin, got.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), got.ExpiresAt, 2*time.Second)
}

func TestStore_PreservesExpiry(t *testing.T) {
	s := newStore(t, testutil.FixedTimeFunc(testutil.TestTime()))
	ctx := context.Background()
	exp := testutil.TestTime().Add(10 * time.Minute)

	handle, err := s.Save(ctx, domainauth.Session{State: "x", ExpiresAt: exp})
	require.NoError(t, err)

	got, err := s.Load(ctx, handle)
	require.NoError(t, err)
	assert.True(t, exp.Equal(got.ExpiresAt), "want %v got %v", exp, got.ExpiresAt)
}

func TestStore_RejectsTampering(t *testing.T) {
	s := newStore(t, nil)
	ctx := context.Background()

	handle, err := s.Save(ctx, domainauth.Session{FirstName: "Ada"})
	require.NoError(t, err)

	other, err := New(Options{Secret: []byte("another-secret-another-secret!!")})
	require.NoError(t, err)
	_, err = other.Load(ctx, handle)
	require.ErrorIs(t, err, domainauth.ErrSessionNotFound)

	_, err = s.Load(ctx, handle+"x")
	require.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestStore_RejectsUnsignedAlg(t *testing.T) {
	s := newStore(t, nil)
	claims := sessionClaims{
		FirstName: "Mallory",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = s.Load(context.Background(), forged)
	require.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestStore_Expiry(t *testing.T) {
	now := time.Now()
	clock := func() time.Time { return now }
	s := newStore(t, clock)
	ctx := context.Background()

	handle, err := s.Save(ctx, domainauth.Session{State: "abc"})
	require.NoError(t, err)

	now = now.Add(2 * time.Hour)
	_, err = s.Load(ctx, handle)
	require.ErrorIs(t, err, domainauth.ErrSessionNotFound)

	_, err = s.Save(ctx, domainauth.Session{ExpiresAt: now.Add(-time.Second)})
	require.Error(t, err)
}

func TestStore_LoadEmpty(t *testing.T) {
	s := newStore(t, nil)
	_, err := s.Load(context.Background(), "")
	require.ErrorIs(t, err, domainauth.ErrSessionNotFound)
}

func TestStore_DeleteIsNoop(t *testing.T) {
	s := newStore(t, nil)
	require.NoError(t, s.Delete(context.Background(), "anything"))
}
