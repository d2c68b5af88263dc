package redis

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
	"github.com/noticenest/noticenest/internal/ports"
	"github.com/noticenest/noticenest/internal/testutil"
)

func newTestStore(t *testing.T) *SessionStore {
	t.Helper()
	client := testutil.SetupTestRedis(t)
	store, err := NewSessionStore(client, Config{
		SigningSecret: "test-secret",
		TTL:           30 * time.Minute,
	})
	require.NoError(t, err)
	return store
}

func testIdentity() domainauth.Identity {
	return domainauth.Identity{
		Email:       "jane@example.com",
		DisplayName: "Jane Doe",
		Provider:    domainauth.ProviderGoogle,
	}
}

func TestSessionStore_CreateAndGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)
	assert.NotEmpty(t, created.Token)
	assert.True(t, created.ExpiresAt.After(created.IssuedAt))

	retrieved, err := store.Get(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.Identity, retrieved.Identity)
	assert.WithinDuration(t, created.ExpiresAt, retrieved.ExpiresAt, time.Second)
}

func TestSessionStore_GetUnknownToken(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Get(ctx, "not-a-real-token")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore_GetTamperedToken(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)

	// Flip the signature half of the token
	id, _, found := strings.Cut(created.Token, ".")
	require.True(t, found)

	_, err = store.Get(ctx, id+".forged-signature")
	assert.ErrorIs(t, err, ports.ErrNotFound)

	// The genuine token still works
	_, err = store.Get(ctx, created.Token)
	require.NoError(t, err)
}

func TestSessionStore_Delete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, created.Token))

	_, err = store.Get(ctx, created.Token)
	assert.ErrorIs(t, err, ports.ErrNotFound)

	// Deleting again is a no-op
	require.NoError(t, store.Delete(ctx, created.Token))
}

func TestSessionStore_DeleteMalformedToken(t *testing.T) {
	store := newTestStore(t)

	assert.NoError(t, store.Delete(context.Background(), "garbage"))
}

func TestSessionStore_ExpiredSessionIsAbsent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)

	// Move the clock past the expiry and observe the session vanish
	store.now = func() time.Time { return created.ExpiresAt.Add(time.Minute) }

	_, err = store.Get(ctx, created.Token)
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestSessionStore_Renew(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)

	later := created.IssuedAt.Add(10 * time.Minute)
	store.now = func() time.Time { return later }

	renewed, err := store.Renew(ctx, created.Token)
	require.NoError(t, err)
	assert.Equal(t, created.Token, renewed.Token)
	assert.True(t, renewed.ExpiresAt.After(created.ExpiresAt))
	assert.Equal(t, created.Identity, renewed.Identity)
}

func TestSessionStore_RenewExpired(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	created, err := store.Create(ctx, testIdentity())
	require.NoError(t, err)

	store.now = func() time.Time { return created.ExpiresAt.Add(time.Minute) }

	_, err = store.Renew(ctx, created.Token)
	assert.ErrorIs(t, err, ports.ErrSessionExpired)
	assert.False(t, errors.Is(err, ports.ErrNotFound))
}

func TestSessionStore_RenewUnknownToken(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Renew(context.Background(), "unknown")
	assert.ErrorIs(t, err, ports.ErrSessionExpired)
}

func TestNewSessionStore_Validation(t *testing.T) {
	_, err := NewSessionStore(nil, Config{SigningSecret: "s"})
	assert.Error(t, err)

	client := testutil.SetupTestRedis(t)
	_, err = NewSessionStore(client, Config{})
	assert.Error(t, err)
}
