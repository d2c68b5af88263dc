package postgres

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
	"github.com/noticenest/noticenest/internal/ports"
	"github.com/noticenest/noticenest/internal/testutil"
)

func seedResident(t *testing.T, db *sql.DB, username, email, name, password string) {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	_, err = db.ExecContext(context.Background(),
		`INSERT INTO residents (username, email, display_name, password_hash) VALUES ($1, $2, $3, $4)`,
		username, email, name, hash,
	)
	require.NoError(t, err)
}

func TestCredentialStore_Verify(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedResident(t, db, "jane", "jane@example.com", "Jane Doe", "s3cret-pass")

	store, err := NewCredentialStore(db)
	require.NoError(t, err)

	identity, err := store.Verify(context.Background(), "jane", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", identity.Email)
	assert.Equal(t, "Jane Doe", identity.DisplayName)
	assert.Equal(t, domainauth.ProviderCredentials, identity.Provider)
}

func TestCredentialStore_VerifyFailuresAreUniform(t *testing.T) {
	db := testutil.SetupTestDB(t)
	seedResident(t, db, "jane", "jane@example.com", "Jane Doe", "s3cret-pass")

	store, err := NewCredentialStore(db)
	require.NoError(t, err)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "jane", "wrong"},
		{"unknown username", "nobody", "s3cret-pass"},
		{"empty username", "", "s3cret-pass"},
		{"empty password", "jane", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, verifyErr := store.Verify(ctx, tt.username, tt.password)
			assert.ErrorIs(t, verifyErr, ports.ErrInvalidCredentials)
			assert.Zero(t, identity)
		})
	}
}

func TestNewCredentialStore_RequiresDB(t *testing.T) {
	_, err := NewCredentialStore(nil)
	assert.Error(t, err)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, "hunter2", hash)

	_, err = HashPassword("")
	assert.Error(t, err)
}
