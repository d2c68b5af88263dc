package postgres

// Package postgres provides the resident credential store used by the
// username/password sign-in path.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	domainauth "github.com/noticenest/noticenest/internal/domain/auth"
	"github.com/noticenest/noticenest/internal/ports"
)

// dummyHash is a bcrypt hash of an unguessable value, compared against
// when the username does not exist so that absent and wrong-password
// lookups take comparable time.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CredentialStore verifies resident credentials against the residents
// table. Hashes are bcrypt, written by the seeding tooling.
type CredentialStore struct {
	db *sql.DB
}

// NewCredentialStore creates a credential store over the given database.
func NewCredentialStore(db *sql.DB) (*CredentialStore, error) {
	if db == nil {
		return nil, errors.New("database handle is required")
	}
	return &CredentialStore{db: db}, nil
}

// Verify checks a username/password pair. Every failure mode reports
// ports.ErrInvalidCredentials so callers cannot distinguish an unknown
// username from a wrong password.
func (s *CredentialStore) Verify(ctx context.Context, username, password string) (domainauth.Identity, error) {
	if username == "" || password == "" {
		return domainauth.Identity{}, ports.ErrInvalidCredentials
	}

	var (
		email        string
		displayName  string
		passwordHash string
	)
	row := s.db.QueryRowContext(ctx,
		`SELECT email, display_name, password_hash FROM residents WHERE username = $1`,
		username,
	)
	switch err := row.Scan(&email, &displayName, &passwordHash); {
	case errors.Is(err, sql.ErrNoRows):
		// Burn a comparison anyway to keep timing uniform
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return domainauth.Identity{}, ports.ErrInvalidCredentials
	case err != nil:
		return domainauth.Identity{}, fmt.Errorf("query resident: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)); err != nil {
		return domainauth.Identity{}, ports.ErrInvalidCredentials
	}

	return domainauth.Identity{
		Email:       email,
		DisplayName: displayName,
		Provider:    domainauth.ProviderCredentials,
	}, nil
}

// HashPassword creates a bcrypt hash for storage in the residents table.
func HashPassword(password string) (string, error) {
	if password == "" {
		return "", errors.New("password cannot be empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errors.New("password is too long")
		}
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

var _ ports.CredentialVerifier = (*CredentialStore)(nil)
