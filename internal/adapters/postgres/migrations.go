package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

// Migrate creates the residents table if it does not exist. The schema
// is small enough that a migration framework would be overhead.
func Migrate(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS residents (
	id SERIAL PRIMARY KEY,
	username TEXT NOT NULL UNIQUE,
	email TEXT NOT NULL UNIQUE,
	display_name TEXT NOT NULL DEFAULT '',
	password_hash TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("create residents table: %w", err)
	}
	return nil
}

// DevResident is a resident row seeded in development mode.
type DevResident struct {
	Username    string
	Email       string
	DisplayName string
	Password    string
}

// SeedDevResidents inserts development accounts. Already-seeded
// residents are left untouched; a unique violation is a no-op so
// restarts stay quiet.
func SeedDevResidents(ctx context.Context, db *sql.DB, residents []DevResident) error {
	const insert = `
INSERT INTO residents (username, email, display_name, password_hash)
VALUES ($1, $2, $3, $4)`

	for _, r := range residents {
		hash, err := HashPassword(r.Password)
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", r.Username, err)
		}

		if _, err := db.ExecContext(ctx, insert, r.Username, r.Email, r.DisplayName, hash); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				continue
			}
			return fmt.Errorf("seed resident %q: %w", r.Username, err)
		}
	}
	return nil
}
