package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
)

const residentsSchema = `
CREATE TABLE IF NOT EXISTS residents (
	id            SERIAL PRIMARY KEY,
	username      TEXT NOT NULL UNIQUE,
	email         TEXT NOT NULL UNIQUE,
	display_name  TEXT NOT NULL,
	password_hash TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
)`

// SetupTestDB opens the test Postgres database named by
// TEST_DATABASE_URL, ensures the residents schema exists, and truncates
// test data. Tests are skipped when the variable is unset.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping database tests")
	}

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if pingErr := db.PingContext(ctx); pingErr != nil {
		t.Fatalf("connect to test database at %s: %v", dsn, pingErr)
	}

	if _, execErr := db.ExecContext(ctx, residentsSchema); execErr != nil {
		t.Fatalf("create residents schema: %v", execErr)
	}
	if _, execErr := db.ExecContext(ctx, `TRUNCATE residents`); execErr != nil {
		t.Fatalf("truncate residents: %v", execErr)
	}

	t.Cleanup(func() {
		if closeErr := db.Close(); closeErr != nil {
			t.Logf("warning: failed to close test database: %v", closeErr)
		}
	})

	return db
}
