// Package testutil gates postgres-backed tests behind TEST_DATABASE_URL.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/hobbyhub-app/hobby-directory-api/internal/adapters/postgres"
)

// OpenMigratedPool opens a pool against TEST_DATABASE_URL, applies the
// schema, and truncates mutable tables so each test starts clean. Tests are
// skipped when the variable is unset.
func OpenMigratedPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping postgres tests")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, url)
	if err != nil {
		t.Fatalf("open pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if _, err := pool.Exec(ctx, postgres.Schema); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	if _, err := pool.Exec(ctx, `TRUNCATE activities, sessions, identities`); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return pool
}
