// Package testutil provides shared helpers for integration tests.
// SQLite helpers always run against a throwaway file under t.TempDir().
// Postgres helpers skip automatically when TEST_DATABASE_URL is not set, so
// the suite runs without a database server.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql

	"github.com/pkordes/travelmaster/internal/repo"
	"github.com/pkordes/travelmaster/internal/store"
)

// NewSQLiteStore opens a fresh, fully migrated SQLite store in a temporary
// directory. The store is closed when the test finishes.
func NewSQLiteStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()

	path := filepath.Join(t.TempDir(), "travelmaster.db")
	s, err := store.Open(context.Background(), path, opts...)
	if err != nil {
		t.Fatalf("testutil.NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// NewPostgresStore opens a migrated store on the database named by
// TEST_DATABASE_URL, skipping the test when it is not set.
// Tests share that database: isolate writes with TxSet.
func NewPostgresStore(t *testing.T, opts ...store.Option) *store.Store {
	t.Helper()

	dsn := requireDSN(t)
	s, err := store.Open(context.Background(), dsn, opts...)
	if err != nil {
		t.Fatalf("testutil.NewPostgresStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

// ForEachBackend runs fn as a subtest against every available backend:
// SQLite always, Postgres when TEST_DATABASE_URL is set.
func ForEachBackend(t *testing.T, fn func(t *testing.T, s *store.Store)) {
	t.Helper()

	t.Run("sqlite", func(t *testing.T) {
		fn(t, NewSQLiteStore(t))
	})
	t.Run("postgres", func(t *testing.T) {
		fn(t, NewPostgresStore(t))
	})
}

// TxSet begins a transaction on s and returns repos bound to it. The
// transaction is rolled back when the test finishes, giving per-test
// isolation without cleanup SQL. A nil now uses time.Now.
func TxSet(t *testing.T, s *store.Store, now func() time.Time) repo.Set {
	t.Helper()

	tx, err := s.DB().BeginTx(context.Background(), nil)
	if err != nil {
		t.Fatalf("testutil.TxSet: begin transaction: %v", err)
	}
	t.Cleanup(func() { _ = tx.Rollback() })

	if now == nil {
		now = time.Now
	}
	return repo.NewSet(repo.Conn{DB: tx, Dialect: s.Dialect(), Now: now})
}

// NewSQLDB opens a *sql.DB connected to the database specified by the
// TEST_DATABASE_URL environment variable using the pgx database/sql driver.
//
// Use this when you need a raw handle rather than a store, for example
// when driving goose migrations in integration tests.
// The connection is closed automatically when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := requireDSN(t)

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Fatalf("testutil.NewSQLDB: open: %v", err)
	}

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}

// NewRawSQLiteDB opens an unmigrated SQLite database in a temporary
// directory. The connection is closed automatically when the test finishes.
func NewRawSQLiteDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "raw.db")
	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=foreign_keys(1)")
	if err != nil {
		t.Fatalf("testutil.NewRawSQLiteDB: open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

// requireDSN returns the TEST_DATABASE_URL environment variable value,
// skipping the test if it is not set.
func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}
	return dsn
}
