// Package store owns the single persistence handle of the data layer.
// It opens the database for the configured dialect, applies the embedded
// migrations, and hands out repo.Sets bound either to the handle or to a
// transaction.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"
	"go.uber.org/multierr"

	"github.com/pkordes/travelmaster/internal/repo"
	"github.com/pkordes/travelmaster/migrations"
)

// Store is an explicitly constructed persistence handle. Create one with
// Open (or New in tests) and pass it to the services that need it.
type Store struct {
	db      *sql.DB
	dialect repo.Dialect
	now     func() time.Time
}

// Option customises a Store.
type Option func(*Store)

// WithClock overrides the clock used for creation defaults and timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// Open connects to dsn and brings the schema up to date.
// A postgres:// or postgresql:// DSN selects Postgres; anything else is
// treated as the path of a SQLite database file, created if missing.
func Open(ctx context.Context, dsn string, opts ...Option) (*Store, error) {
	var (
		db      *sql.DB
		dialect repo.Dialect
		err     error
	)
	if IsPostgresDSN(dsn) {
		db, err = openPostgres(ctx, dsn)
		dialect = repo.Postgres
	} else {
		db, err = openSQLite(ctx, dsn)
		dialect = repo.SQLite
	}
	if err != nil {
		return nil, fmt.Errorf("store.Open: %w", err)
	}

	s := New(db, dialect, opts...)
	if err := s.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store.Open: %w", err)
	}
	return s, nil
}

// New wraps an already open *sql.DB. No migrations are run.
func New(db *sql.DB, dialect repo.Dialect, opts ...Option) *Store {
	s := &Store{db: db, dialect: dialect, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IsPostgresDSN reports whether dsn names a Postgres database.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Migrate applies every pending migration for the store's dialect.
func (s *Store) Migrate(ctx context.Context) error {
	provider, err := s.provider()
	if err != nil {
		return fmt.Errorf("store.Migrate: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("store.Migrate: up: %w", err)
	}
	return nil
}

// Version reports the current schema version and how many known migrations
// are not applied yet. A store returned by Open has none pending.
func (s *Store) Version(ctx context.Context) (current int64, pending int, err error) {
	provider, err := s.provider()
	if err != nil {
		return 0, 0, fmt.Errorf("store.Version: %w", err)
	}
	current, err = provider.GetDBVersion(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("store.Version: %w", err)
	}
	statuses, err := provider.Status(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("store.Version: status: %w", err)
	}
	for _, st := range statuses {
		if st.State == goose.StatePending {
			pending++
		}
	}
	return current, pending, nil
}

func (s *Store) provider() (*goose.Provider, error) {
	fsys, err := migrations.For(s.dialect.String())
	if err != nil {
		return nil, err
	}

	gooseDialect := goose.DialectSQLite3
	if s.dialect == repo.Postgres {
		gooseDialect = goose.DialectPostgres
	}

	provider, err := goose.NewProvider(gooseDialect, s.db, fsys)
	if err != nil {
		return nil, fmt.Errorf("create goose provider: %w", err)
	}
	return provider, nil
}

// DB exposes the underlying handle.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect reports which SQL flavour the store speaks.
func (s *Store) Dialect() repo.Dialect {
	return s.dialect
}

// Ping verifies the database is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close releases the handle. The Store must not be used afterwards.
func (s *Store) Close() error {
	return s.db.Close()
}

// Repos returns repos bound to the handle: every call commits on its own.
func (s *Store) Repos() repo.Set {
	return repo.NewSet(s.conn(s.db))
}

// InTx runs fn with repos bound to a single transaction. The transaction is
// committed when fn returns nil and rolled back otherwise; fn's error is
// returned unchanged so callers can still match sentinel errors.
//
// fn must only use the repos it is given. Going through Repos() from inside
// fn would wait on the transaction's write lock under SQLite.
func (s *Store) InTx(ctx context.Context, fn func(r repo.Set) error) (err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store.InTx: begin: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(repo.NewSet(s.conn(tx))); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return multierr.Append(err, fmt.Errorf("store.InTx: rollback: %w", rbErr))
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store.InTx: commit: %w", err)
	}
	return nil
}

func (s *Store) conn(db repo.DBTX) repo.Conn {
	return repo.Conn{DB: db, Dialect: s.dialect, Now: s.now}
}
