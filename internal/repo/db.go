// Package repo contains all database access logic for the TravelMaster data layer.
// Each entity kind has its own file with an interface and a SQL implementation
// that runs unchanged on SQLite and Postgres.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Dialect selects the SQL flavour spoken by the underlying database.
type Dialect int

const (
	// SQLite is the on-device default (modernc.org/sqlite).
	SQLite Dialect = iota
	// Postgres is used when the store is opened with a postgres:// DSN.
	Postgres
)

// String returns the dialect name as used in logs and goose.
func (d Dialect) String() string {
	switch d {
	case Postgres:
		return "postgres"
	default:
		return "sqlite"
	}
}

// rebind rewrites ? placeholders into $1, $2, ... for Postgres.
// Queries in this package never contain a literal question mark.
func (d Dialect) rebind(q string) string {
	if d != Postgres {
		return q
	}
	var b strings.Builder
	b.Grow(len(q) + 8)
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// DBTX is the minimal interface satisfied by both *sql.DB and *sql.Tx.
// Accepting it instead of *sql.DB lets the store bind a whole repo.Set to a
// transaction, and lets tests run every query inside a transaction that is
// rolled back afterwards.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// Conn bundles everything a repo needs to talk to the database.
type Conn struct {
	DB      DBTX
	Dialect Dialect
	// Now supplies creation defaults and timestamps. Nil means time.Now.
	Now func() time.Time
}

func (c Conn) exec(ctx context.Context, q string, args ...any) (sql.Result, error) {
	return c.DB.ExecContext(ctx, c.Dialect.rebind(q), args...)
}

func (c Conn) query(ctx context.Context, q string, args ...any) (*sql.Rows, error) {
	return c.DB.QueryContext(ctx, c.Dialect.rebind(q), args...)
}

func (c Conn) queryRow(ctx context.Context, q string, args ...any) *sql.Row {
	return c.DB.QueryRowContext(ctx, c.Dialect.rebind(q), args...)
}

// now returns the current time in UTC, truncated to microseconds so values
// read back from Postgres compare equal to the ones written.
func (c Conn) now() time.Time {
	if c.Now != nil {
		return utc(c.Now())
	}
	return utc(time.Now())
}

// utc normalizes t for storage. The zero time stays zero.
func utc(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC().Truncate(time.Microsecond)
}

// utcPtr is utc for optional values.
func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := utc(*t)
	return &v
}

// scanner is satisfied by both *sql.Row and *sql.Rows, allowing each scanX
// helper to be reused for QueryRow and Query calls.
type scanner interface {
	Scan(dest ...any) error
}

// affected reports whether the statement touched at least one row.
func affected(res sql.Result) (bool, error) {
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Set groups one repo per entity kind over the same connection.
type Set struct {
	Trips       TripRepo
	Activities  ActivityRepo
	Expenses    ExpenseRepo
	Journal     JournalRepo
	Itinerary   ItineraryRepo
	Preferences PreferenceRepo
}

// NewSet builds every repo over c.
func NewSet(c Conn) Set {
	return Set{
		Trips:       NewTripRepo(c),
		Activities:  NewActivityRepo(c),
		Expenses:    NewExpenseRepo(c),
		Journal:     NewJournalRepo(c),
		Itinerary:   NewItineraryRepo(c),
		Preferences: NewPreferenceRepo(c),
	}
}

// Argument helpers convert domain values into plain driver values so the
// same statements bind identically on every driver.

func idArg(id uuid.UUID) string {
	return id.String()
}

func nullIDArg(id uuid.NullUUID) any {
	if !id.Valid {
		return nil
	}
	return id.UUID.String()
}

func strArg(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

func timeArg(t *time.Time) any {
	if t == nil {
		return nil
	}
	return utc(*t)
}

func blobArg(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return b
}
