// Package migrations embeds the SQL migration files so they can be used
// by the goose programmatic API in tests and store bootstrap.
// Each dialect has its own directory with the same version numbers.
package migrations

import (
	"embed"
	"fmt"
	"io/fs"
)

// FS holds all *.sql migration files embedded at compile time.
//
//go:embed sqlite/*.sql postgres/*.sql
var FS embed.FS

// For returns the migration directory for dialect ("sqlite" or "postgres"),
// rooted so it can be handed straight to goose.NewProvider.
func For(dialect string) (fs.FS, error) {
	switch dialect {
	case "sqlite", "postgres":
		return fs.Sub(FS, dialect)
	default:
		return nil, fmt.Errorf("migrations: unknown dialect %q", dialect)
	}
}
