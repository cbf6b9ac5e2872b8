package repo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDialect_Rebind(t *testing.T) {
	q := `UPDATE trips SET name = ?, notes = ? WHERE id = ?`

	assert.Equal(t, q, SQLite.rebind(q))
	assert.Equal(t, `UPDATE trips SET name = $1, notes = $2 WHERE id = $3`, Postgres.rebind(q))
}

func TestDialect_String(t *testing.T) {
	assert.Equal(t, "sqlite", SQLite.String())
	assert.Equal(t, "postgres", Postgres.String())
}
