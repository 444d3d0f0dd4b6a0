package dbx_test

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/book-catalog/internal/store/dbx"
)

func TestRebind(t *testing.T) {
	q := `SELECT id FROM books WHERE LOWER(title) LIKE ? OR id = ? LIMIT ? OFFSET ?`
	assert.Equal(t,
		`SELECT id FROM books WHERE LOWER(title) LIKE $1 OR id = $2 LIMIT $3 OFFSET $4`,
		dbx.Postgres.Rebind(q))
	assert.Equal(t, q, dbx.SQLite.Rebind(q))
	assert.Equal(t, "SELECT 1", dbx.Postgres.Rebind("SELECT 1"))
}

func TestLower(t *testing.T) {
	assert.Equal(t, "LOWER(title)", dbx.Postgres.Lower("title"))
	assert.Equal(t, "unicode_lower(title)", dbx.SQLite.Lower("title"))
}

func TestSQLiteUnicodeLower(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var folded, builtin string
	var null sql.NullString
	require.NoError(t, db.QueryRowContext(t.Context(),
		`SELECT unicode_lower(?), LOWER(?), unicode_lower(NULL)`, "\u00c9COLE de Paris", "\u00c9COLE").
		Scan(&folded, &builtin, &null))
	assert.Equal(t, "\u00e9cole de paris", folded)
	assert.Equal(t, "\u00c9cole", builtin)
	assert.False(t, null.Valid)
}

func TestDialectFor(t *testing.T) {
	d, err := dbx.DialectFor("pgx")
	require.NoError(t, err)
	assert.Equal(t, dbx.Postgres, d)

	d, err = dbx.DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, dbx.SQLite, d)

	_, err = dbx.DialectFor("mysql")
	assert.Error(t, err)
}

func TestMapDBError_Postgres(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23514", ConstraintName: "books_title_not_blank"}
	err := dbx.MapDBError(fmt.Errorf("insert: %w", pgErr))

	var ce *dbx.ConstraintError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, dbx.Check, ce.Kind)
	assert.Equal(t, "books_title_not_blank", ce.Constraint)
	assert.ErrorIs(t, err, pgErr)

	nn := dbx.MapDBError(&pgconn.PgError{Code: "23502", ColumnName: "author"})
	require.ErrorAs(t, nn, &ce)
	assert.Equal(t, dbx.NotNull, ce.Kind)
	assert.Equal(t, "author", ce.Column)

	assert.True(t, dbx.IsConstraint(&pgconn.PgError{Code: "23505"}, dbx.Unique))
}

func TestMapDBError_PassThrough(t *testing.T) {
	boom := errors.New("connection reset")
	assert.Same(t, boom, dbx.MapDBError(boom))
	assert.NoError(t, dbx.MapDBError(nil))

	other := &pgconn.PgError{Code: "40001"}
	assert.Same(t, error(other), dbx.MapDBError(other))
}
