package migrations_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/5w1tchy/book-catalog/internal/store/dbx"
	"github.com/5w1tchy/book-catalog/internal/store/migrations"
)

func openMemory(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestUpDownStatus(t *testing.T) {
	db := openMemory(t)
	ctx := t.Context()

	applied, err := migrations.Up(ctx, db, dbx.SQLite)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, applied)

	again, err := migrations.Up(ctx, db, dbx.SQLite)
	require.NoError(t, err)
	assert.Empty(t, again)

	sts, err := migrations.List(ctx, db, dbx.SQLite)
	require.NoError(t, err)
	require.Len(t, sts, 1)
	assert.True(t, sts[0].Applied)
	assert.Equal(t, int64(1), sts[0].Version)

	_, err = db.ExecContext(ctx, `INSERT INTO books (title, author) VALUES ('Dune', 'Frank Herbert')`)
	require.NoError(t, err)

	v, err := migrations.Down(ctx, db, dbx.SQLite)
	require.NoError(t, err)
	assert.Equal(t, int64(1), v)

	_, err = db.ExecContext(ctx, `SELECT 1 FROM books`)
	assert.Error(t, err)
}

func TestSchemaRejectsBlankTitle(t *testing.T) {
	db := openMemory(t)
	_, err := migrations.Up(t.Context(), db, dbx.SQLite)
	require.NoError(t, err)

	_, err = db.ExecContext(t.Context(), `INSERT INTO books (title, author) VALUES ('   ', 'x')`)
	require.Error(t, err)
	assert.True(t, dbx.IsConstraint(err, dbx.Check))

	_, err = db.ExecContext(t.Context(), `INSERT INTO books (author) VALUES ('x')`)
	require.Error(t, err)
	assert.True(t, dbx.IsConstraint(err, dbx.NotNull))
}

func TestUnsupportedDialect(t *testing.T) {
	_, err := migrations.NewProvider(openMemory(t), dbx.Dialect("oracle"))
	assert.Error(t, err)
}
