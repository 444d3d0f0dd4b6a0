// Package testutil provides fixtures shared by package tests.
package testutil

import (
	"database/sql"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/5w1tchy/book-catalog/internal/store/dbx"
	"github.com/5w1tchy/book-catalog/internal/store/migrations"
)

// NewSQLiteDB returns a migrated in-memory SQLite database that is closed
// when the test ends.
func NewSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	// Each connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	t.Cleanup(func() { _ = db.Close() })

	if _, err := migrations.Up(t.Context(), db, dbx.SQLite); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
