// Package books is the SQL implementation of catalog.Storage.
package books

import (
	"database/sql"

	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/store/dbx"
)

// Store reads and writes the books table. Queries use ? placeholders and
// are rebound for the dialect.
type Store struct {
	db      *sql.DB
	dialect dbx.Dialect
}

var _ catalog.Storage = (*Store)(nil)

func New(db *sql.DB, dialect dbx.Dialect) *Store {
	return &Store{db: db, dialect: dialect}
}

const selectColumns = `id, title, author, genre, year`

// orderColumns whitelists the catalog.Order columns that may reach SQL.
var orderColumns = map[string]string{
	"id":     "id",
	"title":  "title",
	"author": "author",
	"genre":  "genre",
	"year":   "year",
}

// writeColumns maps updatable fields to columns.
var writeColumns = map[catalog.Field]string{
	catalog.FieldTitle:  "title",
	catalog.FieldAuthor: "author",
	catalog.FieldGenre:  "genre",
	catalog.FieldYear:   "year",
}
