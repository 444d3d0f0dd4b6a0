package books

import (
	"context"

	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/store/dbx"
)

const qInsert = `
INSERT INTO books (title, author, genre, year)
VALUES (?, ?, ?, ?)
RETURNING id`

// Insert writes a new row and returns b with its assigned id.
func (s *Store) Insert(ctx context.Context, b catalog.Book) (catalog.Book, error) {
	err := dbx.Get(ctx, s.db, s.dialect, qInsert,
		b.Title,
		b.Author,
		NullIfEmpty(b.Genre),
		NullIfNil(b.Year),
	).Scan(&b.ID)
	if err != nil {
		return catalog.Book{}, fault("insert", err)
	}
	return b, nil
}
