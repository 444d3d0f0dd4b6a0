package books

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/store/dbx"
)

const qByID = `SELECT ` + selectColumns + ` FROM books WHERE id = ?`

func (s *Store) FindByID(ctx context.Context, id int64) (catalog.Book, error) {
	b, err := scanBook(dbx.Get(ctx, s.db, s.dialect, qByID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return catalog.Book{}, catalog.ErrNotFound
	}
	if err != nil {
		return catalog.Book{}, fmt.Errorf("books: find by id: %w", err)
	}
	return b, nil
}
