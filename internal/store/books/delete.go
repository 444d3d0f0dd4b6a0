package books

import (
	"context"
	"fmt"

	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/store/dbx"
)

// Remove deletes the row for b. A row that is already gone is ErrNotFound.
func (s *Store) Remove(ctx context.Context, b catalog.Book) error {
	result, err := dbx.Exec(ctx, s.db, s.dialect, `DELETE FROM books WHERE id = ?`, b.ID)
	if err != nil {
		return fmt.Errorf("books: remove: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("books: remove: %w", err)
	}
	if rowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
