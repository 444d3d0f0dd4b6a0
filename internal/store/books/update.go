package books

import (
	"context"
	"database/sql"
	"strings"

	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/store/dbx"
)

// ApplyUpdate writes the listed fields of b to the row with b.ID and
// returns the stored row. updated_at is always bumped.
func (s *Store) ApplyUpdate(ctx context.Context, b catalog.Book, fields []catalog.Field) (catalog.Book, error) {
	sets := make([]string, 0, len(fields)+1)
	args := make([]any, 0, len(fields)+1)
	for _, f := range fields {
		col, ok := writeColumns[f]
		if !ok {
			continue
		}
		sets = append(sets, col+" = ?")
		args = append(args, columnValue(b, f))
	}
	sets = append(sets, "updated_at = CURRENT_TIMESTAMP")
	args = append(args, b.ID)

	var out catalog.Book
	err := dbx.WithinTx(ctx, s.db, func(tx *sql.Tx) error {
		res, err := dbx.Exec(ctx, tx, s.dialect,
			`UPDATE books SET `+strings.Join(sets, ", ")+` WHERE id = ?`, args...)
		if err != nil {
			return fault("update", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fault("update", err)
		}
		if n == 0 {
			return catalog.ErrNotFound
		}

		out, err = scanBook(dbx.Get(ctx, tx, s.dialect, qByID, b.ID))
		if err != nil {
			return fault("update: reload", err)
		}
		return nil
	})
	if err != nil {
		return catalog.Book{}, err
	}
	return out, nil
}
