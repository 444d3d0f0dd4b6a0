package books

import (
	"context"
	"fmt"

	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/store/dbx"
)

// FindAll returns one page of books matching the search.
func (s *Store) FindAll(ctx context.Context, q catalog.Search) ([]catalog.Book, error) {
	where, args := whereClause(s.dialect, q.Filter)

	query := `
SELECT ` + selectColumns + `
FROM books` + where + orderClause(q.OrderBy) + `
LIMIT ? OFFSET ?`

	rows, err := dbx.Query(ctx, s.db, s.dialect, query, append(args, q.Limit, q.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("books: find all: %w", err)
	}
	defer rows.Close()

	out := []catalog.Book{}
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return nil, fmt.Errorf("books: find all: %w", err)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("books: find all: %w", err)
	}
	return out, nil
}

// Count returns how many books match the filter, ignoring paging.
func (s *Store) Count(ctx context.Context, f catalog.Filter) (int, error) {
	where, args := whereClause(s.dialect, f)

	var total int
	if err := dbx.Get(ctx, s.db, s.dialect, `
SELECT COUNT(*)
FROM books`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("books: count: %w", err)
	}
	return total, nil
}
