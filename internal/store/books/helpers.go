package books

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/store/dbx"
	"github.com/5w1tchy/book-catalog/internal/validate"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanBook(s scanner) (catalog.Book, error) {
	var (
		b     catalog.Book
		genre sql.NullString
		year  sql.NullInt64
	)
	if err := s.Scan(&b.ID, &b.Title, &b.Author, &genre, &year); err != nil {
		return catalog.Book{}, err
	}
	if genre.Valid {
		g := genre.String
		b.Genre = &g
	}
	if year.Valid {
		y := int(year.Int64)
		b.Year = &y
	}
	return b, nil
}

// likeEscaper makes LIKE wildcards in user input match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern is a case-folded "%term%" pattern for LIKE ... ESCAPE '\'.
func containsPattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// whereClause compiles a filter into a WHERE fragment and its args. Both
// sides of each text comparison are folded by Unicode rules.
func whereClause(d dbx.Dialect, f catalog.Filter) (string, []any) {
	if f.IsZero() {
		return "", nil
	}
	p := containsPattern(f.Term)
	return `
WHERE (
  ` + d.Lower("title") + ` LIKE ? ESCAPE '\'
  OR ` + d.Lower("author") + ` LIKE ? ESCAPE '\'
  OR ` + d.Lower("genre") + ` LIKE ? ESCAPE '\'
  OR CAST(year AS TEXT) LIKE ? ESCAPE '\'
)`, []any{p, p, p, p}
}

func orderClause(orders []catalog.Order) string {
	if len(orders) == 0 {
		orders = catalog.DefaultOrder
	}
	parts := make([]string, 0, len(orders))
	for _, o := range orders {
		col, ok := orderColumns[o.Column]
		if !ok {
			continue
		}
		dir := "ASC"
		if o.Desc {
			dir = "DESC"
		}
		parts = append(parts, col+" "+dir)
	}
	if len(parts) == 0 {
		return ""
	}
	return "\nORDER BY " + strings.Join(parts, ", ")
}

// NullIfEmpty returns nil for an absent optional text value.
func NullIfEmpty(s *string) any {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return *s
}

// NullIfNil returns nil for an absent optional integer value.
func NullIfNil(n *int) any {
	if n == nil {
		return nil
	}
	return int64(*n)
}

func columnValue(b catalog.Book, f catalog.Field) any {
	switch f {
	case catalog.FieldTitle:
		return b.Title
	case catalog.FieldAuthor:
		return b.Author
	case catalog.FieldGenre:
		return NullIfEmpty(b.Genre)
	case catalog.FieldYear:
		return NullIfNil(b.Year)
	}
	return nil
}

// fault classifies a write error: constraint violations become a
// *catalog.ValidationFault, anything else is wrapped with op.
func fault(op string, err error) error {
	var ce *dbx.ConstraintError
	if errors.As(dbx.MapDBError(err), &ce) && (ce.Kind == dbx.NotNull || ce.Kind == dbx.Check) {
		field := constraintField(ce)
		return &catalog.ValidationFault{
			Errors: validate.Errors{{Field: field, Message: validate.RequiredMessage(field)}},
			Err:    ce,
		}
	}
	return fmt.Errorf("books: %s: %w", op, err)
}

// constraintField recovers the column from a NOT NULL column name or a
// books_<column>_not_blank check name.
func constraintField(ce *dbx.ConstraintError) string {
	if ce.Column != "" {
		return ce.Column
	}
	name := strings.TrimPrefix(ce.Constraint, "books_")
	name = strings.TrimSuffix(name, "_not_blank")
	if name == "" {
		return "book"
	}
	return name
}
