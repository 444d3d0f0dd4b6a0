package dbx

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// ConstraintKind classifies an integrity violation.
type ConstraintKind string

const (
	NotNull ConstraintKind = "not_null"
	Check   ConstraintKind = "check"
	Unique  ConstraintKind = "unique"
)

// ConstraintError is a driver-neutral integrity violation.
type ConstraintError struct {
	Kind       ConstraintKind
	Constraint string // named constraint, if the driver reports one
	Column     string // offending column, if the driver reports one
	Err        error
}

func (e *ConstraintError) Error() string {
	s := string(e.Kind) + " violation"
	if e.Constraint != "" {
		s += " on " + e.Constraint
	} else if e.Column != "" {
		s += " on " + e.Column
	}
	return s + ": " + e.Err.Error()
}

func (e *ConstraintError) Unwrap() error { return e.Err }

// MapDBError turns Postgres and SQLite integrity errors into a
// *ConstraintError. Anything else is returned unchanged.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23502":
			return &ConstraintError{Kind: NotNull, Constraint: pgErr.ConstraintName, Column: pgErr.ColumnName, Err: err}
		case "23514":
			return &ConstraintError{Kind: Check, Constraint: pgErr.ConstraintName, Column: pgErr.ColumnName, Err: err}
		case "23505":
			return &ConstraintError{Kind: Unique, Constraint: pgErr.ConstraintName, Column: pgErr.ColumnName, Err: err}
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		name := sqliteConstraintName(liteErr.Error())
		switch liteErr.Code() {
		case sqlite3.SQLITE_CONSTRAINT_NOTNULL:
			return &ConstraintError{Kind: NotNull, Column: columnOf(name), Err: err}
		case sqlite3.SQLITE_CONSTRAINT_CHECK:
			return &ConstraintError{Kind: Check, Constraint: name, Err: err}
		case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
			return &ConstraintError{Kind: Unique, Column: columnOf(name), Err: err}
		}
	}
	return err
}

// sqliteConstraintName pulls "books.title" or "books_title_not_blank" out
// of messages like "constraint failed: CHECK constraint failed: books_title_not_blank (275)".
func sqliteConstraintName(msg string) string {
	const marker = "constraint failed: "
	if i := strings.LastIndex(msg, marker); i >= 0 {
		msg = msg[i+len(marker):]
	}
	if j := strings.Index(msg, " ("); j >= 0 {
		msg = msg[:j]
	}
	return strings.TrimSpace(msg)
}

func columnOf(qualified string) string {
	if k := strings.LastIndex(qualified, "."); k >= 0 {
		return qualified[k+1:]
	}
	return qualified
}

// IsConstraint reports whether err is an integrity violation of kind.
func IsConstraint(err error, kind ConstraintKind) bool {
	var ce *ConstraintError
	return errors.As(MapDBError(err), &ce) && ce.Kind == kind
}
