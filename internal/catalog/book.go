// Package catalog holds the book catalog's entity, its validation rules,
// the search/pagination query model, and the operations that serve
// list, create, read, update and delete requests.
package catalog

import (
	"context"
	"errors"
	"strconv"

	"github.com/5w1tchy/book-catalog/internal/validate"
)

// ErrNotFound is returned by Storage when no book has the requested id.
var ErrNotFound = errors.New("book not found")

// Book is a persisted catalog record. Genre and Year are nil when absent.
type Book struct {
	ID     int64   `json:"id"`
	Title  string  `json:"title"`
	Author string  `json:"author"`
	Genre  *string `json:"genre"`
	Year   *int    `json:"year"`
}

// GenreText returns the genre or "" when absent.
func (b Book) GenreText() string {
	if b.Genre == nil {
		return ""
	}
	return *b.Genre
}

// YearText returns the year in decimal or "" when absent.
func (b Book) YearText() string {
	if b.Year == nil {
		return ""
	}
	return strconv.Itoa(*b.Year)
}

// Field names a mutable column of Book.
type Field string

const (
	FieldTitle  Field = "title"
	FieldAuthor Field = "author"
	FieldGenre  Field = "genre"
	FieldYear   Field = "year"
)

// ValidationFault reports that a write was rejected by a storage constraint.
type ValidationFault struct {
	Errors validate.Errors
	Err    error
}

func (f *ValidationFault) Error() string {
	if len(f.Errors) == 0 && f.Err != nil {
		return "validation: " + f.Err.Error()
	}
	return "validation: " + f.Errors.Error()
}

func (f *ValidationFault) Unwrap() error { return f.Err }

// Storage is the persistence port the catalog operations run against.
//
// FindByID and Remove return ErrNotFound for a missing id. Insert and
// ApplyUpdate return a *ValidationFault when a constraint rejects the row.
// Every other error is a storage fault and is passed through untouched.
type Storage interface {
	FindAll(ctx context.Context, s Search) ([]Book, error)
	Count(ctx context.Context, f Filter) (int, error)
	FindByID(ctx context.Context, id int64) (Book, error)
	Insert(ctx context.Context, b Book) (Book, error)
	ApplyUpdate(ctx context.Context, b Book, fields []Field) (Book, error)
	Remove(ctx context.Context, b Book) error
}
