package catalog

import (
	"context"
	"errors"

	"github.com/5w1tchy/book-catalog/internal/validate"
)

// Status tags the outcome of a catalog operation.
type Status string

const (
	StatusInvalid  Status = "invalid"
	StatusCreated  Status = "created"
	StatusFound    Status = "found"
	StatusNotFound Status = "not_found"
	StatusUpdated  Status = "updated"
	StatusDeleted  Status = "deleted"
)

// Result is the outcome of a single-book operation. Which fields are set
// depends on Status: Book for found/created/updated, ID for created,
// Errors and Rejected for invalid.
type Result struct {
	Status   Status
	ID       int64
	Book     Book
	Errors   validate.Errors
	Rejected Candidate
}

// ListResult is one page of a listing.
type ListResult struct {
	Books      []Book
	Term       string
	Page       int
	TotalBooks int
	TotalPages int
}

// Service runs the catalog operations against a Storage.
// Errors it returns are storage faults; every user-level outcome is a Result.
type Service struct {
	store Storage
}

func NewService(store Storage) *Service {
	return &Service{store: store}
}

// List returns the requested page of books matching term, sorted by title.
func (s *Service) List(ctx context.Context, term string, page int) (ListResult, error) {
	q := BuildSearch(term, page)

	books, err := s.store.FindAll(ctx, q)
	if err != nil {
		return ListResult{}, err
	}
	total, err := s.store.Count(ctx, q.Filter)
	if err != nil {
		return ListResult{}, err
	}
	if books == nil {
		books = []Book{}
	}
	return ListResult{
		Books:      books,
		Term:       q.Filter.Term,
		Page:       q.Offset/q.Limit + 1,
		TotalBooks: total,
		TotalPages: TotalPages(total, q.Limit),
	}, nil
}

// Create validates in and persists it as a new book.
func (s *Service) Create(ctx context.Context, in Input) (Result, error) {
	cand := NewCandidate(in)
	if errs := cand.Validate(); !errs.Valid() {
		return invalid(0, errs, Candidate{}.Echo(in)), nil
	}

	b, err := s.store.Insert(ctx, cand.Book(0))
	if err != nil {
		if fault, ok := asValidationFault(err); ok {
			return invalid(0, fault.Errors, Candidate{}.Echo(in)), nil
		}
		return Result{}, err
	}
	return Result{Status: StatusCreated, ID: b.ID, Book: b}, nil
}

// ReadOne fetches a book by id.
func (s *Service) ReadOne(ctx context.Context, id int64) (Result, error) {
	b, err := s.store.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Result{Status: StatusNotFound, ID: id}, nil
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Status: StatusFound, ID: b.ID, Book: b}, nil
}

// Update applies the submitted fields of in to the book with id.
// Unsubmitted fields keep their stored values; the merged record must
// pass the same rules as a new book.
func (s *Service) Update(ctx context.Context, id int64, in Input) (Result, error) {
	stored, err := s.store.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Result{Status: StatusNotFound, ID: id}, nil
	}
	if err != nil {
		return Result{}, err
	}

	cand := CandidateFrom(stored).Overlay(in)
	if errs := cand.Validate(); !errs.Valid() {
		r := invalid(id, errs, CandidateFrom(stored).Echo(in))
		r.Book = stored
		return r, nil
	}

	b, err := s.store.ApplyUpdate(ctx, cand.Book(id), in.Fields())
	switch {
	case errors.Is(err, ErrNotFound):
		return Result{Status: StatusNotFound, ID: id}, nil
	case err != nil:
		if fault, ok := asValidationFault(err); ok {
			r := invalid(id, fault.Errors, CandidateFrom(stored).Echo(in))
			r.Book = stored
			return r, nil
		}
		return Result{}, err
	}
	return Result{Status: StatusUpdated, ID: id, Book: b}, nil
}

// Delete removes the book with id.
func (s *Service) Delete(ctx context.Context, id int64) (Result, error) {
	b, err := s.store.FindByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return Result{Status: StatusNotFound, ID: id}, nil
	}
	if err != nil {
		return Result{}, err
	}

	err = s.store.Remove(ctx, b)
	if errors.Is(err, ErrNotFound) {
		return Result{Status: StatusNotFound, ID: id}, nil
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Status: StatusDeleted, ID: id, Book: b}, nil
}

// invalid tags a rejection. rejected holds the submitted text unmodified.
func invalid(id int64, errs validate.Errors, rejected Candidate) Result {
	return Result{Status: StatusInvalid, ID: id, Errors: errs, Rejected: rejected}
}

func asValidationFault(err error) (*ValidationFault, bool) {
	var fault *ValidationFault
	if errors.As(err, &fault) {
		return fault, true
	}
	return nil, false
}
