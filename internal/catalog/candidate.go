package catalog

import "github.com/5w1tchy/book-catalog/internal/validate"

var checker = validate.New()

// Input is raw user-entered text. A nil field was not submitted.
type Input struct {
	Title  *string `json:"title"`
	Author *string `json:"author"`
	Genre  *string `json:"genre"`
	Year   *string `json:"year"`
}

// Fields lists the submitted fields in column order.
func (in Input) Fields() []Field {
	var out []Field
	if in.Title != nil {
		out = append(out, FieldTitle)
	}
	if in.Author != nil {
		out = append(out, FieldAuthor)
	}
	if in.Genre != nil {
		out = append(out, FieldGenre)
	}
	if in.Year != nil {
		out = append(out, FieldYear)
	}
	return out
}

// Candidate is the text form of a book about to be written, or of a
// rejected submission echoed back to the user.
type Candidate struct {
	Title  string `json:"title" validate:"notblank"`
	Author string `json:"author" validate:"notblank"`
	Genre  string `json:"genre"`
	Year   string `json:"year" validate:"omitempty,year"`
}

// NewCandidate builds a candidate from submitted input only.
func NewCandidate(in Input) Candidate {
	return Candidate{}.Overlay(in)
}

// CandidateFrom renders a stored book as a candidate.
func CandidateFrom(b Book) Candidate {
	return Candidate{
		Title:  b.Title,
		Author: b.Author,
		Genre:  b.GenreText(),
		Year:   b.YearText(),
	}
}

// Overlay replaces the fields that in mentions, sanitizing each.
func (c Candidate) Overlay(in Input) Candidate {
	return c.overlay(in, validate.Sanitize)
}

// Echo replaces the fields that in mentions with the text as submitted.
func (c Candidate) Echo(in Input) Candidate {
	return c.overlay(in, func(s string) string { return s })
}

func (c Candidate) overlay(in Input, clean func(string) string) Candidate {
	if in.Title != nil {
		c.Title = clean(*in.Title)
	}
	if in.Author != nil {
		c.Author = clean(*in.Author)
	}
	if in.Genre != nil {
		c.Genre = clean(*in.Genre)
	}
	if in.Year != nil {
		c.Year = clean(*in.Year)
	}
	return c
}

// Validate returns the rule violations of c in field order.
func (c Candidate) Validate() validate.Errors {
	return checker.Struct(c)
}

// Book converts a validated candidate into a Book with the given id.
// Empty genre and year become absent.
func (c Candidate) Book(id int64) Book {
	b := Book{ID: id, Title: c.Title, Author: c.Author}
	if c.Genre != "" {
		g := c.Genre
		b.Genre = &g
	}
	if c.Year != "" {
		if y, err := validate.ParseYear(c.Year); err == nil {
			b.Year = &y
		}
	}
	return b
}
