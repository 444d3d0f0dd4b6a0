package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/book-catalog/internal/catalog"
)

func ptr(s string) *string { return &s }

func TestCandidate_Validate(t *testing.T) {
	tests := []struct {
		name   string
		in     catalog.Input
		fields []string
	}{
		{"complete", catalog.Input{Title: ptr("Dune"), Author: ptr("Frank Herbert"), Genre: ptr("SF"), Year: ptr("1965")}, nil},
		{"only required", catalog.Input{Title: ptr("Dune"), Author: ptr("Frank Herbert")}, nil},
		{"nothing", catalog.Input{}, []string{"title", "author"}},
		{"blank title", catalog.Input{Title: ptr("   "), Author: ptr("A")}, []string{"title"}},
		{"blank author", catalog.Input{Title: ptr("T"), Author: ptr("\t")}, []string{"author"}},
		{"bad year", catalog.Input{Title: ptr("T"), Author: ptr("A"), Year: ptr("soon")}, []string{"year"}},
		{"year beyond int32", catalog.Input{Title: ptr("T"), Author: ptr("A"), Year: ptr("3000000000")}, []string{"year"}},
		{"all bad", catalog.Input{Title: ptr(""), Author: ptr(""), Year: ptr("1.5")}, []string{"title", "author", "year"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			errs := catalog.NewCandidate(tc.in).Validate()
			var got []string
			for _, fe := range errs {
				got = append(got, fe.Field)
			}
			assert.Equal(t, tc.fields, got)
		})
	}
}

func TestCandidate_Messages(t *testing.T) {
	errs := catalog.NewCandidate(catalog.Input{}).Validate()
	require.Len(t, errs, 2)
	assert.Equal(t, "Please enter a value for 'title'", errs[0].Message)
	assert.Equal(t, "Please enter a value for 'author'", errs[1].Message)
}

func TestCandidate_Book(t *testing.T) {
	b := catalog.NewCandidate(catalog.Input{
		Title:  ptr("  The   Hobbit "),
		Author: ptr("Tolkien"),
		Genre:  ptr(""),
		Year:   ptr("1937"),
	}).Book(7)

	assert.Equal(t, int64(7), b.ID)
	assert.Equal(t, "The   Hobbit", b.Title)
	assert.Nil(t, b.Genre)
	require.NotNil(t, b.Year)
	assert.Equal(t, 1937, *b.Year)
	assert.Equal(t, "1937", b.YearText())
	assert.Equal(t, "", b.GenreText())
}

func TestCandidate_OverlayKeepsUnmentioned(t *testing.T) {
	genre, year := "Fantasy", 1937
	stored := catalog.Book{ID: 1, Title: "The Hobbit", Author: "Tolkien", Genre: &genre, Year: &year}

	c := catalog.CandidateFrom(stored).Overlay(catalog.Input{Title: ptr("There and Back Again")})
	assert.Equal(t, catalog.Candidate{Title: "There and Back Again", Author: "Tolkien", Genre: "Fantasy", Year: "1937"}, c)
}

func TestCandidate_EchoKeepsRawText(t *testing.T) {
	stored := catalog.Book{ID: 1, Title: "The Hobbit", Author: "Tolkien"}

	c := catalog.CandidateFrom(stored).Echo(catalog.Input{Author: ptr("  "), Year: ptr(" 19x7 ")})
	assert.Equal(t, catalog.Candidate{Title: "The Hobbit", Author: "  ", Year: " 19x7 "}, c)
}

func TestInput_Fields(t *testing.T) {
	in := catalog.Input{Author: ptr("x"), Year: ptr("")}
	assert.Equal(t, []catalog.Field{catalog.FieldAuthor, catalog.FieldYear}, in.Fields())
	assert.Empty(t, catalog.Input{}.Fields())
}
