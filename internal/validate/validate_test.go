package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/5w1tchy/book-catalog/internal/validate"
)

type form struct {
	Title string `json:"title" validate:"notblank"`
	Note  string `json:"note"`
	Year  string `json:"year" validate:"omitempty,year"`
}

func TestStruct_Valid(t *testing.T) {
	v := validate.New()
	errs := v.Struct(form{Title: "Dune", Year: "1965"})
	assert.True(t, errs.Valid())
	assert.Empty(t, errs.Error())
}

func TestStruct_BlankAndBadYear(t *testing.T) {
	v := validate.New()
	errs := v.Struct(form{Title: "   ", Year: "nineteen"})
	require.Len(t, errs, 2)

	assert.Equal(t, "title", errs[0].Field)
	assert.Equal(t, "Please enter a value for 'title'", errs[0].Message)
	assert.Equal(t, "year", errs[1].Field)
	assert.Equal(t, "Please enter a whole number for 'year'", errs[1].Message)

	assert.True(t, errs.Has("year"))
	assert.False(t, errs.Has("note"))
	assert.Equal(t, "Please enter a value for 'title'; Please enter a whole number for 'year'", errs.Error())
}

func TestStruct_EmptyYearIsOptional(t *testing.T) {
	v := validate.New()
	assert.True(t, v.Struct(form{Title: "x"}).Valid())
}

func TestStruct_YearFitsColumn(t *testing.T) {
	v := validate.New()
	for _, y := range []string{"-2147483648", "2147483647", " 1965 "} {
		assert.True(t, v.Struct(form{Title: "x", Year: y}).Valid(), y)
	}
	for _, y := range []string{"3000000000", "2147483648", "-2147483649"} {
		errs := v.Struct(form{Title: "x", Year: y})
		assert.Equal(t, "Please enter a whole number for 'year'", errs.For("year"), y)
	}
}

func TestParseYear(t *testing.T) {
	n, err := validate.ParseYear(" 1965")
	require.NoError(t, err)
	assert.Equal(t, 1965, n)

	_, err = validate.ParseYear("3000000000")
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"  Dune  ":          "Dune",
		"The\t\tLeft  Hand": "The\t\tLeft  Hand",
		"Two  spaces":       "Two  spaces",
		"nul\x00byte":       "nulbyte",
		"Cafe\u0301":        "Caf\u00e9",
		"":                  "",
		" \n ":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, validate.Sanitize(in), "input %q", in)
	}
}

func TestSanitizeTerm(t *testing.T) {
	cases := map[string]string{
		"  Dune  ":          "Dune",
		"The\t\tLeft  Hand": "The Left Hand",
		"nul\x00byte":       "nulbyte",
		"Cafe\u0301":        "Caf\u00e9",
		" \n ":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, validate.SanitizeTerm(in), "input %q", in)
	}
}
