package seed_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/seed"
	"github.com/5w1tchy/book-catalog/internal/store/books"
	"github.com/5w1tchy/book-catalog/internal/store/dbx"
	"github.com/5w1tchy/book-catalog/internal/testutil"
)

func TestParse(t *testing.T) {
	f, err := os.Open("testdata/books.yaml")
	require.NoError(t, err)
	defer f.Close()

	file, err := seed.Parse(f)
	require.NoError(t, err)
	require.Len(t, file.Books, 4)

	in := file.Books[0].Input()
	require.NotNil(t, in.Year)
	assert.Equal(t, "1965", *in.Year)

	in = file.Books[1].Input()
	require.NotNil(t, in.Year)
	assert.Equal(t, "1815", *in.Year)

	in = file.Books[3].Input()
	assert.Nil(t, in.Genre)
	assert.Nil(t, in.Year)
}

func TestParse_UnknownField(t *testing.T) {
	_, err := seed.Parse(strings.NewReader("books:\n  - title: x\n    isbn: 123\n"))
	assert.Error(t, err)
}

func TestParse_Empty(t *testing.T) {
	f, err := seed.Parse(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, f.Books)
}

func TestRun(t *testing.T) {
	f, err := os.Open("testdata/books.yaml")
	require.NoError(t, err)
	defer f.Close()
	file, err := seed.Parse(f)
	require.NoError(t, err)

	svc := catalog.NewService(books.New(testutil.NewSQLiteDB(t), dbx.SQLite))
	rep, err := seed.Run(t.Context(), svc, file, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, seed.Report{Created: 3, Skipped: 1}, rep)

	res, err := svc.List(t.Context(), "", 1)
	require.NoError(t, err)
	assert.Equal(t, 3, res.TotalBooks)
	assert.Equal(t, "Dune", res.Books[0].Title)
}
