package catalog_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/5w1tchy/book-catalog/internal/catalog"
)

func TestBuildSearch(t *testing.T) {
	s := catalog.BuildSearch("  fantasy  ", 3)
	assert.Equal(t, "fantasy", s.Filter.Term)
	assert.Equal(t, 5, s.Limit)
	assert.Equal(t, 10, s.Offset)
	assert.Equal(t, catalog.DefaultOrder, s.OrderBy)
}

func TestBuildSearch_Table(t *testing.T) {
	tests := []struct {
		name string
		term string
		page int
		want catalog.Search
	}{
		{"first page", "", 1, catalog.Search{OrderBy: catalog.DefaultOrder, Limit: 5}},
		{"second page", "dune", 2, catalog.Search{Filter: catalog.Filter{Term: "dune"}, OrderBy: catalog.DefaultOrder, Limit: 5, Offset: 5}},
		{"whitespace term", " \t ", 4, catalog.Search{OrderBy: catalog.DefaultOrder, Limit: 5, Offset: 15}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, catalog.BuildSearch(tt.term, tt.page)); diff != "" {
				t.Errorf("BuildSearch(%q, %d) mismatch (-want +got):\n%s", tt.term, tt.page, diff)
			}
		})
	}
}

func TestBuildSearch_FirstPageAndClamp(t *testing.T) {
	for _, page := range []int{1, 0, -4} {
		s := catalog.BuildSearch("", page)
		assert.Equal(t, 0, s.Offset, "page %d", page)
		assert.True(t, s.Filter.IsZero())
	}
}

func TestParsePage(t *testing.T) {
	cases := map[string]int{
		"":    1,
		"1":   1,
		"2":   2,
		" 7 ": 7,
		"0":   1,
		"-3":  1,
		"abc": 1,
		"2.5": 1,
	}
	for raw, want := range cases {
		assert.Equal(t, want, catalog.ParsePage(raw), "raw %q", raw)
	}
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, catalog.TotalPages(12, 5))
	assert.Equal(t, 0, catalog.TotalPages(0, 5))
	assert.Equal(t, 1, catalog.TotalPages(5, 5))
	assert.Equal(t, 2, catalog.TotalPages(6, 5))
	assert.Equal(t, 1, catalog.TotalPages(1, 5))
}
