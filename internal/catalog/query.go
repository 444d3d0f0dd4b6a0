package catalog

import (
	"strconv"
	"strings"

	"github.com/5w1tchy/book-catalog/internal/validate"
)

// PageSize is the fixed number of books per listing page.
const PageSize = 5

// Filter selects books whose title, author, genre or year contains Term,
// ignoring case. An empty Term selects every book.
type Filter struct {
	Term string
}

func (f Filter) IsZero() bool { return f.Term == "" }

// Order is one ORDER BY key. Column is a Book field name.
type Order struct {
	Column string
	Desc   bool
}

// Search is a fully resolved listing query.
type Search struct {
	Filter  Filter
	OrderBy []Order
	Limit   int
	Offset  int
}

// DefaultOrder sorts by title, with id as a stable tiebreak across pages.
var DefaultOrder = []Order{{Column: "title"}, {Column: "id"}}

// BuildSearch resolves a search term and 1-based page into a Search.
// Pages below 1 are treated as 1.
func BuildSearch(term string, page int) Search {
	if page < 1 {
		page = 1
	}
	return Search{
		Filter:  Filter{Term: validate.SanitizeTerm(term)},
		OrderBy: DefaultOrder,
		Limit:   PageSize,
		Offset:  PageSize * (page - 1),
	}
}

// ParsePage reads a page number from a query string value.
// Missing, malformed or non-positive values yield 1.
func ParsePage(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

// TotalPages is ceil(total/limit), and 0 when there is nothing to show.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
