package books

import (
	"net/http"
	"regexp"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// Positive decimal ids only; no signs, no leading zeros.
var idRe = regexp.MustCompile(`^[1-9][0-9]{0,18}$`)

// bookID reads {id} from the route. ok is false for anything that cannot
// name a stored book.
func bookID(r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	if !idRe.MatchString(raw) {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
