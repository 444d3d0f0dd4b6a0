package books

import (
	"net/http"
	"strconv"

	"github.com/5w1tchy/book-catalog/internal/api/httpx"
	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/view"
)

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	in, err := readInput(r)
	if err != nil {
		h.badInput(w, r, err)
		return
	}

	res, err := h.svc.Create(r.Context(), in)
	if err != nil {
		h.fail(w, r, "create", err)
		return
	}

	switch res.Status {
	case catalog.StatusInvalid:
		h.invalid(w, r, view.PageNewBook, "New Book", res)
	default:
		if httpx.WantsJSON(r) {
			httpx.Created(w, "/books/"+strconv.FormatInt(res.ID, 10), res.Book)
			return
		}
		seeOther(w, r, "/books")
	}
}
