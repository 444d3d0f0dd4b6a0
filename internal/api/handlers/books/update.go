package books

import (
	"net/http"

	"github.com/5w1tchy/book-catalog/internal/api/httpx"
	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/view"
)

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	in, err := readInput(r)
	if err != nil {
		h.badInput(w, r, err)
		return
	}

	res, err := h.svc.Update(r.Context(), id, in)
	if err != nil {
		h.fail(w, r, "update", err)
		return
	}

	switch res.Status {
	case catalog.StatusNotFound:
		h.notFound(w, r)
	case catalog.StatusInvalid:
		h.invalid(w, r, view.PageEditBook, "Update Book", res)
	default:
		if httpx.WantsJSON(r) {
			httpx.OK(w, res.Book)
			return
		}
		seeOther(w, r, "/books")
	}
}
