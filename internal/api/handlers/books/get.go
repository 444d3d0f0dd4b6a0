package books

import (
	"net/http"

	"github.com/5w1tchy/book-catalog/internal/api/httpx"
	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/view"
)

func (h *Handler) newForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, view.PageNewBook, "New Book", view.FormData{})
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r)
	if !ok {
		h.notFound(w, r)
		return
	}
	res, err := h.svc.ReadOne(r.Context(), id)
	if err != nil {
		h.fail(w, r, "read", err)
		return
	}
	if res.Status == catalog.StatusNotFound {
		h.notFound(w, r)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.OK(w, res.Book)
		return
	}
	h.render(w, r, http.StatusOK, view.PageEditBook, "Update Book", view.FormData{
		ID:     res.Book.ID,
		Values: catalog.CandidateFrom(res.Book),
	})
}

// HEAD semantics:
// - /books/{id} → 200 if exists, 404 if not (no body)
func (h *Handler) head(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	res, err := h.svc.ReadOne(r.Context(), id)
	if err != nil {
		h.fail(w, r, "read", err)
		return
	}
	if res.Status == catalog.StatusNotFound {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusOK)
}
