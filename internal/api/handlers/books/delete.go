package books

import (
	"net/http"

	"github.com/5w1tchy/book-catalog/internal/api/httpx"
	"github.com/5w1tchy/book-catalog/internal/catalog"
)

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, ok := bookID(r)
	if !ok {
		h.notFound(w, r)
		return
	}

	res, err := h.svc.Delete(r.Context(), id)
	if err != nil {
		h.fail(w, r, "delete", err)
		return
	}
	if res.Status == catalog.StatusNotFound {
		h.notFound(w, r)
		return
	}

	if httpx.WantsJSON(r) || r.Method == http.MethodDelete {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	seeOther(w, r, "/books")
}
