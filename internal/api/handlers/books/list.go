package books

import (
	"net/http"

	"github.com/5w1tchy/book-catalog/internal/api/httpx"
	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/view"
)

type listMeta struct {
	Q          string `json:"q,omitempty"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int    `json:"total_pages"`
	TotalBooks int    `json:"total_books"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := h.svc.List(r.Context(), q.Get("q"), catalog.ParsePage(q.Get("page")))
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}

	if httpx.WantsJSON(r) {
		httpx.Page(w, res.Books, listMeta{
			Q:          res.Term,
			Page:       res.Page,
			PageSize:   catalog.PageSize,
			TotalPages: res.TotalPages,
			TotalBooks: res.TotalBooks,
		})
		return
	}
	h.render(w, r, http.StatusOK, view.PageIndex, "Books", view.ListData{
		Books:      res.Books,
		Term:       res.Term,
		Page:       res.Page,
		TotalPages: res.TotalPages,
		TotalBooks: res.TotalBooks,
	})
}
