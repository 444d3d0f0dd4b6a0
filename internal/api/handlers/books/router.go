// Package books serves the catalog's HTML pages and their JSON variants.
package books

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/view"
)

type Handler struct {
	svc  *catalog.Service
	view *view.Renderer
	log  *zap.Logger
}

func New(svc *catalog.Service, v *view.Renderer, log *zap.Logger) *Handler {
	return &Handler{svc: svc, view: v, log: log}
}

// Routes mounts the catalog routes:
//
//	GET  /                   redirect to /books
//	GET  /books              list + search (?q=, ?page=)
//	GET  /books/new          empty create form
//	POST /books              create
//	GET  /books/{id}         update form (or the book, as JSON)
//	HEAD /books/{id}         existence check
//	POST /books/{id}         update
//	POST /books/{id}/delete  delete (DELETE /books/{id} for JSON clients)
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/books", http.StatusFound)
	})
	r.Route("/books", func(r chi.Router) {
		r.Get("/", h.list)
		r.Post("/", h.create)
		r.Get("/new", h.newForm)
		r.Get("/{id}", h.get)
		r.Head("/{id}", h.head)
		r.Post("/{id}", h.update)
		r.Post("/{id}/delete", h.delete)
		r.Delete("/{id}", h.delete)
	})
}
