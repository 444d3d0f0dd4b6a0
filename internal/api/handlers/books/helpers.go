package books

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/5w1tchy/book-catalog/internal/api/apperr"
	"github.com/5w1tchy/book-catalog/internal/api/httpx"
	mw "github.com/5w1tchy/book-catalog/internal/api/middlewares"
	"github.com/5w1tchy/book-catalog/internal/catalog"
	"github.com/5w1tchy/book-catalog/internal/view"
)

var errBadBody = errors.New("malformed request body")

// readInput collects submitted fields from a JSON or form body. Fields the
// client did not send stay nil.
func readInput(r *http.Request) (catalog.Input, error) {
	if httpx.IsJSONBody(r) {
		return jsonInput(r)
	}
	if err := r.ParseForm(); err != nil {
		return catalog.Input{}, err
	}
	field := func(name string) *string {
		v, ok := r.PostForm[name]
		if !ok || len(v) == 0 {
			return nil
		}
		s := v[0]
		return &s
	}
	return catalog.Input{
		Title:  field("title"),
		Author: field("author"),
		Genre:  field("genre"),
		Year:   field("year"),
	}, nil
}

type bookPayload struct {
	Title  json.RawMessage `json:"title"`
	Author json.RawMessage `json:"author"`
	Genre  json.RawMessage `json:"genre"`
	Year   json.RawMessage `json:"year"`
}

func jsonInput(r *http.Request) (catalog.Input, error) {
	defer r.Body.Close()

	var body bookPayload
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return catalog.Input{}, err
		}
		return catalog.Input{}, fmt.Errorf("%w: %v", errBadBody, err)
	}

	var in catalog.Input
	var err error
	for _, f := range []struct {
		name string
		raw  json.RawMessage
		dst  **string
	}{
		{"title", body.Title, &in.Title},
		{"author", body.Author, &in.Author},
		{"genre", body.Genre, &in.Genre},
		{"year", body.Year, &in.Year},
	} {
		if *f.dst, err = textField(f.raw); err != nil {
			return catalog.Input{}, fmt.Errorf("%w: %s: %v", errBadBody, f.name, err)
		}
	}
	return in, nil
}

// textField maps a JSON value to submitted text: absent is nil, null is
// empty, strings are taken as-is and numbers by their literal text.
func textField(raw json.RawMessage) (*string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}
	if bytes.Equal(raw, []byte("null")) {
		s := ""
		return &s, nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return nil, err
		}
		return &s, nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return nil, err
		}
		s := n.String()
		return &s, nil
	}
	return nil, errors.New("must be a string or number")
}

// badInput answers a body that could not be read at all.
func (h *Handler) badInput(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		apperr.WriteStatus(w, r, http.StatusRequestEntityTooLarge, "Request Entity Too Large", "body exceeds limit")
		return
	}
	if httpx.WantsJSON(r) {
		apperr.WriteStatus(w, r, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	http.Error(w, "Bad Request", http.StatusBadRequest)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, page, title string, content any) {
	body, err := h.view.Render(page, view.Page{
		Title:     title,
		CSRFToken: mw.CSRFToken(r),
		Content:   content,
	})
	if err != nil {
		h.log.Error("render failed",
			zap.Error(err),
			zap.String("page", page),
			zap.String("request_id", mw.GetRequestID(r)))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (h *Handler) notFound(w http.ResponseWriter, r *http.Request) {
	if httpx.WantsJSON(r) {
		apperr.WriteStatus(w, r, http.StatusNotFound, "Not Found", "book not found")
		return
	}
	h.render(w, r, http.StatusNotFound, view.PageNotFound, "Page Not Found",
		view.ErrorData{Message: "Sorry! We couldn't find the book you were looking for."})
}

// fail logs a storage fault and answers 500 without exposing the cause.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	rid := mw.GetRequestID(r)
	h.log.Error("catalog operation failed",
		zap.String("op", op),
		zap.Error(err),
		zap.String("request_id", rid))

	if httpx.WantsJSON(r) {
		apperr.WriteStatus(w, r, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	h.render(w, r, http.StatusInternalServerError, view.PageError, "Server Error",
		view.ErrorData{Message: "Sorry! There was an unexpected error on the server.", RequestID: rid})
}

// invalid re-renders the form with messages and the rejected values.
func (h *Handler) invalid(w http.ResponseWriter, r *http.Request, page, title string, res catalog.Result) {
	if httpx.WantsJSON(r) {
		apperr.Validation(w, r, res.Errors)
		return
	}
	h.render(w, r, http.StatusUnprocessableEntity, page, title, view.FormData{
		ID:     res.ID,
		Values: res.Rejected,
		Errors: res.Errors,
	})
}

func seeOther(w http.ResponseWriter, r *http.Request, to string) {
	http.Redirect(w, r, to, http.StatusSeeOther)
}
