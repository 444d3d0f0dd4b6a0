package apperr

import (
	"encoding/json"
	"net/http"

	"github.com/5w1tchy/book-catalog/internal/validate"
)

type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`    // e.g. "required", "invalid"
	Message string `json:"message"` // human readable
}

type Problem struct {
	Type        string       `json:"type,omitempty"`   // RFC7807 type URI
	Title       string       `json:"title"`            // short summary
	Status      int          `json:"status"`           // HTTP status code
	Detail      string       `json:"detail,omitempty"` // human details
	Instance    string       `json:"instance,omitempty"`
	RequestID   string       `json:"request_id,omitempty"`
	FieldErrors []FieldError `json:"field_errors,omitempty"`
}

func Write(w http.ResponseWriter, r *http.Request, p Problem) {
	if p.Status == 0 {
		p.Status = http.StatusInternalServerError
	}
	if p.Title == "" {
		p.Title = http.StatusText(p.Status)
	}
	if p.Instance == "" && r != nil {
		p.Instance = r.URL.Path
	}
	if p.RequestID == "" && r != nil {
		// set on the request by the RequestID middleware
		if rid := r.Header.Get("X-Request-ID"); rid != "" {
			p.RequestID = rid
		}
	}
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	_ = json.NewEncoder(w).Encode(p)
}

// Convenience: fast write with just status+title+detail
func WriteStatus(w http.ResponseWriter, r *http.Request, status int, title, detail string) {
	Write(w, r, Problem{Status: status, Title: title, Detail: detail})
}

// Validation writes a 422 carrying one FieldError per validation message.
func Validation(w http.ResponseWriter, r *http.Request, errs validate.Errors) {
	fes := make([]FieldError, 0, len(errs))
	for _, e := range errs {
		code := "invalid"
		if e.Message == validate.RequiredMessage(e.Field) {
			code = "required"
		}
		fes = append(fes, FieldError{Field: e.Field, Code: code, Message: e.Message})
	}
	Write(w, r, Problem{
		Status:      http.StatusUnprocessableEntity,
		Title:       "Validation failed",
		FieldErrors: fes,
	})
}
