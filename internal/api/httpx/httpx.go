package httpx

import (
	"encoding/json"
	"mime"
	"net/http"
	"strings"
)

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func OK(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "success", "data": data})
}

func Created(w http.ResponseWriter, location string, data any) {
	if location != "" {
		w.Header().Set("Location", location)
	}
	WriteJSON(w, http.StatusCreated, map[string]any{"status": "success", "data": data})
}

// Page writes a list payload with its paging metadata.
func Page(w http.ResponseWriter, data any, meta any) {
	WriteJSON(w, http.StatusOK, map[string]any{"status": "success", "data": data, "meta": meta})
}

// WantsJSON reports whether the client asked for JSON, either by Accept or
// by sending a JSON body.
func WantsJSON(r *http.Request) bool {
	if isJSON(r.Header.Get("Content-Type")) {
		return true
	}
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		if isJSON(part) {
			return true
		}
	}
	return false
}

// IsJSONBody reports whether the request body is declared as JSON.
func IsJSONBody(r *http.Request) bool {
	return isJSON(r.Header.Get("Content-Type"))
}

func isJSON(v string) bool {
	mt, _, err := mime.ParseMediaType(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	return mt == "application/json" || strings.HasSuffix(mt, "+json")
}
