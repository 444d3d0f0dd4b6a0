package middlewares_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	mw "github.com/5w1tchy/book-catalog/internal/api/middlewares"
)

func TestHPP_QueryCollapsesAndFilters(t *testing.T) {
	var got url.Values
	handler := mw.HPP(mw.DefaultHPPOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
	}))

	req := httptest.NewRequest("GET", "/books?q=dune&q=emma&page=2&debug=1", nil)
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got.Get("q") != "dune" || len(got["q"]) != 1 {
		t.Errorf("Expected first q only, got %v", got["q"])
	}
	if got.Get("page") != "2" {
		t.Errorf("Expected page=2, got %q", got.Get("page"))
	}
	if got.Has("debug") {
		t.Error("Expected debug to be dropped")
	}
}

func TestHPP_FormBody(t *testing.T) {
	var form url.Values
	handler := mw.HPP(mw.DefaultHPPOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		form = r.PostForm
	}))

	body := strings.NewReader("title=Dune&title=Other&author=Herbert&role=admin")
	req := httptest.NewRequest("POST", "/books", body)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if len(form["title"]) != 1 || form.Get("title") != "Dune" {
		t.Errorf("Expected single title Dune, got %v", form["title"])
	}
	if form.Get("author") != "Herbert" {
		t.Errorf("Expected author Herbert, got %q", form.Get("author"))
	}
	if form.Has("role") {
		t.Error("Expected role to be dropped")
	}
}

func TestHPP_BodyTooLarge(t *testing.T) {
	called := false
	handler := mw.BodySizeLimit(16)(mw.HPP(mw.DefaultHPPOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	})))

	req := httptest.NewRequest("POST", "/books", strings.NewReader("title="+strings.Repeat("x", 64)))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("Expected 413, got %d", rec.Code)
	}
	if called {
		t.Error("Handler should not run")
	}
}

func TestHPP_IgnoresJSONBodies(t *testing.T) {
	var raw string
	handler := mw.HPP(mw.DefaultHPPOptions())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b := new(strings.Builder)
		_, _ = io.Copy(b, r.Body)
		raw = b.String()
	}))

	req := httptest.NewRequest("POST", "/books", strings.NewReader(`{"title":"Dune"}`))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if raw != `{"title":"Dune"}` {
		t.Errorf("Expected JSON body untouched, got %q", raw)
	}
}
