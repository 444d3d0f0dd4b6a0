package middlewares

import (
	"errors"
	"net/http"
	"slices"
	"strings"
)

// HPPOptions configures HTTP parameter pollution filtering: repeated
// parameters collapse to their first value and unlisted ones are dropped.
type HPPOptions struct {
	CheckQuery                  bool
	CheckBody                   bool
	CheckBodyOnlyForContentType string
	Whitelist                   []string
}

func HPP(opts HPPOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opts.CheckBody && r.Method == http.MethodPost && isCorrectContentType(r, opts.CheckBodyOnlyForContentType) {
				if err := filterBodyParams(r, opts.Whitelist); err != nil {
					var tooLarge *http.MaxBytesError
					if errors.As(err, &tooLarge) {
						http.Error(w, "Request Entity Too Large", http.StatusRequestEntityTooLarge)
						return
					}
					http.Error(w, "Bad Request", http.StatusBadRequest)
					return
				}
			}
			if opts.CheckQuery && r.URL.RawQuery != "" {
				filterQueryParams(r, opts.Whitelist)
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isCorrectContentType(r *http.Request, contentType string) bool {
	return strings.Contains(r.Header.Get("Content-Type"), contentType)
}

func filterBodyParams(r *http.Request, whitelist []string) error {
	if err := r.ParseForm(); err != nil {
		return err
	}
	for _, form := range []map[string][]string{r.Form, r.PostForm} {
		for k, v := range form {
			if !isWhitelisted(k, whitelist) {
				delete(form, k)
				continue
			}
			if len(v) > 1 {
				form[k] = v[:1]
			}
		}
	}
	return nil
}

func isWhitelisted(param string, whitelist []string) bool {
	return slices.Contains(whitelist, param)
}

func filterQueryParams(r *http.Request, whitelist []string) {
	query := r.URL.Query()
	for k, v := range query {
		if len(v) > 1 {
			query.Set(k, v[0])
		}
		if !isWhitelisted(k, whitelist) {
			query.Del(k)
		}
	}
	r.URL.RawQuery = query.Encode()
}

// DefaultHPPOptions whitelists the catalog's search and form parameters.
func DefaultHPPOptions() HPPOptions {
	return HPPOptions{
		CheckQuery:                  true,
		CheckBody:                   true,
		CheckBodyOnlyForContentType: "application/x-www-form-urlencoded",
		Whitelist: []string{
			"q", "page",
			"title", "author", "genre", "year",
			"csrf_token",
		},
	}
}
