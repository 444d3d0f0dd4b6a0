package middlewares

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"net/http"
)

type CSRFOptions struct {
	TokenHeader    string        // Default: "X-CSRF-Token"
	FormField      string        // Default: "csrf_token"
	CookieName     string        // Default: "csrf_token"
	CookiePath     string        // Default: "/"
	CookieSecure   bool          // Set to true in production with HTTPS
	CookieSameSite http.SameSite // Default: SameSiteStrictMode
}

func DefaultCSRFOptions() CSRFOptions {
	return CSRFOptions{
		TokenHeader:    "X-CSRF-Token",
		FormField:      "csrf_token",
		CookieName:     "csrf_token",
		CookiePath:     "/",
		CookieSecure:   false, // Set to true in production
		CookieSameSite: http.SameSiteStrictMode,
	}
}

// CSRF implements the double-submit cookie pattern. Every request gets a
// token cookie (issued if missing) and the token in its context for forms;
// unsafe methods must echo it in the header or form field.
func CSRF(opts CSRFOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			var expectedToken string
			if cookie, err := r.Cookie(opts.CookieName); err == nil && cookie.Value != "" {
				expectedToken = cookie.Value
			} else {
				expectedToken = generateCSRFToken()
				setCSRFCookie(w, opts, expectedToken)
			}
			r = r.WithContext(context.WithValue(r.Context(), ctxKeyCSRFToken, expectedToken))

			// Skip validation for safe methods
			if r.Method == http.MethodGet || r.Method == http.MethodHead || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			providedToken := r.Header.Get(opts.TokenHeader)
			if providedToken == "" {
				// Also check form data for traditional forms
				providedToken = r.PostFormValue(opts.FormField)
			}

			if !isValidCSRFToken(expectedToken, providedToken) {
				http.Error(w, "CSRF token validation failed", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// CSRFToken returns the token CSRF placed in the request context.
func CSRFToken(r *http.Request) string {
	v, _ := r.Context().Value(ctxKeyCSRFToken).(string)
	return v
}

func setCSRFCookie(w http.ResponseWriter, opts CSRFOptions, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     opts.CookieName,
		Value:    token,
		Path:     opts.CookiePath,
		Secure:   opts.CookieSecure,
		HttpOnly: true,
		SameSite: opts.CookieSameSite,
	})
}

func generateCSRFToken() string {
	var b [32]byte
	_, _ = rand.Read(b[:])
	return hex.EncodeToString(b[:])
}

func isValidCSRFToken(expected, provided string) bool {
	if expected == "" || provided == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(expected), []byte(provided)) == 1
}
