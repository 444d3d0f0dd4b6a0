package middlewares

import (
	"net/http"

	"github.com/5w1tchy/book-catalog/internal/api/httpx"
)

// CSRFTokenHandler hands the current token to script and API clients that
// cannot read the HttpOnly cookie. Mount it behind CSRF.
func CSRFTokenHandler(w http.ResponseWriter, r *http.Request) {
	httpx.OK(w, map[string]string{"csrf_token": CSRFToken(r)})
}
