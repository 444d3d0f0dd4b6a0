package router

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/5w1tchy/book-catalog/internal/api/handlers/books"
	mw "github.com/5w1tchy/book-catalog/internal/api/middlewares"
)

type Options struct {
	Logger         *zap.Logger
	Limiter        mw.Limiter // nil disables rate limiting
	CSRF           mw.CSRFOptions
	HPP            mw.HPPOptions
	MaxBodyBytes   int64
	StrictSecurity bool
	CORSOrigins    []string // empty disables CORS
	// Ready reports whether dependencies are reachable, for /readyz.
	Ready func(ctx context.Context) error
}

// New builds the HTTP handler: middleware chain, health probes and the
// catalog routes.
func New(h *books.Handler, opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(
		mw.RequestID,
		mw.Recovery(opts.Logger),
		mw.AccessLog(opts.Logger),
		mw.SecurityHeaders(opts.StrictSecurity),
		mw.BodySizeLimit(opts.MaxBodyBytes),
		mw.HPP(opts.HPP),
	)
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "HEAD", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type", "X-CSRF-Token", "X-Request-ID"},
			ExposedHeaders:   []string{"Location", "X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After", "X-Response-Time"},
			AllowCredentials: true,
			MaxAge:           3600,
		}))
	}
	if opts.Limiter != nil {
		r.Use(opts.Limiter.Middleware)
	}
	r.Use(
		middleware.Compress(5, "text/html", "application/json", "application/problem+json"),
		middleware.GetHead,
	)

	// Probes sit outside CSRF so load balancers don't collect cookies.
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		if opts.Ready != nil {
			if err := opts.Ready(r.Context()); err != nil {
				opts.Logger.Warn("readiness check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				_, _ = w.Write([]byte("unavailable"))
				return
			}
		}
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(mw.CSRF(opts.CSRF))
		r.Get("/csrf-token", mw.CSRFTokenHandler)
		h.Routes(r)
	})

	return r
}
