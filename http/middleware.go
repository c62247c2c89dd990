package http

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// CachePolicy sets Cache-Control for every request path under Prefix.
type CachePolicy struct {
	Prefix string `mapstructure:"prefix" yaml:"prefix" validate:"required,startswith=/"`
	Value  string `mapstructure:"value" yaml:"value" validate:"required"`
}

// DefaultCachePolicies returns the long-lived policies for fingerprinted
// script and asset directories.
func DefaultCachePolicies() []CachePolicy {
	return []CachePolicy{
		{Prefix: "/js/", Value: "public, max-age=315360000, immutable"},
		{Prefix: "/static/assets/", Value: "public, max-age=315360000, immutable"},
		{Prefix: "/static/blocks-media/", Value: "public, max-age=3600, immutable"},
	}
}

// CacheControlMiddleware sets Cache-Control from the first policy whose
// prefix matches the request path. Later stages treat the header as final.
func CacheControlMiddleware(policies []CachePolicy) func(http.Handler) http.Handler {
	if len(policies) == 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, p := range policies {
				if strings.HasPrefix(r.URL.Path, p.Prefix) {
					w.Header().Set("Cache-Control", p.Value)
					break
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RecoverMiddleware turns a panic into a plain 500. The panic value and
// stack are logged only outside production.
func RecoverMiddleware(production bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				if production {
					slog.Error("panic while serving request", "method", r.Method, "path", r.URL.Path)
				} else {
					slog.Error("panic while serving request",
						"method", r.Method,
						"host", r.Host,
						"path", r.URL.Path,
						"panic", rec,
						"stack", string(debug.Stack()),
					)
				}

				WritePlain(w, http.StatusInternalServerError, internalErrorBody)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

// LoggingMiddleware logs one line per request with its outcome.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		level := slog.LevelInfo
		if status >= http.StatusInternalServerError {
			level = slog.LevelWarn
		}

		slog.Log(r.Context(), level, "request",
			"method", r.Method,
			"host", r.Host,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"encoding", ww.Header().Get("Content-Encoding"),
			"duration", time.Since(start),
			"remote", r.RemoteAddr,
		)
	})
}
