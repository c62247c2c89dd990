package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/sagarc03/assetry"
)

const (
	invalidHostBody   = "Invalid Host"
	notFoundBody      = "404 Not Found"
	internalErrorBody = "Internal server error"
)

// WritePlain writes a text/plain response with the given status and body.
// A Cache-Control set by a path policy is dropped; error responses must not
// be cached as immutable.
func WritePlain(w http.ResponseWriter, code int, body string) {
	h := w.Header()
	h.Del("Cache-Control")
	h.Set("Content-Type", "text/plain; charset=utf-8")
	h.Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(code)
	_, _ = io.WriteString(w, body)
}

// HandleError collapses a pipeline error into its outward response. Every
// not-found class error becomes the same 404; the specific cause is logged
// only.
func HandleError(w http.ResponseWriter, r *http.Request, err error, production bool) {
	switch {
	case errors.Is(err, assetry.ErrUnknownHost):
		slog.Debug("unknown host", "host", r.Host, "err", err)
		WritePlain(w, http.StatusBadRequest, invalidHostBody)

	case assetry.IsNotFound(err):
		slog.Debug("not found", "host", r.Host, "path", r.URL.Path, "err", err)
		writeNotFound(w)

	case errors.Is(err, context.Canceled):
		// client went away; nobody is left to read a response
		slog.Debug("request cancelled", "path", r.URL.Path)

	default:
		logInternal(r, err, production)
		WritePlain(w, http.StatusInternalServerError, internalErrorBody)
	}
}

func logInternal(r *http.Request, err error, production bool) {
	if production {
		slog.Error("internal server error", "method", r.Method, "path", r.URL.Path)
		return
	}
	slog.Error("internal server error", "method", r.Method, "host", r.Host, "path", r.URL.Path, "err", err)
}
