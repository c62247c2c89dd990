package http

import (
	"net/http"
)

func writeNotFound(w http.ResponseWriter) {
	WritePlain(w, http.StatusNotFound, notFoundBody)
}

// NotFoundHandler is the terminal handler for requests no route accepts.
func NotFoundHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		writeNotFound(w)
	}
}
