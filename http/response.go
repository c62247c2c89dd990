package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sagarc03/assetry"
)

// DefaultCacheControl is sent when no earlier middleware set Cache-Control.
const DefaultCacheControl = "no-cache"

// ETag returns the entity tag of an asset. Encoded variants get their own
// tag so caches never mix representations.
func ETag(a assetry.Asset) string {
	tag := fmt.Sprintf("%x-%x", len(a.Body), a.ModTime.UnixNano())
	if a.Encoding != "" {
		tag += "-" + a.Encoding
	}
	return `"` + tag + `"`
}

// WriteAsset writes a fully resolved asset. All headers are decided here,
// after the body is already in memory, so no error path can follow a
// partially committed response.
func WriteAsset(w http.ResponseWriter, r *http.Request, a assetry.Asset) {
	h := w.Header()
	etag := ETag(a)

	h.Set("Content-Type", a.ContentType)
	h.Set("Last-Modified", a.ModTime.UTC().Format(http.TimeFormat))
	h.Set("ETag", etag)
	if a.Encoding != "" {
		h.Set("Content-Encoding", a.Encoding)
	}
	if a.Vary {
		h.Add("Vary", "Accept-Encoding")
	}
	if h.Get("Cache-Control") == "" {
		h.Set("Cache-Control", DefaultCacheControl)
	}

	if notModified(r, etag, a.ModTime) {
		h.Del("Content-Type")
		w.WriteHeader(http.StatusNotModified)
		return
	}

	h.Set("Content-Length", strconv.Itoa(len(a.Body)))
	w.WriteHeader(http.StatusOK)

	if r.Method == http.MethodHead {
		return
	}
	_, _ = w.Write(a.Body)
}

// notModified evaluates If-None-Match, and If-Modified-Since only when
// If-None-Match is absent.
func notModified(r *http.Request, etag string, modTime time.Time) bool {
	if inm := r.Header.Get("If-None-Match"); inm != "" {
		if strings.TrimSpace(inm) == "*" {
			return true
		}
		opaque := strings.Trim(etag, `"`)
		for _, candidate := range strings.Split(inm, ",") {
			candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
			if strings.Trim(candidate, `"`) == opaque {
				return true
			}
		}
		return false
	}

	ims := r.Header.Get("If-Modified-Since")
	if ims == "" {
		return false
	}

	since, err := http.ParseTime(ims)
	if err != nil {
		return false
	}

	return !modTime.Truncate(time.Second).After(since.Truncate(time.Second))
}
