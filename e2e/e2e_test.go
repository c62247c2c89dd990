package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var appJS = strings.Repeat("export const greet = (name) => `hello ${name}`;\n", 100)

func get(t *testing.T, baseURL, host, path, acceptEncoding string) (*http.Response, []byte) {
	t.Helper()

	req, err := http.NewRequest(http.MethodGet, baseURL+path, http.NoBody)
	require.NoError(t, err)
	req.Host = host
	if acceptEncoding != "" {
		req.Header.Set("Accept-Encoding", acceptEncoding)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

// setupSites writes two sites, compresses them and starts a server.
func setupSites(t *testing.T) (string, string) {
	t.Helper()

	mainRoot := t.TempDir()
	writeSite(t, mainRoot, map[string]string{
		"index.html":      strings.Repeat("<h1>main</h1>\n", 50),
		"editor.html":     strings.Repeat("<h1>editor</h1>\n", 50),
		"js/app.js":       appJS,
		"img/logo.png":    "\x89PNG fake",
		"docs/index.html": strings.Repeat("<h1>docs</h1>\n", 50),
	})

	preview := t.TempDir()
	writeSite(t, preview, map[string]string{
		"feature-x/index.html":      strings.Repeat("<h1>feature x</h1>\n", 50),
		"feature-x/fullscreen.html": strings.Repeat("<h1>fullscreen</h1>\n", 50),
	})

	port := getOpenPort(t)
	configPath := createConfigFile(t, ServerConfig{
		Port: port,
		Hosts: []Host{
			{Hostname: "example.com", Root: mainRoot},
			{Hostname: "preview.example.com", Root: preview, Branches: true},
		},
	})

	runCommand(t, configPath, "compress", "--min-size", "0")

	baseURL, cleanup := startServer(t, configPath, port)
	t.Cleanup(cleanup)

	return baseURL, mainRoot
}

func TestE2E_Serve(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and runs the assetry binary")
	}

	baseURL, mainRoot := setupSites(t)

	for _, name := range []string{"index.html.br", "index.html.zst", "index.html.gz", "js/app.js.br", "js/app.js.gz"} {
		assert.FileExists(t, filepath.Join(mainRoot, filepath.FromSlash(name)), "compress should write %s", name)
	}
	assert.NoFileExists(t, filepath.Join(mainRoot, "img", "logo.png.gz"))

	t.Run("root alias served as brotli", func(t *testing.T) {
		resp, body := get(t, baseURL, "example.com", "/", "gzip, br")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "br", resp.Header.Get("Content-Encoding"))
		assert.Equal(t, "Accept-Encoding", resp.Header.Get("Vary"))
		assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))

		decoded, err := io.ReadAll(brotli.NewReader(bytes.NewReader(body)))
		require.NoError(t, err)
		assert.Contains(t, string(decoded), "<h1>main</h1>")
	})

	t.Run("gzip when brotli is not accepted", func(t *testing.T) {
		resp, body := get(t, baseURL, "example.com:80", "/js/app.js", "gzip")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "gzip", resp.Header.Get("Content-Encoding"))
		assert.Equal(t, "public, max-age=315360000, immutable", resp.Header.Get("Cache-Control"))

		gr, err := gzip.NewReader(bytes.NewReader(body))
		require.NoError(t, err)
		decoded, err := io.ReadAll(gr)
		require.NoError(t, err)
		assert.Equal(t, appJS, string(decoded))
	})

	t.Run("identity without accept-encoding", func(t *testing.T) {
		resp, body := get(t, baseURL, "example.com", "/editor", "identity")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Empty(t, resp.Header.Get("Content-Encoding"))
		assert.Contains(t, string(body), "<h1>editor</h1>")
		assert.Equal(t, "no-cache", resp.Header.Get("Cache-Control"))
	})

	t.Run("directory index", func(t *testing.T) {
		resp, body := get(t, baseURL, "example.com", "/docs/", "identity")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "<h1>docs</h1>")
	})

	t.Run("branch prefix", func(t *testing.T) {
		resp, body := get(t, baseURL, "preview.example.com", "/feature-x/3/fullscreen/", "identity")

		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, string(body), "<h1>fullscreen</h1>")
	})

	t.Run("hosts do not share roots", func(t *testing.T) {
		resp, body := get(t, baseURL, "preview.example.com", "/js/app.js", "identity")

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "404 Not Found", string(body))
	})

	t.Run("unknown host", func(t *testing.T) {
		resp, body := get(t, baseURL, "evil.example.com", "/", "")

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid Host", string(body))
	})

	t.Run("traversal is not found", func(t *testing.T) {
		resp, _ := get(t, baseURL, "example.com", "/%2e%2e/%2e%2e/etc/passwd", "")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("conditional request", func(t *testing.T) {
		resp, _ := get(t, baseURL, "example.com", "/js/app.js", "br")
		etag := resp.Header.Get("ETag")
		require.NotEmpty(t, etag)

		req, err := http.NewRequest(http.MethodGet, baseURL+"/js/app.js", http.NoBody)
		require.NoError(t, err)
		req.Host = "example.com"
		req.Header.Set("Accept-Encoding", "br")
		req.Header.Set("If-None-Match", etag)

		cond, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		_ = cond.Body.Close()
		assert.Equal(t, http.StatusNotModified, cond.StatusCode)
	})
}

func TestE2E_Resolve(t *testing.T) {
	if testing.Short() {
		t.Skip("builds and runs the assetry binary")
	}

	root := t.TempDir()
	writeSite(t, root, map[string]string{
		"js/app.js":    appJS,
		"js/app.js.gz": "pretend-gzip",
	})

	configPath := createConfigFile(t, ServerConfig{
		Port:  getOpenPort(t),
		Hosts: []Host{{Hostname: "example.com", Root: root}},
	})

	out := runCommand(t, configPath, "resolve", "example.com", "/js/app.js", "--accept-encoding", "gzip", "--json")

	var res struct {
		LogicalPath string `json:"logical_path"`
		File        string `json:"file"`
		Encoding    string `json:"encoding"`
		Status      int    `json:"status"`
	}
	require.NoError(t, json.Unmarshal([]byte(out[strings.Index(out, "{"):]), &res))

	assert.Equal(t, "/js/app.js", res.LogicalPath)
	assert.Equal(t, filepath.Join(root, "js", "app.js.gz"), res.File)
	assert.Equal(t, "gzip", res.Encoding)
	assert.Equal(t, http.StatusOK, res.Status)

	_, err := os.Stat(filepath.Join(root, "js", "app.js.br"))
	assert.True(t, os.IsNotExist(err), "resolve must not write variants")
}
