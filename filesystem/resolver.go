// Package filesystem provides the local disk backend for assetry. It resolves
// candidate paths to regular files, falls back to index.html for directories,
// and folds every stat or read failure into the not-found class.
package filesystem

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sagarc03/assetry"
)

// IndexFile is served in place of a directory.
const IndexFile = "index.html"

// Resolver provides read-only file system operations on absolute paths.
// Callers are responsible for confining paths to a host root before calling.
type Resolver struct{}

// NewResolver creates a new Resolver.
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve stats path. A directory resolves to its index.html, a regular file
// to itself. Returns assetry.ErrNotFound for anything else, including stat
// errors and files that disappear between the two stats.
func (r *Resolver) Resolve(ctx context.Context, path string) (assetry.ResolvedFile, error) {
	if err := ctx.Err(); err != nil {
		return assetry.ResolvedFile{}, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return assetry.ResolvedFile{}, fmt.Errorf("stat %s: %w: %w", path, assetry.ErrNotFound, err)
	}

	if info.IsDir() {
		if err := ctx.Err(); err != nil {
			return assetry.ResolvedFile{}, err
		}

		path = filepath.Join(path, IndexFile)
		info, err = os.Stat(path)
		if err != nil {
			return assetry.ResolvedFile{}, fmt.Errorf("stat %s: %w: %w", path, assetry.ErrNotFound, err)
		}
	}

	if !info.Mode().IsRegular() {
		return assetry.ResolvedFile{}, fmt.Errorf("resolve %s: %w: not a regular file", path, assetry.ErrNotFound)
	}

	return assetry.ResolvedFile{Path: path, ModTime: info.ModTime()}, nil
}

// IsRegular reports whether path names a regular file right now.
func (r *Resolver) IsRegular(ctx context.Context, path string) bool {
	if ctx.Err() != nil {
		return false
	}

	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// ReadFile reads the whole file at path. The read stops early if ctx is
// cancelled. Any other failure returns assetry.ErrReadRace.
func (r *Resolver) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w: %w", path, assetry.ErrReadRace, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			slog.Warn("failed to close file", "path", path, "err", closeErr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w: %w", path, assetry.ErrReadRace, err)
	}

	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("read %s: %w: not a regular file", path, assetry.ErrReadRace)
	}

	body, err := io.ReadAll(&ctxReader{ctx: ctx, r: f})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("read %s: %w: %w", path, assetry.ErrReadRace, err)
	}

	return body, nil
}
