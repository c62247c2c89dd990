package precompress

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/sagarc03/assetry"
)

var ErrUnknownEncoding = errors.New("unknown encoding")

// Options controls which variants a Compressor writes.
type Options struct {
	// MinSize is the smallest base file, in bytes, that gets variants.
	MinSize int64
	// Force rewrites variants that are newer than their base file.
	Force bool
	// DryRun reports what would be written without touching disk.
	DryRun bool
	// Workers bounds concurrent files. Zero or less means one.
	Workers int
}

// Stats counts the outcome of a compression run.
type Stats struct {
	Files      int
	Written    int
	UpToDate   int
	Small      int
	NotSmaller int
	Removed    int
	// BytesIn counts each base file once, however many variants it got.
	BytesIn  int64
	BytesOut int64
}

func (s *Stats) add(o Stats) {
	s.Files += o.Files
	s.Written += o.Written
	s.UpToDate += o.UpToDate
	s.Small += o.Small
	s.NotSmaller += o.NotSmaller
	s.Removed += o.Removed
	s.BytesIn += o.BytesIn
	s.BytesOut += o.BytesOut
}

// Compressor writes the pre-encoded variants that the asset server
// negotiates. For every regular file whose type lists encodings, it produces
// <file>.<suffix> next to the base file.
type Compressor struct {
	types *assetry.TypeRegistry
	opts  Options

	warnOnce sync.Map
}

func New(types *assetry.TypeRegistry, opts Options) (*Compressor, error) {
	if types == nil {
		return nil, fmt.Errorf("new compressor: %w: type registry is required", assetry.ErrInvalidInput)
	}
	if opts.MinSize < 0 {
		return nil, fmt.Errorf("new compressor: %w: min size cannot be negative", assetry.ErrInvalidInput)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	return &Compressor{types: types, opts: opts}, nil
}

// Roots compresses every root in turn and returns the combined stats.
func (c *Compressor) Roots(ctx context.Context, roots []string) (Stats, error) {
	var total Stats
	for _, root := range roots {
		st, err := c.Root(ctx, root)
		total.add(st)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// Root walks a document root and compresses each supported file.
func (c *Compressor) Root(ctx context.Context, root string) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	var (
		mu    sync.Mutex
		total Stats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.opts.Workers)

	walkErr := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := gctx.Err(); err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() || isTempFile(d.Name()) {
			return nil
		}

		ft, lookupErr := c.types.Lookup(path)
		if lookupErr != nil || len(ft.Encodings) == 0 {
			return nil
		}

		g.Go(func() error {
			st, fileErr := c.File(gctx, path, ft)
			mu.Lock()
			total.add(st)
			mu.Unlock()
			return fileErr
		})
		return nil
	})

	if err := g.Wait(); err != nil {
		return total, fmt.Errorf("compress %s: %w", root, err)
	}
	if walkErr != nil {
		return total, fmt.Errorf("walk %s: %w", root, walkErr)
	}
	return total, nil
}

// File writes every missing or stale variant of path listed by ft.
func (c *Compressor) File(ctx context.Context, path string, ft assetry.FileType) (Stats, error) {
	if err := ctx.Err(); err != nil {
		return Stats{}, err
	}

	st := Stats{Files: 1}

	info, err := os.Stat(path)
	if err != nil {
		return st, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.Size() < c.opts.MinSize {
		st.Small++
		for _, v := range ft.Encodings {
			if err := c.removeStale(assetry.VariantPath(path, v), info, &st); err != nil {
				return st, err
			}
		}
		return st, nil
	}

	var body []byte
	for _, v := range ft.Encodings {
		if _, ok := EncoderFor(v.Name); !ok {
			c.warnUnknown(v.Name)
			continue
		}

		target := assetry.VariantPath(path, v)
		if !c.opts.Force && upToDate(target, info) {
			st.UpToDate++
			continue
		}

		if body == nil {
			body, err = os.ReadFile(path)
			if err != nil {
				return st, fmt.Errorf("read %s: %w", path, err)
			}
		}

		encoded, err := Encode(v.Name, body)
		if err != nil {
			return st, fmt.Errorf("compress %s: %w", path, err)
		}

		if len(encoded) >= len(body) {
			st.NotSmaller++
			slog.Debug("variant not smaller, skipping", "path", path, "encoding", v.Name)
			if err := c.removeStale(target, info, &st); err != nil {
				return st, err
			}
			continue
		}

		if !c.opts.DryRun {
			if err := writeAtomic(ctx, target, encoded); err != nil {
				return st, err
			}
		}

		if st.Written == 0 {
			st.BytesIn += int64(len(body))
		}
		st.Written++
		st.BytesOut += int64(len(encoded))
		slog.Debug("variant written", "path", target, "encoding", v.Name, "size", len(encoded), "dry_run", c.opts.DryRun)
	}

	return st, nil
}

// removeStale deletes a variant left by an earlier run that is older than
// its base file. Such a variant would otherwise still be negotiated.
func (c *Compressor) removeStale(target string, base os.FileInfo, st *Stats) error {
	info, err := os.Lstat(target)
	if err != nil || !info.Mode().IsRegular() || !info.ModTime().Before(base.ModTime()) {
		return nil
	}

	st.Removed++
	if c.opts.DryRun {
		slog.Debug("stale variant would be removed", "path", target)
		return nil
	}
	if err := os.Remove(target); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove stale variant %s: %w", target, err)
	}
	slog.Debug("stale variant removed", "path", target)
	return nil
}

func (c *Compressor) warnUnknown(name string) {
	if _, loaded := c.warnOnce.LoadOrStore(name, struct{}{}); !loaded {
		slog.Warn("no encoder for configured encoding, skipping", "encoding", name)
	}
}

// upToDate reports whether target is a regular file at least as new as base.
func upToDate(target string, base os.FileInfo) bool {
	info, err := os.Stat(target)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	return !info.ModTime().Before(base.ModTime())
}

// writeAtomic writes content to path using a temp file and rename, so a
// concurrent reader sees either the old variant or the new one.
func writeAtomic(ctx context.Context, path string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tmpPath := filepath.Join(filepath.Dir(path), tmpFileName())
	t, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return fmt.Errorf("could not open temp file: %w", err)
	}

	success := false
	defer func() {
		if !success {
			_ = t.Close()
			if rmErr := os.Remove(tmpPath); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	if _, err := t.Write(content); err != nil {
		return fmt.Errorf("could not write variant: %w", err)
	}

	if err := t.Sync(); err != nil {
		return fmt.Errorf("could not sync written file: %w", err)
	}

	if err := t.Close(); err != nil {
		return fmt.Errorf("could not close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename file: %w", err)
	}

	success = true
	return nil
}

const tmpPrefix = ".t"

func tmpFileName() string {
	return fmt.Sprintf("%s%s", tmpPrefix, uuid.New().String())
}

func isTempFile(name string) bool {
	if !strings.HasPrefix(name, tmpPrefix) {
		return false
	}
	_, err := uuid.Parse(strings.TrimPrefix(name, tmpPrefix))
	return err == nil
}
