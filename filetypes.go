package assetry

import (
	"fmt"
	"path/filepath"
	"strings"
)

// TypeRegistry maps file extensions to their serving configuration. It is
// built once by NewTypeRegistry and is safe for concurrent reads.
type TypeRegistry struct {
	types map[string]FileType
}

// NewTypeRegistry validates types and returns a read-only registry.
func NewTypeRegistry(types []FileType) (*TypeRegistry, error) {
	m := make(map[string]FileType, len(types))

	for _, ft := range types {
		if !strings.HasPrefix(ft.Extension, ".") || len(ft.Extension) < 2 {
			return nil, fmt.Errorf("new type registry: %w: extension must start with '.': %q", ErrInvalidInput, ft.Extension)
		}

		if ft.MimeType == "" {
			return nil, fmt.Errorf("new type registry %s: %w: mime type cannot be empty", ft.Extension, ErrInvalidInput)
		}

		if _, dup := m[ft.Extension]; dup {
			return nil, fmt.Errorf("new type registry: %w: duplicate extension %s", ErrInvalidInput, ft.Extension)
		}

		for _, enc := range ft.Encodings {
			if enc.Name == "" || enc.Suffix == "" {
				return nil, fmt.Errorf("new type registry %s: %w: encoding name and suffix are required", ft.Extension, ErrInvalidInput)
			}
		}

		ft.Encodings = append([]EncodingVariant(nil), ft.Encodings...)
		m[ft.Extension] = ft
	}

	return &TypeRegistry{types: m}, nil
}

// Extension returns the substring of the file name from its last '.' to the
// end, or "" when the name has none.
func Extension(p string) string {
	base := filepath.Base(p)
	i := strings.LastIndexByte(base, '.')
	if i < 0 {
		return ""
	}
	return base[i:]
}

// Lookup returns the file type for the extension of p. Matching is exact and
// case-sensitive.
func (r *TypeRegistry) Lookup(p string) (FileType, error) {
	ext := Extension(p)

	ft, ok := r.types[ext]
	if !ok || ext == "" {
		return FileType{}, fmt.Errorf("lookup type %q: %w", ext, ErrUnsupportedType)
	}

	return ft, nil
}

// Len returns the number of registered extensions.
func (r *TypeRegistry) Len() int {
	return len(r.types)
}

var (
	brotliGzip = []EncodingVariant{{Name: "br", Suffix: "br"}, {Name: "gzip", Suffix: "gz"}}
	allVariant = []EncodingVariant{{Name: "br", Suffix: "br"}, {Name: "zstd", Suffix: "zst"}, {Name: "gzip", Suffix: "gz"}}
)

// DefaultFileTypes returns the built-in type table used when configuration
// names no file types. Text formats carry br, zstd and gzip variants; already
// compressed formats carry none.
func DefaultFileTypes() []FileType {
	return []FileType{
		{Extension: ".html", MimeType: "text/html; charset=utf-8", Encodings: allVariant},
		{Extension: ".htm", MimeType: "text/html; charset=utf-8", Encodings: allVariant},
		{Extension: ".css", MimeType: "text/css; charset=utf-8", Encodings: allVariant},
		{Extension: ".js", MimeType: "text/javascript; charset=utf-8", Encodings: allVariant},
		{Extension: ".mjs", MimeType: "text/javascript; charset=utf-8", Encodings: allVariant},
		{Extension: ".map", MimeType: "application/json; charset=utf-8", Encodings: brotliGzip},
		{Extension: ".json", MimeType: "application/json; charset=utf-8", Encodings: allVariant},
		{Extension: ".xml", MimeType: "application/xml; charset=utf-8", Encodings: brotliGzip},
		{Extension: ".txt", MimeType: "text/plain; charset=utf-8", Encodings: brotliGzip},
		{Extension: ".svg", MimeType: "image/svg+xml", Encodings: brotliGzip},
		{Extension: ".wasm", MimeType: "application/wasm", Encodings: allVariant},
		{Extension: ".ico", MimeType: "image/vnd.microsoft.icon", Encodings: brotliGzip},
		{Extension: ".ttf", MimeType: "font/ttf", Encodings: brotliGzip},
		{Extension: ".otf", MimeType: "font/otf", Encodings: brotliGzip},
		{Extension: ".woff", MimeType: "font/woff"},
		{Extension: ".woff2", MimeType: "font/woff2"},
		{Extension: ".png", MimeType: "image/png"},
		{Extension: ".jpg", MimeType: "image/jpeg"},
		{Extension: ".jpeg", MimeType: "image/jpeg"},
		{Extension: ".gif", MimeType: "image/gif"},
		{Extension: ".webp", MimeType: "image/webp"},
		{Extension: ".avif", MimeType: "image/avif"},
		{Extension: ".mp3", MimeType: "audio/mpeg"},
		{Extension: ".mp4", MimeType: "video/mp4"},
		{Extension: ".webm", MimeType: "video/webm"},
		{Extension: ".pdf", MimeType: "application/pdf"},
	}
}
