package assetry

import (
	"context"
	"errors"
	"fmt"
)

// FileSystem defines the filesystem operations the resolution pipeline needs.
// Implementations must be safe for concurrent use and must never cache
// results across calls.
type FileSystem interface {
	// Resolve turns an absolute candidate path into a concrete file.
	//
	// A directory resolves to its index.html when that is a regular file.
	// A regular file resolves to itself. Anything else, including any stat
	// error, returns ErrNotFound.
	Resolve(ctx context.Context, path string) (ResolvedFile, error)

	// IsRegular reports whether path currently names a regular file.
	IsRegular(ctx context.Context, path string) bool

	// ReadFile reads the full content of path.
	//
	// Returns ErrReadRace if the file can no longer be read.
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// AssetService runs the request resolution pipeline: host lookup, logical
// path mapping, safe joining, file resolution, type lookup, encoding
// negotiation and content read.
type AssetService struct {
	hosts *HostRegistry
	types *TypeRegistry
	files FileSystem
}

func NewAssetService(hosts *HostRegistry, types *TypeRegistry, files FileSystem) (*AssetService, error) {
	if hosts == nil || types == nil || files == nil {
		return nil, fmt.Errorf("new asset service: %w: hosts, types and files are required", ErrInvalidInput)
	}
	return &AssetService{
		hosts: hosts,
		types: types,
		files: files,
	}, nil
}

// Hosts returns the host registry the service was built with.
func (s *AssetService) Hosts() *HostRegistry {
	return s.hosts
}

// NewRequest runs the host stage and returns the initial request context.
//
// Returns ErrUnknownHost when host is not configured.
func (s *AssetService) NewRequest(host, requestPath, acceptEncoding string) (RequestContext, error) {
	h, err := s.hosts.Lookup(host)
	if err != nil {
		return RequestContext{}, err
	}

	return RequestContext{
		Host:              h,
		RequestPath:       requestPath,
		AcceptedEncodings: ParseAcceptEncoding(acceptEncoding),
	}, nil
}

// Resolve maps a request to a fully read asset.
//
// The steps, each of which may end the request:
//  1. Host lookup (ErrUnknownHost)
//  2. Logical path mapping
//  3. Safe join against the host root (ErrInvalidCharacters, ErrTraversal)
//  4. File resolution, with directory index fallback (ErrNotFound)
//  5. Type lookup on the resolved file (ErrUnsupportedType)
//  6. Encoding negotiation against pre-built variants
//  7. Full read of the chosen file (ErrReadRace)
//
// Every error other than ErrUnknownHost belongs to the not-found class; see
// IsNotFound. The returned Asset holds the whole body so that no response
// header needs to be written before all failure points are passed.
func (s *AssetService) Resolve(ctx context.Context, host, requestPath, acceptEncoding string) (Asset, error) {
	if err := ctx.Err(); err != nil {
		return Asset{}, fmt.Errorf("resolve: %w", err)
	}

	rc, err := s.NewRequest(host, requestPath, acceptEncoding)
	if err != nil {
		return Asset{}, fmt.Errorf("resolve: %w", err)
	}

	return s.ResolveRequest(ctx, MapRequest(rc))
}

// ResolveRequest runs the pipeline from the safe join stage onward for a
// request whose host and logical path are already known.
func (s *AssetService) ResolveRequest(ctx context.Context, rc RequestContext) (Asset, error) {
	candidate, err := SafeJoin(rc.Root(), rc.LogicalPath)
	if err != nil {
		return Asset{}, fmt.Errorf("resolve %s: %w", rc.LogicalPath, err)
	}

	file, err := s.files.Resolve(ctx, candidate)
	if err != nil {
		return Asset{}, fmt.Errorf("resolve %s: %w", rc.LogicalPath, err)
	}

	ft, err := s.types.Lookup(file.Path)
	if err != nil {
		return Asset{}, fmt.Errorf("resolve %s: %w", rc.LogicalPath, err)
	}

	servePath := file.Path
	variant, encoded := Negotiate(ctx, s.files, rc.AcceptedEncodings, ft.Encodings, file.Path)
	if encoded {
		servePath = VariantPath(file.Path, variant)
	}

	body, err := s.files.ReadFile(ctx, servePath)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return Asset{}, fmt.Errorf("resolve %s: %w", rc.LogicalPath, err)
		}
		return Asset{}, fmt.Errorf("resolve %s: %w: %w", rc.LogicalPath, ErrReadRace, err)
	}

	asset := Asset{
		Path:        servePath,
		Body:        body,
		ContentType: ft.MimeType,
		ModTime:     file.ModTime,
		Vary:        len(ft.Encodings) > 0,
	}
	if encoded {
		asset.Encoding = variant.Name
	}

	return asset, nil
}
