package assetry

import (
	"time"
)

// HostConfig binds a hostname to its document root.
type HostConfig struct {
	Hostname string `mapstructure:"hostname" yaml:"hostname" validate:"required"`
	Root     string `mapstructure:"root" yaml:"root" validate:"required"`
	Branches bool   `mapstructure:"branches" yaml:"branches"`
}

// EncodingVariant names a pre-built encoded copy of a file. The variant for
// "app.js" with suffix "br" lives at "app.js.br".
type EncodingVariant struct {
	Name   string `mapstructure:"name" yaml:"name" validate:"required"`
	Suffix string `mapstructure:"suffix" yaml:"suffix" validate:"required"`
}

// FileType describes how files with a given extension are served. The order
// of Encodings is the server's preference order.
type FileType struct {
	Extension string            `mapstructure:"extension" yaml:"extension" validate:"required,startswith=."`
	MimeType  string            `mapstructure:"mime_type" yaml:"mime_type" validate:"required"`
	Encodings []EncodingVariant `mapstructure:"encodings" yaml:"encodings,omitempty" validate:"dive"`
}

// ResolvedFile is a concrete file found on disk for one request.
type ResolvedFile struct {
	Path    string
	ModTime time.Time
}

// RequestContext carries per-request state between pipeline stages. Stages
// never mutate it; each returns an updated copy.
type RequestContext struct {
	Host              HostConfig
	RequestPath       string
	LogicalPath       string
	AcceptedEncodings []string
}

// Root returns the normalized document root of the request's host.
func (rc RequestContext) Root() string {
	return rc.Host.Root
}

// WithLogicalPath returns a copy of rc with the logical path set.
func (rc RequestContext) WithLogicalPath(p string) RequestContext {
	rc.LogicalPath = p
	return rc
}

// Asset is a fully read, ready to send response for one request.
type Asset struct {
	Path        string
	Body        []byte
	ContentType string
	ModTime     time.Time
	Encoding    string
	Vary        bool
}
