package assetry

import "errors"

var (
	// ErrUnknownHost is returned when a request host has no configured root
	ErrUnknownHost = errors.New("unknown host")
	// ErrInvalidCharacters is returned when a request path contains characters outside the allowed set
	ErrInvalidCharacters = errors.New("invalid characters in path")
	// ErrTraversal is returned when a joined path escapes its host root
	ErrTraversal = errors.New("path traversal rejected")
	// ErrNotFound is returned when no file can be resolved for a path
	ErrNotFound = errors.New("not found")
	// ErrUnsupportedType is returned when a file extension has no configured type
	ErrUnsupportedType = errors.New("unsupported file type")
	// ErrReadRace is returned when a resolved file can no longer be read
	ErrReadRace = errors.New("file vanished before read")
	// ErrInvalidInput is returned when configuration validation fails
	ErrInvalidInput = errors.New("invalid input")
)

// IsNotFound reports whether err belongs to the class of failures that are
// answered with a plain 404, regardless of the specific cause.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidCharacters) ||
		errors.Is(err, ErrTraversal) ||
		errors.Is(err, ErrUnsupportedType) ||
		errors.Is(err, ErrReadRace)
}
