package assetry

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var validPathRegex = regexp.MustCompile(`^[a-zA-Z0-9._\-/~]*$`)

// IsValidPath reports whether p consists only of characters allowed in a
// request path: ASCII letters, digits, '.', '_', '-', '/' and '~'. Percent
// escapes, whitespace, backslashes and control characters are all rejected.
func IsValidPath(p string) bool {
	return validPathRegex.MatchString(p)
}

// SafeJoin joins a normalized root and a request path. The result is
// checked structurally, after "." and ".." segments have been resolved, and
// is rejected unless it stays inside root.
func SafeJoin(root, p string) (string, error) {
	if !IsValidPath(p) {
		return "", fmt.Errorf("safe join %q: %w", p, ErrInvalidCharacters)
	}

	joined := filepath.Join(root, filepath.FromSlash(p))

	rel, err := filepath.Rel(root, joined)
	if err != nil {
		return "", fmt.Errorf("safe join %q: %w: %w", p, ErrTraversal, err)
	}

	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		return "", fmt.Errorf("safe join %q: %w", p, ErrTraversal)
	}

	return joined, nil
}
