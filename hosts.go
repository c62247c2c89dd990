package assetry

import (
	"fmt"
	"net"
	"path/filepath"
	"slices"
	"strings"
)

// HostRegistry maps hostnames to their configuration. It is built once by
// NewHostRegistry and is safe for concurrent reads.
type HostRegistry struct {
	hosts map[string]HostConfig
}

// NewHostRegistry validates hosts and returns a read-only registry in which
// every root is absolute, clean and ends in exactly one separator.
func NewHostRegistry(hosts []HostConfig) (*HostRegistry, error) {
	m := make(map[string]HostConfig, len(hosts))

	for _, h := range hosts {
		if h.Hostname == "" {
			return nil, fmt.Errorf("new host registry: %w: hostname cannot be empty", ErrInvalidInput)
		}

		if _, dup := m[h.Hostname]; dup {
			return nil, fmt.Errorf("new host registry: %w: duplicate hostname %s", ErrInvalidInput, h.Hostname)
		}

		root, err := NormalizeRoot(h.Root)
		if err != nil {
			return nil, fmt.Errorf("new host registry %s: %w", h.Hostname, err)
		}

		h.Root = root
		m[h.Hostname] = h
	}

	return &HostRegistry{hosts: m}, nil
}

// NormalizeRoot cleans an absolute directory path and appends a single
// trailing separator.
func NormalizeRoot(root string) (string, error) {
	if root == "" {
		return "", fmt.Errorf("normalize root: %w: root cannot be empty", ErrInvalidInput)
	}

	if !filepath.IsAbs(root) {
		return "", fmt.Errorf("normalize root: %w: root must be absolute: %s", ErrInvalidInput, root)
	}

	root = filepath.Clean(root)
	if !strings.HasSuffix(root, string(filepath.Separator)) {
		root += string(filepath.Separator)
	}

	return root, nil
}

// Lookup returns the configuration for host. A port suffix is ignored; the
// remaining name must match exactly.
func (r *HostRegistry) Lookup(host string) (HostConfig, error) {
	if name, _, err := net.SplitHostPort(host); err == nil {
		host = name
	}

	h, ok := r.hosts[host]
	if !ok {
		return HostConfig{}, fmt.Errorf("lookup host %q: %w", host, ErrUnknownHost)
	}

	return h, nil
}

// Hosts returns the configured hostnames in sorted order.
func (r *HostRegistry) Hosts() []string {
	names := make([]string, 0, len(r.hosts))
	for name := range r.hosts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Roots returns every distinct normalized root in sorted order.
func (r *HostRegistry) Roots() []string {
	var roots []string
	for _, h := range r.hosts {
		if !slices.Contains(roots, h.Root) {
			roots = append(roots, h.Root)
		}
	}
	slices.Sort(roots)
	return roots
}
