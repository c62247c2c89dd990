package assetry

import (
	"context"
	"slices"
	"strconv"
	"strings"
)

// ParseAcceptEncoding returns the lowercased content codings named in an
// Accept-Encoding header. Codings explicitly refused with q=0 are left out.
// Quality weights are otherwise ignored; the server's configured order decides.
func ParseAcceptEncoding(header string) []string {
	var codings []string

	for _, part := range strings.Split(header, ",") {
		name, params, _ := strings.Cut(part, ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" {
			continue
		}

		if refused(params) {
			continue
		}

		if !slices.Contains(codings, name) {
			codings = append(codings, name)
		}
	}

	return codings
}

func refused(params string) bool {
	for _, p := range strings.Split(params, ";") {
		k, v, ok := strings.Cut(strings.TrimSpace(p), "=")
		if !ok || !strings.EqualFold(strings.TrimSpace(k), "q") {
			continue
		}
		q, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err == nil && q == 0 {
			return true
		}
	}
	return false
}

// VariantPath returns the on-disk location of the variant of basePath.
func VariantPath(basePath string, v EncodingVariant) string {
	return basePath + "." + v.Suffix
}

// Negotiate picks the first variant, in configured order, that the client
// accepts and that exists as a regular file next to basePath. The second
// return value is false when the base file should be served unencoded.
func Negotiate(ctx context.Context, files FileSystem, accepted []string, variants []EncodingVariant, basePath string) (EncodingVariant, bool) {
	for _, v := range variants {
		if !slices.Contains(accepted, strings.ToLower(v.Name)) {
			continue
		}

		if files.IsRegular(ctx, VariantPath(basePath, v)) {
			return v, true
		}
	}

	return EncodingVariant{}, false
}
