package assetry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/assetry"
)

func TestExtension(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"/srv/www/app.js", ".js"},
		{"/srv/www/app.min.js", ".js"},
		{"/srv/www/archive.tar.gz", ".gz"},
		{"/srv/www/.htaccess", ".htaccess"},
		{"/srv/www/Makefile", ""},
		{"/srv/www.d/Makefile", ""},
		{"/srv/www/UPPER.JS", ".JS"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, assetry.Extension(tt.path))
		})
	}
}

func TestTypeRegistry_Lookup(t *testing.T) {
	reg, err := assetry.NewTypeRegistry([]assetry.FileType{
		{Extension: ".js", MimeType: "application/javascript", Encodings: []assetry.EncodingVariant{
			{Name: "gzip", Suffix: "gz"},
			{Name: "br", Suffix: "br"},
		}},
		{Extension: ".png", MimeType: "image/png"},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	ft, err := reg.Lookup("/srv/www/app.js")
	require.NoError(t, err)
	assert.Equal(t, "application/javascript", ft.MimeType)
	assert.Equal(t, []assetry.EncodingVariant{{Name: "gzip", Suffix: "gz"}, {Name: "br", Suffix: "br"}}, ft.Encodings)

	ft, err = reg.Lookup("/srv/www/logo.png")
	require.NoError(t, err)
	assert.Empty(t, ft.Encodings)

	for _, p := range []string{"/srv/www/app.JS", "/srv/www/app.jsx", "/srv/www/README", "/srv/www/app.js.br"} {
		_, err = reg.Lookup(p)
		assert.ErrorIs(t, err, assetry.ErrUnsupportedType, p)
	}
}

func TestNewTypeRegistry_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		types []assetry.FileType
	}{
		{name: "missing dot", types: []assetry.FileType{{Extension: "js", MimeType: "text/javascript"}}},
		{name: "only dot", types: []assetry.FileType{{Extension: ".", MimeType: "text/plain"}}},
		{name: "missing mime", types: []assetry.FileType{{Extension: ".js"}}},
		{name: "duplicate", types: []assetry.FileType{
			{Extension: ".js", MimeType: "text/javascript"},
			{Extension: ".js", MimeType: "application/javascript"},
		}},
		{name: "empty suffix", types: []assetry.FileType{{
			Extension: ".js", MimeType: "text/javascript",
			Encodings: []assetry.EncodingVariant{{Name: "gzip"}},
		}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := assetry.NewTypeRegistry(tt.types)
			assert.ErrorIs(t, err, assetry.ErrInvalidInput)
		})
	}
}

func TestDefaultFileTypes_Valid(t *testing.T) {
	reg, err := assetry.NewTypeRegistry(assetry.DefaultFileTypes())
	require.NoError(t, err)

	ft, err := reg.Lookup("index.html")
	require.NoError(t, err)
	assert.Equal(t, "text/html; charset=utf-8", ft.MimeType)
	assert.NotEmpty(t, ft.Encodings)
}
