package precompress_test

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sagarc03/assetry/precompress"
)

func decode(t *testing.T, name string, data []byte) []byte {
	t.Helper()

	var r io.Reader
	switch name {
	case "br":
		r = brotli.NewReader(bytes.NewReader(data))
	case "gzip":
		gr, err := gzip.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer func() { _ = gr.Close() }()
		r = gr
	case "deflate":
		zr, err := zlib.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer func() { _ = zr.Close() }()
		r = zr
	case "zstd":
		zr, err := zstd.NewReader(bytes.NewReader(data))
		require.NoError(t, err)
		defer zr.Close()
		r = zr
	default:
		t.Fatalf("no decoder for %s", name)
	}

	out, err := io.ReadAll(r)
	require.NoError(t, err)
	return out
}

func TestEncode_Decodes(t *testing.T) {
	src := []byte(strings.Repeat("function add(a, b) { return a + b; }\n", 200))

	for _, name := range []string{"br", "gzip", "deflate", "zstd"} {
		t.Run(name, func(t *testing.T) {
			encoded, err := precompress.Encode(name, src)
			require.NoError(t, err)

			assert.Less(t, len(encoded), len(src))
			assert.Equal(t, src, decode(t, name, encoded))
		})
	}
}

func TestEncode_UnknownEncoding(t *testing.T) {
	_, err := precompress.Encode("compress", []byte("x"))
	assert.ErrorIs(t, err, precompress.ErrUnknownEncoding)
}

func TestEncoderFor_CaseInsensitive(t *testing.T) {
	_, ok := precompress.EncoderFor("GZIP")
	assert.True(t, ok)

	_, ok = precompress.EncoderFor("lz4")
	assert.False(t, ok)
}

func TestEncodings(t *testing.T) {
	assert.Equal(t, []string{"br", "deflate", "gzip", "x-gzip", "zstd"}, precompress.Encodings())
}
