package precompress

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zlib"
	"github.com/klauspost/compress/zstd"
)

// Encoder compresses a whole file body for one content coding.
type Encoder func(dst io.Writer, src []byte) error

var encoders = map[string]Encoder{
	"br":      encodeBrotli,
	"gzip":    encodeGzip,
	"x-gzip":  encodeGzip,
	"zstd":    encodeZstd,
	"deflate": encodeDeflate,
}

// EncoderFor returns the encoder for a content coding name. Names are
// matched case-insensitively.
func EncoderFor(name string) (Encoder, bool) {
	enc, ok := encoders[strings.ToLower(name)]
	return enc, ok
}

// Encodings returns the sorted content codings that can be produced.
func Encodings() []string {
	names := make([]string, 0, len(encoders))
	for name := range encoders {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Encode runs the encoder for name over src and returns the encoded bytes.
func Encode(name string, src []byte) ([]byte, error) {
	enc, ok := EncoderFor(name)
	if !ok {
		return nil, fmt.Errorf("encode %s: %w", name, ErrUnknownEncoding)
	}

	var buf bytes.Buffer
	if err := enc(&buf, src); err != nil {
		return nil, fmt.Errorf("encode %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func encodeBrotli(dst io.Writer, src []byte) error {
	w := brotli.NewWriterLevel(dst, brotli.BestCompression)
	return writeAndClose(w, src)
}

func encodeGzip(dst io.Writer, src []byte) error {
	w, err := gzip.NewWriterLevel(dst, gzip.BestCompression)
	if err != nil {
		return err
	}
	return writeAndClose(w, src)
}

func encodeDeflate(dst io.Writer, src []byte) error {
	w, err := zlib.NewWriterLevel(dst, zlib.BestCompression)
	if err != nil {
		return err
	}
	return writeAndClose(w, src)
}

func encodeZstd(dst io.Writer, src []byte) error {
	w, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return err
	}
	return writeAndClose(w, src)
}

func writeAndClose(w io.WriteCloser, src []byte) error {
	if _, err := w.Write(src); err != nil {
		_ = w.Close()
		return err
	}
	return w.Close()
}
