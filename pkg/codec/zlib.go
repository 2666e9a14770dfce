package codec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

// Compile-time interface check.
var _ Codec = (*Zlib)(nil)

// Zlib is a deflate codec with the zlib framing.
type Zlib struct {
	level int
}

// NewZlib returns a zlib codec. Levels outside 0..9 are clamped.
func NewZlib(level int) *Zlib {
	return &Zlib{level: min(max(level, zlib.NoCompression), zlib.BestCompression)}
}

// Name returns "zlib".
func (z *Zlib) Name() string { return "zlib" }

// Level returns the configured compression level.
func (z *Zlib) Level() int { return z.level }

// Compress deflates src.
func (z *Zlib) Compress(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zlib.NewWriterLevel(&buf, z.level)
	if err != nil {
		return nil, fmt.Errorf("codec: zlib writer: %w", err)
	}
	if _, err := w.Write(src); err != nil {
		return nil, fmt.Errorf("codec: zlib write: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("codec: zlib close: %w", err)
	}
	return buf.Bytes(), nil
}

// Decompress inflates src into a buffer of expectedLen bytes.
func (z *Zlib) Decompress(src []byte, expectedLen int) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrCorrupt, err)
	}
	defer r.Close()

	out := make([]byte, 0, expectedLen)
	b := bytes.NewBuffer(out)
	// Read one byte past the expected length so oversized streams are caught.
	if _, err := io.Copy(b, io.LimitReader(r, int64(expectedLen)+1)); err != nil {
		return nil, fmt.Errorf("%w: zlib: %v", ErrCorrupt, err)
	}
	return checkLen(z.Name(), b.Bytes(), expectedLen)
}
