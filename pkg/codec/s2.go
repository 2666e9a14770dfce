package codec

import (
	"fmt"

	"github.com/klauspost/compress/s2"
)

var _ Codec = (*S2)(nil)

// S2 is the block format of the s2 (snappy compatible) codec. It trades
// ratio for speed, which suits large volumes recorded on every stroke.
type S2 struct {
	better bool
}

// NewS2 returns an s2 codec. Levels above DefaultLevel select the
// slower "better" encoder.
func NewS2(level int) *S2 {
	return &S2{better: level > DefaultLevel}
}

// Name returns "s2".
func (c *S2) Name() string { return "s2" }

// Compress encodes src as one s2 block.
func (c *S2) Compress(src []byte) ([]byte, error) {
	if c.better {
		return s2.EncodeBetter(nil, src), nil
	}
	return s2.Encode(nil, src), nil
}

// Decompress decodes one s2 block of expectedLen bytes.
func (c *S2) Decompress(src []byte, expectedLen int) ([]byte, error) {
	n, err := s2.DecodedLen(src)
	if err != nil {
		return nil, fmt.Errorf("%w: s2: %v", ErrCorrupt, err)
	}
	if n != expectedLen {
		return nil, fmt.Errorf("%w: s2: block holds %d bytes, want %d", ErrCorrupt, n, expectedLen)
	}
	out, err := s2.Decode(make([]byte, n), src)
	if err != nil {
		return nil, fmt.Errorf("%w: s2: %v", ErrCorrupt, err)
	}
	return out, nil
}
