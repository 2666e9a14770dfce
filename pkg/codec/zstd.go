package codec

import (
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
)

var _ Codec = (*Zstd)(nil)

// Zstd is a zstandard codec. The encoder and decoder are created lazily
// and reused; both are safe for concurrent EncodeAll/DecodeAll calls.
type Zstd struct {
	level int

	once    sync.Once
	enc     *zstd.Encoder
	dec     *zstd.Decoder
	initErr error
}

// NewZstd returns a zstd codec. The level uses the zstd command line
// scale (1..22) and is mapped onto the encoder's speed presets.
func NewZstd(level int) *Zstd {
	return &Zstd{level: level}
}

// Name returns "zstd".
func (z *Zstd) Name() string { return "zstd" }

func (z *Zstd) init() error {
	z.once.Do(func() {
		z.enc, z.initErr = zstd.NewWriter(nil,
			zstd.WithEncoderLevel(zstd.EncoderLevelFromZstd(z.level)))
		if z.initErr != nil {
			return
		}
		z.dec, z.initErr = zstd.NewReader(nil)
	})
	return z.initErr
}

// Compress encodes src as a single zstd frame.
func (z *Zstd) Compress(src []byte) ([]byte, error) {
	if err := z.init(); err != nil {
		return nil, fmt.Errorf("codec: zstd init: %w", err)
	}
	return z.enc.EncodeAll(src, nil), nil
}

// Decompress decodes a zstd frame of expectedLen bytes.
func (z *Zstd) Decompress(src []byte, expectedLen int) ([]byte, error) {
	if err := z.init(); err != nil {
		return nil, fmt.Errorf("codec: zstd init: %w", err)
	}
	out, err := z.dec.DecodeAll(src, make([]byte, 0, expectedLen))
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %v", ErrCorrupt, err)
	}
	return checkLen(z.Name(), out, expectedLen)
}
