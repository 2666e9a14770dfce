// Package codec defines the lossless byte codec the history engine uses
// to compress voxel snapshots. Implementations (zlib, zstd, s2) sit behind
// the Codec interface so the backend can be swapped by configuration.
package codec

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrUnknownCodec is returned by ByName for an unregistered codec name.
	ErrUnknownCodec = errors.New("codec: unknown codec")

	// ErrCorrupt is returned when decompressed data does not have the
	// expected length or the stream cannot be decoded.
	ErrCorrupt = errors.New("codec: corrupt data")
)

// Codec compresses and decompresses byte buffers.
type Codec interface {
	// Name returns the registry name of the codec.
	Name() string

	// Compress returns the compressed form of src.
	Compress(src []byte) ([]byte, error)

	// Decompress inflates src. The result must be exactly expectedLen
	// bytes long, otherwise ErrCorrupt is returned.
	Decompress(src []byte, expectedLen int) ([]byte, error)
}

// DefaultLevel is the compression level used when none is configured.
const DefaultLevel = 6

// Default returns the default codec (zlib at DefaultLevel).
func Default() Codec {
	return NewZlib(DefaultLevel)
}

var constructors = map[string]func(level int) Codec{
	"zlib": func(level int) Codec { return NewZlib(level) },
	"zstd": func(level int) Codec { return NewZstd(level) },
	"s2":   func(level int) Codec { return NewS2(level) },
}

// ByName returns the codec registered under name, configured with level.
func ByName(name string, level int) (Codec, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCodec, name)
	}
	return ctor(level), nil
}

// Names returns the registered codec names in sorted order.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for n := range constructors {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

func checkLen(name string, out []byte, expectedLen int) ([]byte, error) {
	if len(out) != expectedLen {
		return nil, fmt.Errorf("%w: %s: got %d bytes, want %d", ErrCorrupt, name, len(out), expectedLen)
	}
	return out, nil
}
