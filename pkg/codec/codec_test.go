package codec

import (
	"bytes"
	"errors"
	"testing"
)

func sample() []byte {
	buf := make([]byte, 4096)
	for i := range buf {
		buf[i] = byte(i / 64)
	}
	return buf
}

func allCodecs(t *testing.T) []Codec {
	t.Helper()
	var out []Codec
	for _, name := range Names() {
		c, err := ByName(name, DefaultLevel)
		if err != nil {
			t.Fatalf("ByName(%q): %v", name, err)
		}
		out = append(out, c)
	}
	return out
}

func TestRoundTrip(t *testing.T) {
	src := sample()
	for _, c := range allCodecs(t) {
		t.Run(c.Name(), func(t *testing.T) {
			packed, err := c.Compress(src)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if len(packed) >= len(src) {
				t.Errorf("compressed size %d not smaller than %d", len(packed), len(src))
			}
			got, err := c.Decompress(packed, len(src))
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(got, src) {
				t.Error("round trip changed the data")
			}
		})
	}
}

func TestDecompressWrongLength(t *testing.T) {
	src := sample()
	for _, c := range allCodecs(t) {
		t.Run(c.Name(), func(t *testing.T) {
			packed, err := c.Compress(src)
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}
			if _, err := c.Decompress(packed, len(src)+1); !errors.Is(err, ErrCorrupt) {
				t.Errorf("longer expected length: err = %v, want ErrCorrupt", err)
			}
			if _, err := c.Decompress(packed, len(src)-1); !errors.Is(err, ErrCorrupt) {
				t.Errorf("shorter expected length: err = %v, want ErrCorrupt", err)
			}
		})
	}
}

func TestDecompressGarbage(t *testing.T) {
	garbage := []byte("definitely not a compressed stream")
	for _, c := range allCodecs(t) {
		if _, err := c.Decompress(garbage, 128); !errors.Is(err, ErrCorrupt) {
			t.Errorf("%s: err = %v, want ErrCorrupt", c.Name(), err)
		}
	}
}

func TestByNameUnknown(t *testing.T) {
	if _, err := ByName("lzma", 1); !errors.Is(err, ErrUnknownCodec) {
		t.Errorf("err = %v, want ErrUnknownCodec", err)
	}
}

func TestZlibLevelClamped(t *testing.T) {
	if got := NewZlib(42).Level(); got != 9 {
		t.Errorf("Level() = %d, want 9", got)
	}
	if got := NewZlib(-5).Level(); got != 0 {
		t.Errorf("Level() = %d, want 0", got)
	}
}
