package scene

import (
	"encoding/binary"
	"fmt"
	"image/color"
	"slices"

	"github.com/cespare/xxhash/v2"
)

// PaletteMaxColors is the number of color slots a palette can address.
const PaletteMaxColors = 256

// Palette is the indexed color table of a node.
type Palette struct {
	Name   string       `json:"name"`
	Colors []color.RGBA `json:"colors"`
}

// NewPalette returns a palette with the given colors.
func NewPalette(name string, colors ...color.RGBA) Palette {
	return Palette{Name: name, Colors: colors}
}

// GrayscalePalette returns a palette of n evenly spaced gray levels.
func GrayscalePalette(n int) Palette {
	n = min(max(n, 1), PaletteMaxColors)
	p := Palette{Name: "grayscale", Colors: make([]color.RGBA, n)}
	for i := range p.Colors {
		v := uint8(i * 255 / max(n-1, 1))
		p.Colors[i] = color.RGBA{R: v, G: v, B: v, A: 255}
	}
	return p
}

// Size returns the number of colors.
func (p Palette) Size() int {
	return len(p.Colors)
}

// Clone deep-copies the palette.
func (p Palette) Clone() Palette {
	return Palette{Name: p.Name, Colors: slices.Clone(p.Colors)}
}

// SetColor writes a color slot, growing the table if needed. It returns
// false for an index outside the addressable range.
func (p *Palette) SetColor(i int, c color.RGBA) bool {
	if i < 0 || i >= PaletteMaxColors {
		return false
	}
	if i >= len(p.Colors) {
		p.Colors = append(p.Colors, make([]color.RGBA, i+1-len(p.Colors))...)
	}
	p.Colors[i] = c
	return true
}

// Hash returns a content hash of the colors. The name is not part of it.
func (p Palette) Hash() uint64 {
	d := xxhash.New()
	var b [4]byte
	for _, c := range p.Colors {
		binary.LittleEndian.PutUint32(b[:], uint32(c.R)|uint32(c.G)<<8|uint32(c.B)<<16|uint32(c.A)<<24)
		_, _ = d.Write(b[:])
	}
	return d.Sum64()
}

// Equal reports whether both palettes hold the same colors.
func (p Palette) Equal(o Palette) bool {
	return slices.Equal(p.Colors, o.Colors)
}

func (p Palette) String() string {
	return fmt.Sprintf("palette(%s, %d colors, %016x)", p.Name, len(p.Colors), p.Hash())
}
