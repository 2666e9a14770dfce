package voxel

import (
	"errors"
	"fmt"
)

// BytesPerVoxel is the serialised size of a single voxel.
const BytesPerVoxel = 2

var (
	// ErrInvalidRegion is returned when a volume is requested for an invalid region.
	ErrInvalidRegion = errors.New("voxel: invalid region")

	// ErrSizeMismatch is returned when a byte buffer does not hold exactly the
	// number of voxels implied by its region.
	ErrSizeMismatch = errors.New("voxel: buffer size does not match region")
)

// Material classifies the content of a voxel.
type Material uint8

const (
	MaterialAir         Material = iota // empty space
	MaterialGeneric                     // solid voxel
	MaterialTransparent                 // solid but see-through
)

func (m Material) String() string {
	switch m {
	case MaterialAir:
		return "air"
	case MaterialGeneric:
		return "generic"
	case MaterialTransparent:
		return "transparent"
	default:
		return "unknown"
	}
}

// Voxel is a single cell: a material and an index into the node palette.
type Voxel struct {
	Material Material `json:"material"`
	Color    uint8    `json:"color"`
}

// Create returns a voxel with the given material and palette index.
func Create(m Material, color uint8) Voxel {
	return Voxel{Material: m, Color: color}
}

// IsAir reports whether the voxel is empty space.
func (v Voxel) IsAir() bool {
	return v.Material == MaterialAir
}

// RawVolume is a dense voxel buffer covering a region. Voxels are laid out
// x fastest, then y, then z.
type RawVolume struct {
	region Region
	voxels []Voxel
}

// NewRawVolume allocates an all-air volume for the region. It returns nil
// for an invalid region.
func NewRawVolume(r Region) *RawVolume {
	if !r.IsValid() {
		return nil
	}
	return &RawVolume{
		region: r,
		voxels: make([]Voxel, r.Voxels()),
	}
}

// Region returns the region the volume covers.
func (v *RawVolume) Region() Region {
	return v.region
}

func (v *RawVolume) index(x, y, z int) int {
	r := v.region
	return (x - r.Lower.X) + r.Width()*((y-r.Lower.Y)+r.Height()*(z-r.Lower.Z))
}

// Voxel returns the voxel at the position, or air outside the region.
func (v *RawVolume) Voxel(x, y, z int) Voxel {
	if !v.region.Contains(x, y, z) {
		return Voxel{}
	}
	return v.voxels[v.index(x, y, z)]
}

// SetVoxel writes the voxel at the position. It returns false if the
// position is outside the region.
func (v *RawVolume) SetVoxel(x, y, z int, vx Voxel) bool {
	if !v.region.Contains(x, y, z) {
		return false
	}
	v.voxels[v.index(x, y, z)] = vx
	return true
}

// Fill sets every voxel of the volume.
func (v *RawVolume) Fill(vx Voxel) {
	for i := range v.voxels {
		v.voxels[i] = vx
	}
}

// Solid returns the number of non-air voxels.
func (v *RawVolume) Solid() int {
	n := 0
	for _, vx := range v.voxels {
		if !vx.IsAir() {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the volume.
func (v *RawVolume) Clone() *RawVolume {
	c := &RawVolume{region: v.region, voxels: make([]Voxel, len(v.voxels))}
	copy(c.voxels, v.voxels)
	return c
}

// Equal reports whether both volumes cover the same region with the same voxels.
func (v *RawVolume) Equal(o *RawVolume) bool {
	if v == nil || o == nil {
		return v == o
	}
	if v.region != o.region {
		return false
	}
	for i := range v.voxels {
		if v.voxels[i] != o.voxels[i] {
			return false
		}
	}
	return true
}

// Bytes serialises the voxels, BytesPerVoxel bytes each, in layout order.
func (v *RawVolume) Bytes() []byte {
	buf := make([]byte, 0, len(v.voxels)*BytesPerVoxel)
	for _, vx := range v.voxels {
		buf = append(buf, byte(vx.Material), vx.Color)
	}
	return buf
}

// FromBytes wraps a serialised voxel buffer as a volume for the region.
func FromBytes(buf []byte, r Region) (*RawVolume, error) {
	if !r.IsValid() {
		return nil, ErrInvalidRegion
	}
	if len(buf) != r.Voxels()*BytesPerVoxel {
		return nil, fmt.Errorf("%w: got %d bytes for %d voxels", ErrSizeMismatch, len(buf), r.Voxels())
	}
	v := NewRawVolume(r)
	for i := range v.voxels {
		v.voxels[i] = Voxel{Material: Material(buf[i*BytesPerVoxel]), Color: buf[i*BytesPerVoxel+1]}
	}
	return v, nil
}

// Crop copies the part of the volume inside r into a new volume covering r.
// Voxels of r that lie outside the source stay air.
func (v *RawVolume) Crop(r Region) (*RawVolume, error) {
	if !r.IsValid() {
		return nil, ErrInvalidRegion
	}
	out := NewRawVolume(r)
	out.CopyInto(v, r)
	return out, nil
}

// CopyInto copies the voxels of src that fall inside r into v. Only the
// overlap of r, src and v is touched. It returns false if there is none.
func (v *RawVolume) CopyInto(src *RawVolume, r Region) bool {
	area, ok := r.Intersect(src.region)
	if !ok {
		return false
	}
	area, ok = area.Intersect(v.region)
	if !ok {
		return false
	}
	for z := area.Lower.Z; z <= area.Upper.Z; z++ {
		for y := area.Lower.Y; y <= area.Upper.Y; y++ {
			for x := area.Lower.X; x <= area.Upper.X; x++ {
				v.voxels[v.index(x, y, z)] = src.voxels[src.index(x, y, z)]
			}
		}
	}
	return true
}
