// Package voxel defines the voxel volume types the history engine snapshots:
// integer regions, voxels, and the flat RawVolume buffer.
package voxel

import (
	"fmt"
	"math"

	"github.com/deadsy/sdfx/vec/v3i"
)

// Region is an axis-aligned box of voxel coordinates. Both corners are
// inclusive, so a region from (0,0,0) to (1,1,1) holds eight voxels.
type Region struct {
	Lower v3i.Vec `json:"lower"`
	Upper v3i.Vec `json:"upper"`
}

// InvalidRegion is the region used wherever "no region" is meant. Its lower
// corner lies above its upper corner on every axis.
var InvalidRegion = Region{
	Lower: v3i.Vec{X: math.MaxInt32, Y: math.MaxInt32, Z: math.MaxInt32},
	Upper: v3i.Vec{X: math.MinInt32, Y: math.MinInt32, Z: math.MinInt32},
}

// NewRegion creates a region from its inclusive lower and upper corners.
func NewRegion(lx, ly, lz, ux, uy, uz int) Region {
	return Region{
		Lower: v3i.Vec{X: lx, Y: ly, Z: lz},
		Upper: v3i.Vec{X: ux, Y: uy, Z: uz},
	}
}

// Cube creates a region spanning [lower, upper] on all three axes.
func Cube(lower, upper int) Region {
	return NewRegion(lower, lower, lower, upper, upper, upper)
}

// IsValid reports whether the lower corner does not exceed the upper corner.
func (r Region) IsValid() bool {
	return r.Lower.X <= r.Upper.X && r.Lower.Y <= r.Upper.Y && r.Lower.Z <= r.Upper.Z
}

// Width returns the number of voxels along X.
func (r Region) Width() int {
	if !r.IsValid() {
		return 0
	}
	return r.Upper.X - r.Lower.X + 1
}

// Height returns the number of voxels along Y.
func (r Region) Height() int {
	if !r.IsValid() {
		return 0
	}
	return r.Upper.Y - r.Lower.Y + 1
}

// Depth returns the number of voxels along Z.
func (r Region) Depth() int {
	if !r.IsValid() {
		return 0
	}
	return r.Upper.Z - r.Lower.Z + 1
}

// Voxels returns the number of voxels the region covers.
func (r Region) Voxels() int {
	return r.Width() * r.Height() * r.Depth()
}

// Contains reports whether the point lies inside the region.
func (r Region) Contains(x, y, z int) bool {
	return x >= r.Lower.X && x <= r.Upper.X &&
		y >= r.Lower.Y && y <= r.Upper.Y &&
		z >= r.Lower.Z && z <= r.Upper.Z
}

// ContainsRegion reports whether o lies completely inside r.
func (r Region) ContainsRegion(o Region) bool {
	if !r.IsValid() || !o.IsValid() {
		return false
	}
	return r.Contains(o.Lower.X, o.Lower.Y, o.Lower.Z) && r.Contains(o.Upper.X, o.Upper.Y, o.Upper.Z)
}

// Intersect returns the overlap of both regions. The second result is false
// if they do not overlap.
func (r Region) Intersect(o Region) (Region, bool) {
	out := Region{
		Lower: v3i.Vec{X: max(r.Lower.X, o.Lower.X), Y: max(r.Lower.Y, o.Lower.Y), Z: max(r.Lower.Z, o.Lower.Z)},
		Upper: v3i.Vec{X: min(r.Upper.X, o.Upper.X), Y: min(r.Upper.Y, o.Upper.Y), Z: min(r.Upper.Z, o.Upper.Z)},
	}
	if !out.IsValid() {
		return InvalidRegion, false
	}
	return out, true
}

func (r Region) String() string {
	if !r.IsValid() {
		return "region(invalid)"
	}
	return fmt.Sprintf("region(%d:%d:%d/%d:%d:%d)",
		r.Lower.X, r.Lower.Y, r.Lower.Z, r.Upper.X, r.Upper.Y, r.Upper.Z)
}
