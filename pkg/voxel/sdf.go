package voxel

import (
	"math"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// BoundingRegion returns the smallest region whose voxels cover the
// bounding box of the solid.
func BoundingRegion(s sdf.SDF3) Region {
	bb := s.BoundingBox()
	return NewRegion(
		int(math.Floor(bb.Min.X)), int(math.Floor(bb.Min.Y)), int(math.Floor(bb.Min.Z)),
		int(math.Ceil(bb.Max.X))-1, int(math.Ceil(bb.Max.Y))-1, int(math.Ceil(bb.Max.Z))-1,
	)
}

// Voxelize samples the signed distance field at every voxel center of r and
// marks the voxels inside the solid with the given palette color.
func Voxelize(s sdf.SDF3, r Region, color uint8) *RawVolume {
	v := NewRawVolume(r)
	if v == nil {
		return nil
	}
	solid := Create(MaterialGeneric, color)
	for z := r.Lower.Z; z <= r.Upper.Z; z++ {
		for y := r.Lower.Y; y <= r.Upper.Y; y++ {
			for x := r.Lower.X; x <= r.Upper.X; x++ {
				p := v3.Vec{X: float64(x) + 0.5, Y: float64(y) + 0.5, Z: float64(z) + 0.5}
				if s.Evaluate(p) <= 0 {
					v.voxels[v.index(x, y, z)] = solid
				}
			}
		}
	}
	return v
}

// VoxelizeBox voxelises an axis-aligned box with its minimum corner at the
// origin, the same placement convention the geometry kernel uses.
func VoxelizeBox(x, y, z float64, color uint8) (*RawVolume, error) {
	s, err := sdf.Box3D(v3.Vec{X: x, Y: y, Z: z}, 0)
	if err != nil {
		return nil, err
	}
	s = sdf.Transform3D(s, sdf.Translate3d(v3.Vec{X: x / 2, Y: y / 2, Z: z / 2}))
	return Voxelize(s, BoundingRegion(s), color), nil
}
