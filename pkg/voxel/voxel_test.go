package voxel

import (
	"errors"
	"testing"

	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func TestRegionBasics(t *testing.T) {
	r := Cube(0, 1)
	if !r.IsValid() {
		t.Fatal("Cube(0, 1) should be valid")
	}
	if r.Width() != 2 || r.Height() != 2 || r.Depth() != 2 {
		t.Errorf("size = %dx%dx%d, want 2x2x2", r.Width(), r.Height(), r.Depth())
	}
	if r.Voxels() != 8 {
		t.Errorf("Voxels() = %d, want 8", r.Voxels())
	}
	if !r.Contains(1, 1, 1) || r.Contains(2, 0, 0) {
		t.Error("Contains returned wrong result")
	}
	if InvalidRegion.IsValid() {
		t.Error("InvalidRegion should not be valid")
	}
	if InvalidRegion.Voxels() != 0 {
		t.Errorf("InvalidRegion.Voxels() = %d, want 0", InvalidRegion.Voxels())
	}
}

func TestRegionIntersect(t *testing.T) {
	a := Cube(0, 3)
	b := Cube(2, 5)
	got, ok := a.Intersect(b)
	if !ok {
		t.Fatal("regions should overlap")
	}
	if got != Cube(2, 3) {
		t.Errorf("Intersect = %s, want %s", got, Cube(2, 3))
	}
	if _, ok := a.Intersect(Cube(10, 11)); ok {
		t.Error("disjoint regions should not overlap")
	}
	if !a.ContainsRegion(Cube(1, 2)) {
		t.Error("Cube(0,3) should contain Cube(1,2)")
	}
	if a.ContainsRegion(b) {
		t.Error("Cube(0,3) should not contain Cube(2,5)")
	}
}

func TestRegionString(t *testing.T) {
	if got := Cube(0, 1).String(); got != "region(0:0:0/1:1:1)" {
		t.Errorf("String() = %q", got)
	}
	if got := InvalidRegion.String(); got != "region(invalid)" {
		t.Errorf("String() = %q", got)
	}
}

func TestNewRawVolumeInvalid(t *testing.T) {
	if v := NewRawVolume(InvalidRegion); v != nil {
		t.Error("NewRawVolume should return nil for an invalid region")
	}
}

func TestVoxelAccess(t *testing.T) {
	v := NewRawVolume(NewRegion(-1, -1, -1, 2, 2, 2))
	vx := Create(MaterialGeneric, 7)
	if !v.SetVoxel(-1, 2, 0, vx) {
		t.Fatal("SetVoxel inside region failed")
	}
	if v.SetVoxel(3, 0, 0, vx) {
		t.Error("SetVoxel outside region should fail")
	}
	if got := v.Voxel(-1, 2, 0); got != vx {
		t.Errorf("Voxel = %+v, want %+v", got, vx)
	}
	if !v.Voxel(5, 5, 5).IsAir() {
		t.Error("voxel outside region should be air")
	}
	if v.Solid() != 1 {
		t.Errorf("Solid() = %d, want 1", v.Solid())
	}
}

func TestBytesRoundTrip(t *testing.T) {
	v := NewRawVolume(Cube(0, 2))
	v.SetVoxel(0, 0, 0, Create(MaterialGeneric, 1))
	v.SetVoxel(2, 1, 2, Create(MaterialTransparent, 200))

	buf := v.Bytes()
	if len(buf) != v.Region().Voxels()*BytesPerVoxel {
		t.Fatalf("len(Bytes()) = %d, want %d", len(buf), v.Region().Voxels()*BytesPerVoxel)
	}
	back, err := FromBytes(buf, v.Region())
	if err != nil {
		t.Fatalf("FromBytes: %v", err)
	}
	if !back.Equal(v) {
		t.Error("round trip changed the volume")
	}

	if _, err := FromBytes(buf[:3], v.Region()); !errors.Is(err, ErrSizeMismatch) {
		t.Errorf("short buffer error = %v, want ErrSizeMismatch", err)
	}
	if _, err := FromBytes(buf, InvalidRegion); !errors.Is(err, ErrInvalidRegion) {
		t.Errorf("invalid region error = %v, want ErrInvalidRegion", err)
	}
}

func TestCopyInto(t *testing.T) {
	src := NewRawVolume(Cube(0, 3))
	src.Fill(Create(MaterialGeneric, 3))
	dst := NewRawVolume(Cube(2, 5))

	if !dst.CopyInto(src, Cube(0, 5)) {
		t.Fatal("CopyInto should copy the overlap")
	}
	// Only the 2x2x2 overlap (2..3) is copied.
	if dst.Solid() != 8 {
		t.Errorf("Solid() = %d, want 8", dst.Solid())
	}
	if !dst.Voxel(4, 4, 4).IsAir() {
		t.Error("voxel outside the overlap should stay air")
	}
	if dst.CopyInto(src, Cube(10, 12)) {
		t.Error("CopyInto without overlap should return false")
	}
}

func TestCrop(t *testing.T) {
	src := NewRawVolume(Cube(0, 3))
	src.SetVoxel(1, 1, 1, Create(MaterialGeneric, 9))
	c, err := src.Crop(Cube(1, 2))
	if err != nil {
		t.Fatalf("Crop: %v", err)
	}
	if c.Region() != Cube(1, 2) {
		t.Errorf("Crop region = %s", c.Region())
	}
	if c.Voxel(1, 1, 1).Color != 9 {
		t.Error("cropped voxel lost its color")
	}
}

func TestCloneIsDeep(t *testing.T) {
	v := NewRawVolume(Cube(0, 1))
	c := v.Clone()
	c.SetVoxel(0, 0, 0, Create(MaterialGeneric, 1))
	if !v.Voxel(0, 0, 0).IsAir() {
		t.Error("mutating the clone changed the original")
	}
}

func TestVoxelizeSphere(t *testing.T) {
	s, err := sdf.Sphere3D(4)
	if err != nil {
		t.Fatalf("Sphere3D: %v", err)
	}
	r := Cube(-4, 3)
	v := Voxelize(s, r, 5)
	if v == nil {
		t.Fatal("Voxelize returned nil")
	}
	if c := v.Voxel(0, 0, 0); c.IsAir() || c.Color != 5 {
		t.Errorf("center voxel = %+v, want color 5", c)
	}
	if !v.Voxel(-4, -4, -4).IsAir() {
		t.Error("corner voxel should be outside the sphere")
	}
	// Sphere volume is 4/3*pi*64 ~ 268 voxels.
	if n := v.Solid(); n < 200 || n > 340 {
		t.Errorf("Solid() = %d, want roughly 268", n)
	}
}

func TestVoxelizeBox(t *testing.T) {
	s, err := sdf.Box3D(v3.Vec{X: 4, Y: 2, Z: 2}, 0)
	if err != nil {
		t.Fatalf("Box3D: %v", err)
	}
	v := Voxelize(s, NewRegion(-2, -1, -1, 1, 0, 0), 1)
	if v.Solid() != 16 {
		t.Errorf("Solid() = %d, want 16", v.Solid())
	}
}

func TestVoxelizeBoxPlacement(t *testing.T) {
	v, err := VoxelizeBox(3, 2, 1, 4)
	if err != nil {
		t.Fatalf("VoxelizeBox: %v", err)
	}
	if v.Region() != NewRegion(0, 0, 0, 2, 1, 0) {
		t.Errorf("Region() = %s, want region(0:0:0/2:1:0)", v.Region())
	}
	if v.Solid() != 6 {
		t.Errorf("Solid() = %d, want 6", v.Solid())
	}
}
