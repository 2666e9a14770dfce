package history

import (
	"fmt"
	"slices"

	"github.com/chazu/voxmemento/pkg/codec"
	"github.com/chazu/voxmemento/pkg/voxel"
)

// VolumeSnapshot is a compressed capture of the voxels of a region.
// The zero value is the empty snapshot ("no volume").
//
// A snapshot owns its buffer. Plain assignment moves it; use Clone to
// get an independent copy.
type VolumeSnapshot struct {
	buf    []byte
	region voxel.Region
}

// EmptySnapshot returns a snapshot without voxel data that remembers r.
func EmptySnapshot(r voxel.Region) VolumeSnapshot {
	return VolumeSnapshot{region: r}
}

// FromVolume captures the full region of vol. A nil volume yields the
// empty snapshot for r.
func FromVolume(c codec.Codec, vol *voxel.RawVolume, r voxel.Region) (VolumeSnapshot, error) {
	if vol == nil {
		return EmptySnapshot(r), nil
	}
	return compress(c, vol)
}

// FromVolumeRegion captures only the part of vol inside r. It falls back
// to the full volume when r is invalid.
func FromVolumeRegion(c codec.Codec, vol *voxel.RawVolume, r voxel.Region) (VolumeSnapshot, error) {
	if vol == nil {
		return EmptySnapshot(r), nil
	}
	if !r.IsValid() {
		return compress(c, vol)
	}
	area, ok := r.Intersect(vol.Region())
	if !ok {
		return EmptySnapshot(r), fmt.Errorf("history: capture %s: %w", r, voxel.ErrInvalidRegion)
	}
	part, err := vol.Crop(area)
	if err != nil {
		return EmptySnapshot(r), fmt.Errorf("history: capture %s: %w", r, err)
	}
	return compress(c, part)
}

func compress(c codec.Codec, vol *voxel.RawVolume) (VolumeSnapshot, error) {
	buf, err := c.Compress(vol.Bytes())
	if err != nil {
		return EmptySnapshot(vol.Region()), fmt.Errorf("history: compress %s: %w", vol.Region(), err)
	}
	return VolumeSnapshot{buf: buf, region: vol.Region()}, nil
}

// Empty reports whether the snapshot holds no voxel data.
func (s VolumeSnapshot) Empty() bool {
	return len(s.buf) == 0
}

// Size returns the compressed size in bytes.
func (s VolumeSnapshot) Size() int {
	return len(s.buf)
}

// Region returns the captured region.
func (s VolumeSnapshot) Region() voxel.Region {
	return s.region
}

// Clone returns a deep copy.
func (s VolumeSnapshot) Clone() VolumeSnapshot {
	return VolumeSnapshot{buf: slices.Clone(s.buf), region: s.region}
}

// Decode decompresses the snapshot into a fresh volume covering its region.
func (s VolumeSnapshot) Decode(c codec.Codec) (*voxel.RawVolume, error) {
	if s.Empty() {
		return nil, ErrEmptySnapshot
	}
	raw, err := c.Decompress(s.buf, s.region.Voxels()*voxel.BytesPerVoxel)
	if err != nil {
		return nil, fmt.Errorf("history: decode %s: %w", s.region, err)
	}
	return voxel.FromBytes(raw, s.region)
}

// ToVolume restores the snapshot into target at the captured region.
func (s VolumeSnapshot) ToVolume(c codec.Codec, target *voxel.RawVolume) error {
	return s.ToVolumeRegion(c, target, s.region)
}

// ToVolumeRegion restores the part of the snapshot inside r into target.
func (s VolumeSnapshot) ToVolumeRegion(c codec.Codec, target *voxel.RawVolume, r voxel.Region) error {
	if s.Empty() {
		return ErrEmptySnapshot
	}
	if target == nil {
		return ErrNoVolume
	}
	tmp, err := s.Decode(c)
	if err != nil {
		return err
	}
	target.CopyInto(tmp, r)
	return nil
}

func (s VolumeSnapshot) String() string {
	if s.Empty() {
		return "empty"
	}
	return fmt.Sprintf("%db %s", len(s.buf), s.region)
}
