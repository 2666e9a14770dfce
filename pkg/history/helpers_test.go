package history

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/chazu/voxmemento/pkg/scene"
	"github.com/chazu/voxmemento/pkg/voxel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
	"github.com/stretchr/testify/require"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newStore(opts ...Option) *Store {
	return New(append([]Option{WithLogger(quietLogger())}, opts...)...)
}

func state(id scene.NodeID) NodeState {
	return NodeState{
		NodeID:      id,
		ParentID:    scene.RootID,
		ReferenceID: scene.InvalidNodeID,
		NodeType:    scene.NodeTypeModel,
		Region:      voxel.Cube(0, 3),
		LocalMatrix: sdf.Identity3d(),
	}
}

func named(id scene.NodeID, name string) NodeState {
	n := state(id)
	n.Name = name
	return n
}

func filled(color uint8) *voxel.RawVolume {
	v := voxel.NewRawVolume(voxel.Cube(0, 3))
	v.Fill(voxel.Create(voxel.MaterialGeneric, color))
	return v
}

func translated(x float64) sdf.M44 {
	return sdf.Translate3d(v3.Vec{X: x})
}

// decode returns the voxel content of a record's snapshot.
func decode(t *testing.T, s *Store, r Record) *voxel.RawVolume {
	t.Helper()
	snap, ok := r.Volume()
	require.True(t, ok, "record %s carries no volume", r.Kind())
	vol, err := snap.Decode(s.Codec())
	require.NoError(t, err)
	return vol
}

// addNode records a NodeAdded with a filled volume and a gray palette.
func addNode(t *testing.T, s *Store, n NodeState, color uint8) {
	t.Helper()
	pal := scene.GrayscalePalette(4)
	kf := scene.KeyFrames{scene.DefaultAnimation: {scene.NewKeyFrame(0)}}
	require.True(t, s.RecordNodeAdded(n, filled(color), &pal, kf, scene.Properties{}))
}

type failingCodec struct{}

func (failingCodec) Name() string { return "failing" }

func (failingCodec) Compress([]byte) ([]byte, error) {
	return nil, errors.New("disk full")
}

func (failingCodec) Decompress([]byte, int) ([]byte, error) {
	return nil, errors.New("disk full")
}
