package main

import (
	"fmt"
	"log/slog"

	"github.com/chazu/voxmemento/pkg/history"
	"github.com/chazu/voxmemento/pkg/scene"
	"github.com/chazu/voxmemento/pkg/voxel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// newStore builds a store from the active configuration.
func newStore(log *slog.Logger, extra ...history.Option) (*history.Store, error) {
	opts, err := cfg.Options(log)
	if err != nil {
		return nil, err
	}
	return history.New(append(opts, extra...)...), nil
}

// sphereNode voxelises a sphere of the given diameter centred on the
// origin.
func sphereNode(name string, size int, color uint8) (*scene.Node, error) {
	s, err := sdf.Sphere3D(float64(size) / 2)
	if err != nil {
		return nil, fmt.Errorf("sphere: %w", err)
	}
	vol := voxel.Voxelize(s, voxel.Cube(-size/2, size-size/2-1), color)
	if vol == nil {
		return nil, fmt.Errorf("sphere: invalid size %d", size)
	}
	return scene.NewModel(name, vol, scene.GrayscalePalette(16)), nil
}

// paint sets every voxel of r inside vol to color.
func paint(vol *voxel.RawVolume, r voxel.Region, color uint8) {
	vx := voxel.Create(voxel.MaterialGeneric, color)
	for z := r.Lower.Z; z <= r.Upper.Z; z++ {
		for y := r.Lower.Y; y <= r.Upper.Y; y++ {
			for x := r.Lower.X; x <= r.Upper.X; x++ {
				vol.SetVoxel(x, y, z, vx)
			}
		}
	}
}

// demoScene builds a two model scene and a short history over it: a
// paint stroke, a rename, a move into a group and a transform.
func demoScene(s *history.Store) (*scene.Graph, error) {
	g := scene.NewGraph()
	sphere, err := sphereNode("sphere", 8, 1)
	if err != nil {
		return nil, err
	}
	boxVol, err := voxel.VoxelizeBox(4, 4, 4, 2)
	if err != nil {
		return nil, fmt.Errorf("box: %w", err)
	}
	g.AddNode(sphere, scene.RootID)
	box := scene.NewModel("box", boxVol, scene.GrayscalePalette(16))
	g.AddNode(box, scene.RootID)
	s.RecordInitialScene(g)

	s.WithGroup("paint", func() {
		stroke := voxel.Cube(0, 1)
		paint(sphere.Volume, stroke, 7)
		s.RecordModification(history.StateOf(sphere, 0), sphere.Volume, stroke)
	})

	box.Name = "crate"
	s.RecordNodeRenamed(history.StateOf(box, 0))

	group := scene.NewNode(scene.NodeTypeGroup, "props")
	g.AddNode(group, scene.RootID)
	s.WithGroup("group props", func() {
		s.RecordNodeAdded(history.StateOf(group, 0), nil, nil, group.KeyFrames, group.Properties)
		g.Move(box.ID, group.ID)
		s.RecordNodeMoved(history.StateOf(box, 0))
	})

	box.SetLocalMatrix(0, sdf.Translate3d(v3.Vec{X: 8}))
	s.RecordNodeTransform(history.StateOf(box, 0))
	return g, nil
}
