package scene

import (
	"image/color"
	"testing"

	"github.com/chazu/voxmemento/pkg/voxel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

func newModel(t *testing.T, g *Graph, name string, parent NodeID) *Node {
	t.Helper()
	n := NewModel(name, voxel.NewRawVolume(voxel.Cube(0, 1)), GrayscalePalette(4))
	if id := g.AddNode(n, parent); id == InvalidNodeID {
		t.Fatalf("AddNode(%q) failed", name)
	}
	return n
}

func TestGraphAddAndGet(t *testing.T) {
	g := NewGraph()
	a := newModel(t, g, "a", RootID)
	b := newModel(t, g, "b", a.ID)

	if a.ID != 1 || b.ID != 2 {
		t.Errorf("ids = %d, %d, want 1, 2", a.ID, b.ID)
	}
	if g.NodeCount() != 3 {
		t.Errorf("NodeCount() = %d, want 3", g.NodeCount())
	}
	if b.ParentID != a.ID {
		t.Errorf("b.ParentID = %d, want %d", b.ParentID, a.ID)
	}
	if got := g.Children(a); len(got) != 1 || got[0] != b {
		t.Errorf("Children(a) = %v", got)
	}
	if g.Lookup("b") != b {
		t.Error("Lookup(b) did not find the node")
	}
	if g.AddNode(NewNode(NodeTypeGroup, "orphan"), 99) != InvalidNodeID {
		t.Error("AddNode with missing parent should fail")
	}
}

func TestGraphRemoveSubtree(t *testing.T) {
	g := NewGraph()
	a := newModel(t, g, "a", RootID)
	newModel(t, g, "b", a.ID)
	if !g.Remove(a.ID) {
		t.Fatal("Remove(a) failed")
	}
	if g.NodeCount() != 1 {
		t.Errorf("NodeCount() = %d, want 1", g.NodeCount())
	}
	if len(g.MustGet(RootID).Children) != 0 {
		t.Error("root still lists the removed child")
	}
	if g.Remove(RootID) {
		t.Error("root must not be removable")
	}
}

func TestGraphMove(t *testing.T) {
	g := NewGraph()
	a := newModel(t, g, "a", RootID)
	b := newModel(t, g, "b", RootID)
	if !g.Move(b.ID, a.ID) {
		t.Fatal("Move(b, a) failed")
	}
	if b.ParentID != a.ID || len(g.MustGet(RootID).Children) != 1 {
		t.Errorf("b.ParentID = %d, root children = %v", b.ParentID, g.MustGet(RootID).Children)
	}
	if g.Move(a.ID, b.ID) {
		t.Error("moving a node below its own child should fail")
	}
}

func TestMustGetPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustGet should panic for a missing node")
		}
	}()
	NewGraph().MustGet(42)
}

func TestNodeCloneIsDeep(t *testing.T) {
	g := NewGraph()
	n := newModel(t, g, "a", RootID)
	n.Properties["k"] = "v"
	c := n.Clone()
	c.Volume.SetVoxel(0, 0, 0, voxel.Create(voxel.MaterialGeneric, 1))
	c.Properties["k"] = "changed"
	c.Palette.Colors[0] = color.RGBA{R: 1}
	c.SetLocalMatrix(0, sdf.Translate3d(v3.Vec{X: 1}))

	if !n.Volume.Voxel(0, 0, 0).IsAir() {
		t.Error("clone shares the volume")
	}
	if n.Properties["k"] != "v" {
		t.Error("clone shares the properties")
	}
	if n.Palette.Colors[0].R != 0 {
		t.Error("clone shares the palette colors")
	}
	if n.LocalMatrix(0) != sdf.Identity3d() {
		t.Error("clone shares the keyframes")
	}
}

func TestSetLocalMatrixKeepsOrder(t *testing.T) {
	n := NewNode(NodeTypeModel, "n")
	n.SetLocalMatrix(10, sdf.Translate3d(v3.Vec{X: 10}))
	n.SetLocalMatrix(5, sdf.Translate3d(v3.Vec{X: 5}))
	frames := n.KeyFrames[DefaultAnimation]
	if len(frames) != 3 {
		t.Fatalf("len(frames) = %d, want 3", len(frames))
	}
	for i, want := range []KeyFrameIndex{0, 5, 10} {
		if frames[i].FrameIdx != want {
			t.Errorf("frames[%d].FrameIdx = %d, want %d", i, frames[i].FrameIdx, want)
		}
	}
	if n.LocalMatrix(5) != sdf.Translate3d(v3.Vec{X: 5}) {
		t.Error("LocalMatrix(5) returned the wrong transform")
	}
}

func TestKeyFramesFindSortedOrder(t *testing.T) {
	a := NewKeyFrame(3)
	a.LocalMatrix = sdf.Translate3d(v3.Vec{X: 1})
	b := NewKeyFrame(3)
	b.LocalMatrix = sdf.Translate3d(v3.Vec{X: 2})
	kf := KeyFrames{"walk": {b}, "idle": {a}}
	got, ok := kf.Find(3)
	if !ok {
		t.Fatal("Find(3) found nothing")
	}
	if got.LocalMatrix != a.LocalMatrix {
		t.Error("Find should prefer the alphabetically first animation")
	}
	if _, ok := kf.Find(4); ok {
		t.Error("Find(4) should find nothing")
	}
}

func TestNilMapsCloneToNil(t *testing.T) {
	var kf KeyFrames
	var p Properties
	if kf.Clone() != nil || p.Clone() != nil {
		t.Error("nil maps should clone to nil")
	}
	if (KeyFrames{}).Clone() == nil || (Properties{}).Clone() == nil {
		t.Error("empty maps should clone to empty, non-nil maps")
	}
}

func TestPaletteHash(t *testing.T) {
	a := GrayscalePalette(8)
	b := a.Clone()
	b.Name = "renamed"
	if a.Hash() != b.Hash() {
		t.Error("hash should ignore the name")
	}
	b.SetColor(3, color.RGBA{R: 255, A: 255})
	if a.Hash() == b.Hash() {
		t.Error("hash should change with the colors")
	}
	if a.Equal(b) {
		t.Error("palettes with different colors compare equal")
	}
	if b.SetColor(PaletteMaxColors, color.RGBA{}) {
		t.Error("SetColor past the table should fail")
	}
}

func TestNodeTypeString(t *testing.T) {
	tests := []struct {
		t    NodeType
		want string
	}{
		{NodeTypeRoot, "root"},
		{NodeTypeModel, "model"},
		{NodeTypeModelReference, "modelreference"},
		{NodeType(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.t.String(); got != tt.want {
			t.Errorf("NodeType(%d).String() = %q, want %q", tt.t, got, tt.want)
		}
	}
}
