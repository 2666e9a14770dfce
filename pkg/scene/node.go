package scene

import (
	"github.com/chazu/voxmemento/pkg/voxel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Node is a scene-graph node. Model nodes own a voxel volume; reference
// nodes point at a model through ReferenceID.
type Node struct {
	ID          NodeID           `json:"id"`
	ParentID    NodeID           `json:"parent"`
	ReferenceID NodeID           `json:"reference"`
	Name        string           `json:"name"`
	Type        NodeType         `json:"type"`
	Visible     bool             `json:"visible"`
	Volume      *voxel.RawVolume `json:"-"`
	Palette     Palette          `json:"palette"`
	KeyFrames   KeyFrames        `json:"keyframes"`
	Properties  Properties       `json:"properties"`
	Pivot       v3.Vec           `json:"pivot"`
	Children    []NodeID         `json:"children"`
}

// NewNode returns a detached node of the given type with one default
// animation holding a single identity keyframe.
func NewNode(t NodeType, name string) *Node {
	return &Node{
		ID:          InvalidNodeID,
		ParentID:    InvalidNodeID,
		ReferenceID: InvalidNodeID,
		Name:        name,
		Type:        t,
		Visible:     true,
		KeyFrames:   KeyFrames{DefaultAnimation: {NewKeyFrame(0)}},
		Properties:  Properties{},
	}
}

// DefaultAnimation is the animation every new node starts with.
const DefaultAnimation = "Default"

// NewModel returns a model node owning the volume.
func NewModel(name string, vol *voxel.RawVolume, pal Palette) *Node {
	n := NewNode(NodeTypeModel, name)
	n.Volume = vol
	n.Palette = pal
	return n
}

// Region returns the region of the node's volume, or the invalid region.
func (n *Node) Region() voxel.Region {
	if n.Volume == nil {
		return voxel.InvalidRegion
	}
	return n.Volume.Region()
}

// IsModel reports whether the node carries voxel data of its own.
func (n *Node) IsModel() bool {
	return n.Type == NodeTypeModel
}

// KeyFrame returns the keyframe on frame in the default animation.
func (n *Node) KeyFrame(frame KeyFrameIndex) (KeyFrame, bool) {
	for _, f := range n.KeyFrames[DefaultAnimation] {
		if f.FrameIdx == frame {
			return f, true
		}
	}
	return KeyFrame{}, false
}

// LocalMatrix returns the local transform at frame, or identity if the
// default animation has no key there.
func (n *Node) LocalMatrix(frame KeyFrameIndex) sdf.M44 {
	if kf, ok := n.KeyFrame(frame); ok {
		return kf.LocalMatrix
	}
	return sdf.Identity3d()
}

// SetLocalMatrix sets the transform of the keyframe on frame in the default
// animation, adding the keyframe if it does not exist yet.
func (n *Node) SetLocalMatrix(frame KeyFrameIndex, m sdf.M44) {
	if n.KeyFrames == nil {
		n.KeyFrames = KeyFrames{}
	}
	frames := n.KeyFrames[DefaultAnimation]
	for i := range frames {
		if frames[i].FrameIdx == frame {
			frames[i].LocalMatrix = m
			return
		}
	}
	kf := NewKeyFrame(frame)
	kf.LocalMatrix = m
	frames = append(frames, kf)
	for i := len(frames) - 1; i > 0 && frames[i].FrameIdx < frames[i-1].FrameIdx; i-- {
		frames[i], frames[i-1] = frames[i-1], frames[i]
	}
	n.KeyFrames[DefaultAnimation] = frames
}

// Clone deep-copies the node including its volume.
func (n *Node) Clone() *Node {
	c := *n
	if n.Volume != nil {
		c.Volume = n.Volume.Clone()
	}
	c.Palette = n.Palette.Clone()
	c.KeyFrames = n.KeyFrames.Clone()
	c.Properties = n.Properties.Clone()
	c.Children = append([]NodeID(nil), n.Children...)
	return &c
}
