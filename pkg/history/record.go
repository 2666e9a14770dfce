package history

import (
	"github.com/chazu/voxmemento/pkg/scene"
	"github.com/chazu/voxmemento/pkg/voxel"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// NodeState holds the identity and transform fields every record carries,
// copied from the node at the time of the edit.
type NodeState struct {
	NodeID        scene.NodeID
	ParentID      scene.NodeID
	ReferenceID   scene.NodeID
	Name          string
	NodeType      scene.NodeType
	Region        voxel.Region
	Pivot         v3.Vec
	LocalMatrix   sdf.M44
	KeyFrameIndex scene.KeyFrameIndex
}

// StateOf reads the NodeState of a live node. The local matrix is taken
// from the keyframe at idx.
func StateOf(n *scene.Node, idx scene.KeyFrameIndex) NodeState {
	return NodeState{
		NodeID:        n.ID,
		ParentID:      n.ParentID,
		ReferenceID:   n.ReferenceID,
		Name:          n.Name,
		NodeType:      n.Type,
		Region:        n.Region(),
		Pivot:         n.Pivot,
		LocalMatrix:   n.LocalMatrix(idx),
		KeyFrameIndex: idx,
	}
}

// Payload is the kind specific part of a Record. The set of payload types
// is closed; each one only holds the fields its kind can change.
type Payload interface {
	Kind() Kind
	clone() Payload
}

// ModificationData records changed voxels. Modified is the touched region;
// Volume is the captured voxel content after the edit.
type ModificationData struct {
	Volume   VolumeSnapshot
	Modified voxel.Region
}

// NodeMovedData records a reparenting. The new parent is NodeState.ParentID.
type NodeMovedData struct{}

// NodeAddedData records a node insertion with everything needed to
// recreate it.
type NodeAddedData struct {
	Volume     VolumeSnapshot
	Palette    *scene.Palette
	KeyFrames  scene.KeyFrames
	Properties scene.Properties
}

// NodeRemovedData records a node removal.
type NodeRemovedData struct {
	Volume    VolumeSnapshot
	Palette   *scene.Palette
	KeyFrames scene.KeyFrames
}

// NodeRenamedData records a rename. The new name is NodeState.Name.
type NodeRenamedData struct{}

// NodeTransformedData records a new local matrix on NodeState.KeyFrameIndex.
type NodeTransformedData struct{}

// NodePaletteChangedData records a new node palette. Volume is only set if
// the change remapped voxels inside Modified.
type NodePaletteChangedData struct {
	Volume   VolumeSnapshot
	Modified voxel.Region
	Palette  *scene.Palette
}

// NodeKeyFramesChangedData records a new keyframe set.
type NodeKeyFramesChangedData struct {
	KeyFrames scene.KeyFrames
}

// NodePropertiesChangedData records new node properties. KeyFrames and
// Palette are only filled in by undo.
type NodePropertiesChangedData struct {
	Properties scene.Properties
	KeyFrames  scene.KeyFrames
	Palette    *scene.Palette
}

// PaletteChangedData records a scene wide palette change.
type PaletteChangedData struct {
	Palette *scene.Palette
}

func (ModificationData) Kind() Kind          { return KindModification }
func (NodeMovedData) Kind() Kind             { return KindNodeMoved }
func (NodeAddedData) Kind() Kind             { return KindNodeAdded }
func (NodeRemovedData) Kind() Kind           { return KindNodeRemoved }
func (NodeRenamedData) Kind() Kind           { return KindNodeRenamed }
func (NodeTransformedData) Kind() Kind       { return KindNodeTransformed }
func (NodePaletteChangedData) Kind() Kind    { return KindNodePaletteChanged }
func (NodeKeyFramesChangedData) Kind() Kind  { return KindNodeKeyFramesChanged }
func (NodePropertiesChangedData) Kind() Kind { return KindNodePropertiesChanged }
func (PaletteChangedData) Kind() Kind        { return KindPaletteChanged }

func (p ModificationData) clone() Payload {
	p.Volume = p.Volume.Clone()
	return p
}

func (p NodeMovedData) clone() Payload { return p }

func (p NodeAddedData) clone() Payload {
	p.Volume = p.Volume.Clone()
	p.Palette = clonePalette(p.Palette)
	p.KeyFrames = p.KeyFrames.Clone()
	p.Properties = p.Properties.Clone()
	return p
}

func (p NodeRemovedData) clone() Payload {
	p.Volume = p.Volume.Clone()
	p.Palette = clonePalette(p.Palette)
	p.KeyFrames = p.KeyFrames.Clone()
	return p
}

func (p NodeRenamedData) clone() Payload     { return p }
func (p NodeTransformedData) clone() Payload { return p }

func (p NodePaletteChangedData) clone() Payload {
	p.Volume = p.Volume.Clone()
	p.Palette = clonePalette(p.Palette)
	return p
}

func (p NodeKeyFramesChangedData) clone() Payload {
	p.KeyFrames = p.KeyFrames.Clone()
	return p
}

func (p NodePropertiesChangedData) clone() Payload {
	p.Properties = p.Properties.Clone()
	p.KeyFrames = p.KeyFrames.Clone()
	p.Palette = clonePalette(p.Palette)
	return p
}

func (p PaletteChangedData) clone() Payload {
	p.Palette = clonePalette(p.Palette)
	return p
}

func clonePalette(p *scene.Palette) *scene.Palette {
	if p == nil {
		return nil
	}
	c := p.Clone()
	return &c
}

// Record is one recorded edit.
type Record struct {
	NodeState
	Payload Payload
}

// Kind returns the kind of the payload, or KindInvalid for a record
// without one.
func (r Record) Kind() Kind {
	if r.Payload == nil {
		return KindInvalid
	}
	return r.Payload.Kind()
}

// Valid reports whether the record carries a payload.
func (r Record) Valid() bool {
	return r.Payload != nil
}

// Clone returns a deep copy of the record.
func (r Record) Clone() Record {
	if r.Payload != nil {
		r.Payload = r.Payload.clone()
	}
	return r
}

// Volume returns the voxel snapshot of the record. The second result is
// false if the kind carries no volume or the snapshot is empty.
func (r Record) Volume() (VolumeSnapshot, bool) {
	var s VolumeSnapshot
	switch p := r.Payload.(type) {
	case ModificationData:
		s = p.Volume
	case NodeAddedData:
		s = p.Volume
	case NodeRemovedData:
		s = p.Volume
	case NodePaletteChangedData:
		s = p.Volume
	}
	return s, !s.Empty()
}

// ModifiedRegion returns the region the record touched. For kinds without
// an explicit modified region this is the captured volume region.
func (r Record) ModifiedRegion() voxel.Region {
	switch p := r.Payload.(type) {
	case ModificationData:
		if p.Modified.IsValid() {
			return p.Modified
		}
	case NodePaletteChangedData:
		if p.Modified.IsValid() {
			return p.Modified
		}
	}
	if s, ok := r.Volume(); ok {
		return s.Region()
	}
	return voxel.InvalidRegion
}

// Palette returns the palette of the record, or nil if none was captured.
func (r Record) Palette() *scene.Palette {
	switch p := r.Payload.(type) {
	case NodeAddedData:
		return p.Palette
	case NodeRemovedData:
		return p.Palette
	case NodePaletteChangedData:
		return p.Palette
	case NodePropertiesChangedData:
		return p.Palette
	case PaletteChangedData:
		return p.Palette
	}
	return nil
}

// KeyFrames returns the keyframes of the record, or nil if none were captured.
func (r Record) KeyFrames() scene.KeyFrames {
	switch p := r.Payload.(type) {
	case NodeAddedData:
		return p.KeyFrames
	case NodeRemovedData:
		return p.KeyFrames
	case NodeKeyFramesChangedData:
		return p.KeyFrames
	case NodePropertiesChangedData:
		return p.KeyFrames
	}
	return nil
}

// Properties returns the properties of the record, or nil if none were captured.
func (r Record) Properties() scene.Properties {
	switch p := r.Payload.(type) {
	case NodeAddedData:
		return p.Properties
	case NodePropertiesChangedData:
		return p.Properties
	}
	return nil
}
