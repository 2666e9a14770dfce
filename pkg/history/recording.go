package history

import (
	"github.com/chazu/voxmemento/pkg/scene"
	"github.com/chazu/voxmemento/pkg/voxel"
)

// capture snapshots vol for a record, limited to modified if partial is
// set. Codec failures are logged and yield an empty snapshot so the edit
// is still recorded.
func (s *Store) capture(vol *voxel.RawVolume, modified voxel.Region, partial bool) VolumeSnapshot {
	if s.locked > 0 || vol == nil {
		return EmptySnapshot(modified)
	}
	var (
		snap VolumeSnapshot
		err  error
	)
	if partial {
		snap, err = FromVolumeRegion(s.codec, vol, modified)
	} else {
		snap, err = FromVolume(s.codec, vol, modified)
	}
	if err != nil {
		s.log.Warn("history: volume capture failed, recording without volume", "region", modified, "err", err)
		s.metrics.codecError("compress")
		return EmptySnapshot(modified)
	}
	s.metrics.snapshot(snap.Size())
	return snap
}

// RecordModification records changed voxels of a node. vol is the node
// volume after the edit and modified the touched region. A nil volume is
// refused.
func (s *Store) RecordModification(n NodeState, vol *voxel.RawVolume, modified voxel.Region) bool {
	if vol == nil {
		s.log.Warn("history: modification without volume", "node", n.NodeID)
		return false
	}
	return s.addRecord(Record{NodeState: n, Payload: ModificationData{
		Volume:   s.capture(vol, modified, s.partial),
		Modified: modified,
	}})
}

// RecordNodeMoved records that the node now sits below n.ParentID.
func (s *Store) RecordNodeMoved(n NodeState) bool {
	return s.addRecord(Record{NodeState: n, Payload: NodeMovedData{}})
}

// RecordNodeAdded records a new node with its volume, palette, keyframes
// and properties. Any of them may be nil.
func (s *Store) RecordNodeAdded(n NodeState, vol *voxel.RawVolume, pal *scene.Palette, kf scene.KeyFrames, props scene.Properties) bool {
	region := voxel.InvalidRegion
	if vol != nil {
		region = vol.Region()
	}
	return s.addRecord(Record{NodeState: n, Payload: NodeAddedData{
		Volume:     s.capture(vol, region, false),
		Palette:    clonePalette(pal),
		KeyFrames:  kf.Clone(),
		Properties: props.Clone(),
	}})
}

// RecordNodeRemoved records a node removal with what is needed to bring
// it back.
func (s *Store) RecordNodeRemoved(n NodeState, vol *voxel.RawVolume, pal *scene.Palette, kf scene.KeyFrames) bool {
	region := voxel.InvalidRegion
	if vol != nil {
		region = vol.Region()
	}
	return s.addRecord(Record{NodeState: n, Payload: NodeRemovedData{
		Volume:    s.capture(vol, region, false),
		Palette:   clonePalette(pal),
		KeyFrames: kf.Clone(),
	}})
}

// RecordNodeRenamed records that the node is now called n.Name.
func (s *Store) RecordNodeRenamed(n NodeState) bool {
	return s.addRecord(Record{NodeState: n, Payload: NodeRenamedData{}})
}

// RecordNodeTransform records n.LocalMatrix on keyframe n.KeyFrameIndex.
func (s *Store) RecordNodeTransform(n NodeState) bool {
	return s.addRecord(Record{NodeState: n, Payload: NodeTransformedData{}})
}

// RecordNodePaletteChange records a new node palette. If modified is
// valid the change also remapped voxels and the volume is captured.
func (s *Store) RecordNodePaletteChange(n NodeState, vol *voxel.RawVolume, modified voxel.Region, pal scene.Palette) bool {
	snap := EmptySnapshot(modified)
	if modified.IsValid() {
		snap = s.capture(vol, modified, s.partial)
	}
	p := pal.Clone()
	return s.addRecord(Record{NodeState: n, Payload: NodePaletteChangedData{
		Volume:   snap,
		Modified: modified,
		Palette:  &p,
	}})
}

// RecordKeyFramesChange records the full keyframe set of a node.
func (s *Store) RecordKeyFramesChange(n NodeState, kf scene.KeyFrames) bool {
	kf = kf.Clone()
	if kf == nil {
		kf = scene.KeyFrames{}
	}
	return s.addRecord(Record{NodeState: n, Payload: NodeKeyFramesChangedData{KeyFrames: kf}})
}

// RecordNodePropertyChange records the full property set of a node.
func (s *Store) RecordNodePropertyChange(n NodeState, props scene.Properties) bool {
	props = props.Clone()
	if props == nil {
		props = scene.Properties{}
	}
	return s.addRecord(Record{NodeState: n, Payload: NodePropertiesChangedData{Properties: props}})
}

// RecordPaletteChange records a scene wide palette change.
func (s *Store) RecordPaletteChange(n NodeState, pal scene.Palette) bool {
	p := pal.Clone()
	return s.addRecord(Record{NodeState: n, Payload: PaletteChangedData{Palette: &p}})
}

// RecordInitialNode records a live node as added.
func (s *Store) RecordInitialNode(n *scene.Node) bool {
	pal := n.Palette
	return s.RecordNodeAdded(StateOf(n, 0), n.Volume, &pal, n.KeyFrames, n.Properties)
}

// RecordInitialScene records every node of g except the root as added,
// in ascending id order, inside one group. It returns the number of
// records stored.
func (s *Store) RecordInitialScene(g *scene.Graph) int {
	count := 0
	s.WithGroup(InitialSceneGroupName, func() {
		for _, id := range g.IDs() {
			if id == scene.RootID {
				continue
			}
			if s.RecordInitialNode(g.Get(id)) {
				count++
			}
		}
	})
	return count
}
