package history

import (
	"errors"
	"fmt"

	"github.com/chazu/voxmemento/pkg/voxel"
)

// Undo steps the cursor back and returns the group that was stepped away
// from, with every record rewritten to carry the values from before the
// edit. The second result is false, with the zero Group, if there is
// nothing to undo.
func (s *Store) Undo() (Group, bool) {
	if !s.CanUndo() {
		s.metrics.undone(false)
		return Group{}, false
	}
	g := s.groups[s.cursor].Clone()
	// Reconstruction searches from the target position. The cursor is only
	// committed once every record has been rebuilt.
	target := s.cursor - 1
	records := make([]Record, len(g.Records))
	for i, r := range g.Records {
		records[i] = s.reconstruct(r, target)
	}
	g.Records = records
	s.cursor = target
	s.log.Debug("history: undo", "group", g.Name, "records", g.Len(), "position", s.cursor)
	s.metrics.undone(true)
	return g, true
}

// Redo steps the cursor forward and returns a copy of the stored group.
// The second result is false if there is nothing to redo.
func (s *Store) Redo() (Group, bool) {
	if !s.CanRedo() {
		s.metrics.redone(false)
		return Group{}, false
	}
	s.cursor++
	g := s.groups[s.cursor].Clone()
	s.log.Debug("history: redo", "group", g.Name, "records", g.Len(), "position", s.cursor)
	s.metrics.redone(true)
	return g, true
}

// ---------------------------------------------------------------------------
// Backward reconstruction
// ---------------------------------------------------------------------------

// rule rebuilds the pre-edit state of one kind. match selects an earlier
// record of the same node that last set the changed fields; restore
// copies those fields onto the record being undone.
type rule struct {
	match   func(r, prev Record) bool
	restore func(r, prev Record) Record
}

var rules = map[Kind]rule{
	KindModification:          {matchVolume, restoreModification},
	KindNodeTransformed:       {matchTransform, restoreTransform},
	KindNodePropertiesChanged: {matchProperties, restoreProperties},
	KindNodeKeyFramesChanged:  {matchKeyFrames, restoreKeyFrames},
	KindNodeRenamed:           {matchName, restoreName},
	KindNodeMoved:             {matchParent, restoreParent},
}

// reconstruct returns r with its changed fields replaced by their values
// before the edit. NodeAdded, NodeRemoved and PaletteChanged have no rule
// and are returned unchanged; callers invert them by kind.
func (s *Store) reconstruct(r Record, from int) Record {
	if r.Kind() == KindNodePaletteChanged {
		return s.reconstructPalette(r, from)
	}
	rl, ok := rules[r.Kind()]
	if !ok {
		return r
	}
	if prev, ok := s.previous(r, from, rl.match); ok {
		return rl.restore(r, prev)
	}
	if base, ok := s.base(r); ok {
		return rl.restore(r, base)
	}
	return r
}

// previous scans groups[from] down to groups[0], records in stored
// order, for the first record of the same node accepted by match.
func (s *Store) previous(r Record, from int, match func(r, prev Record) bool) (Record, bool) {
	for i := from; i >= 0; i-- {
		for _, prev := range s.groups[i].Records {
			if prev.NodeID == r.NodeID && match(r, prev) {
				return prev, true
			}
		}
	}
	return Record{}, false
}

// base returns the first record of the history if it belongs to the node
// of r. Every node is expected to be introduced by a NodeAdded or
// Modification record, so reaching a base of another node means the
// precondition was broken.
func (s *Store) base(r Record) (Record, bool) {
	if len(s.groups) > 0 && len(s.groups[0].Records) > 0 {
		if b := s.groups[0].Records[0]; b.NodeID == r.NodeID {
			return b, true
		}
	}
	s.log.Warn("history: no previous state for node", "kind", r.Kind(), "node", r.NodeID)
	if s.strict {
		panic(fmt.Sprintf("history: no previous state to undo %s of node %d", r.Kind(), r.NodeID))
	}
	return Record{}, false
}

func matchVolume(_, prev Record) bool {
	switch prev.Kind() {
	case KindModification:
		_, ok := prev.Volume()
		return ok
	case KindNodeAdded:
		_, ok := prev.Volume()
		return ok || prev.ReferenceID.Valid()
	}
	return false
}

func restoreModification(r, prev Record) Record {
	p := r.Payload.(ModificationData)
	vol, _ := prev.Volume()
	p.Volume = vol.Clone()
	// Undoing an un-reference turns the model back into a reference.
	if prev.NodeType != r.NodeType {
		r.NodeType = prev.NodeType
		r.ReferenceID = prev.ReferenceID
	}
	r.Payload = p
	return r
}

func matchTransform(r, prev Record) bool {
	switch prev.Kind() {
	case KindNodeTransformed, KindModification:
		return prev.KeyFrameIndex == r.KeyFrameIndex
	case KindNodeAdded:
		_, ok := prev.KeyFrames().Find(r.KeyFrameIndex)
		return ok
	}
	return false
}

func restoreTransform(r, prev Record) Record {
	if prev.Kind() == KindNodeAdded {
		if kf, ok := prev.KeyFrames().Find(r.KeyFrameIndex); ok {
			r.LocalMatrix = kf.LocalMatrix
			return r
		}
	}
	r.LocalMatrix = prev.LocalMatrix
	return r
}

func matchPalette(_, prev Record) bool {
	return prev.Palette() != nil
}

// reconstructPalette restores the previous palette and, if the change
// remapped voxels, the previous volume as well.
func (s *Store) reconstructPalette(r Record, from int) Record {
	p := r.Payload.(NodePaletteChangedData)
	prev, ok := s.previous(r, from, matchPalette)
	if !ok {
		prev, ok = s.base(r)
	}
	if ok {
		p.Palette = clonePalette(prev.Palette())
	}
	if !p.Volume.Empty() {
		if vr, ok := s.previous(r, from, matchVolume); ok {
			vol, _ := vr.Volume()
			p.Volume = vol.Clone()
		}
	}
	r.Payload = p
	return r
}

func matchProperties(_, prev Record) bool {
	return prev.Properties() != nil
}

func restoreProperties(r, prev Record) Record {
	p := r.Payload.(NodePropertiesChangedData)
	p.Properties = prev.Properties().Clone()
	p.KeyFrames = prev.KeyFrames().Clone()
	p.Palette = clonePalette(prev.Palette())
	r.Payload = p
	return r
}

func matchKeyFrames(_, prev Record) bool {
	return prev.KeyFrames() != nil
}

func restoreKeyFrames(r, prev Record) Record {
	p := r.Payload.(NodeKeyFramesChangedData)
	p.KeyFrames = prev.KeyFrames().Clone()
	r.Pivot = prev.Pivot
	r.Payload = p
	return r
}

func matchName(_, prev Record) bool {
	return prev.Name != ""
}

func restoreName(r, prev Record) Record {
	r.Name = prev.Name
	return r
}

func matchParent(_, prev Record) bool {
	return prev.ParentID.Valid()
}

func restoreParent(r, prev Record) Record {
	r.ParentID = prev.ParentID
	r.Name = prev.Name
	return r
}

// ---------------------------------------------------------------------------
// Volume extraction
// ---------------------------------------------------------------------------

// ExtractVolumeRegion rebuilds the voxels of r's modified region in target.
// It replays every older Modification and NodeAdded snapshot of the node
// in history order and then the snapshot of r itself, so records captured
// with partial capture can be restored completely.
func (s *Store) ExtractVolumeRegion(target *voxel.RawVolume, r Record) error {
	if target == nil {
		return ErrNoVolume
	}
	region := r.ModifiedRegion()
	if !region.IsValid() {
		region = target.Region()
	}
	for i := 0; i < s.cursor && i < len(s.groups); i++ {
		for _, prev := range s.groups[i].Records {
			if prev.NodeID != r.NodeID {
				continue
			}
			if k := prev.Kind(); k != KindModification && k != KindNodeAdded {
				continue
			}
			if err := s.restore(prev, target, region); err != nil {
				return err
			}
		}
	}
	return s.restore(r, target, region)
}

func (s *Store) restore(r Record, target *voxel.RawVolume, region voxel.Region) error {
	snap, _ := r.Volume()
	err := snap.ToVolumeRegion(s.codec, target, region)
	if errors.Is(err, ErrEmptySnapshot) {
		return nil
	}
	if err != nil {
		s.metrics.codecError("decompress")
		return fmt.Errorf("history: extract node %d: %w", r.NodeID, err)
	}
	return nil
}
