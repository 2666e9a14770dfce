// Package replay writes the groups returned by history undo and redo back
// onto a scene graph. Everything is applied while the store is locked so
// the replay itself is not recorded.
package replay

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/chazu/voxmemento/pkg/codec"
	"github.com/chazu/voxmemento/pkg/history"
	"github.com/chazu/voxmemento/pkg/scene"
)

// ErrNodeNotFound is returned when a record refers to a node the graph
// does not have.
var ErrNodeNotFound = errors.New("replay: node not found")

// Applier connects a Store to the Graph it records.
type Applier struct {
	Graph *scene.Graph
	Store *history.Store
	// Codec decodes snapshots. Nil means the store codec.
	Codec codec.Codec
	// Log defaults to slog.Default().
	Log *slog.Logger
}

// direction tells apply whether a group is being undone or redone.
type direction int

const (
	undo direction = iota
	redo
)

func (d direction) String() string {
	if d == undo {
		return "undo"
	}
	return "redo"
}

// Undo steps the store back and applies the reconstructed group. It
// returns false if there was nothing to undo.
func (a *Applier) Undo() (bool, error) {
	g, ok := a.Store.Undo()
	if !ok {
		return false, nil
	}
	return true, a.apply(g, undo)
}

// Redo steps the store forward and applies the stored group. It returns
// false if there was nothing to redo.
func (a *Applier) Redo() (bool, error) {
	g, ok := a.Store.Redo()
	if !ok {
		return false, nil
	}
	return true, a.apply(g, redo)
}

func (a *Applier) codec() codec.Codec {
	if a.Codec != nil {
		return a.Codec
	}
	return a.Store.Codec()
}

func (a *Applier) log() *slog.Logger {
	if a.Log != nil {
		return a.Log
	}
	return slog.Default()
}

func (a *Applier) apply(g history.Group, d direction) error {
	// Nodes recreated by this group get fresh ids; later records of the
	// same group have to follow them.
	remap := map[scene.NodeID]scene.NodeID{}
	var errs []error
	records := g.Records
	if d == undo {
		// A transaction is inverted last record first.
		records = make([]history.Record, len(g.Records))
		for i, r := range g.Records {
			records[len(g.Records)-1-i] = r
		}
	}
	a.Store.WithLock(func() {
		for _, r := range records {
			if id, ok := remap[r.NodeID]; ok {
				r.NodeID = id
			}
			if id, ok := remap[r.ParentID]; ok {
				r.ParentID = id
			}
			if err := a.applyRecord(r, d, remap); err != nil {
				errs = append(errs, fmt.Errorf("replay: %s %s of node %d: %w", d, r.Kind(), r.NodeID, err))
			}
		}
	})
	a.log().Debug("replay: group applied", "direction", d, "group", g.Name, "records", g.Len(), "errors", len(errs))
	return errors.Join(errs...)
}

func (a *Applier) applyRecord(r history.Record, d direction, remap map[scene.NodeID]scene.NodeID) error {
	switch r.Kind() {
	case history.KindNodeAdded:
		if d == undo {
			return a.remove(r)
		}
		return a.recreate(r, remap)
	case history.KindNodeRemoved:
		if d == undo {
			return a.recreate(r, remap)
		}
		return a.remove(r)
	case history.KindPaletteChanged:
		if d == undo {
			// A scene palette change keeps no previous palette.
			a.log().Debug("replay: palette change is not undoable", "node", r.NodeID)
			return nil
		}
	}

	n := a.Graph.Get(r.NodeID)
	if n == nil {
		return ErrNodeNotFound
	}
	switch p := r.Payload.(type) {
	case history.ModificationData:
		n.Type = r.NodeType
		n.ReferenceID = r.ReferenceID
		return a.restoreVolume(n, r)
	case history.NodeMovedData:
		n.Name = r.Name
		if n.ParentID != r.ParentID && !a.Graph.Move(n.ID, r.ParentID) {
			return fmt.Errorf("cannot move below %d", r.ParentID)
		}
	case history.NodeRenamedData:
		n.Name = r.Name
	case history.NodeTransformedData:
		n.SetLocalMatrix(r.KeyFrameIndex, r.LocalMatrix)
	case history.NodePaletteChangedData:
		if p.Palette != nil {
			n.Palette = p.Palette.Clone()
		}
		if !p.Volume.Empty() {
			return a.restoreVolume(n, r)
		}
	case history.NodeKeyFramesChangedData:
		n.Pivot = r.Pivot
		n.KeyFrames = p.KeyFrames.Clone()
	case history.NodePropertiesChangedData:
		if p.Properties != nil {
			n.Properties = p.Properties.Clone()
		}
		if p.KeyFrames != nil {
			n.KeyFrames = p.KeyFrames.Clone()
		}
		if p.Palette != nil {
			n.Palette = p.Palette.Clone()
		}
	case history.PaletteChangedData:
		n.Palette = p.Palette.Clone()
	}
	return nil
}

// restoreVolume writes the snapshot of r into the node. A node without a
// matching volume gets a fresh one decoded from the snapshot.
func (a *Applier) restoreVolume(n *scene.Node, r history.Record) error {
	snap, ok := r.Volume()
	if !ok {
		if n.Type == scene.NodeTypeModelReference {
			n.Volume = nil
		}
		return nil
	}
	if n.Volume == nil || !n.Volume.Region().ContainsRegion(snap.Region()) {
		vol, err := snap.Decode(a.codec())
		if err != nil {
			return err
		}
		n.Volume = vol
		return nil
	}
	return a.Store.ExtractVolumeRegion(n.Volume, r)
}

func (a *Applier) remove(r history.Record) error {
	if !a.Graph.Remove(r.NodeID) {
		return ErrNodeNotFound
	}
	return nil
}

// recreate inserts the node described by r and remaps its old id in the
// store and in the rest of the group.
func (a *Applier) recreate(r history.Record, remap map[scene.NodeID]scene.NodeID) error {
	n := scene.NewNode(r.NodeType, r.Name)
	n.ReferenceID = r.ReferenceID
	n.Pivot = r.Pivot
	if p := r.Palette(); p != nil {
		n.Palette = p.Clone()
	}
	if kf := r.KeyFrames(); kf != nil {
		n.KeyFrames = kf.Clone()
	}
	if props := r.Properties(); props != nil {
		n.Properties = props.Clone()
	}
	if snap, ok := r.Volume(); ok {
		vol, err := snap.Decode(a.codec())
		if err != nil {
			return err
		}
		n.Volume = vol
	}
	parent := r.ParentID
	if a.Graph.Get(parent) == nil {
		parent = scene.RootID
	}
	id := a.Graph.AddNode(n, parent)
	if id == scene.InvalidNodeID {
		return ErrNodeNotFound
	}
	if id != r.NodeID {
		a.Store.UpdateNodeID(r.NodeID, id)
		remap[r.NodeID] = id
	}
	return nil
}
