package history

import (
	"fmt"
	"log/slog"

	"github.com/chazu/voxmemento/pkg/codec"
	"github.com/chazu/voxmemento/pkg/scene"
)

// Store is the linear edit history of one scene.
//
// A Store is not safe for concurrent use. The lock it offers is a
// reentrancy guard that keeps replayed edits from being recorded, not a
// mutex.
type Store struct {
	groups []Group
	cursor int

	// depth counts nested BeginGroup calls. The group itself is only
	// appended once the first record of the transaction arrives.
	depth       int
	pendingName string
	open        bool

	locked    int
	listeners []Listener

	codec   codec.Codec
	log     *slog.Logger
	metrics *Metrics
	partial bool
	strict  bool
}

// Option configures a Store.
type Option func(*Store)

// WithCodec sets the snapshot codec. The default is codec.Default().
func WithCodec(c codec.Codec) Option {
	return func(s *Store) {
		if c != nil {
			s.codec = c
		}
	}
}

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.log = l
		}
	}
}

// WithMetrics attaches prometheus metrics.
func WithMetrics(m *Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithPartialCapture makes modifications capture only the modified region
// instead of the whole volume. Restoring such a record needs
// ExtractVolumeRegion.
func WithPartialCapture(on bool) Option {
	return func(s *Store) { s.partial = on }
}

// WithStrict makes undo panic when a node has no earlier record to
// reconstruct from, instead of logging a warning.
func WithStrict(on bool) Option {
	return func(s *Store) { s.strict = on }
}

// New creates an empty Store.
func New(opts ...Option) *Store {
	s := &Store{
		codec: codec.Default(),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Codec returns the codec snapshots are compressed with.
func (s *Store) Codec() codec.Codec {
	return s.codec
}

// ---------------------------------------------------------------------------
// Inspection
// ---------------------------------------------------------------------------

// Len returns the number of groups.
func (s *Store) Len() int {
	return len(s.groups)
}

// Position returns the cursor.
func (s *Store) Position() int {
	return s.cursor
}

// Group returns the stored group at index i.
func (s *Store) Group(i int) (Group, bool) {
	if i < 0 || i >= len(s.groups) {
		return Group{}, false
	}
	return s.groups[i], true
}

// Current returns the group at the cursor.
func (s *Store) Current() (Group, bool) {
	return s.Group(s.cursor)
}

// Groups returns the stored groups. The slice is a copy but the records
// are shared with the store and must not be modified.
func (s *Store) Groups() []Group {
	return append([]Group(nil), s.groups...)
}

// InGroup reports whether a BeginGroup is still open.
func (s *Store) InGroup() bool {
	return s.depth > 0
}

// Locked reports whether recording is suppressed.
func (s *Store) Locked() bool {
	return s.locked > 0
}

// CanUndo reports whether Undo would step back. Undo and redo are
// refused while locked or while a transaction is open.
func (s *Store) CanUndo() bool {
	if s.locked > 0 || s.depth > 0 || len(s.groups) <= 1 {
		return false
	}
	return s.cursor > 0
}

// CanRedo reports whether Redo would step forward.
func (s *Store) CanRedo() bool {
	if s.locked > 0 || s.depth > 0 || len(s.groups) <= 1 {
		return false
	}
	return s.cursor <= len(s.groups)-2
}

// ---------------------------------------------------------------------------
// Transactions and lock
// ---------------------------------------------------------------------------

// BeginGroup opens a transaction. Records until the matching EndGroup are
// collected into one group with the given name. Nested calls only count.
func (s *Store) BeginGroup(name string) {
	if s.locked > 0 {
		s.log.Debug("history: begin group ignored while locked", "name", name)
		return
	}
	s.log.Debug("history: begin group", "name", name, "depth", s.depth)
	if s.depth == 0 {
		s.pendingName = name
		s.open = false
	}
	s.depth++
}

// EndGroup closes a transaction. Closing the outermost one drops the group
// if nothing was recorded. EndGroup without BeginGroup panics.
func (s *Store) EndGroup() {
	if s.locked > 0 {
		s.log.Debug("history: end group ignored while locked")
		return
	}
	if s.depth <= 0 {
		panic("history: EndGroup without matching BeginGroup")
	}
	s.depth--
	s.log.Debug("history: end group", "depth", s.depth)
	if s.depth > 0 {
		return
	}
	if s.open && len(s.groups) > 0 && s.groups[len(s.groups)-1].Empty() {
		s.RemoveLast()
	}
	s.open = false
	s.pendingName = ""
}

// WithGroup runs fn inside BeginGroup/EndGroup.
func (s *Store) WithGroup(name string, fn func()) {
	s.BeginGroup(name)
	defer s.EndGroup()
	fn()
}

// Lock suppresses recording. Calls nest.
func (s *Store) Lock() {
	s.locked++
}

// Unlock undoes one Lock. Unlock without Lock panics.
func (s *Store) Unlock() {
	if s.locked <= 0 {
		panic("history: Unlock without matching Lock")
	}
	s.locked--
}

// WithLock runs fn with recording suppressed.
func (s *Store) WithLock(fn func()) {
	s.Lock()
	defer s.Unlock()
	fn()
}

// ---------------------------------------------------------------------------
// Appending
// ---------------------------------------------------------------------------

// addRecord is the single entry point every Record* method goes through.
func (s *Store) addRecord(r Record) bool {
	if s.locked > 0 {
		s.log.Debug("history: record skipped while locked", "kind", r.Kind(), "node", r.NodeID)
		s.metrics.skip()
		s.notifySkipped(r)
		return false
	}
	if s.depth > 0 && s.open && len(s.groups) > 0 {
		s.groups[len(s.groups)-1].Append(r)
	} else {
		name := SingleGroupName
		if s.depth > 0 {
			name = s.pendingName
			s.open = true
		}
		s.truncateRedo()
		g := newGroup(name)
		g.Append(r)
		s.groups = append(s.groups, g)
		s.cursor = len(s.groups) - 1
		s.metrics.setGroups(len(s.groups))
	}
	s.log.Debug("history: record added", "kind", r.Kind(), "node", r.NodeID, "position", s.cursor)
	s.metrics.recorded(r.Kind())
	s.notifyAdded(r)
	return true
}

// truncateRedo drops every group after the cursor and returns how many
// were dropped.
func (s *Store) truncateRedo() int {
	if len(s.groups) == 0 {
		return 0
	}
	n := len(s.groups) - (s.cursor + 1)
	if n <= 0 {
		return 0
	}
	clear(s.groups[s.cursor+1:])
	s.groups = s.groups[:s.cursor+1]
	s.log.Debug("history: dropped redo groups", "count", n)
	return n
}

// ---------------------------------------------------------------------------
// Housekeeping
// ---------------------------------------------------------------------------

// RemoveLast pops the newest group. The cursor follows if it pointed at it.
func (s *Store) RemoveLast() bool {
	if len(s.groups) == 0 {
		return false
	}
	if s.cursor == len(s.groups)-1 && s.cursor > 0 {
		s.cursor--
	}
	s.groups[len(s.groups)-1] = Group{}
	s.groups = s.groups[:len(s.groups)-1]
	// An open transaction always owns the newest group.
	s.open = false
	s.metrics.setGroups(len(s.groups))
	return true
}

// UpdateNodeID rewrites every node and parent id equal to from into to
// across all stored records. It returns the number of records changed.
func (s *Store) UpdateNodeID(from, to scene.NodeID) int {
	n := 0
	for gi := range s.groups {
		recs := s.groups[gi].Records
		for ri := range recs {
			changed := false
			if recs[ri].NodeID == from {
				recs[ri].NodeID = to
				changed = true
			}
			if recs[ri].ParentID == from {
				recs[ri].ParentID = to
				changed = true
			}
			if changed {
				n++
			}
		}
	}
	if n > 0 {
		s.log.Debug("history: node id updated", "from", from, "to", to, "records", n)
	}
	return n
}

// ClearStates drops the whole history. It panics while a transaction is open.
func (s *Store) ClearStates() {
	if s.depth > 0 {
		panic(fmt.Sprintf("history: ClearStates inside an open group (depth %d)", s.depth))
	}
	clear(s.groups)
	s.groups = nil
	s.cursor = 0
	s.open = false
	s.metrics.setGroups(0)
}

// Shutdown resets the store and forgets every listener.
func (s *Store) Shutdown() {
	s.depth = 0
	s.pendingName = ""
	s.ClearStates()
	s.listeners = nil
}
