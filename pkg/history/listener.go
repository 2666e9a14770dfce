package history

// Listener is notified about records passing through a Store.
type Listener interface {
	// RecordAdded is called after a record was stored.
	RecordAdded(r Record)
	// RecordSkipped is called for a record dropped because the store is locked.
	RecordSkipped(r Record)
}

// ListenerFuncs adapts plain functions to the Listener interface. Nil
// fields are ignored. Register it by pointer.
type ListenerFuncs struct {
	Added   func(Record)
	Skipped func(Record)
}

var _ Listener = (*ListenerFuncs)(nil)

func (l *ListenerFuncs) RecordAdded(r Record) {
	if l.Added != nil {
		l.Added(r)
	}
}

func (l *ListenerFuncs) RecordSkipped(r Record) {
	if l.Skipped != nil {
		l.Skipped(r)
	}
}

// RegisterListener adds l. Registering the same listener twice has no effect.
func (s *Store) RegisterListener(l Listener) {
	for _, have := range s.listeners {
		if have == l {
			return
		}
	}
	s.listeners = append(s.listeners, l)
}

// UnregisterListener removes l if it is registered.
func (s *Store) UnregisterListener(l Listener) {
	for i, have := range s.listeners {
		if have == l {
			s.listeners = append(s.listeners[:i], s.listeners[i+1:]...)
			return
		}
	}
}

func (s *Store) notifyAdded(r Record) {
	for _, l := range s.listeners {
		l.RecordAdded(r)
	}
}

func (s *Store) notifySkipped(r Record) {
	for _, l := range s.listeners {
		l.RecordSkipped(r)
	}
}
