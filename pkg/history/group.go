package history

import "github.com/google/uuid"

const (
	// SingleGroupName names the group created for a record outside a transaction.
	SingleGroupName = "single"

	// InitialSceneGroupName names the group RecordInitialScene creates.
	InitialSceneGroupName = "initialscene"
)

// Group is a named, ordered list of records that undo and redo treat as
// one step. The zero Group is the invalid sentinel returned when there is
// nothing to undo or redo.
type Group struct {
	ID      uuid.UUID
	Name    string
	Records []Record
}

func newGroup(name string) Group {
	return Group{ID: uuid.New(), Name: name}
}

// Valid reports whether g is a real group rather than the sentinel.
func (g Group) Valid() bool {
	return g.ID != uuid.Nil
}

// Len returns the number of records.
func (g Group) Len() int {
	return len(g.Records)
}

// Empty reports whether the group has no records.
func (g Group) Empty() bool {
	return len(g.Records) == 0
}

// Append adds a record at the end.
func (g *Group) Append(r Record) {
	g.Records = append(g.Records, r)
}

// Kinds returns the kind of every record in order.
func (g Group) Kinds() []Kind {
	kinds := make([]Kind, len(g.Records))
	for i, r := range g.Records {
		kinds[i] = r.Kind()
	}
	return kinds
}

// Clone returns a deep copy of the group.
func (g Group) Clone() Group {
	c := Group{ID: g.ID, Name: g.Name}
	if g.Records != nil {
		c.Records = make([]Record, len(g.Records))
		for i, r := range g.Records {
			c.Records[i] = r.Clone()
		}
	}
	return c
}
