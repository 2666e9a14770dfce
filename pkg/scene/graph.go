package scene

import (
	"fmt"
	"slices"
)

// RootID is the id of the root node every graph starts with.
const RootID NodeID = 0

// Graph is a mutable scene graph. Nodes are addressed by id; the root
// node always exists and cannot be removed.
type Graph struct {
	Nodes  map[NodeID]*Node `json:"nodes"`
	nextID NodeID
}

// NewGraph creates a graph holding only the root node.
func NewGraph() *Graph {
	root := NewNode(NodeTypeRoot, "root")
	root.ID = RootID
	return &Graph{
		Nodes:  map[NodeID]*Node{RootID: root},
		nextID: RootID + 1,
	}
}

// AddNode assigns the next free id to n and attaches it below parent.
// It returns InvalidNodeID if the parent does not exist.
func (g *Graph) AddNode(n *Node, parent NodeID) NodeID {
	p := g.Nodes[parent]
	if p == nil {
		return InvalidNodeID
	}
	n.ID = g.nextID
	g.nextID++
	n.ParentID = parent
	n.Children = nil
	g.Nodes[n.ID] = n
	p.Children = append(p.Children, n.ID)
	return n.ID
}

// Get returns the node with the given ID, or nil.
func (g *Graph) Get(id NodeID) *Node {
	return g.Nodes[id]
}

// MustGet returns the node with the given ID, or panics.
func (g *Graph) MustGet(id NodeID) *Node {
	n := g.Get(id)
	if n == nil {
		panic(fmt.Sprintf("scene: no node with id %d", id))
	}
	return n
}

// Lookup returns the first node (by ascending id) with the given name, or nil.
func (g *Graph) Lookup(name string) *Node {
	for _, id := range g.IDs() {
		if n := g.Nodes[id]; n.Name == name {
			return n
		}
	}
	return nil
}

// Remove deletes the node and its whole subtree. The root cannot be removed.
func (g *Graph) Remove(id NodeID) bool {
	n := g.Nodes[id]
	if n == nil || id == RootID {
		return false
	}
	if p := g.Nodes[n.ParentID]; p != nil {
		p.Children = slices.DeleteFunc(p.Children, func(c NodeID) bool { return c == id })
	}
	g.removeSubtree(n)
	return true
}

func (g *Graph) removeSubtree(n *Node) {
	for _, cid := range n.Children {
		if c := g.Nodes[cid]; c != nil {
			g.removeSubtree(c)
		}
	}
	delete(g.Nodes, n.ID)
}

// Move reparents the node. Moving a node below itself or one of its
// descendants is refused.
func (g *Graph) Move(id, parent NodeID) bool {
	n, p := g.Nodes[id], g.Nodes[parent]
	if n == nil || p == nil || id == RootID {
		return false
	}
	for cur := p; cur != nil; cur = g.Nodes[cur.ParentID] {
		if cur.ID == id {
			return false
		}
		if cur.ID == RootID {
			break
		}
	}
	if old := g.Nodes[n.ParentID]; old != nil {
		old.Children = slices.DeleteFunc(old.Children, func(c NodeID) bool { return c == id })
	}
	n.ParentID = parent
	p.Children = append(p.Children, id)
	return true
}

// Children returns the child nodes of the given node.
func (g *Graph) Children(n *Node) []*Node {
	children := make([]*Node, 0, len(n.Children))
	for _, cid := range n.Children {
		if c := g.Nodes[cid]; c != nil {
			children = append(children, c)
		}
	}
	return children
}

// IDs returns every node id in ascending order.
func (g *Graph) IDs() []NodeID {
	ids := make([]NodeID, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// NodeCount returns the total number of nodes, root included.
func (g *Graph) NodeCount() int {
	return len(g.Nodes)
}

// NextID returns the id the next AddNode call will assign.
func (g *Graph) NextID() NodeID {
	return g.nextID
}
