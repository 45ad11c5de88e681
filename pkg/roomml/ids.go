package roomml

import "fmt"

// IDAssigner hands out "<type>-<n>" ids with one counter per node type.
// An assigner is meant to live for a single parse; its zero value is ready
// to use.
type IDAssigner struct {
	counters map[NodeType]int
}

// NewIDAssigner returns an assigner with all counters at zero.
func NewIDAssigner() *IDAssigner {
	return &IDAssigner{counters: make(map[NodeType]int)}
}

// Next returns the next id for type t.
func (a *IDAssigner) Next(t NodeType) string {
	if a.counters == nil {
		a.counters = make(map[NodeType]int)
	}
	a.counters[t]++
	return fmt.Sprintf("%s-%d", t, a.counters[t])
}

// Assign gives every node in the tree that lacks an id a fresh one, in
// depth-first pre-order. Declared ids are left untouched, even when they
// collide with generated ones; collisions are reported by validation.
func (a *IDAssigner) Assign(root *Node) {
	root.Walk(func(n *Node) bool {
		if n.ID == "" {
			n.ID = a.Next(n.Type)
		}
		return true
	})
}

// AssignIDs fills missing ids in root using a fresh [IDAssigner].
func AssignIDs(root *Node) {
	NewIDAssigner().Assign(root)
}
