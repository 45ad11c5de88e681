package roomml

import "github.com/roomml/roomml/pkg/geom"

// RootPath is the issue path used for problems that concern the document as
// a whole, such as a parse failure.
const RootPath = "root"

// Node is one element of a RoomML tree.
//
// Size is shared by several kinds with different meaning: a partial size
// for containers, a full w/d/h for rooms and furniture, and w/h for doors
// and windows. Use the typed accessors rather than reading it directly.
type Node struct {
	Type     NodeType    `json:"type" bson:"type"`
	ID       string      `json:"id,omitempty" bson:"id,omitempty"`
	Children []*Node     `json:"children,omitempty" bson:"children,omitempty"`
	Flex     *FlexSizing `json:"flex,omitempty" bson:"flex,omitempty"`

	Size   *geom.Size3DPartial `json:"size,omitempty" bson:"size,omitempty"`
	Layout *LayoutSettings     `json:"layout,omitempty" bson:"layout,omitempty"`

	Thickness *Thickness `json:"thickness,omitempty" bson:"thickness,omitempty"`
	Place     *Placement `json:"place,omitempty" bson:"place,omitempty"`

	Wall   WallSide `json:"wall,omitempty" bson:"wall,omitempty"`
	Offset float64  `json:"offset,omitempty" bson:"offset,omitempty"`
	Sill   *float64 `json:"sill,omitempty" bson:"sill,omitempty"`
}

// Label returns the node's id, or its type when it has none. Labels are the
// segments of validation paths and the ids of layout boxes.
func (n *Node) Label() string {
	if n.ID != "" {
		return n.ID
	}
	return string(n.Type)
}

// HasSize reports whether a size object was declared.
func (n *Node) HasSize() bool { return n.Size != nil }

// Size3D returns the declared size of a room or piece of furniture.
// Missing axes read as 0.
func (n *Node) Size3D() geom.Size3D {
	return n.Size.Or(geom.Size3D{})
}

// OpeningSize returns the declared width and height of a door or window.
func (n *Node) OpeningSize() geom.Size2D {
	s := n.Size3D()
	return geom.Size2D{W: s.W, H: s.H}
}

// SillHeight returns the opening's sill, falling back to the default for
// its kind: 0 for doors and 0.9 for windows.
func (n *Node) SillHeight() float64 {
	def := DefaultDoorSill
	if n.Type == TypeWindow {
		def = DefaultWindowSill
	}
	return geom.Value(n.Sill, def)
}

// EffectiveLayout returns the node's layout settings with defaults applied:
// flex mode, row direction, zero gap.
func (n *Node) EffectiveLayout() LayoutSettings {
	ls := LayoutSettings{Mode: ModeFlex, Dir: DirRow, Gap: geom.Ptr(0)}
	if n.Layout == nil {
		return ls
	}
	out := *n.Layout
	if out.Mode == "" {
		out.Mode = ls.Mode
	}
	if out.Dir == "" {
		out.Dir = ls.Dir
	}
	if out.Gap == nil {
		out.Gap = ls.Gap
	}
	return out
}

// FlexBasis returns the node's explicit flex basis, if any.
func (n *Node) FlexBasis() (float64, bool) {
	if n.Flex == nil || n.Flex.Basis == nil {
		return 0, false
	}
	return *n.Flex.Basis, true
}

// FlexGrow returns the node's grow factor (default 0).
func (n *Node) FlexGrow() float64 {
	if n.Flex == nil {
		return 0
	}
	return geom.Value(n.Flex.Grow, 0)
}

// FlexShrink returns the node's shrink factor (default 0).
func (n *Node) FlexShrink() float64 {
	if n.Flex == nil {
		return 0
	}
	return geom.Value(n.Flex.Shrink, 0)
}

// WallThickness returns the room's wall thickness or the default.
func (n *Node) WallThickness() float64 {
	if n.Thickness == nil {
		return DefaultWallThickness
	}
	return geom.Value(n.Thickness.Wall, DefaultWallThickness)
}

// FloorThickness returns the room's floor thickness or the default.
func (n *Node) FloorThickness() float64 {
	if n.Thickness == nil {
		return DefaultFloorThickness
	}
	return geom.Value(n.Thickness.Floor, DefaultFloorThickness)
}

// CeilingThickness returns the room's ceiling thickness or the default.
func (n *Node) CeilingThickness() float64 {
	if n.Thickness == nil {
		return DefaultCeilingThickness
	}
	return geom.Value(n.Thickness.Ceiling, DefaultCeilingThickness)
}

// LayoutChildren returns the direct children that take part in flex layout,
// in document order.
func (n *Node) LayoutChildren() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c != nil && c.Type.IsLayoutParticipant() {
			out = append(out, c)
		}
	}
	return out
}

// ChildrenOfType returns the direct children of kind t, in document order.
func (n *Node) ChildrenOfType(t NodeType) []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c != nil && c.Type == t {
			out = append(out, c)
		}
	}
	return out
}

// Openings returns the direct door and window children of a room.
func (n *Node) Openings() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if c != nil && c.Type.IsOpening() {
			out = append(out, c)
		}
	}
	return out
}

// Walk visits n and its descendants in depth-first pre-order. Returning
// false from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Count returns the number of nodes of each type in the tree.
func (n *Node) Count() map[NodeType]int {
	counts := make(map[NodeType]int)
	n.Walk(func(c *Node) bool {
		counts[c.Type]++
		return true
	})
	return counts
}
