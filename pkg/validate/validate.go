package validate

import (
	"fmt"
	"strings"

	"github.com/roomml/roomml/pkg/placement"
	"github.com/roomml/roomml/pkg/roomml"
)

// Validate checks root and returns the issues found, in traversal order.
// A clean document yields no issues. Use [HasErrors] to decide whether the
// layout may be rendered.
func Validate(root *roomml.Node) []Issue {
	v := &validator{seen: make(map[string]bool)}
	v.node(root, nil, nil)
	return v.issues
}

// validator carries the per-call state of one validation run.
type validator struct {
	issues []Issue
	seen   map[string]bool
}

func (v *validator) errorf(path, format string, args ...any) {
	v.issues = append(v.issues, Issue{Level: LevelError, Path: path, Message: fmt.Sprintf(format, args...)})
}

func (v *validator) warnf(path, format string, args ...any) {
	v.issues = append(v.issues, Issue{Level: LevelWarn, Path: path, Message: fmt.Sprintf(format, args...)})
}

// node checks n and recurses into its children. room is the nearest
// enclosing room, or nil.
func (v *validator) node(n *roomml.Node, parents []string, room *roomml.Node) {
	segments := append(parents[:len(parents):len(parents)], n.Label())
	path := strings.Join(segments, "/")

	if n.ID != "" {
		if v.seen[n.ID] {
			v.errorf(path, "Duplicate id '%s'", n.ID)
		} else {
			v.seen[n.ID] = true
		}
	}

	switch n.Type {
	case roomml.TypeHouse, roomml.TypeFloor, roomml.TypeContainer:
		v.container(n, path)
	case roomml.TypeRoom:
		v.room(n, path)
		room = n
	case roomml.TypeFurniture:
		if room == nil {
			v.warnf(path, "Furniture not placed inside a room")
		} else {
			v.furniture(n, room, path)
		}
	case roomml.TypeDoor, roomml.TypeWindow:
		if room == nil {
			v.errorf(path, "Opening must be inside a room")
		} else {
			v.opening(n, room, path)
		}
	case roomml.TypeGroup:
	default:
		v.errorf(path, "Unknown node type '%s'", n.Type)
	}

	for _, c := range n.Children {
		if c != nil {
			v.node(c, segments, room)
		}
	}

	if n.Type == roomml.TypeRoom && len(n.Children) > 0 {
		v.overlaps(n, path)
	}
}

func (v *validator) container(n *roomml.Node, path string) {
	if s := n.Size; s != nil {
		if s.W != nil && *s.W <= 0 {
			v.errorf(path, "Container width must be positive")
		}
		if s.D != nil && *s.D <= 0 {
			v.errorf(path, "Container depth must be positive")
		}
		if s.H != nil && *s.H <= 0 {
			v.errorf(path, "Container height must be positive")
		}
	}
	if n.Layout != nil {
		if mode := n.EffectiveLayout().Mode; mode != roomml.ModeFlex {
			v.errorf(path, "Unsupported layout mode '%s'", mode)
		}
	}
}

func (v *validator) room(n *roomml.Node, path string) {
	if !roomDeclared(n) || !n.Size3D().Positive() {
		v.errorf(path, "Room must have positive w, d, h")
	}
}

// roomDeclared reports whether the room sets all three axes of its size.
// Children of a room missing one are not bounds-checked. A declared but
// non-positive size still checks them against that size.
func roomDeclared(room *roomml.Node) bool {
	s := room.Size
	return s != nil && s.W != nil && s.D != nil && s.H != nil
}

func (v *validator) furniture(n, room *roomml.Node, path string) {
	size := n.Size3D()
	if !size.Positive() {
		v.errorf(path, "Furniture size must be positive")
		return
	}
	if !roomDeclared(room) {
		return
	}

	rs := room.Size3D()
	pos := placement.Resolve(n, room, placement.WithClampToRoom())
	if pos.X < 0 || pos.X+size.W > rs.W || pos.Z < 0 || pos.Z+size.D > rs.D {
		v.errorf(path, "Furniture placement is out of room bounds")
	}
}

func (v *validator) opening(n, room *roomml.Node, path string) {
	size := n.OpeningSize()
	if !size.Positive() {
		v.errorf(path, "Opening size must be positive")
		return
	}
	if !roomDeclared(room) {
		return
	}

	rs := room.Size3D()
	sill := n.SillHeight()
	if n.Offset < 0 {
		v.errorf(path, "Opening offset must be >= 0")
	}
	if n.Offset+size.W > roomml.WallLength(n.Wall, rs) {
		v.errorf(path, "Opening exceeds wall length")
	}
	if sill < 0 {
		v.errorf(path, "Sill must be >= 0")
	}
	if sill+size.H > rs.H {
		v.errorf(path, "Opening exceeds room height")
	}
}
