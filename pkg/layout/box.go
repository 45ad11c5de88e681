package layout

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/roomml"
)

// Box is the positioned result of laying out one node.
//
// (X, Y, Z) is the minimum corner in scene space and W, H, D the extents
// along x, y and z. Children are listed in document order. Node points back
// at the source node; it is not serialized and must be treated as
// read-only.
type Box struct {
	ID       string          `json:"id" bson:"id"`
	Type     roomml.NodeType `json:"type" bson:"type"`
	X        float64         `json:"x" bson:"x"`
	Y        float64         `json:"y" bson:"y"`
	Z        float64         `json:"z" bson:"z"`
	W        float64         `json:"w" bson:"w"`
	H        float64         `json:"h" bson:"h"`
	D        float64         `json:"d" bson:"d"`
	Children []*Box          `json:"children,omitempty" bson:"children,omitempty"`

	Node *roomml.Node `json:"-" bson:"-"`
}

// Origin returns the box's minimum corner.
func (b *Box) Origin() geom.Vec3 { return geom.Vec3{X: b.X, Y: b.Y, Z: b.Z} }

// Size returns the box's extents.
func (b *Box) Size() geom.Size3D { return geom.Size3D{W: b.W, D: b.D, H: b.H} }

// AABB returns the box as an axis-aligned bounding box.
func (b *Box) AABB() geom.AABB { return geom.NewAABB(b.Origin(), b.Size()) }

// Walk visits b and its descendants in depth-first pre-order. Returning
// false from fn skips the box's children.
func (b *Box) Walk(fn func(*Box) bool) {
	if b == nil || !fn(b) {
		return
	}
	for _, c := range b.Children {
		c.Walk(fn)
	}
}

// Find returns the first box with the given id in pre-order, or nil.
func (b *Box) Find(id string) *Box {
	var found *Box
	b.Walk(func(c *Box) bool {
		if found != nil {
			return false
		}
		if c.ID == id {
			found = c
			return false
		}
		return true
	})
	return found
}

// Count returns the number of boxes in the tree.
func (b *Box) Count() int {
	n := 0
	b.Walk(func(*Box) bool {
		n++
		return true
	})
	return n
}

// Rooms returns every room box in pre-order.
func (b *Box) Rooms() []*Box {
	var rooms []*Box
	b.Walk(func(c *Box) bool {
		if c.Type == roomml.TypeRoom {
			rooms = append(rooms, c)
		}
		return true
	})
	return rooms
}

// Attach links a deserialized box tree back to the tree it was laid out
// from. It fails when the shapes differ, which means the box tree belongs to
// another document.
func Attach(b *Box, root *roomml.Node) error {
	if b.Type != root.Type || b.ID != root.Label() {
		return fmt.Errorf("attach layout: box %s (%s) does not match node %s (%s)", b.ID, b.Type, root.Label(), root.Type)
	}
	b.Node = root
	if len(b.Children) == 0 {
		return nil
	}
	kids := root.LayoutChildren()
	if len(kids) != len(b.Children) {
		return fmt.Errorf("attach layout: box %s has %d children, node has %d", b.ID, len(b.Children), len(kids))
	}
	for i, c := range b.Children {
		if err := Attach(c, kids[i]); err != nil {
			return err
		}
	}
	return nil
}

// MarshalBox serializes a box tree to pretty-printed JSON.
func MarshalBox(b *Box) ([]byte, error) {
	return json.MarshalIndent(b, "", "  ")
}

// UnmarshalBox deserializes a box tree. The returned boxes have no source
// node attached.
func UnmarshalBox(data []byte) (*Box, error) {
	var b Box
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	if b.Type == "" {
		return nil, fmt.Errorf("layout root has no type")
	}
	return &b, nil
}

// WriteFile writes a box tree to a JSON file.
func WriteFile(b *Box, path string) error {
	data, err := MarshalBox(b)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFile reads a box tree from a JSON file.
func ReadFile(path string) (*Box, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return UnmarshalBox(data)
}
