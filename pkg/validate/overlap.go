package validate

import (
	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/placement"
	"github.com/roomml/roomml/pkg/roomml"
)

// Overlap is a pair of furniture pieces in the same room whose boxes share
// volume.
type Overlap struct {
	A, B string
}

// Overlaps returns every overlapping pair among the direct furniture
// children of room, using clamped placement and half-open boxes: pieces
// that only touch do not overlap. Pairs are reported in document order.
func Overlaps(room *roomml.Node) []Overlap {
	furn := room.ChildrenOfType(roomml.TypeFurniture)
	if len(furn) < 2 {
		return nil
	}

	boxes := make([]geom.AABB, len(furn))
	for i, f := range furn {
		boxes[i] = placement.Footprint(f, room, placement.WithClampToRoom())
	}

	var out []Overlap
	for i := 0; i < len(boxes); i++ {
		for j := i + 1; j < len(boxes); j++ {
			if boxes[i].Intersects(boxes[j]) {
				out = append(out, Overlap{A: furn[i].Label(), B: furn[j].Label()})
			}
		}
	}
	return out
}

// overlaps runs after all of a room's descendants have been visited and
// reports each overlapping pair against the room's path.
func (v *validator) overlaps(room *roomml.Node, path string) {
	if !roomDeclared(room) {
		return
	}
	for _, o := range Overlaps(room) {
		v.warnf(path, "Furniture '%s' overlaps '%s'", o.A, o.B)
	}
}
