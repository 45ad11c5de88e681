package scene

import (
	"fmt"

	apperr "github.com/roomml/roomml/pkg/errors"
	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/layout"
	"github.com/roomml/roomml/pkg/placement"
	"github.com/roomml/roomml/pkg/roomml"
	"github.com/roomml/roomml/pkg/validate"
)

// ErrBlocked is returned by [Build] when the document has validation
// errors.
var ErrBlocked = apperr.New(apperr.ErrCodeBlocked, "document has validation errors")

// Build produces the geometry of every room in the layout. issues must be
// the validation result of the same document; any error among them blocks
// the build.
func Build(box *layout.Box, issues []validate.Issue) (*Scene, error) {
	if validate.HasErrors(issues) {
		return nil, ErrBlocked
	}
	if box == nil {
		return nil, fmt.Errorf("build scene: no layout")
	}

	s := &Scene{}
	if err := collect(box, s); err != nil {
		return nil, err
	}
	for _, r := range s.Rooms {
		s.Bounds = s.Bounds.Union(r.Box.Union(r.Ceiling))
	}
	return s, nil
}

// collect builds rooms in pre-order. A room is a leaf: rooms nested inside
// it are not built.
func collect(b *layout.Box, s *Scene) error {
	if b.Type == roomml.TypeRoom {
		r, err := buildRoom(b)
		if err != nil {
			return err
		}
		s.Rooms = append(s.Rooms, r)
		return nil
	}
	for _, c := range b.Children {
		if err := collect(c, s); err != nil {
			return err
		}
	}
	return nil
}

func buildRoom(b *layout.Box) (Room, error) {
	n := b.Node
	if n == nil {
		return Room{}, fmt.Errorf("build room %s: layout box has no source node", b.ID)
	}

	origin := b.Origin()
	size := n.Size3D()
	floorT := n.FloorThickness()
	ceilingT := n.CeilingThickness()

	r := Room{
		ID:      n.Label(),
		Box:     geom.NewAABB(origin, size),
		Floor:   geom.NewAABB(origin, geom.Size3D{W: size.W, D: size.D, H: floorT}),
		Ceiling: geom.NewAABB(origin.Add(geom.Vec3{Y: size.H}), geom.Size3D{W: size.W, D: size.D, H: ceilingT}),
	}

	for _, side := range roomml.WallSides {
		r.Walls = append(r.Walls, buildWall(n, side, origin, size))
	}

	for _, f := range n.ChildrenOfType(roomml.TypeFurniture) {
		pos := placement.Resolve(f, n)
		r.Furniture = append(r.Furniture, Item{
			ID:  f.Label(),
			Box: geom.NewAABB(origin.Add(pos), f.Size3D()),
		})
	}
	return r, nil
}

func buildWall(room *roomml.Node, side roomml.WallSide, origin geom.Vec3, size geom.Size3D) Wall {
	t := room.WallThickness()
	w := Wall{
		Side:      side,
		Label:     side.Label(),
		Length:    roomml.WallLength(side, size),
		Height:    size.H,
		Thickness: t,
		Box:       wallBox(side, origin, size, t, 0, roomml.WallLength(side, size), 0, size.H),
	}

	for _, o := range room.Openings() {
		if o.Wall != side {
			continue
		}
		os := o.OpeningSize()
		sill := o.SillHeight()
		w.Holes = append(w.Holes, Hole{
			ID:     o.Label(),
			Type:   o.Type,
			Offset: o.Offset,
			Sill:   sill,
			W:      os.W,
			H:      os.H,
			Box:    wallBox(side, origin, size, t, o.Offset, os.W, sill, os.H),
		})
	}
	return w
}

// wallBox returns the world box of the wall section that starts at offset
// along the wall, runs for length, and spans [y0, y0+h] vertically.
func wallBox(side roomml.WallSide, origin geom.Vec3, size geom.Size3D, t, offset, length, y0, h float64) geom.AABB {
	var x, z, w, d float64
	switch side {
	case roomml.WallNorth:
		x, z, w, d = offset, 0, length, t
	case roomml.WallSouth:
		x, z, w, d = size.W-offset-length, size.D-t, length, t
	case roomml.WallWest:
		x, z, w, d = 0, size.D-offset-length, t, length
	case roomml.WallEast:
		x, z, w, d = size.W-t, offset, t, length
	}
	return geom.AABB{X: origin.X + x, Y: origin.Y + y0, Z: origin.Z + z, W: w, H: h, D: d}
}
