// Package placement resolves where a piece of furniture sits inside its room.
//
// A placement is either free (explicit x/z/y offsets from the room's minimum
// corner) or anchored to one of the room's walls. Resolution never fails:
// missing values read as 0 and an unknown anchor falls back to the origin.
//
// By default positions are returned as declared, even when they leave the
// room. [WithClampToRoom] first clamps an anchored piece's offset along its
// wall so that it cannot slide past the wall's end; the validator uses that
// form while the scene builder renders the raw one.
package placement

import (
	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/roomml"
)

type options struct {
	clamp bool
}

// Option configures [Resolve].
type Option func(*options)

// WithClampToRoom clamps an anchored placement's offset into
// [0, wall length - furniture extent] before positioning.
func WithClampToRoom() Option {
	return func(o *options) { o.clamp = true }
}

// Resolve returns the offset of furn relative to the minimum corner of room.
func Resolve(furn, room *roomml.Node, opts ...Option) geom.Vec3 {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	p := furn.Place
	if p == nil {
		return geom.Vec3{}
	}
	y := geom.Value(p.Y, 0)

	if p.Mode != roomml.PlaceAnchor {
		return geom.Vec3{X: geom.Value(p.X, 0), Y: y, Z: geom.Value(p.Z, 0)}
	}

	fs := furn.Size3D()
	rs := room.Size3D()
	offset := geom.Value(p.Offset, 0)
	inset := geom.Value(p.Inset, 0)

	if o.clamp {
		switch p.Anchor {
		case roomml.WallNorth, roomml.WallSouth:
			offset = geom.Clamp(offset, 0, rs.W-fs.W)
		case roomml.WallEast, roomml.WallWest:
			offset = geom.Clamp(offset, 0, rs.D-fs.D)
		}
	}

	switch p.Anchor {
	case roomml.WallNorth:
		return geom.Vec3{X: offset, Y: y, Z: inset}
	case roomml.WallSouth:
		return geom.Vec3{X: offset, Y: y, Z: rs.D - fs.D - inset}
	case roomml.WallWest:
		return geom.Vec3{X: inset, Y: y, Z: offset}
	case roomml.WallEast:
		return geom.Vec3{X: rs.W - fs.W - inset, Y: y, Z: offset}
	default:
		return geom.Vec3{Y: y}
	}
}

// Footprint returns the furniture's bounding box relative to its room,
// using the resolved position and the declared size.
func Footprint(furn, room *roomml.Node, opts ...Option) geom.AABB {
	return geom.NewAABB(Resolve(furn, room, opts...), furn.Size3D())
}
