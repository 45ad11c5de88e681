package layout

import (
	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/roomml"
)

// Measure returns the natural size of n.
//
// Measure never fails: an invalid declaration yields a size (possibly zero
// or negative) and it is up to validation to report it.
func Measure(n *roomml.Node) geom.Size3D {
	switch n.Type {
	case roomml.TypeRoom, roomml.TypeFurniture:
		return n.Size3D()
	case roomml.TypeDoor, roomml.TypeWindow:
		return geom.Size3D{}
	case roomml.TypeHouse, roomml.TypeFloor, roomml.TypeContainer, roomml.TypeGroup:
		return measureContainer(n)
	default:
		return geom.Size3D{}
	}
}

// measureContainer sums the participating children along the main axis,
// adds the gaps, and takes the maximum across and up. Declared size fields
// replace the computed values as-is.
func measureContainer(n *roomml.Node) geom.Size3D {
	ls := n.EffectiveLayout()
	gap := geom.Value(ls.Gap, 0)
	alongX := mainIsX(ls.Dir)

	children := n.LayoutChildren()
	mains := make([]float64, len(children))
	var maxCross, maxHeight float64
	for i, c := range children {
		s := Measure(c)
		var cross float64
		mains[i], cross = split(s, alongX)
		maxCross = max(maxCross, cross)
		maxHeight = max(maxHeight, s.H)
	}
	main := geom.Sum(mains...) + gap*float64(max(0, len(children)-1))

	natural := joinSize(main, maxCross, maxHeight, alongX)
	return n.Size.Or(natural)
}

// mainIsX reports whether the main axis of a container with direction dir
// is x. Anything other than "col" lays out as a row.
func mainIsX(dir roomml.Direction) bool { return dir != roomml.DirCol }

// split returns the main and cross extents of s.
func split(s geom.Size3D, alongX bool) (main, cross float64) {
	if alongX {
		return s.W, s.D
	}
	return s.D, s.W
}

// joinSize is the inverse of split.
func joinSize(main, cross, h float64, alongX bool) geom.Size3D {
	if alongX {
		return geom.Size3D{W: main, D: cross, H: h}
	}
	return geom.Size3D{W: cross, D: main, H: h}
}
