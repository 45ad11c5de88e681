package layout

import (
	"github.com/roomml/roomml/pkg/geom"
	"github.com/roomml/roomml/pkg/roomml"
)

// item is the working state of one child during flex distribution.
type item struct {
	node    *roomml.Node
	natural geom.Size3D
	main    float64
	cross   float64
	grow    float64
	shrink  float64
}

// Tree lays out root at the origin with its natural size.
func Tree(root *roomml.Node) *Box {
	return Layout(root, geom.Vec3{}, nil)
}

// Layout positions n at origin and recursively positions its children.
//
// The box takes its size from override where an axis is given and from
// [Measure] otherwise. Doors and windows are never laid out; they are
// placed relative to their room's walls by the scene builder.
func Layout(n *roomml.Node, origin geom.Vec3, override *geom.Size3DPartial) *Box {
	size := override.Or(Measure(n))
	box := &Box{
		ID:   n.Label(),
		Type: n.Type,
		X:    origin.X,
		Y:    origin.Y,
		Z:    origin.Z,
		W:    size.W,
		H:    size.H,
		D:    size.D,
		Node: n,
	}

	ls := n.EffectiveLayout()
	children := n.LayoutChildren()
	if len(children) == 0 || ls.Mode != roomml.ModeFlex {
		return box
	}

	gap := geom.Value(ls.Gap, 0)
	alongX := mainIsX(ls.Dir)
	mainSize, crossSize := split(size, alongX)

	items := make([]item, len(children))
	for i, c := range children {
		natural := Measure(c)
		main, cross := split(natural, alongX)
		if basis, ok := c.FlexBasis(); ok {
			main = basis
		}
		items[i] = item{
			node:    c,
			natural: natural,
			main:    main,
			cross:   cross,
			grow:    c.FlexGrow(),
			shrink:  c.FlexShrink(),
		}
	}
	distribute(items, mainSize, gap)

	box.Children = make([]*Box, 0, len(items))
	var cursor float64
	for _, it := range items {
		cross := it.cross
		if cross == 0 {
			cross = crossSize
		}
		childOrigin := origin
		if alongX {
			childOrigin.X += cursor
		} else {
			childOrigin.Z += cursor
		}
		childSize := joinSize(it.main, cross, it.natural.H, alongX)
		box.Children = append(box.Children, Layout(it.node, childOrigin, geom.Full(childSize)))
		cursor += it.main + gap
	}
	return box
}

// distribute absorbs the difference between the container's main size and
// the children's total main size (gaps included). Surplus goes to children
// in proportion to their grow factor, a deficit is taken in proportion to
// their shrink factor with no child going below zero. Without any matching
// factor the leftover is not absorbed.
func distribute(items []item, mainSize, gap float64) {
	mains := make([]float64, len(items))
	var sumGrow, sumShrink float64
	for i, it := range items {
		mains[i] = it.main
		sumGrow += it.grow
		sumShrink += it.shrink
	}
	total := geom.Sum(mains...) + gap*float64(max(0, len(items)-1))
	leftover := mainSize - total

	switch {
	case leftover > 0 && sumGrow > 0:
		for i := range items {
			items[i].main += leftover * items[i].grow / sumGrow
		}
	case leftover < 0 && sumShrink > 0:
		for i := range items {
			items[i].main = max(0, items[i].main+leftover*items[i].shrink/sumShrink)
		}
	}
}
