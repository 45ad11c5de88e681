// Package layout computes concrete 3D boxes for a RoomML tree.
//
// Layout runs in two passes. [Measure] walks the tree bottom-up and returns
// each node's natural size: rooms and furniture are their declared size,
// doors and windows take no space, and containers sum their children along
// the main axis and take the maximum across it. [Layout] then walks the tree
// top-down, handing each child a position and a size override, and
// distributes any surplus or deficit of main-axis space among children
// that declare flex grow or shrink factors.
//
// # Axes
//
// The x axis runs east, z runs south and y is up. A container's main axis
// is x for direction "row" (the default) and z for "col"; the other
// horizontal axis is the cross axis. Height is never distributed: every box
// keeps its natural height.
//
// # Flex
//
// For each participating child:
//
//	main   = flex.basis, or the child's natural main size
//	cross  = the child's natural cross size, or the container's when 0
//
// The leftover main-axis space is split by grow weights when positive and
// by shrink weights when negative, with no child shrinking below zero. When
// neither applies the leftover is left unabsorbed and the container may be
// under- or over-filled. Children are packed from the container's origin,
// separated by the gap, in document order.
//
// # Purity
//
// Both functions are pure and reentrant. [Layout] allocates a fresh [Box]
// tree on every call and never modifies the source nodes, so calling it twice
// on the same tree yields identical results.
package layout
