// Package geom provides the small set of 3D value types and numeric helpers
// shared by the layout, placement, validation, and scene packages.
//
// Coordinates follow the scene convention: X runs east, Z runs south, and Y
// is up. Sizes are expressed as width (W, along X), depth (D, along Z), and
// height (H, along Y).
//
// # Bounding boxes
//
// [AABB] is an axis-aligned box anchored at its minimum corner. Intersection
// uses half-open intervals, so two boxes that merely touch along a face do
// not intersect:
//
//	a := geom.AABB{X: 0, W: 1, D: 1, H: 1}
//	b := geom.AABB{X: 1, W: 1, D: 1, H: 1}
//	a.Intersects(b) // false
package geom
