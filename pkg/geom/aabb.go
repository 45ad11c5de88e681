package geom

// AABB is an axis-aligned bounding box with its minimum corner at (X, Y, Z)
// and extents W (x), H (y), D (z).
type AABB struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
	D float64 `json:"d" bson:"d"`
}

// NewAABB builds a box at origin with the given size.
func NewAABB(origin Vec3, size Size3D) AABB {
	return AABB{X: origin.X, Y: origin.Y, Z: origin.Z, W: size.W, H: size.H, D: size.D}
}

// Min returns the minimum corner.
func (b AABB) Min() Vec3 { return Vec3{b.X, b.Y, b.Z} }

// Max returns the maximum corner.
func (b AABB) Max() Vec3 { return Vec3{b.X + b.W, b.Y + b.H, b.Z + b.D} }

// Intersects reports whether a and b share interior volume. Intervals are
// half-open: boxes that only touch on a face, edge, or corner do not
// intersect.
func (b AABB) Intersects(o AABB) bool {
	return !(b.X+b.W <= o.X ||
		o.X+o.W <= b.X ||
		b.Y+b.H <= o.Y ||
		o.Y+o.H <= b.Y ||
		b.Z+b.D <= o.Z ||
		o.Z+o.D <= b.Z)
}

// Union returns the smallest box enclosing both b and o.
// A zero-valued receiver is treated as empty.
func (b AABB) Union(o AABB) AABB {
	if b == (AABB{}) {
		return o
	}
	lo := Vec3{min(b.X, o.X), min(b.Y, o.Y), min(b.Z, o.Z)}
	bm, om := b.Max(), o.Max()
	hi := Vec3{max(bm.X, om.X), max(bm.Y, om.Y), max(bm.Z, om.Z)}
	return AABB{X: lo.X, Y: lo.Y, Z: lo.Z, W: hi.X - lo.X, H: hi.Y - lo.Y, D: hi.Z - lo.Z}
}
