package geom

// Vec3 is a point or offset in scene space.
type Vec3 struct {
	X float64 `json:"x" bson:"x"`
	Y float64 `json:"y" bson:"y"`
	Z float64 `json:"z" bson:"z"`
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Size3D is a full width/depth/height triple.
type Size3D struct {
	W float64 `json:"w" bson:"w"`
	D float64 `json:"d" bson:"d"`
	H float64 `json:"h" bson:"h"`
}

// Positive reports whether all three extents are strictly positive.
func (s Size3D) Positive() bool { return s.W > 0 && s.D > 0 && s.H > 0 }

// Size3DPartial is a size where each axis may be left unspecified.
type Size3DPartial struct {
	W *float64 `json:"w,omitempty" bson:"w,omitempty"`
	D *float64 `json:"d,omitempty" bson:"d,omitempty"`
	H *float64 `json:"h,omitempty" bson:"h,omitempty"`
}

// Or fills every unspecified axis from fallback.
func (p *Size3DPartial) Or(fallback Size3D) Size3D {
	if p == nil {
		return fallback
	}
	return Size3D{
		W: Value(p.W, fallback.W),
		D: Value(p.D, fallback.D),
		H: Value(p.H, fallback.H),
	}
}

// Full returns a partial with all three axes set from s.
func Full(s Size3D) *Size3DPartial {
	return &Size3DPartial{W: Ptr(s.W), D: Ptr(s.D), H: Ptr(s.H)}
}

// Size2D is the width/height of a wall opening.
type Size2D struct {
	W float64 `json:"w" bson:"w"`
	H float64 `json:"h" bson:"h"`
}

// Positive reports whether both extents are strictly positive.
func (s Size2D) Positive() bool { return s.W > 0 && s.H > 0 }
