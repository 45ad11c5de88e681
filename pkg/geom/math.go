package geom

import "math"

// DefaultEpsilon is the tolerance used by [NearlyEqual] when callers have no
// better bound.
const DefaultEpsilon = 1e-6

// Clamp limits v to [lo, hi]. When hi < lo the lower bound wins, which keeps
// an item that is larger than its container pinned at the origin.
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// Sum adds values.
func Sum(values ...float64) float64 {
	var total float64
	for _, v := range values {
		total += v
	}
	return total
}

// NearlyEqual reports whether a and b differ by less than eps.
// A non-positive eps selects [DefaultEpsilon].
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = DefaultEpsilon
	}
	return math.Abs(a-b) < eps
}

// Value dereferences p, returning def when p is nil.
func Value(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// Ptr returns a pointer to v. It is mostly useful for building node trees in
// code and tests where optional fields are pointers.
func Ptr(v float64) *float64 { return &v }
