// Package geometry holds the planar primitives the visibility engine is
// built from. Every function is pure and works in radians.
package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Distance calculates the Euclidean distance between two points
func Distance(a, b Point) float64 {
	return r2.Norm(r2.Sub(b.vec(), a.vec()))
}

// Angle returns the signed rotation from ray o→a to ray o→b.
// The result is a plain atan2 difference and lies in (-2π, 2π); use
// NormalizeSigned or NormalizeUnsigned when a canonical range is needed.
func Angle(a, o, b Point) float64 {
	return math.Atan2(b.Y-o.Y, b.X-o.X) - math.Atan2(a.Y-o.Y, a.X-o.X)
}

// NormalizeSigned maps an angle into [-π, π).
func NormalizeSigned(angle float64) float64 {
	return NormalizeUnsigned(angle+math.Pi) - math.Pi
}

// NormalizeUnsigned maps an angle into [0, 2π).
func NormalizeUnsigned(angle float64) float64 {
	normalized := math.Mod(angle, 2.0*math.Pi)
	if normalized < 0 {
		normalized += 2.0 * math.Pi
	}
	return normalized
}

// Rotate rotates p around o by angle radians, counter-clockwise for
// positive angles. It keeps separate Sin and Cos calls; r2.Rotate goes
// through math.Sincos, which rounds differently in the last place.
func Rotate(p, o Point, angle float64) Point {
	sin, cos := math.Sin(angle), math.Cos(angle)
	dx := p.X - o.X
	dy := p.Y - o.Y
	return Point{
		X: o.X + cos*dx - sin*dy,
		Y: o.Y + sin*dx + cos*dy,
	}
}

// Lerp returns the point a fraction t of the way from a to b.
func Lerp(a, b Point, t float64) Point {
	return fromVec(r2.Add(a.vec(), r2.Scale(t, r2.Sub(b.vec(), a.vec()))))
}

// CircleLineCollision reports whether the infinite line through ls and le
// passes strictly inside the circle at c with radius r.
// A tangent line (distance exactly r) is not a collision. When ls == le the
// line has no direction and the test falls back to the distance from c to ls.
func CircleLineCollision(c Point, r float64, ls, le Point) bool {
	// Line in the form i*x + j*y + k = 0
	i := ls.Y - le.Y
	j := le.X - ls.X
	k := -(j*ls.Y + i*ls.X)

	norm := math.Sqrt(i*i + j*j)
	if norm == 0 {
		return Distance(c, ls) < r
	}

	dist := math.Abs(i*c.X+j*c.Y+k) / norm
	return dist < r
}

// TangentPoints returns the two points where lines from s touch the circle
// centered at c with radius r, ordered as the +θ rotation then the -θ
// rotation, where θ = asin(r / |s-c|).
//
// Each point is c rotated about s, so it lies on the tangent line at
// distance |s-c| from s rather than exactly on the circle.
func TangentPoints(s, c Point, r float64) (Point, Point, error) {
	d := Distance(s, c)
	if d < r || d == 0 {
		return Point{}, Point{}, fmt.Errorf("tangent from (%g, %g) to circle at (%g, %g) r=%g: %w: %w",
			s.X, s.Y, c.X, c.Y, r, ErrDegenerateGeometry, ErrInsideCircle)
	}

	angle := math.Asin(r / d)
	return Rotate(c, s, angle), Rotate(c, s, -angle), nil
}

// LineIntersection finds where the infinite lines p1-p2 and p3-p4 meet.
// It returns false when either pair of points coincides or when the lines
// are parallel.
func LineIntersection(p1, p2, p3, p4 Point) (Point, bool) {
	if p1 == p2 || p3 == p4 {
		return Point{}, false
	}

	denominator := (p4.Y-p3.Y)*(p2.X-p1.X) - (p4.X-p3.X)*(p2.Y-p1.Y)
	if denominator == 0 {
		return Point{}, false
	}

	ua := ((p4.X-p3.X)*(p1.Y-p3.Y) - (p4.Y-p3.Y)*(p1.X-p3.X)) / denominator

	return Point{
		X: p1.X + ua*(p2.X-p1.X),
		Y: p1.Y + ua*(p2.Y-p1.Y),
	}, true
}
