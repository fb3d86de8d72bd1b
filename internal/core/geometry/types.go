package geometry

import (
	"errors"

	"gonum.org/v1/gonum/spatial/r2"
)

// Point represents a 2D point in the plane
type Point struct {
	X, Y float64
}

func (p Point) vec() r2.Vec { return r2.Vec{X: p.X, Y: p.Y} }

func fromVec(v r2.Vec) Point { return Point{X: v.X, Y: v.Y} }

// ErrDegenerateGeometry is the root of every "no geometric answer" failure.
// Callers in the visibility engine turn it into an invalid ray rather than
// aborting a query.
var ErrDegenerateGeometry = errors.New("degenerate geometry")

// ErrInsideCircle is returned when a tangent is requested from a point
// strictly inside the circle.
var ErrInsideCircle = errors.New("source lies inside target circle")
