package geometry

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats/scalar"
)

const tol = 1e-9

func pointsClose(a, b Point) bool {
	return scalar.EqualWithinAbs(a.X, b.X, tol) && scalar.EqualWithinAbs(a.Y, b.Y, tol)
}

func TestDistance(t *testing.T) {
	if got := Distance(Point{0, 0}, Point{3, 4}); got != 5 {
		t.Fatalf("expected 5, got %f", got)
	}
	if got := Distance(Point{-1, 2}, Point{-1, 2}); got != 0 {
		t.Fatalf("expected 0 for identical points, got %f", got)
	}
}

func TestAngleIsSignedAndUnnormalized(t *testing.T) {
	o := Point{0, 0}

	// Quarter turn counter-clockwise
	if got := Angle(Point{1, 0}, o, Point{0, 1}); !scalar.EqualWithinAbs(got, math.Pi/2, tol) {
		t.Errorf("expected π/2, got %f", got)
	}

	// Quarter turn clockwise is negative
	if got := Angle(Point{0, 1}, o, Point{1, 0}); !scalar.EqualWithinAbs(got, -math.Pi/2, tol) {
		t.Errorf("expected -π/2, got %f", got)
	}

	// Crossing the atan2 branch cut leaves the raw difference untouched
	a := Point{-1, 0.1}
	b := Point{-1, -0.1}
	raw := Angle(a, o, b)
	if raw > -math.Pi {
		t.Fatalf("expected raw difference below -π, got %f", raw)
	}
	if got := NormalizeSigned(raw); !scalar.EqualWithinAbs(got, 2*math.Atan(0.1), tol) {
		t.Errorf("expected normalized %f, got %f", 2*math.Atan(0.1), got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in       float64
		signed   float64
		unsigned float64
	}{
		{0, 0, 0},
		{math.Pi / 2, math.Pi / 2, math.Pi / 2},
		{-math.Pi / 2, -math.Pi / 2, 3 * math.Pi / 2},
		{3 * math.Pi / 2, -math.Pi / 2, 3 * math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2, math.Pi / 2},
		{7 * math.Pi / 4, -math.Pi / 4, 7 * math.Pi / 4},
	}

	for _, tt := range tests {
		if got := NormalizeSigned(tt.in); !scalar.EqualWithinAbs(got, tt.signed, tol) {
			t.Errorf("NormalizeSigned(%f) = %f, want %f", tt.in, got, tt.signed)
		}
		if got := NormalizeUnsigned(tt.in); !scalar.EqualWithinAbs(got, tt.unsigned, tol) {
			t.Errorf("NormalizeUnsigned(%f) = %f, want %f", tt.in, got, tt.unsigned)
		}
	}
}

func TestRotate(t *testing.T) {
	got := Rotate(Point{2, 1}, Point{1, 1}, math.Pi/2)
	if !pointsClose(got, Point{1, 2}) {
		t.Errorf("counter-clockwise quarter turn: got %+v", got)
	}

	got = Rotate(Point{2, 1}, Point{1, 1}, -math.Pi/2)
	if !pointsClose(got, Point{1, 0}) {
		t.Errorf("clockwise quarter turn: got %+v", got)
	}

	pivot := Point{3, -2}
	if got := Rotate(pivot, pivot, 1.234); got != pivot {
		t.Errorf("rotating the pivot should not move it, got %+v", got)
	}
}

func TestLerp(t *testing.T) {
	got := Lerp(Point{5, 0}, Point{0, 0}, 0.2)
	if !pointsClose(got, Point{4, 0}) {
		t.Errorf("expected (4, 0), got %+v", got)
	}
}

func TestCircleLineCollision(t *testing.T) {
	c := Point{0, 0}

	tests := []struct {
		name   string
		ls, le Point
		want   bool
	}{
		{"through center", Point{-5, 0}, Point{5, 0}, true},
		{"outside", Point{-5, 2}, Point{5, 2}, false},
		{"tangent is not a collision", Point{-5, 1}, Point{5, 1}, false},
		{"infinite line beyond segment", Point{3, 0.5}, Point{4, 0.5}, true},
		{"degenerate inside", Point{0.5, 0}, Point{0.5, 0}, true},
		{"degenerate outside", Point{2, 0}, Point{2, 0}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CircleLineCollision(c, 1, tt.ls, tt.le); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTangentPoints(t *testing.T) {
	s := Point{0, 0}
	c := Point{4, 0}
	r := 1.0

	plus, minus, err := TangentPoints(s, c, r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// +θ rotation goes counter-clockwise, so it ends up above the axis
	if plus.Y <= 0 || minus.Y >= 0 {
		t.Fatalf("expected +θ above and -θ below the axis, got %+v and %+v", plus, minus)
	}

	// Mirror images across the source-center line
	if !pointsClose(plus, Point{minus.X, -minus.Y}) {
		t.Errorf("expected symmetric tangent points, got %+v and %+v", plus, minus)
	}

	// Both lie on lines that just touch the circle
	for _, p := range []Point{plus, minus} {
		if CircleLineCollision(c, r-1e-6, s, p) {
			t.Errorf("tangent line through %+v should not cut the circle", p)
		}
		if !CircleLineCollision(c, r+1e-6, s, p) {
			t.Errorf("tangent line through %+v should graze the circle", p)
		}
		if !scalar.EqualWithinAbs(Distance(s, p), Distance(s, c), tol) {
			t.Errorf("tangent construction should keep |s-p| == |s-c|, got %f", Distance(s, p))
		}
	}
}

func TestTangentPointsFromInside(t *testing.T) {
	_, _, err := TangentPoints(Point{0.5, 0}, Point{0, 0}, 1)
	if err == nil {
		t.Fatal("expected an error for a source inside the circle")
	}
	if !errors.Is(err, ErrInsideCircle) || !errors.Is(err, ErrDegenerateGeometry) {
		t.Errorf("expected ErrInsideCircle wrapping ErrDegenerateGeometry, got %v", err)
	}

	if _, _, err := TangentPoints(Point{1, 1}, Point{1, 1}, 1); err == nil {
		t.Error("expected an error when source equals center")
	}
}

func TestTangentPointsOnCircle(t *testing.T) {
	plus, minus, err := TangentPoints(Point{1, 0}, Point{0, 0}, 1)
	if err != nil {
		t.Fatalf("a source on the circle still has a tangent: %v", err)
	}
	if !pointsClose(plus, Point{1, -1}) || !pointsClose(minus, Point{1, 1}) {
		t.Errorf("unexpected tangent points %+v %+v", plus, minus)
	}
}

func TestLineIntersection(t *testing.T) {
	got, ok := LineIntersection(Point{0, 0}, Point{1, 1}, Point{0, 2}, Point{2, 0})
	if !ok {
		t.Fatal("expected an intersection")
	}
	if !pointsClose(got, Point{1, 1}) {
		t.Errorf("expected (1, 1), got %+v", got)
	}

	// Lines, not segments: the meeting point may lie outside both
	got, ok = LineIntersection(Point{0, 0}, Point{1, 0}, Point{5, 1}, Point{5, 2})
	if !ok || !pointsClose(got, Point{5, 0}) {
		t.Errorf("expected (5, 0) from extended lines, got %+v %v", got, ok)
	}
}

func TestLineIntersectionDegenerate(t *testing.T) {
	tests := []struct {
		name           string
		p1, p2, p3, p4 Point
	}{
		{"parallel", Point{0, 0}, Point{1, 0}, Point{0, 1}, Point{1, 1}},
		{"coincident", Point{0, 0}, Point{1, 1}, Point{2, 2}, Point{3, 3}},
		{"zero length first", Point{1, 1}, Point{1, 1}, Point{0, 2}, Point{2, 0}},
		{"zero length second", Point{0, 0}, Point{1, 1}, Point{3, 3}, Point{3, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := LineIntersection(tt.p1, tt.p2, tt.p3, tt.p4); ok {
				t.Error("expected no intersection")
			}
		})
	}
}
