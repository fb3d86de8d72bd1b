package illumination

import (
	"errors"
	"fmt"
	"strings"

	"github.com/erhant/lighthouse-problem/internal/core/geometry"
)

var (
	// ErrIncompleteRing is returned when an arc-variation query is made
	// before every lighthouse of the ring has been constructed.
	ErrIncompleteRing = errors.New("ring is not fully constructed")

	// ErrUnknownLighthouse is returned for ids outside [0, N) or ids whose
	// lighthouse has not been built yet.
	ErrUnknownLighthouse = errors.New("unknown lighthouse")

	// ErrUnknownVariation is returned for variations other than Point and Arc.
	ErrUnknownVariation = errors.New("unknown variation")
)

// Variation selects where illumination rays originate.
type Variation int

const (
	// Point casts rays from the source lighthouse center.
	Point Variation = 1
	// Arc casts rays from the two boundary points of the source's sector and
	// checks them against the lighthouses in between.
	Arc Variation = 2
)

// String returns the variation name used in configuration files.
func (v Variation) String() string {
	switch v {
	case Point:
		return "point"
	case Arc:
		return "arc"
	default:
		return fmt.Sprintf("variation(%d)", int(v))
	}
}

// ParseVariation converts a configuration name into a Variation.
func ParseVariation(s string) (Variation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "point", "1":
		return Point, nil
	case "arc", "2":
		return Arc, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownVariation, s)
	}
}

// Ray is the result of one illumination attempt.
type Ray struct {
	From  geometry.Point // ray origin, a lighthouse center or boundary point
	To    geometry.Point // tangent point on the target
	Valid bool

	// Intersection is where the ray, extended, crosses the radial line from
	// the placement center through the target center. It is meaningful only
	// when HasIntersection is set.
	Intersection    geometry.Point
	HasIntersection bool
}

// Result groups the rays cast from one source toward a target.
type Result struct {
	Source int
	Target int
	Rays   []Ray
}

// AnyValid reports whether at least one ray reaches the target.
func AnyValid(rays []Ray) bool {
	for _, ray := range rays {
		if ray.Valid {
			return true
		}
	}
	return false
}
