// Package ring places lighthouses evenly on a circle around a common
// placement center and derives each lighthouse's illumination boundary.
package ring

import (
	"errors"
	"fmt"
	"math"

	"github.com/erhant/lighthouse-problem/internal/core/geometry"
)

// ErrInvalidConfig is returned when a configuration cannot describe a ring.
var ErrInvalidConfig = errors.New("invalid ring configuration")

// Config fully determines a ring of lighthouses.
type Config struct {
	Count  int            // N, number of lighthouses; also the ring radius
	Radius float64        // r, shared lighthouse radius
	Center geometry.Point // placement center
}

// Validate rejects configurations with undefined angular spacing or
// non-positive lighthouse radius.
func (c Config) Validate() error {
	if c.Count < 2 {
		return fmt.Errorf("%w: need at least 2 lighthouses, got %d", ErrInvalidConfig, c.Count)
	}
	if !(c.Radius > 0) || math.IsInf(c.Radius, 0) {
		return fmt.Errorf("%w: radius must be positive, got %g", ErrInvalidConfig, c.Radius)
	}
	return nil
}

// Lighthouse is a single circle on the ring along with the points that
// bound its illumination sector.
type Lighthouse struct {
	ID              int
	Radius          float64
	PlacementCenter geometry.Point
	Center          geometry.Point
	Left            geometry.Point
	Mid             geometry.Point
	Right           geometry.Point
	HalfAngle       float64 // α/2 where α = 2π/N
}

// Ring holds the lighthouses of one configuration. Lighthouses are added
// in id order by MakeLighthouse; once all N exist the ring never changes.
type Ring struct {
	config      Config
	alpha       float64
	lighthouses []Lighthouse
}

// NewRing creates an empty ring for a validated configuration.
func NewRing(cfg Config) (*Ring, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Ring{
		config:      cfg,
		alpha:       2 * math.Pi / float64(cfg.Count),
		lighthouses: make([]Lighthouse, 0, cfg.Count),
	}, nil
}

// Build creates a ring and constructs all of its lighthouses.
func Build(cfg Config) (*Ring, error) {
	r, err := NewRing(cfg)
	if err != nil {
		return nil, err
	}
	for r.MakeLighthouse() {
	}
	return r, nil
}

// MakeLighthouse constructs the next lighthouse. It returns false once the
// ring is complete.
func (r *Ring) MakeLighthouse() bool {
	i := len(r.lighthouses)
	if i >= r.config.Count {
		return false
	}
	r.lighthouses = append(r.lighthouses, r.place(i))
	return true
}

// place computes lighthouse i. Centers are indexed clockwise from angle 0.
// Mid sits a fraction r/N of the way toward the placement center and the
// boundary points are Mid rotated about the lighthouse center by ±α/2; this
// is an approximation of the true sector boundary and is kept as is.
func (r *Ring) place(i int) Lighthouse {
	n := float64(r.config.Count)
	pc := r.config.Center

	start := geometry.Point{X: pc.X + n, Y: pc.Y}
	center := geometry.Rotate(start, pc, -float64(i)*r.alpha)
	mid := geometry.Lerp(center, pc, r.config.Radius/n)

	return Lighthouse{
		ID:              i,
		Radius:          r.config.Radius,
		PlacementCenter: pc,
		Center:          center,
		Left:            geometry.Rotate(mid, center, -r.alpha/2),
		Mid:             mid,
		Right:           geometry.Rotate(mid, center, r.alpha/2),
		HalfAngle:       r.alpha / 2,
	}
}

// Config returns the configuration the ring was built from.
func (r *Ring) Config() Config {
	return r.config
}

// Count returns N, the number of lighthouses the ring will hold.
func (r *Ring) Count() int {
	return r.config.Count
}

// Len returns how many lighthouses have been constructed so far.
func (r *Ring) Len() int {
	return len(r.lighthouses)
}

// Complete reports whether all N lighthouses exist.
func (r *Ring) Complete() bool {
	return len(r.lighthouses) == r.config.Count
}

// Alpha returns the angle between neighbouring lighthouses, 2π/N.
func (r *Ring) Alpha() float64 {
	return r.alpha
}

// Lighthouse returns the lighthouse with the given id if it has been built.
func (r *Ring) Lighthouse(id int) (Lighthouse, bool) {
	if id < 0 || id >= len(r.lighthouses) {
		return Lighthouse{}, false
	}
	return r.lighthouses[id], true
}

// Lighthouses returns a copy of the constructed lighthouses in id order.
func (r *Ring) Lighthouses() []Lighthouse {
	out := make([]Lighthouse, len(r.lighthouses))
	copy(out, r.lighthouses)
	return out
}
