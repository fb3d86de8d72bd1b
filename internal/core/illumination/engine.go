// Package illumination decides whether light from one lighthouse can reach
// the region behind another.
package illumination

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/erhant/lighthouse-problem/internal/core/arc"
	"github.com/erhant/lighthouse-problem/internal/core/geometry"
	"github.com/erhant/lighthouse-problem/internal/core/ring"
)

// Engine answers visibility queries against a single ring. It only reads
// the ring, so one Engine may serve concurrent queries once the ring is
// complete.
type Engine struct {
	ring *ring.Ring
}

// NewEngine creates an engine over the given ring.
func NewEngine(r *ring.Ring) *Engine {
	return &Engine{ring: r}
}

// Ring returns the ring the engine queries.
func (e *Engine) Ring() *ring.Ring {
	return e.ring
}

// TryIlluminate casts rays from source toward target.
//
// The Point variation yields two rays from the source center. The Arc
// variation yields four rays, the left boundary pair followed by the right
// boundary pair, and requires a complete ring. Within each pair the +θ
// tangent comes first. Degenerate geometry produces invalid rays, never an
// error.
func (e *Engine) TryIlluminate(source, target int, v Variation) ([]Ray, error) {
	if err := e.checkID(source); err != nil {
		return nil, err
	}
	if err := e.checkID(target); err != nil {
		return nil, err
	}
	if v != Point && v != Arc {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariation, int(v))
	}
	// An unbuilt id on a partial ring is still a precondition failure for
	// arc queries: completing the ring makes the query answerable.
	if v == Arc && !e.ring.Complete() {
		return nil, fmt.Errorf("arc variation from %d to %d: %w (%d of %d built)",
			source, target, ErrIncompleteRing, e.ring.Len(), e.ring.Count())
	}

	src, err := e.lighthouse(source)
	if err != nil {
		return nil, err
	}
	tgt, err := e.lighthouse(target)
	if err != nil {
		return nil, err
	}

	if v == Arc {
		return e.arcRays(src, tgt), nil
	}
	return e.pointRays(src, tgt), nil
}

// FindFirstIlluminatingID scans sources target+1, target+2, ... (mod N) for
// at most ⌈N/2⌉ steps and returns the first one with a valid ray.
// The boolean is false when no source within that half of the ring works.
func (e *Engine) FindFirstIlluminatingID(target int, v Variation) (int, bool, error) {
	if _, err := e.lighthouse(target); err != nil {
		return 0, false, err
	}

	n := e.ring.Count()
	steps := (n + 1) / 2
	for k := 1; k <= steps; k++ {
		source := (target + k) % n
		rays, err := e.TryIlluminate(source, target, v)
		if err != nil {
			return 0, false, err
		}
		if AnyValid(rays) {
			return source, true, nil
		}
	}
	return 0, false, nil
}

// Illuminate tries every other lighthouse against the target and returns
// the results in source order (target+1, target+2, ...). Queries are
// independent, so they run concurrently.
func (e *Engine) Illuminate(ctx context.Context, target int, v Variation) ([]Result, error) {
	if _, err := e.lighthouse(target); err != nil {
		return nil, err
	}

	n := e.ring.Count()
	results := make([]Result, n-1)

	g, ctx := errgroup.WithContext(ctx)
	for i := 1; i < n; i++ {
		i := i
		source := (target + i) % n
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rays, err := e.TryIlluminate(source, target, v)
			if err != nil {
				return err
			}
			results[i-1] = Result{Source: source, Target: target, Rays: rays}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (e *Engine) checkID(id int) error {
	if id < 0 || id >= e.ring.Count() {
		return fmt.Errorf("%w: id %d outside [0, %d)", ErrUnknownLighthouse, id, e.ring.Count())
	}
	return nil
}

func (e *Engine) lighthouse(id int) (ring.Lighthouse, error) {
	if err := e.checkID(id); err != nil {
		return ring.Lighthouse{}, err
	}
	l, ok := e.ring.Lighthouse(id)
	if !ok {
		return ring.Lighthouse{}, fmt.Errorf("%w: id %d not built yet", ErrUnknownLighthouse, id)
	}
	return l, nil
}

// pointRays casts the tangent pair from the source center.
// A ray is valid when it lands behind the target and stays within the
// source's own angular sector.
func (e *Engine) pointRays(src, tgt ring.Lighthouse) []Ray {
	rays := castTangents(src.Center, tgt)
	for i := range rays {
		if !rays[i].Valid {
			continue
		}
		rays[i].Valid = e.behindTarget(rays[i], tgt) && withinSector(src, rays[i].To)
	}
	return rays
}

// arcRays casts tangent pairs from the left then right boundary points.
// On top of landing behind the target, a ray must leave the source body
// outward and clear every lighthouse on the shorter arc in between.
func (e *Engine) arcRays(src, tgt ring.Lighthouse) []Ray {
	between := arc.ShortestBetween(src.ID, tgt.ID, e.ring.Count())

	rays := make([]Ray, 0, 4)
	for _, origin := range []geometry.Point{src.Left, src.Right} {
		pair := castTangents(origin, tgt)
		for i := range pair {
			if !pair[i].Valid {
				continue
			}
			pair[i].Valid = e.behindTarget(pair[i], tgt) &&
				leavesOutward(src, pair[i]) &&
				!e.blocked(pair[i], between)
		}
		rays = append(rays, pair...)
	}
	return rays
}

// castTangents builds the two candidate rays from origin to the target's
// tangent points. Valid is provisionally true and is cleared when no tangent
// exists; the caller applies the real validity rules.
func castTangents(origin geometry.Point, tgt ring.Lighthouse) []Ray {
	plus, minus, err := geometry.TangentPoints(origin, tgt.Center, tgt.Radius)
	if err != nil {
		return []Ray{{From: origin, To: origin}, {From: origin, To: origin}}
	}

	rays := make([]Ray, 0, 2)
	for _, to := range []geometry.Point{plus, minus} {
		ray := Ray{From: origin, To: to, Valid: true}
		ray.Intersection, ray.HasIntersection = geometry.LineIntersection(
			tgt.PlacementCenter, tgt.Center, origin, to)
		rays = append(rays, ray)
	}
	return rays
}

// behindTarget checks that the ray crosses the target's radial line beyond
// the target's far edge, and on the target's side of the placement center.
func (e *Engine) behindTarget(ray Ray, tgt ring.Lighthouse) bool {
	if !ray.HasIntersection {
		return false
	}
	fromCenter := geometry.Distance(tgt.PlacementCenter, ray.Intersection)
	farEdge := float64(e.ring.Count()) + tgt.Radius
	return fromCenter > farEdge && fromCenter > geometry.Distance(tgt.Center, ray.Intersection)
}

// withinSector checks that the ray from the source center deviates from the
// inward radial direction by at most α/2.
func withinSector(src ring.Lighthouse, to geometry.Point) bool {
	deviation := geometry.NormalizeSigned(geometry.Angle(src.PlacementCenter, src.Center, to))
	return math.Abs(deviation) <= src.HalfAngle
}

// leavesOutward checks that, at the boundary point, the ray turns at least a
// right angle away from the source center.
func leavesOutward(src ring.Lighthouse, ray Ray) bool {
	turn := geometry.NormalizeSigned(geometry.Angle(src.Center, ray.From, ray.To))
	return math.Abs(turn) >= math.Pi/2
}

// blocked reports whether any lighthouse in between cuts the ray's line.
func (e *Engine) blocked(ray Ray, between []int) bool {
	for _, id := range between {
		l, ok := e.ring.Lighthouse(id)
		if !ok {
			continue
		}
		if geometry.CircleLineCollision(l.Center, l.Radius, ray.From, ray.To) {
			return true
		}
	}
	return false
}
