// Package darkarea estimates the region behind a lighthouse that stays dark
// when it is lit from both directions around the ring.
package darkarea

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/erhant/lighthouse-problem/internal/core/geometry"
	"github.com/erhant/lighthouse-problem/internal/core/illumination"
	"github.com/erhant/lighthouse-problem/internal/core/ring"
)

// Result describes the symmetric illumination found for one target.
type Result struct {
	Target  int
	Offset  int    // k, the smallest offset with a valid ray; 0 when none
	Sources [2]int // target+k and target-k (mod N)
	Rays    []illumination.Ray
	Chord   float64 // x, shortest tangent-to-intersection distance
	Area    float64 // +Inf when nothing illuminates the target
}

// Bounded reports whether a finite dark area was found.
func (r Result) Bounded() bool {
	return !math.IsInf(r.Area, 1)
}

// Area computes the dark area for the rays lighting a target on a ring of n
// lighthouses with radius r. With x the shortest tangent-to-intersection
// distance among valid rays, each of the n caps contributes
// x·r - r²·atan(x/r). Without any valid ray the area is +Inf.
func Area(rays []illumination.Ray, n int, r float64) float64 {
	x, ok := Chord(rays)
	if !ok {
		return math.Inf(1)
	}
	return float64(n) * (x*r - r*r*math.Atan(x/r))
}

// Chord returns the shortest distance from a valid ray's tangent point to
// its intersection with the target's radial line.
func Chord(rays []illumination.Ray) (float64, bool) {
	_, x, ok := ChordRay(rays)
	return x, ok
}

// ChordRay returns the valid ray that realises Chord, along with its length.
func ChordRay(rays []illumination.Ray) (illumination.Ray, float64, bool) {
	var candidates []illumination.Ray
	var lengths []float64
	for _, ray := range rays {
		if !ray.Valid || !ray.HasIntersection {
			continue
		}
		candidates = append(candidates, ray)
		lengths = append(lengths, geometry.Distance(ray.To, ray.Intersection))
	}
	if len(lengths) == 0 {
		return illumination.Ray{}, 0, false
	}
	i := floats.MinIdx(lengths)
	return candidates[i], lengths[i], true
}

// Estimate scans outward from the target, trying the pair of lighthouses at
// offsets +k and -k for k = 1…⌈N/2⌉, and computes the dark area from the
// first pair that yields a valid ray.
func Estimate(e *illumination.Engine, target int, v illumination.Variation) (Result, error) {
	rg := e.Ring()
	n := rg.Count()
	res := Result{Target: target, Area: math.Inf(1)}

	for k := 1; k <= (n+1)/2; k++ {
		up := (target + k) % n
		down := ((target-k)%n + n) % n

		rays, err := e.TryIlluminate(up, target, v)
		if err != nil {
			return Result{}, fmt.Errorf("dark area for %d: %w", target, err)
		}
		if down != up {
			more, err := e.TryIlluminate(down, target, v)
			if err != nil {
				return Result{}, fmt.Errorf("dark area for %d: %w", target, err)
			}
			rays = append(rays, more...)
		}

		if !illumination.AnyValid(rays) {
			continue
		}

		res.Offset = k
		res.Sources = [2]int{up, down}
		res.Rays = rays
		res.Chord, _ = Chord(rays)
		res.Area = Area(rays, n, rg.Config().Radius)
		return res, nil
	}

	return res, nil
}

// Theoretical returns the closed-form dark area for n unit lighthouses lit
// from point sources: zero for a single lighthouse, unbounded for an even
// count.
func Theoretical(n int) float64 {
	switch {
	case n <= 1:
		return 0
	case n%2 == 0:
		return math.Inf(1)
	}

	nf := float64(n)
	cos2 := math.Pow(math.Cos(math.Pi/(2*nf)), 2)
	sin := math.Sin(math.Pi / nf)

	x := (math.Sqrt(4*nf*nf*cos2-1) + 2*nf*nf*sin*cos2) / (nf*nf*sin*sin - 1)
	return nf * (x - math.Atan(x))
}

// Comparison holds the computed and closed-form dark areas for n unit
// lighthouses, lit at lighthouse 0.
type Comparison struct {
	N           int
	Estimate    float64
	Theoretical float64
	Error       float64 // |Estimate - Theoretical|
}

// Compare computes the dark area for a ring of n unit lighthouses and sets
// it against Theoretical(n). A single lighthouse casts no dark area.
func Compare(n int, v illumination.Variation) (Comparison, error) {
	c := Comparison{N: n, Theoretical: Theoretical(n)}
	if n == 1 {
		return c, nil
	}

	rg, err := ring.Build(ring.Config{Count: n, Radius: 1})
	if err != nil {
		return Comparison{}, fmt.Errorf("compare N=%d: %w", n, err)
	}
	res, err := Estimate(illumination.NewEngine(rg), 0, v)
	if err != nil {
		return Comparison{}, fmt.Errorf("compare N=%d: %w", n, err)
	}

	c.Estimate = res.Area
	c.Error = math.Abs(c.Estimate - c.Theoretical)
	return c, nil
}

// Sweep compares every odd lighthouse count from 1 to maxN. Even counts are
// skipped since both sides are unbounded there. Each count builds its own
// ring, so the comparisons run concurrently; results are in increasing N.
func Sweep(ctx context.Context, maxN int, v illumination.Variation) ([]Comparison, error) {
	if maxN < 1 {
		return nil, fmt.Errorf("%w: sweep needs at least 1 lighthouse, got %d", ring.ErrInvalidConfig, maxN)
	}

	results := make([]Comparison, (maxN+1)/2)
	g, ctx := errgroup.WithContext(ctx)
	for i := range results {
		i := i
		n := 2*i + 1
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := Compare(n, v)
			if err != nil {
				return err
			}
			results[i] = c
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
