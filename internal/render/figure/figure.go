// Package figure draws a planned frame as a static gonum/plot figure.
package figure

import (
	"context"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/erhant/lighthouse-problem/internal/core/darkarea"
	"github.com/erhant/lighthouse-problem/internal/core/geometry"
	"github.com/erhant/lighthouse-problem/internal/core/illumination"
	"github.com/erhant/lighthouse-problem/internal/core/ring"
	"github.com/erhant/lighthouse-problem/internal/render/lighting"
)

// circleSegments is how many chords approximate a lighthouse halo.
const circleSegments = 64

var (
	haloColor      = color.RGBA{0x20, 0x20, 0x20, 0xff}
	centerColor    = color.RGBA{0xff, 0xa5, 0x00, 0xff}
	leftColor      = color.RGBA{0xe0, 0x3c, 0x3c, 0xff}
	rightColor     = color.RGBA{0x3c, 0x6c, 0xe0, 0xff}
	spokeColor     = color.RGBA{0x80, 0x80, 0x80, 0xff}
	validColor     = color.RGBA{0x2a, 0xa0, 0x48, 0xff}
	invalidColor   = color.RGBA{0xe0, 0x3c, 0x3c, 0xff}
	placementColor = color.RGBA{0x90, 0x90, 0x90, 0xff}
	chordColor     = color.RGBA{0x80, 0x30, 0xc0, 0xff}
	theoremColor   = color.RGBA{0x2a, 0xa0, 0x48, 0xff}
	estimateColor  = color.RGBA{0x3c, 0x6c, 0xe0, 0xff}
	errorColor     = color.RGBA{0xe0, 0x3c, 0x3c, 0xff}
)

// Build lays out the ring and the frame's rays on a new plot.
func Build(rg *ring.Ring, f lighting.Frame, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(plotter.NewGrid())

	lighthouses := rg.Lighthouses()
	for _, l := range lighthouses {
		halo, err := plotter.NewLine(circle(l.Center, l.Radius))
		if err != nil {
			return nil, fmt.Errorf("halo %d: %w", l.ID, err)
		}
		halo.LineStyle.Color = haloColor
		halo.LineStyle.Width = vg.Points(1)
		p.Add(halo)

		spokes, err := plotter.NewLine(plotter.XYs{xy(l.Left), xy(l.Center), xy(l.Right)})
		if err != nil {
			return nil, fmt.Errorf("spokes %d: %w", l.ID, err)
		}
		spokes.LineStyle.Color = spokeColor
		spokes.LineStyle.Width = vg.Points(0.5)
		p.Add(spokes)
	}

	var centers, lefts, rights plotter.XYs
	for _, l := range lighthouses {
		centers = append(centers, xy(l.Center))
		lefts = append(lefts, xy(l.Left))
		rights = append(rights, xy(l.Right))
	}
	for _, s := range []struct {
		name string
		pts  plotter.XYs
		clr  color.Color
	}{
		{"center", centers, centerColor},
		{"left", lefts, leftColor},
		{"right", rights, rightColor},
	} {
		if len(s.pts) == 0 {
			continue
		}
		sc, err := dots(s.pts, s.clr, draw.CircleGlyph{})
		if err != nil {
			return nil, fmt.Errorf("%s points: %w", s.name, err)
		}
		p.Add(sc)
		p.Legend.Add(s.name, sc)
	}

	if err := addRays(p, f); err != nil {
		return nil, err
	}
	if err := addChord(p, rg, f); err != nil {
		return nil, err
	}

	cfg := rg.Config()
	pc, err := dots(plotter.XYs{xy(cfg.Center)}, placementColor, draw.RingGlyph{})
	if err != nil {
		return nil, fmt.Errorf("placement center: %w", err)
	}
	p.Add(pc)

	// Square window, wide enough for rays that land past the ring.
	span := 1.5 * float64(cfg.Count)
	p.X.Min, p.X.Max = cfg.Center.X-span, cfg.Center.X+span
	p.Y.Min, p.Y.Max = cfg.Center.Y-span, cfg.Center.Y+span

	return p, nil
}

func addRays(p *plot.Plot, f lighting.Frame) error {
	var hits plotter.XYs
	validShown, invalidShown := false, false

	for _, res := range f.Results {
		for i, ray := range res.Rays {
			l, err := plotter.NewLine(plotter.XYs{xy(ray.From), xy(ray.To)})
			if err != nil {
				return fmt.Errorf("ray %d from %d: %w", i, res.Source, err)
			}
			l.LineStyle.Width = vg.Points(1.5)
			if ray.Valid {
				l.LineStyle.Color = validColor
				if ray.HasIntersection {
					hits = append(hits, xy(ray.Intersection))
				}
				if !validShown {
					p.Legend.Add("valid ray", l)
					validShown = true
				}
			} else {
				l.LineStyle.Color = invalidColor
				l.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
				if !invalidShown {
					p.Legend.Add("invalid ray", l)
					invalidShown = true
				}
			}
			p.Add(l)
		}
	}

	if len(hits) > 0 {
		sc, err := dots(hits, validColor, draw.CrossGlyph{})
		if err != nil {
			return fmt.Errorf("intersections: %w", err)
		}
		p.Add(sc)
	}
	return nil
}

// addChord draws the shortest dark-area chord. The legend carries the area.
func addChord(p *plot.Plot, rg *ring.Ring, f lighting.Frame) error {
	chordPts, radialPts, x, ok := chordLines(rg, f)
	if !ok {
		return nil
	}

	chord, err := plotter.NewLine(chordPts)
	if err != nil {
		return fmt.Errorf("dark chord: %w", err)
	}
	chord.LineStyle.Color = chordColor
	chord.LineStyle.Width = vg.Points(2)

	radial, err := plotter.NewLine(radialPts)
	if err != nil {
		return fmt.Errorf("dark radial: %w", err)
	}
	radial.LineStyle.Color = chordColor
	radial.LineStyle.Width = vg.Points(1)
	radial.LineStyle.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}

	p.Add(chord, radial)
	p.Legend.Add(fmt.Sprintf("chord %.4f, dark area %.4f", x, f.Dark.Area), chord)
	return nil
}

// chordLines returns the chord from the tangent point to the crossing on the
// target's radial line, the segment from the target center to that crossing,
// and the chord length. It reports false when the dark area is unbounded.
func chordLines(rg *ring.Ring, f lighting.Frame) (chord, radial plotter.XYs, x float64, ok bool) {
	ray, x, ok := darkarea.ChordRay(f.Dark.Rays)
	if !ok {
		return nil, nil, 0, false
	}
	tgt, ok := rg.Lighthouse(f.Dark.Target)
	if !ok {
		return nil, nil, 0, false
	}
	chord = plotter.XYs{xy(ray.To), xy(ray.Intersection)}
	radial = plotter.XYs{xy(tgt.Center), xy(ray.Intersection)}
	return chord, radial, x, true
}

// Sweep plots the computed dark area, the closed form and their absolute
// difference for every odd lighthouse count up to maxN.
func Sweep(ctx context.Context, maxN int, v illumination.Variation) (*plot.Plot, []darkarea.Comparison, error) {
	comps, err := darkarea.Sweep(ctx, maxN, v)
	if err != nil {
		return nil, nil, err
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Dark area up to N=%d (%s)", maxN, v)
	p.X.Label.Text = "Number of lighthouses"
	p.Y.Label.Text = "Total dark area"
	p.Add(plotter.NewGrid())

	estimate, theorem, errs := sweepSeries(comps)
	for _, s := range []struct {
		name string
		pts  plotter.XYs
		clr  color.Color
	}{
		{"theorem", theorem, theoremColor},
		{"computed", estimate, estimateColor},
		{"|error|", errs, errorColor},
	} {
		if len(s.pts) == 0 {
			continue
		}
		sc, err := dots(s.pts, s.clr, draw.CircleGlyph{})
		if err != nil {
			return nil, nil, fmt.Errorf("%s series: %w", s.name, err)
		}
		p.Add(sc)
		p.Legend.Add(s.name, sc)
	}
	p.Legend.Top = true
	p.Legend.Left = true

	return p, comps, nil
}

// sweepSeries splits the comparisons into plottable series. Unbounded values
// have no place on the axes and are left out.
func sweepSeries(comps []darkarea.Comparison) (estimate, theorem, errs plotter.XYs) {
	finite := func(f float64) bool { return !math.IsInf(f, 0) && !math.IsNaN(f) }
	for _, c := range comps {
		n := float64(c.N)
		if finite(c.Estimate) {
			estimate = append(estimate, plotter.XY{X: n, Y: c.Estimate})
		}
		if finite(c.Theoretical) {
			theorem = append(theorem, plotter.XY{X: n, Y: c.Theoretical})
		}
		if finite(c.Error) {
			errs = append(errs, plotter.XY{X: n, Y: c.Error})
		}
	}
	return estimate, theorem, errs
}

// Save writes the plot to path. The format follows the file extension
// (png, svg, pdf, ...). Width and height are in pixels at 96 dpi.
func Save(p *plot.Plot, width, height int, path string) error {
	w := vg.Length(width) * vg.Inch / 96
	h := vg.Length(height) * vg.Inch / 96
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save figure %s: %w", path, err)
	}
	return nil
}

func dots(pts plotter.XYs, clr color.Color, shape draw.GlyphDrawer) (*plotter.Scatter, error) {
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}
	sc.GlyphStyle.Color = clr
	sc.GlyphStyle.Radius = vg.Points(2.5)
	sc.GlyphStyle.Shape = shape
	return sc, nil
}

// circle samples a closed polyline around c.
func circle(c geometry.Point, r float64) plotter.XYs {
	pts := make(plotter.XYs, circleSegments+1)
	for i := range pts {
		t := 2 * math.Pi * float64(i) / circleSegments
		pts[i] = plotter.XY{X: c.X + r*math.Cos(t), Y: c.Y + r*math.Sin(t)}
	}
	return pts
}

func xy(p geometry.Point) plotter.XY {
	return plotter.XY{X: p.X, Y: p.Y}
}
