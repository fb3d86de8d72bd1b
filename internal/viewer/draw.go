package viewer

import (
	"image/color"
	"math"

	"github.com/erhant/lighthouse-problem/internal/core/arc"
	"github.com/erhant/lighthouse-problem/internal/core/geometry"
	"github.com/erhant/lighthouse-problem/internal/core/illumination"
	"github.com/erhant/lighthouse-problem/internal/render"
)

// Scene colors
var (
	backgroundColor = color.RGBA{0x1c, 0x1e, 0x26, 0xff}
	haloColor       = color.RGBA{0xd8, 0xd8, 0xd8, 0xff}
	blockerColor    = color.RGBA{0xf0, 0xd0, 0x40, 0xff}
	centerColor     = color.RGBA{0xff, 0xa5, 0x00, 0xff}
	leftColor       = color.RGBA{0xe0, 0x3c, 0x3c, 0xff}
	rightColor      = color.RGBA{0x3c, 0x6c, 0xe0, 0xff}
	spokeColor      = color.RGBA{0x80, 0x80, 0x80, 0xff}
	validColor      = color.RGBA{0x3c, 0xc8, 0x5a, 0xff}
	invalidColor    = color.RGBA{0xe0, 0x3c, 0x3c, 0xff}
	placementColor  = color.RGBA{0x90, 0x90, 0x90, 0xff}
	textColor       = color.White
)

// Camera maps ring coordinates onto the screen. The placement center sits in
// the middle of the screen and 3N world units span the longer side.
type Camera struct {
	OriginX, OriginY float64 // screen position of the placement center
	Scale            float64 // pixels per world unit
	Center           geometry.Point
}

// NewCamera fits a ring of n lighthouses around center into a w×h screen.
func NewCamera(w, h, n int, center geometry.Point) Camera {
	scale := math.Max(float64(w)/(3*float64(n)), float64(h)/(3*float64(n)))
	return Camera{
		OriginX: float64(w) / 2,
		OriginY: float64(h) / 2,
		Scale:   scale,
		Center:  center,
	}
}

// ToScreen converts a world point to screen coordinates.
func (c Camera) ToScreen(p geometry.Point) (float32, float32) {
	return float32(c.OriginX + (p.X-c.Center.X)*c.Scale), float32(c.OriginY + (p.Y-c.Center.Y)*c.Scale)
}

// Draw renders the scene to the screen.
func (v *Viewer) Draw(screen render.Image) {
	w, h := screen.Size()
	screen.Fill(backgroundColor)

	cam := NewCamera(w, h, v.Config.Ring.Count, v.Config.RingConfig().Center)
	v.drawLighthouses(screen, cam)
	v.drawIllumination(screen, cam)
	v.drawPlacementCenter(screen, cam, w)
	v.drawUI(screen)
}

// blockers returns the lighthouses that can shadow a single arc query.
func (v *Viewer) blockers() map[int]bool {
	if v.variation != illumination.Arc || len(v.frame.Results) != 1 {
		return nil
	}
	res := v.frame.Results[0]
	ids := make(map[int]bool)
	for _, id := range arc.ShortestBetween(res.Source, res.Target, v.ring.Count()) {
		ids[id] = true
	}
	return ids
}

func (v *Viewer) drawLighthouses(screen render.Image, cam Camera) {
	stroke := float32(2)
	blocking := v.blockers()
	for _, l := range v.ring.Lighthouses() {
		cx, cy := cam.ToScreen(l.Center)
		lx, ly := cam.ToScreen(l.Left)
		rx, ry := cam.ToScreen(l.Right)
		dot := float32(l.Radius*cam.Scale) / 10

		// Halo
		halo := haloColor
		if blocking[l.ID] {
			halo = blockerColor
		}
		v.Renderer.StrokeCircle(screen, cx, cy, float32(l.Radius*cam.Scale), stroke, halo)

		// Lines to both illumination points
		v.Renderer.StrokeLine(screen, cx, cy, lx, ly, 1, spokeColor)
		v.Renderer.StrokeLine(screen, cx, cy, rx, ry, 1, spokeColor)

		v.Renderer.FillCircle(screen, cx, cy, dot, centerColor)
		v.Renderer.FillCircle(screen, lx, ly, dot, leftColor)
		v.Renderer.FillCircle(screen, rx, ry, dot, rightColor)
	}
}

func (v *Viewer) drawIllumination(screen render.Image, cam Camera) {
	for _, res := range v.frame.Results {
		for _, ray := range res.Rays {
			clr := invalidColor
			if ray.Valid {
				clr = validColor
			}
			x0, y0 := cam.ToScreen(ray.From)
			x1, y1 := cam.ToScreen(ray.To)
			v.Renderer.StrokeLine(screen, x0, y0, x1, y1, 2, clr)
		}
	}
}

func (v *Viewer) drawPlacementCenter(screen render.Image, cam Camera, w int) {
	x, y := cam.ToScreen(cam.Center)
	v.Renderer.FillCircle(screen, x, y, float32(w)*1e-2, placementColor)
}

func (v *Viewer) drawUI(screen render.Image) {
	lines := []string{
		v.StatusLine(),
		v.frame.Message,
		v.frame.DarkAreaLabel(),
		"Up/Down: N  Left/Right: target  W/S: source  V: variation  M: mode  Esc: quit",
	}

	y := 8
	for _, line := range lines {
		if line == "" {
			continue
		}
		v.Renderer.DrawText(screen, line, 8, y, textColor, 1.0)
		_, lh := v.Renderer.MeasureText(line, 1.0)
		y += lh + 2
	}
}
