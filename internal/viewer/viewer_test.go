package viewer

import (
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/erhant/lighthouse-problem/internal/core/geometry"
	"github.com/erhant/lighthouse-problem/internal/core/illumination"
	"github.com/erhant/lighthouse-problem/internal/render"
	"github.com/erhant/lighthouse-problem/internal/render/lighting"
	"github.com/erhant/lighthouse-problem/internal/simulation"
)

type line struct {
	x0, y0, x1, y1 float32
	clr            color.Color
}

type fakeRenderer struct {
	filled int
	halos  []color.Color
	lines  []line
	texts  []string
	inks   []color.Color
}

func (r *fakeRenderer) FillCircle(dst render.Image, x, y, radius float32, clr color.Color) {
	r.filled++
}

func (r *fakeRenderer) StrokeCircle(dst render.Image, x, y, radius float32, strokeWidth float32, clr color.Color) {
	r.halos = append(r.halos, clr)
}

func (r *fakeRenderer) StrokeLine(dst render.Image, x0, y0, x1, y1 float32, strokeWidth float32, clr color.Color) {
	r.lines = append(r.lines, line{x0, y0, x1, y1, clr})
}

func (r *fakeRenderer) DrawText(dst render.Image, text string, x, y int, clr color.Color, scale float64) {
	r.texts = append(r.texts, text)
	r.inks = append(r.inks, clr)
}

func (r *fakeRenderer) MeasureText(text string, scale float64) (int, int) {
	return len(text) * 6, 16
}

type fakeImage struct {
	w, h int
	fill color.Color
}

func (i *fakeImage) Size() (int, int)     { return i.w, i.h }
func (i *fakeImage) Fill(clr color.Color) { i.fill = clr }

// fakeInput reports each queued key as just pressed for exactly one call to
// Update.
type fakeInput struct {
	pressed map[render.Key]bool
}

func (in *fakeInput) press(k render.Key) {
	in.pressed = map[render.Key]bool{k: true}
}

func (in *fakeInput) IsKeyJustPressed(key render.Key) bool { return in.pressed[key] }

func newViewer(t *testing.T) (*Viewer, *fakeRenderer, *fakeInput) {
	t.Helper()
	r := &fakeRenderer{}
	in := &fakeInput{}
	v, err := New(*simulation.DefaultConfig(), r, in)
	if err != nil {
		t.Fatalf("Failed to create viewer: %v", err)
	}
	return v, r, in
}

func step(t *testing.T, v *Viewer, in *fakeInput, k render.Key) {
	t.Helper()
	in.press(k)
	if err := v.Update(); err != nil {
		t.Fatalf("Update after key %d failed: %v", k, err)
	}
	in.pressed = nil
}

func TestNewViewerPlansDefaultScene(t *testing.T) {
	v, _, _ := newViewer(t)

	if !v.Ring().Complete() || v.Ring().Len() != 5 {
		t.Fatalf("Expected a complete ring of 5, got %d", v.Ring().Len())
	}
	f := v.Frame()
	if !f.Found || f.Query.Source != 2 {
		t.Errorf("Expected lighthouse 2 to illuminate 0, got %+v", f.Query)
	}
}

func TestNewViewerRejectsBadConfig(t *testing.T) {
	cfg := *simulation.DefaultConfig()
	cfg.Query.DrawMode = "sweep"
	if _, err := New(cfg, &fakeRenderer{}, &fakeInput{}); err == nil {
		t.Error("Expected an error for an unknown draw mode")
	}

	cfg = *simulation.DefaultConfig()
	cfg.Ring.Count = 1
	if _, err := New(cfg, &fakeRenderer{}, &fakeInput{}); err == nil {
		t.Error("Expected an error for a single lighthouse")
	}
}

func TestUpdateWithoutInput(t *testing.T) {
	v, _, _ := newViewer(t)
	before := v.Ring()
	if err := v.Update(); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if v.Ring() != before {
		t.Error("Ring should not be rebuilt when nothing changed")
	}
}

func TestUpdateChangesCount(t *testing.T) {
	v, _, in := newViewer(t)

	step(t, v, in, render.KeyUp)
	if v.Config.Ring.Count != 6 || v.Ring().Len() != 6 {
		t.Fatalf("Expected 6 lighthouses, got %d", v.Ring().Len())
	}
	if v.Frame().Found {
		t.Error("Expected no point source for an even count")
	}

	for i := 0; i < 10; i++ {
		step(t, v, in, render.KeyDown)
	}
	if v.Config.Ring.Count != simulation.MinCount {
		t.Errorf("Expected count to stop at %d, got %d", simulation.MinCount, v.Config.Ring.Count)
	}

	v.Config.Ring.Count = simulation.MaxCount
	step(t, v, in, render.KeyUp)
	if v.Config.Ring.Count != simulation.MaxCount {
		t.Errorf("Expected count to stop at %d, got %d", simulation.MaxCount, v.Config.Ring.Count)
	}
}

func TestUpdateWrapsTargetAndSource(t *testing.T) {
	v, _, in := newViewer(t)

	step(t, v, in, render.KeyLeft)
	if v.Config.Query.Target != 4 {
		t.Errorf("Expected target to wrap to 4, got %d", v.Config.Query.Target)
	}
	step(t, v, in, render.KeyRight)
	if v.Config.Query.Target != 0 {
		t.Errorf("Expected target 0, got %d", v.Config.Query.Target)
	}

	step(t, v, in, render.KeyW)
	step(t, v, in, render.KeyW)
	if v.Config.Query.Source != 0 {
		t.Errorf("Expected source to wrap to 0, got %d", v.Config.Query.Source)
	}
	step(t, v, in, render.KeyS)
	if v.Config.Query.Source != 4 {
		t.Errorf("Expected source 4, got %d", v.Config.Query.Source)
	}
}

func TestUpdateTogglesVariationAndMode(t *testing.T) {
	v, _, in := newViewer(t)

	step(t, v, in, render.KeyV)
	if v.Config.Query.Variation != illumination.Arc.String() {
		t.Errorf("Expected arc, got %s", v.Config.Query.Variation)
	}
	if got := len(v.Frame().Results[0].Rays); got != 2*2 {
		t.Errorf("Expected 4 arc rays from the found source, got %d", got)
	}
	step(t, v, in, render.KeyV)
	if v.Config.Query.Variation != illumination.Point.String() {
		t.Errorf("Expected point, got %s", v.Config.Query.Variation)
	}

	step(t, v, in, render.KeyM)
	if v.Frame().Query.Mode != lighting.ModeChoose {
		t.Errorf("Expected choose mode, got %v", v.Frame().Query.Mode)
	}
	if v.Frame().Results[0].Source != 3 {
		t.Errorf("Expected the configured source 3, got %d", v.Frame().Results[0].Source)
	}

	step(t, v, in, render.KeyM)
	if got := len(v.Frame().Results); got != 4 {
		t.Errorf("Expected 4 results in all mode, got %d", got)
	}

	step(t, v, in, render.KeyM)
	if v.Frame().Query.Mode != lighting.ModeNone || len(v.Frame().Results) != 0 {
		t.Errorf("Expected an empty frame in none mode, got %+v", v.Frame())
	}
}

func TestUpdateEscapeQuits(t *testing.T) {
	v, _, in := newViewer(t)
	in.press(render.KeyEscape)
	if err := v.Update(); !errors.Is(err, ErrQuit) {
		t.Errorf("Expected ErrQuit, got %v", err)
	}
}

func TestDraw(t *testing.T) {
	v, r, _ := newViewer(t)
	screen := &fakeImage{w: 600, h: 600}

	v.Draw(screen)

	if screen.fill != backgroundColor {
		t.Error("Expected the background to be filled")
	}
	if len(r.halos) != 5 {
		t.Errorf("Expected 5 halos, got %d", len(r.halos))
	}
	for i, clr := range r.halos {
		if clr != haloColor {
			t.Errorf("Halo %d should not be highlighted for a point query", i)
		}
	}
	// Three dots per lighthouse plus the placement center.
	if r.filled != 5*3+1 {
		t.Errorf("Expected 16 filled circles, got %d", r.filled)
	}
	// Two spokes per lighthouse plus the two rays of the found source.
	if len(r.lines) != 5*2+2 {
		t.Fatalf("Expected 12 lines, got %d", len(r.lines))
	}
	// From lighthouse 2 only the second tangent lands behind 0.
	if r.lines[10].clr != invalidColor || r.lines[11].clr != validColor {
		t.Errorf("Expected an invalid then a valid ray, got %v and %v", r.lines[10].clr, r.lines[11].clr)
	}

	joined := strings.Join(r.texts, "\n")
	if !strings.Contains(joined, "N=5") || !strings.Contains(joined, "Dark area: 16.53") {
		t.Errorf("Unexpected overlay text:\n%s", joined)
	}
	for i, clr := range r.inks {
		if clr != textColor {
			t.Errorf("Line %q: expected the overlay text color, got %v", r.texts[i], clr)
		}
	}
}

func TestDrawInvalidRays(t *testing.T) {
	v, r, in := newViewer(t)
	step(t, v, in, render.KeyM) // choose, source 3 to target 0

	v.Draw(&fakeImage{w: 600, h: 600})

	rays := r.lines[10:]
	if len(rays) != 2 {
		t.Fatalf("Expected 2 rays, got %d", len(rays))
	}
	if rays[0].clr != validColor || rays[1].clr != invalidColor {
		t.Errorf("Expected one valid and one invalid ray, got %v and %v", rays[0].clr, rays[1].clr)
	}
}

func TestDrawHighlightsArcBlockers(t *testing.T) {
	v, r, in := newViewer(t)
	step(t, v, in, render.KeyV) // arc
	step(t, v, in, render.KeyM) // choose, source 3 to target 0

	v.Draw(&fakeImage{w: 600, h: 600})

	// The shorter arc from 3 to 0 passes only 4.
	for id, clr := range r.halos {
		want := color.Color(haloColor)
		if id == 4 {
			want = blockerColor
		}
		if clr != want {
			t.Errorf("Halo %d: expected %v, got %v", id, want, clr)
		}
	}
	// Four arc rays after the spokes.
	if got := len(r.lines) - 10; got != 4 {
		t.Errorf("Expected 4 rays, got %d", got)
	}
}

func TestCamera(t *testing.T) {
	cam := NewCamera(900, 600, 5, geometry.Point{X: 1, Y: -1})
	if cam.Scale != 60 {
		t.Errorf("Expected scale 60, got %v", cam.Scale)
	}
	x, y := cam.ToScreen(geometry.Point{X: 1, Y: -1})
	if x != 450 || y != 300 {
		t.Errorf("Expected the placement center at (450, 300), got (%v, %v)", x, y)
	}
	x, y = cam.ToScreen(geometry.Point{X: 2, Y: 0})
	if x != 510 || y != 360 {
		t.Errorf("Expected (510, 360), got (%v, %v)", x, y)
	}
}

func TestLayout(t *testing.T) {
	v, _, _ := newViewer(t)
	if w, h := v.Layout(800, 600); w != 800 || h != 600 {
		t.Errorf("Expected 800x600, got %dx%d", w, h)
	}
}
