// Package viewer runs the interactive lighthouse scene: keyboard input
// changes the scene parameters, the core recomputes the illumination and the
// frame is drawn through the render abstraction.
package viewer

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/erhant/lighthouse-problem/internal/core/illumination"
	"github.com/erhant/lighthouse-problem/internal/core/ring"
	"github.com/erhant/lighthouse-problem/internal/render"
	"github.com/erhant/lighthouse-problem/internal/render/lighting"
	"github.com/erhant/lighthouse-problem/internal/simulation"
)

// ErrQuit is returned from Update when the user asks to leave.
var ErrQuit = errors.New("viewer closed")

// Viewer holds the scene state and implements render.Game.
type Viewer struct {
	Config   simulation.Config
	Renderer render.Renderer
	InputMgr render.InputManager

	ring      *ring.Ring
	mode      lighting.Mode
	variation illumination.Variation
	frame     lighting.Frame
}

// New creates a viewer for the given scene. The config is copied; the
// viewer owns its parameters from here on.
func New(cfg simulation.Config, r render.Renderer, input render.InputManager) (*Viewer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	mode, err := lighting.ParseMode(cfg.Query.DrawMode)
	if err != nil {
		return nil, err
	}
	variation, _ := cfg.Variation()

	v := &Viewer{
		Config:    cfg,
		Renderer:  r,
		InputMgr:  input,
		mode:      mode,
		variation: variation,
	}
	if err := v.rebuild(); err != nil {
		return nil, err
	}
	return v, nil
}

// Frame returns the illumination currently on screen.
func (v *Viewer) Frame() lighting.Frame {
	return v.frame
}

// Ring returns the lighthouses currently on screen.
func (v *Viewer) Ring() *ring.Ring {
	return v.ring
}

// Update handles input and recomputes the scene when a parameter changed.
func (v *Viewer) Update() error {
	if v.InputMgr.IsKeyJustPressed(render.KeyEscape) {
		return ErrQuit
	}

	changed := false
	q := &v.Config.Query
	n := v.Config.Ring.Count

	switch {
	case v.InputMgr.IsKeyJustPressed(render.KeyUp):
		if n < simulation.MaxCount {
			v.Config.Ring.Count++
			changed = true
		}
	case v.InputMgr.IsKeyJustPressed(render.KeyDown):
		if n > simulation.MinCount {
			v.Config.Ring.Count--
			changed = true
		}
	case v.InputMgr.IsKeyJustPressed(render.KeyRight):
		q.Target++
		changed = true
	case v.InputMgr.IsKeyJustPressed(render.KeyLeft):
		q.Target--
		changed = true
	case v.InputMgr.IsKeyJustPressed(render.KeyW):
		q.Source++
		changed = true
	case v.InputMgr.IsKeyJustPressed(render.KeyS):
		q.Source--
		changed = true
	case v.InputMgr.IsKeyJustPressed(render.KeyV):
		if v.variation == illumination.Point {
			v.variation = illumination.Arc
		} else {
			v.variation = illumination.Point
		}
		q.Variation = v.variation.String()
		changed = true
	case v.InputMgr.IsKeyJustPressed(render.KeyM):
		v.mode = v.mode.Next()
		q.DrawMode = v.mode.String()
		changed = true
	}

	if !changed {
		return nil
	}
	return v.rebuild()
}

// rebuild constructs the ring for the current parameters and plans the
// frame. Lighthouses are made one at a time, as the ring allows.
func (v *Viewer) rebuild() error {
	v.Config.Normalize()

	rg, err := ring.NewRing(v.Config.RingConfig())
	if err != nil {
		return fmt.Errorf("rebuild ring: %w", err)
	}
	for rg.MakeLighthouse() {
	}

	engine := illumination.NewEngine(rg)
	frame, err := lighting.Plan(context.Background(), engine, lighting.Query{
		Mode:      v.mode,
		Variation: v.variation,
		Source:    v.Config.Query.Source,
		Target:    v.Config.Query.Target,
	})
	if err != nil {
		return fmt.Errorf("plan frame: %w", err)
	}

	v.ring = rg
	v.frame = frame

	if v.mode == lighting.ModeFind && !frame.Found {
		log.Println(frame.Message)
	}
	return nil
}

// Layout keeps the logical screen the size of the window.
func (v *Viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// StatusLine summarises the current parameters.
func (v *Viewer) StatusLine() string {
	return fmt.Sprintf("N=%d  variation=%s  mode=%s  source=%d  target=%d",
		v.Config.Ring.Count, v.variation, v.mode, v.Config.Query.Source, v.Config.Query.Target)
}
