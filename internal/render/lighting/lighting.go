// Package lighting decides which illumination rays a frame shows.
// It sits between the scene configuration and the renderers: the viewer and
// the plot exporter both draw whatever a Frame holds.
package lighting

import (
	"context"
	"fmt"
	"strings"

	"github.com/erhant/lighthouse-problem/internal/core/darkarea"
	"github.com/erhant/lighthouse-problem/internal/core/illumination"
)

// Mode selects what the frame illuminates
type Mode int

const (
	ModeNone   Mode = iota // show nothing
	ModeFind               // find the first source that reaches the target
	ModeChoose             // draw from the chosen source to the target
	ModeAll                // draw from every source to the target
)

var modeNames = []string{"none", "find", "choose", "all"}

// String returns the mode name used in configuration files.
func (m Mode) String() string {
	if m < 0 || int(m) >= len(modeNames) {
		return fmt.Sprintf("mode(%d)", int(m))
	}
	return modeNames[m]
}

// Next cycles to the following mode, wrapping after ModeAll.
func (m Mode) Next() Mode {
	return (m + 1) % Mode(len(modeNames))
}

// ParseMode converts a configuration name into a Mode.
func ParseMode(s string) (Mode, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range modeNames {
		if n == name {
			return Mode(i), nil
		}
	}
	return ModeNone, fmt.Errorf("unknown draw mode %q", s)
}

// Query is one frame's worth of parameters
type Query struct {
	Mode      Mode
	Variation illumination.Variation
	Source    int
	Target    int
}

// Frame holds everything a renderer needs to draw the illumination state
type Frame struct {
	Query   Query
	Results []illumination.Result // rays to draw, grouped by source
	Found   bool                  // ModeFind located a source
	Dark    darkarea.Result       // dark area behind the target
	Message string                // status line for the user
}

// NoSourceMessage is shown when ModeFind cannot reach the target.
const NoSourceMessage = "No lighthouse can illuminate this target."

// Plan runs the query against the engine and collects the rays to draw.
func Plan(ctx context.Context, e *illumination.Engine, q Query) (Frame, error) {
	frame := Frame{Query: q}

	switch q.Mode {
	case ModeNone:
		frame.Message = "Nothing to show"
		return frame, nil

	case ModeFind:
		source, ok, err := e.FindFirstIlluminatingID(q.Target, q.Variation)
		if err != nil {
			return Frame{}, fmt.Errorf("find source for %d: %w", q.Target, err)
		}
		if !ok {
			frame.Message = NoSourceMessage
			break
		}
		rays, err := e.TryIlluminate(source, q.Target, q.Variation)
		if err != nil {
			return Frame{}, fmt.Errorf("illuminate %d from %d: %w", q.Target, source, err)
		}
		frame.Found = true
		frame.Query.Source = source
		frame.Results = []illumination.Result{{Source: source, Target: q.Target, Rays: rays}}
		frame.Message = fmt.Sprintf("Lighthouse %d illuminates %d", source, q.Target)

	case ModeChoose:
		rays, err := e.TryIlluminate(q.Source, q.Target, q.Variation)
		if err != nil {
			return Frame{}, fmt.Errorf("illuminate %d from %d: %w", q.Target, q.Source, err)
		}
		frame.Results = []illumination.Result{{Source: q.Source, Target: q.Target, Rays: rays}}
		if illumination.AnyValid(rays) {
			frame.Message = fmt.Sprintf("Lighthouse %d illuminates %d", q.Source, q.Target)
		} else {
			frame.Message = fmt.Sprintf("Lighthouse %d cannot illuminate %d", q.Source, q.Target)
		}

	case ModeAll:
		results, err := e.Illuminate(ctx, q.Target, q.Variation)
		if err != nil {
			return Frame{}, fmt.Errorf("illuminate %d from all: %w", q.Target, err)
		}
		frame.Results = results
		lit := 0
		for _, res := range results {
			if illumination.AnyValid(res.Rays) {
				lit++
			}
		}
		frame.Message = fmt.Sprintf("%d of %d lighthouses illuminate %d", lit, len(results), q.Target)

	default:
		return Frame{}, fmt.Errorf("unknown draw mode %d", int(q.Mode))
	}

	dark, err := darkarea.Estimate(e, q.Target, q.Variation)
	if err != nil {
		return Frame{}, fmt.Errorf("dark area for %d: %w", q.Target, err)
	}
	frame.Dark = dark

	return frame, nil
}

// DarkAreaLabel formats the dark area for display.
func (f Frame) DarkAreaLabel() string {
	if f.Query.Mode == ModeNone {
		return ""
	}
	if !f.Dark.Bounded() {
		return "Dark area: infinite"
	}
	return fmt.Sprintf("Dark area: %.4f", f.Dark.Area)
}
