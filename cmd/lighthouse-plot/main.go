package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/erhant/lighthouse-problem/internal/core/darkarea"
	"github.com/erhant/lighthouse-problem/internal/core/illumination"
	"github.com/erhant/lighthouse-problem/internal/core/ring"
	"github.com/erhant/lighthouse-problem/internal/render/figure"
	"github.com/erhant/lighthouse-problem/internal/render/lighting"
	"github.com/erhant/lighthouse-problem/internal/simulation"
)

func main() {
	configPath := flag.String("config", "scene.json", "Scene config file (defaults are used if missing)")
	count := flag.Int("n", 0, "Number of lighthouses (overrides config)")
	radius := flag.Float64("r", 0, "Lighthouse radius (overrides config)")
	variation := flag.String("variation", "", "Illumination variation: point or arc (overrides config)")
	mode := flag.String("mode", "", "Draw mode: none, find, choose or all (overrides config)")
	source := flag.Int("source", -1, "Source lighthouse for choose mode (overrides config)")
	target := flag.Int("target", -1, "Target lighthouse (overrides config)")
	out := flag.String("out", "lighthouses.png", "Output file, format by extension (png, svg, pdf)")
	scenesDir := flag.String("scenes", "", "Render every scene config in this directory into the output file's directory")
	sweep := flag.Int("sweep", 0, "Compare computed and closed-form dark area for odd N up to this count")
	flag.Parse()

	if *sweep > 0 {
		v := illumination.Point
		if *variation != "" {
			parsed, err := illumination.ParseVariation(*variation)
			if err != nil {
				fail(err)
			}
			v = parsed
		}
		if err := runSweep(*sweep, v, *out); err != nil {
			fail(err)
		}
		return
	}

	if *scenesDir != "" {
		if err := runScenes(*scenesDir, *out); err != nil {
			fail(err)
		}
		return
	}

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		fail(err)
	}
	if *count > 0 {
		cfg.Ring.Count = *count
	}
	if *radius > 0 {
		cfg.Ring.Radius = *radius
	}
	if *variation != "" {
		cfg.Query.Variation = *variation
	}
	if *mode != "" {
		cfg.Query.DrawMode = *mode
	}
	if *source >= 0 {
		cfg.Query.Source = *source
	}
	if *target >= 0 {
		cfg.Query.Target = *target
	}

	if err := run(cfg, *out); err != nil {
		fail(err)
	}
}

func run(cfg *simulation.Config, out string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	cfg.Normalize()

	v, _ := cfg.Variation()
	m, err := lighting.ParseMode(cfg.Query.DrawMode)
	if err != nil {
		return err
	}

	rg, err := ring.Build(cfg.RingConfig())
	if err != nil {
		return err
	}
	frame, err := lighting.Plan(context.Background(), illumination.NewEngine(rg), lighting.Query{
		Mode:      m,
		Variation: v,
		Source:    cfg.Query.Source,
		Target:    cfg.Query.Target,
	})
	if err != nil {
		return err
	}

	fmt.Printf("N=%d r=%g variation=%s mode=%s target=%d\n",
		cfg.Ring.Count, cfg.Ring.Radius, v, m, cfg.Query.Target)
	fmt.Println(frame.Message)
	if label := frame.DarkAreaLabel(); label != "" {
		fmt.Println(label)
	}
	if cfg.Ring.Count%2 == 1 {
		fmt.Printf("Closed-form area for unit lighthouses: %.4f\n", darkarea.Theoretical(cfg.Ring.Count))
	}

	title := fmt.Sprintf("%s (N=%d, %s)", cfg.View.Title, cfg.Ring.Count, v)
	p, err := figure.Build(rg, frame, title)
	if err != nil {
		return err
	}
	if err := figure.Save(p, cfg.View.Width, cfg.View.Height, out); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", out)
	return nil
}

// runSweep prints and plots the dark-area comparison for odd N up to maxN.
func runSweep(maxN int, v illumination.Variation, out string) error {
	p, comps, err := figure.Sweep(context.Background(), maxN, v)
	if err != nil {
		return err
	}

	fmt.Printf("%4s  %12s  %12s  %10s\n", "N", "computed", "theorem", "|error|")
	for _, c := range comps {
		fmt.Printf("%4d  %12.4f  %12.4f  %10.4f\n", c.N, c.Estimate, c.Theoretical, c.Error)
	}

	if err := figure.Save(p, 960, 640, out); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", out)
	return nil
}

// runScenes renders each scene in dir next to out, named after the scene
// and using out's extension.
func runScenes(dir, out string) error {
	scenes, configs, err := simulation.LoadScenes(dir)
	if err != nil {
		return err
	}
	if len(scenes) == 0 {
		return fmt.Errorf("no scene configs in %s", dir)
	}

	outDir, ext := filepath.Dir(out), filepath.Ext(out)
	for i, s := range scenes {
		fmt.Printf("== %s\n", s.Name)
		if err := run(configs[i], filepath.Join(outDir, s.Name+ext)); err != nil {
			return fmt.Errorf("scene %s: %w", s.Name, err)
		}
	}
	return nil
}

func fail(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}
