package main

import (
	"errors"
	"flag"
	"log"

	ebitenrender "github.com/erhant/lighthouse-problem/internal/render/ebiten"
	"github.com/erhant/lighthouse-problem/internal/simulation"
	"github.com/erhant/lighthouse-problem/internal/viewer"
)

func main() {
	configPath := flag.String("config", "scene.json", "Scene config file (defaults are used if missing)")
	count := flag.Int("n", 0, "Number of lighthouses (overrides config)")
	variation := flag.String("variation", "", "Illumination variation: point or arc (overrides config)")
	mode := flag.String("mode", "", "Draw mode: none, find, choose or all (overrides config)")
	flag.Parse()

	cfg, err := simulation.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if *count > 0 {
		cfg.Ring.Count = *count
	}
	if *variation != "" {
		cfg.Query.Variation = *variation
	}
	if *mode != "" {
		cfg.Query.DrawMode = *mode
	}

	// Initialize the renderer backend (ebiten)
	renderer := ebitenrender.NewRenderer()
	inputMgr := ebitenrender.NewInputManager()
	engine := ebitenrender.NewEngine()

	v, err := viewer.New(*cfg, renderer, inputMgr)
	if err != nil {
		log.Fatalf("Failed to create viewer: %v", err)
	}

	engine.SetWindowSize(cfg.View.Width, cfg.View.Height)
	engine.SetWindowTitle(cfg.View.Title)
	engine.SetWindowResizable(true)

	log.Printf("Starting viewer with %d lighthouses...", cfg.Ring.Count)
	if err := engine.RunGame(v); err != nil && !errors.Is(err, viewer.ErrQuit) {
		log.Fatal(err)
	}
}
