// Package simulation provides the scene configuration that drives the
// lighthouse viewer and plot exporter.
// Values are loaded from a JSON file so a scene can be reproduced exactly.
package simulation

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/erhant/lighthouse-problem/internal/core/geometry"
	"github.com/erhant/lighthouse-problem/internal/core/illumination"
	"github.com/erhant/lighthouse-problem/internal/core/ring"
)

// Config holds every parameter of a scene
type Config struct {
	// Lighthouse placement
	Ring RingConfig `json:"ring"`

	// What to illuminate and how
	Query QueryConfig `json:"query"`

	// Window / figure settings
	View ViewConfig `json:"view"`
}

// RingConfig defines the lighthouse layout
type RingConfig struct {
	Count   int     `json:"count"`    // Number of lighthouses (N), also the ring radius
	Radius  float64 `json:"radius"`   // Radius of every lighthouse
	CenterX float64 `json:"center_x"` // Placement center
	CenterY float64 `json:"center_y"`
}

// QueryConfig defines the illumination query
type QueryConfig struct {
	Variation string `json:"variation"` // "point" or "arc"
	Source    int    `json:"source"`    // Source lighthouse for draw mode "choose"
	Target    int    `json:"target"`    // Lighthouse to illuminate
	DrawMode  string `json:"draw_mode"` // "none", "find", "choose" or "all"
}

// ViewConfig defines output dimensions
type ViewConfig struct {
	Width  int    `json:"width"`  // Window / image width in pixels
	Height int    `json:"height"` // Window / image height in pixels
	Title  string `json:"title"`  // Window / figure title
}

// MinCount and MaxCount bound the lighthouse count the viewer steps through.
const (
	MinCount = 2
	MaxCount = 40
)

// DefaultConfig returns the five-lighthouse scene the viewer opens with
func DefaultConfig() *Config {
	return &Config{
		Ring: RingConfig{
			Count:  5,
			Radius: 1,
		},
		Query: QueryConfig{
			Variation: illumination.Point.String(),
			Source:    3,
			Target:    0,
			DrawMode:  "find",
		},
		View: ViewConfig{
			Width:  1080,
			Height: 1080,
			Title:  "Lighthouses",
		},
	}
}

// LoadConfig loads a scene config from a JSON file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		// Return defaults if file doesn't exist
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("failed to read scene config: %w", err)
	}

	config := DefaultConfig() // Start with defaults
	if err := json.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse scene config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scene config %s: %w", path, err)
	}
	config.Normalize()

	return config, nil
}

// Validate checks that the config describes a buildable ring and a known
// variation.
func (c *Config) Validate() error {
	if err := c.RingConfig().Validate(); err != nil {
		return err
	}
	if _, err := c.Variation(); err != nil {
		return err
	}
	return nil
}

// Normalize reduces source and target modulo the lighthouse count so they
// always name a lighthouse.
func (c *Config) Normalize() {
	n := c.Ring.Count
	if n <= 0 {
		return
	}
	c.Query.Source = ((c.Query.Source % n) + n) % n
	c.Query.Target = ((c.Query.Target % n) + n) % n
}

// RingConfig returns the ring configuration passed by value into the core
func (c *Config) RingConfig() ring.Config {
	return ring.Config{
		Count:  c.Ring.Count,
		Radius: c.Ring.Radius,
		Center: geometry.Point{X: c.Ring.CenterX, Y: c.Ring.CenterY},
	}
}

// Variation parses the configured variation
func (c *Config) Variation() (illumination.Variation, error) {
	return illumination.ParseVariation(c.Query.Variation)
}
