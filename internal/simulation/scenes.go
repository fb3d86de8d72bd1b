package simulation

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SceneEntry is a scene config file found in a scene directory
type SceneEntry struct {
	Name string // File name without the .json extension
	Path string // Path to the config file
}

// ScanScenes lists the scene configs in dir, sorted by name.
// Hidden files and subdirectories are skipped.
func ScanScenes(dir string) ([]SceneEntry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene directory: %w", err)
	}

	var scenes []SceneEntry
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		ext := filepath.Ext(name)
		if strings.ToLower(ext) != ".json" {
			continue
		}

		scenes = append(scenes, SceneEntry{
			Name: strings.TrimSuffix(name, ext),
			Path: filepath.Join(dir, name),
		})
	}

	sort.Slice(scenes, func(i, j int) bool { return scenes[i].Name < scenes[j].Name })
	return scenes, nil
}

// LoadScenes loads every scene in dir. A scene that fails to load aborts
// the whole batch so a typo is never silently skipped.
func LoadScenes(dir string) ([]SceneEntry, []*Config, error) {
	scenes, err := ScanScenes(dir)
	if err != nil {
		return nil, nil, err
	}

	configs := make([]*Config, 0, len(scenes))
	for _, s := range scenes {
		cfg, err := LoadConfig(s.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("scene %s: %w", s.Name, err)
		}
		configs = append(configs, cfg)
	}
	return scenes, configs, nil
}
