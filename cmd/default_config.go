package cmd

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/inference-sim/boarding-sim/sim"
)

// Aircraft describes a preset cabin layout in defaults.yaml.
type Aircraft struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Rows        int    `yaml:"rows"`
	SeatsPerRow int    `yaml:"seats_per_row"`
}

// Config represents the full defaults.yaml structure.
// All top-level sections must be listed to satisfy KnownFields(true) strict parsing.
type Config struct {
	Version  string     `yaml:"version"`
	Aircraft []Aircraft `yaml:"aircraft"`
}

// loadDefaultsConfig parses defaults.yaml into a Config struct.
// Uses strict field checking: typos must cause errors.
func loadDefaultsConfig(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading defaults file %s: %w", path, err)
	}
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("parsing defaults YAML: %w", err)
	}
	return cfg, nil
}

// GetAircraftLayout returns the cabin layout of the named preset.
func GetAircraftLayout(id string, defaultsFilePath string) (sim.LayoutConfig, error) {
	cfg, err := loadDefaultsConfig(defaultsFilePath)
	if err != nil {
		return sim.LayoutConfig{}, err
	}
	for _, a := range cfg.Aircraft {
		if a.ID == id {
			return sim.LayoutConfig{Rows: a.Rows, SeatsPerRow: a.SeatsPerRow}, nil
		}
	}
	known := make([]string, 0, len(cfg.Aircraft))
	for _, a := range cfg.Aircraft {
		known = append(known, a.ID)
	}
	return sim.LayoutConfig{}, fmt.Errorf("unknown aircraft %q; presets in %s: %v", id, defaultsFilePath, known)
}
