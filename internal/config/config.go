// Package config holds the user settings of the demo runner.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// Config represents user configuration, read from config.json.
type Config struct {
	Width       int      `json:"width"`
	Height      int      `json:"height"`
	Scale       int      `json:"scale"`
	Fullscreen  bool     `json:"fullscreen"`
	VSync       bool     `json:"vsync"`
	Group       string   `json:"group"`
	Effects     []string `json:"effects,omitempty"`
	Duration    float64  `json:"duration"`   // seconds per effect, 0 waits for a key
	Transition  float64  `json:"transition"` // seconds of cross-fade between effects
	Loop        bool     `json:"loop"`
	ShowHUD     bool     `json:"showHUD"`
	AssetsDir   string   `json:"assetsDir"`
	Music       string   `json:"music,omitempty"`
	MusicVolume float64  `json:"musicVolume"`
	Seed        uint64   `json:"seed"`
}

// Default returns the built-in settings: the classic 320x200 mode tripled.
func Default() *Config {
	return &Config{
		Width:       320,
		Height:      200,
		Scale:       3,
		VSync:       true,
		Group:       "all",
		Duration:    20,
		Transition:  1,
		AssetsDir:   "assets",
		MusicVolume: 0.5,
		Seed:        1,
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// MinSize is the smallest accepted frame width and height.
const MinSize = 16

// Validate checks ranges; effect and group names are checked by the caller.
func (c *Config) Validate() error {
	var errs []error
	if c.Width < MinSize || c.Height < MinSize {
		errs = append(errs, fmt.Errorf("invalid size %dx%d, minimum is %dx%d", c.Width, c.Height, MinSize, MinSize))
	}
	if c.Scale < 1 || c.Scale > 8 {
		errs = append(errs, fmt.Errorf("scale %d out of range 1..8", c.Scale))
	}
	if c.Duration < 0 {
		errs = append(errs, fmt.Errorf("negative duration %v", c.Duration))
	}
	if c.Transition < 0 {
		errs = append(errs, fmt.Errorf("negative transition %v", c.Transition))
	}
	if c.MusicVolume < 0 || c.MusicVolume > 1 {
		errs = append(errs, fmt.Errorf("music volume %v out of range 0..1", c.MusicVolume))
	}
	if c.Group == "" && len(c.Effects) == 0 {
		errs = append(errs, errors.New("no group and no effects selected"))
	}
	return errors.Join(errs...)
}
