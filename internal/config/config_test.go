package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Width != 320 || cfg.Height != 200 {
		t.Errorf("default size %dx%d", cfg.Width, cfg.Height)
	}
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Errorf("missing file should give defaults, got %+v", cfg)
	}

	if _, err := Load(""); err != nil {
		t.Errorf("empty path: %v", err)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"scale": 2, "effects": ["fire", "plasma"], "loop": true}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Scale != 2 || !cfg.Loop {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if len(cfg.Effects) != 2 || cfg.Effects[1] != "plasma" {
		t.Errorf("effects = %v", cfg.Effects)
	}
	if cfg.Width != 320 || cfg.AssetsDir != "assets" {
		t.Errorf("unset fields lost their defaults: %+v", cfg)
	}
}

func TestLoadInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{scale: "), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected a parse error")
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q does not name the file", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, "invalid size"},
		{"tiny frame", func(c *Config) { c.Width, c.Height = 2, 2 }, "minimum is 16x16"},
		{"narrow frame", func(c *Config) { c.Width = MinSize - 1 }, "invalid size"},
		{"scale too large", func(c *Config) { c.Scale = 9 }, "scale"},
		{"scale zero", func(c *Config) { c.Scale = 0 }, "scale"},
		{"negative duration", func(c *Config) { c.Duration = -1 }, "duration"},
		{"negative transition", func(c *Config) { c.Transition = -0.5 }, "transition"},
		{"loud", func(c *Config) { c.MusicVolume = 1.5 }, "volume"},
		{"nothing selected", func(c *Config) { c.Group = ""; c.Effects = nil }, "no group"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}

	cfg := Default()
	cfg.Width, cfg.Scale = -1, 0
	if got := strings.Count(cfg.Validate().Error(), "\n"); got != 1 {
		t.Errorf("want both problems reported, got %q", cfg.Validate())
	}

	cfg = Default()
	cfg.Width, cfg.Height = MinSize, MinSize
	if err := cfg.Validate(); err != nil {
		t.Errorf("minimum size rejected: %v", err)
	}

	cfg = Default()
	cfg.Group = ""
	cfg.Effects = []string{"fire"}
	if err := cfg.Validate(); err != nil {
		t.Errorf("explicit effects without a group: %v", err)
	}
}
