package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/wezzle/internal/core"
	"github.com/vovakirdan/wezzle/internal/tile"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var embedded WezzleConfig
	if err := yaml.Unmarshal(defaultWezzleYAML, &embedded); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}

	if !reflect.DeepEqual(embedded, DefaultWezzleConfig()) {
		t.Errorf("defaults/wezzle.yaml and DefaultWezzleConfig() disagree:\nyaml: %+v\ngo:   %+v", embedded, DefaultWezzleConfig())
	}
	if err := embedded.Validate(); err != nil {
		t.Errorf("embedded defaults are invalid: %v", err)
	}
}

func TestLoadWezzleCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "wezzle.yaml")

	data := []byte("board:\n  columns: 6\n  colors: 4\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := LoadWezzle(path)
	if err != nil {
		t.Fatalf("LoadWezzle failed: %v", err)
	}

	if cfg.Board.Columns != 6 || cfg.Board.Colors != 4 {
		t.Errorf("overrides not applied: %+v", cfg.Board)
	}
	// Unset values keep their defaults
	if cfg.Board.Rows != 10 || cfg.Scoring.TargetPerLevel != 1200 {
		t.Errorf("defaults lost for unset values: rows=%d target=%d", cfg.Board.Rows, cfg.Scoring.TargetPerLevel)
	}
}

func TestLoadWezzleMissingCustomPath(t *testing.T) {
	_, err := LoadWezzle(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected an error for a missing custom config")
	}
}

func TestLoadWezzleRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("board:\n  minimum_match: 1\n"), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	_, err := LoadWezzle(path)
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *WezzleConfig)
	}{
		{"tiny board", func(c *WezzleConfig) { c.Board.Columns = 2 }},
		{"too many colors", func(c *WezzleConfig) { c.Board.Colors = 9 }},
		{"zero speed", func(c *WezzleConfig) { c.Refactor.Fast.Vertical = 0 }},
		{"duplicate item", func(c *WezzleConfig) {
			c.Items.Catalog = append(c.Items.Catalog, ItemConfig{Type: tile.X2})
		}},
		{"rule for unknown item", func(c *WezzleConfig) {
			c.Items.Catalog = c.Items.Catalog[:1]
		}},
		{"zero divisor", func(c *WezzleConfig) { c.Difficulty.Hard.LevelInterval = 0 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultWezzleConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("Validate() = %v, expected ErrInvalidConfig", err)
			}
		})
	}
}

func TestSettingsLookup(t *testing.T) {
	s := NewSettings(DefaultWezzleConfig())

	if got := s.Int(KeyColumns); got != 8 {
		t.Errorf("Int(%q) = %d, expected 8", KeyColumns, got)
	}
	if got := s.Float(RefactorKey(SpeedFast, "gravity")); got != 1600 {
		t.Errorf("Float(fast gravity) = %v, expected 1600", got)
	}
	if got := s.Float(KeyCellHeight); got != 32 {
		t.Errorf("Float should widen int settings, got %v", got)
	}
	if got := s.Color(PaletteKey(tile.Purple)); got != core.ColorMagenta {
		t.Errorf("Color(purple) = %v, expected magenta", got)
	}

	s.SetInt(KeyColors, 6)
	if s.Int(KeyColors) != 6 {
		t.Error("SetInt did not take effect")
	}
}

func TestSettingsUnknownKeyPanics(t *testing.T) {
	s := NewSettings(DefaultWezzleConfig())

	for name, fn := range map[string]func(){
		"int":   func() { s.Int("board.depth") },
		"float": func() { s.Float("refactor.warp.vertical") },
		"color": func() { s.Color("palette.pink") },
	} {
		t.Run(name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected a panic for an unknown key")
				}
			}()
			fn()
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %v, %v", p, err)
	}
	if _, err := ParsePreset("nightmare"); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}
