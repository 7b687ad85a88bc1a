// Package config provides YAML-based configuration loading, the key-based
// settings lookup the engine reads its tuning constants from, and the
// difficulty strategies.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/wezzle/internal/tile"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// WezzleConfig contains all configuration for the game.
type WezzleConfig struct {
	Board      BoardConfig       `yaml:"board"`
	Refactor   RefactorConfig    `yaml:"refactor"`
	Animation  AnimationConfig   `yaml:"animation"`
	Items      ItemsConfig       `yaml:"items"`
	Rules      []RuleConfig      `yaml:"rules"`
	Scoring    ScoringConfig     `yaml:"scoring"`
	Difficulty DifficultyConfig  `yaml:"difficulty"`
	Sound      SoundConfig       `yaml:"sound"`
	Palette    map[string]string `yaml:"palette"` // tile colour -> terminal colour
}

// BoardConfig defines the board geometry in pixels and cells.
type BoardConfig struct {
	X            int `yaml:"x"`
	Y            int `yaml:"y"`
	Columns      int `yaml:"columns"`
	Rows         int `yaml:"rows"`
	CellWidth    int `yaml:"cell_width"`
	CellHeight   int `yaml:"cell_height"`
	MinimumMatch int `yaml:"minimum_match"`
	Colors       int `yaml:"colors"`
}

// RefactorSpeed names one of the refactor speed presets.
type RefactorSpeed string

const (
	SpeedSlower RefactorSpeed = "slower"
	SpeedSlow   RefactorSpeed = "slow"
	SpeedNormal RefactorSpeed = "normal"
	SpeedFast   RefactorSpeed = "fast"
	SpeedShift  RefactorSpeed = "shift"
)

// SpeedConfig is one refactor speed preset. Speeds are px/s, gravity px/s².
type SpeedConfig struct {
	Horizontal float64 `yaml:"horizontal"`
	Vertical   float64 `yaml:"vertical"`
	Gravity    float64 `yaml:"gravity"`
}

// RefactorConfig holds the refactor speed presets.
type RefactorConfig struct {
	Slower SpeedConfig `yaml:"slower"`
	Slow   SpeedConfig `yaml:"slow"`
	Normal SpeedConfig `yaml:"normal"`
	Fast   SpeedConfig `yaml:"fast"`
	Shift  SpeedConfig `yaml:"shift"`
}

// Preset returns the speed preset named s. Unknown names get Normal.
func (r RefactorConfig) Preset(s RefactorSpeed) SpeedConfig {
	switch s {
	case SpeedSlower:
		return r.Slower
	case SpeedSlow:
		return r.Slow
	case SpeedFast:
		return r.Fast
	case SpeedShift:
		return r.Shift
	}
	return r.Normal
}

// AnimationConfig defines effect durations in milliseconds.
type AnimationConfig struct {
	RemoveFade   int `yaml:"remove_fade"`
	DropZoom     int `yaml:"drop_zoom"`
	EffectWait   int `yaml:"effect_wait"`
	LevelUpFade  int `yaml:"level_up_fade"`
	GameOverFade int `yaml:"game_over_fade"`
}

// ItemsConfig defines the spawn catalog and on-board caps.
type ItemsConfig struct {
	MaximumItems       int          `yaml:"maximum_items"`
	MaximumMultipliers int          `yaml:"maximum_multipliers"`
	StarCooldown       int          `yaml:"star_cooldown"`
	Catalog            []ItemConfig `yaml:"catalog"`
}

// ItemConfig is the reset state of one tile type.
type ItemConfig struct {
	Type     tile.Type `yaml:"type"`
	Initial  int       `yaml:"initial"`
	Weight   int       `yaml:"weight"`
	Max      int       `yaml:"max"`
	Cooldown int       `yaml:"cooldown"`
}

// RuleConfig unlocks or retunes a tile type once the level reaches Level.
// Rules fire once.
type RuleConfig struct {
	Level   int       `yaml:"level"`
	Type    tile.Type `yaml:"type"`
	Initial int       `yaml:"initial"`
	Weight  int       `yaml:"weight"`
	Max     int       `yaml:"max"`
}

// ScoringConfig defines point values.
type ScoringConfig struct {
	LineTile       int `yaml:"line_tile"`
	PieceTile      int `yaml:"piece_tile"`
	TargetPerLevel int `yaml:"target_per_level"`
}

// DifficultyConfig holds the strategy for each preset.
type DifficultyConfig struct {
	Easy StrategyConfig `yaml:"easy"`
	Hard StrategyConfig `yaml:"hard"`
}

// StrategyConfig tunes drop amounts, move timer and score for a preset.
type StrategyConfig struct {
	Speed            RefactorSpeed `yaml:"speed"`
	ScoreNumerator   int           `yaml:"score_numerator"`
	ScoreDenominator int           `yaml:"score_denominator"`
	MinDrop          int           `yaml:"min_drop"`
	MinLevel         int           `yaml:"min_level"`
	LevelInterval    int           `yaml:"level_interval"`
	TileRatio        int           `yaml:"tile_ratio"` // percent of the board
	MaxDrop          int           `yaml:"max_drop"`
	BaseTime         int           `yaml:"base_time"` // ms
	TimeStep         int           `yaml:"time_step"`
	TimeLevelOffset  int           `yaml:"time_level_offset"`
	TimeLevelDivisor int           `yaml:"time_level_divisor"`
	MinTime          int           `yaml:"min_time"`
}

// SoundConfig configures the synthesized sound effects.
type SoundConfig struct {
	Enabled    bool    `yaml:"enabled"`
	SampleRate int     `yaml:"sample_rate"`
	Volume     float64 `yaml:"volume"` // 0..1
	Workers    int     `yaml:"workers"`
	Queue      int     `yaml:"queue"`
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy DifficultyPreset = "easy"
	DifficultyHard DifficultyPreset = "hard"
)

// ParsePreset resolves a preset name.
func ParsePreset(name string) (DifficultyPreset, error) {
	switch DifficultyPreset(name) {
	case DifficultyEasy, DifficultyHard:
		return DifficultyPreset(name), nil
	}
	return "", fmt.Errorf("config: unknown difficulty %q: %w", name, ErrInvalidConfig)
}

// Strategy returns the strategy config for a preset.
func (c WezzleConfig) Strategy(p DifficultyPreset) StrategyConfig {
	if p == DifficultyHard {
		return c.Difficulty.Hard
	}
	return c.Difficulty.Easy
}

// Validate checks the values the engine relies on.
func (c WezzleConfig) Validate() error {
	b := c.Board
	switch {
	case b.Columns < 3 || b.Rows < 3:
		return fmt.Errorf("config: board must be at least 3x3, got %dx%d: %w", b.Columns, b.Rows, ErrInvalidConfig)
	case b.CellWidth <= 0 || b.CellHeight <= 0:
		return fmt.Errorf("config: cell size must be positive: %w", ErrInvalidConfig)
	case b.MinimumMatch < 2:
		return fmt.Errorf("config: minimum match %d is below 2: %w", b.MinimumMatch, ErrInvalidConfig)
	case b.Colors < 2 || b.Colors > int(tile.MaxColors):
		return fmt.Errorf("config: color count %d out of range [2, %d]: %w", b.Colors, tile.MaxColors, ErrInvalidConfig)
	}

	for _, s := range []SpeedConfig{c.Refactor.Slower, c.Refactor.Slow, c.Refactor.Normal, c.Refactor.Fast, c.Refactor.Shift} {
		if s.Horizontal <= 0 || s.Vertical <= 0 || s.Gravity < 0 {
			return fmt.Errorf("config: refactor speeds must be positive: %w", ErrInvalidConfig)
		}
	}

	seen := make(map[tile.Type]bool)
	for _, it := range c.Items.Catalog {
		if seen[it.Type] {
			return fmt.Errorf("config: item %s listed twice: %w", it.Type, ErrInvalidConfig)
		}
		seen[it.Type] = true
	}
	if !seen[tile.Normal] {
		return fmt.Errorf("config: item catalog has no normal entry: %w", ErrInvalidConfig)
	}
	for _, r := range c.Rules {
		if !seen[r.Type] {
			return fmt.Errorf("config: rule for %s which is not in the catalog: %w", r.Type, ErrInvalidConfig)
		}
	}

	for _, s := range []StrategyConfig{c.Difficulty.Easy, c.Difficulty.Hard} {
		if s.ScoreDenominator <= 0 || s.LevelInterval <= 0 || s.TimeLevelDivisor <= 0 {
			return fmt.Errorf("config: difficulty divisors must be positive: %w", ErrInvalidConfig)
		}
	}
	if c.Scoring.TargetPerLevel <= 0 {
		return fmt.Errorf("config: target score per level must be positive: %w", ErrInvalidConfig)
	}
	return nil
}
