package config

import (
	_ "embed"

	"github.com/vovakirdan/wezzle/internal/tile"
)

//go:embed defaults/wezzle.yaml
var defaultWezzleYAML []byte

// DefaultWezzleConfig returns the default configuration. It mirrors
// defaults/wezzle.yaml.
func DefaultWezzleConfig() WezzleConfig {
	return WezzleConfig{
		Board: BoardConfig{
			X:            16,
			Y:            16,
			Columns:      8,
			Rows:         10,
			CellWidth:    32,
			CellHeight:   32,
			MinimumMatch: 3,
			Colors:       5,
		},
		Refactor: RefactorConfig{
			Slower: SpeedConfig{Horizontal: 100, Vertical: 100, Gravity: 200},
			Slow:   SpeedConfig{Horizontal: 200, Vertical: 200, Gravity: 400},
			Normal: SpeedConfig{Horizontal: 400, Vertical: 300, Gravity: 1000},
			Fast:   SpeedConfig{Horizontal: 600, Vertical: 500, Gravity: 1600},
			Shift:  SpeedConfig{Horizontal: 800, Vertical: 800, Gravity: 2000},
		},
		Animation: AnimationConfig{
			RemoveFade:   250,
			DropZoom:     200,
			EffectWait:   150,
			LevelUpFade:  400,
			GameOverFade: 800,
		},
		Items: ItemsConfig{
			MaximumItems:       3,
			MaximumMultipliers: 3,
			StarCooldown:       5,
			Catalog: []ItemConfig{
				{Type: tile.Normal, Initial: 28, Weight: 5, Max: 100},
				{Type: tile.X2, Initial: 2, Weight: 50, Max: 3},
				{Type: tile.X3, Initial: 0, Weight: 20, Max: 1},
				{Type: tile.X4, Initial: 0, Weight: 10, Max: 1},
				{Type: tile.Rocket, Initial: 0, Weight: 0, Max: 1},
				{Type: tile.Bomb, Initial: 0, Weight: 0, Max: 1},
				{Type: tile.Star, Initial: 0, Weight: 0, Max: 1},
				{Type: tile.Gravity, Initial: 0, Weight: 0, Max: 1},
			},
		},
		Rules: []RuleConfig{
			{Level: 3, Type: tile.Rocket, Initial: 1, Weight: 55, Max: 3},
			{Level: 4, Type: tile.Gravity, Initial: 1, Weight: 50, Max: 1},
			{Level: 5, Type: tile.Bomb, Initial: 1, Weight: 10, Max: 1},
			{Level: 6, Type: tile.Star, Initial: 0, Weight: 10, Max: 1},
		},
		Scoring: ScoringConfig{
			LineTile:       50,
			PieceTile:      10,
			TargetPerLevel: 1200,
		},
		Difficulty: DifficultyConfig{
			Easy: StrategyConfig{
				Speed:            SpeedNormal,
				ScoreNumerator:   1,
				ScoreDenominator: 1,
				MinDrop:          1,
				MinLevel:         3,
				LevelInterval:    2,
				TileRatio:        80,
				MaxDrop:          8,
				BaseTime:         10000,
				TimeStep:         1000,
				TimeLevelOffset:  0,
				TimeLevelDivisor: 2,
				MinTime:          1000,
			},
			Hard: StrategyConfig{
				Speed:            SpeedFast,
				ScoreNumerator:   2,
				ScoreDenominator: 1,
				MinDrop:          1,
				MinLevel:         2,
				LevelInterval:    1,
				TileRatio:        80,
				MaxDrop:          8,
				BaseTime:         10000,
				TimeStep:         1500,
				TimeLevelOffset:  1,
				TimeLevelDivisor: 1,
				MinTime:          500,
			},
		},
		Sound: SoundConfig{
			Enabled:    false,
			SampleRate: 44100,
			Volume:     0.3,
			Workers:    2,
			Queue:      16,
		},
		Palette: map[string]string{
			"blue":   "bright_blue",
			"green":  "green",
			"purple": "magenta",
			"red":    "red",
			"yellow": "yellow",
			"black":  "gray",
			"brown":  "orange",
			"white":  "bright_white",
		},
	}
}
