package config

import (
	"fmt"

	"github.com/vovakirdan/wezzle/internal/core"
	"github.com/vovakirdan/wezzle/internal/tile"
)

// Setting keys understood by Settings.
const (
	KeyBoardX       = "board.x"
	KeyBoardY       = "board.y"
	KeyColumns      = "board.columns"
	KeyRows         = "board.rows"
	KeyCellWidth    = "board.cell_width"
	KeyCellHeight   = "board.cell_height"
	KeyMinimumMatch = "board.minimum_match"
	KeyColors       = "board.colors"

	KeyMaximumItems       = "items.maximum_items"
	KeyMaximumMultipliers = "items.maximum_multipliers"
	KeyStarCooldown       = "items.star_cooldown"

	KeyRemoveFade   = "animation.remove_fade"
	KeyDropZoom     = "animation.drop_zoom"
	KeyEffectWait   = "animation.effect_wait"
	KeyLevelUpFade  = "animation.level_up_fade"
	KeyGameOverFade = "animation.game_over_fade"

	KeyLineTile       = "scoring.line_tile"
	KeyPieceTile      = "scoring.piece_tile"
	KeyTargetPerLevel = "scoring.target_per_level"
)

// RefactorKey builds the key of a refactor speed component, e.g.
// RefactorKey(SpeedFast, "vertical") is "refactor.fast.vertical".
func RefactorKey(s RefactorSpeed, component string) string {
	return "refactor." + string(s) + "." + component
}

// PaletteKey builds the key of the terminal colour for a tile colour.
func PaletteKey(c tile.Color) string {
	return "palette." + c.String()
}

// Lookup is the key-based settings contract the engine reads tuning
// constants through.
type Lookup interface {
	Int(key string) int
	Float(key string) float64
	Color(key string) core.Color
}

// Settings is a read-only Lookup over a loaded WezzleConfig.
type Settings struct {
	ints   map[string]int
	floats map[string]float64
	colors map[string]core.Color
}

var _ Lookup = (*Settings)(nil)

// NewSettings flattens cfg into a key-value lookup.
func NewSettings(cfg WezzleConfig) *Settings {
	s := &Settings{
		ints: map[string]int{
			KeyBoardX:       cfg.Board.X,
			KeyBoardY:       cfg.Board.Y,
			KeyColumns:      cfg.Board.Columns,
			KeyRows:         cfg.Board.Rows,
			KeyCellWidth:    cfg.Board.CellWidth,
			KeyCellHeight:   cfg.Board.CellHeight,
			KeyMinimumMatch: cfg.Board.MinimumMatch,
			KeyColors:       cfg.Board.Colors,

			KeyMaximumItems:       cfg.Items.MaximumItems,
			KeyMaximumMultipliers: cfg.Items.MaximumMultipliers,
			KeyStarCooldown:       cfg.Items.StarCooldown,

			KeyRemoveFade:   cfg.Animation.RemoveFade,
			KeyDropZoom:     cfg.Animation.DropZoom,
			KeyEffectWait:   cfg.Animation.EffectWait,
			KeyLevelUpFade:  cfg.Animation.LevelUpFade,
			KeyGameOverFade: cfg.Animation.GameOverFade,

			KeyLineTile:       cfg.Scoring.LineTile,
			KeyPieceTile:      cfg.Scoring.PieceTile,
			KeyTargetPerLevel: cfg.Scoring.TargetPerLevel,
		},
		floats: make(map[string]float64),
		colors: make(map[string]core.Color),
	}

	for _, sp := range []RefactorSpeed{SpeedSlower, SpeedSlow, SpeedNormal, SpeedFast, SpeedShift} {
		p := cfg.Refactor.Preset(sp)
		s.floats[RefactorKey(sp, "horizontal")] = p.Horizontal
		s.floats[RefactorKey(sp, "vertical")] = p.Vertical
		s.floats[RefactorKey(sp, "gravity")] = p.Gravity
	}

	for c := tile.Color(0); c < tile.MaxColors; c++ {
		col := core.ColorWhite
		if name, ok := cfg.Palette[c.String()]; ok {
			if parsed, ok := core.ParseColor(name); ok {
				col = parsed
			}
		}
		s.colors[PaletteKey(c)] = col
	}

	return s
}

// Int returns an integer setting. Unknown keys panic.
func (s *Settings) Int(key string) int {
	v, ok := s.ints[key]
	if !ok {
		panic(fmt.Sprintf("config: unknown int setting %q", key))
	}
	return v
}

// Float returns a float setting. Integer settings are widened. Unknown keys
// panic.
func (s *Settings) Float(key string) float64 {
	if v, ok := s.floats[key]; ok {
		return v
	}
	if v, ok := s.ints[key]; ok {
		return float64(v)
	}
	panic(fmt.Sprintf("config: unknown float setting %q", key))
}

// Color returns a colour setting. Unknown keys panic.
func (s *Settings) Color(key string) core.Color {
	v, ok := s.colors[key]
	if !ok {
		panic(fmt.Sprintf("config: unknown color setting %q", key))
	}
	return v
}

// SetInt overrides an integer setting. Used by the engine to raise the
// colour count between levels and by tests.
func (s *Settings) SetInt(key string, v int) {
	if _, ok := s.ints[key]; !ok {
		panic(fmt.Sprintf("config: unknown int setting %q", key))
	}
	s.ints[key] = v
}
