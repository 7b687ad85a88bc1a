package config

// DifficultyStrategy calculates the per-level game parameters of a preset:
// how many tiles drop after a move, how long the move timer runs and how
// piece scores are scaled.
type DifficultyStrategy struct {
	cfg StrategyConfig
}

// NewDifficultyStrategy creates a strategy from its config.
func NewDifficultyStrategy(cfg StrategyConfig) *DifficultyStrategy {
	return &DifficultyStrategy{cfg: cfg}
}

// RefactorSpeed returns the refactor speed preset used between moves.
func (d *DifficultyStrategy) RefactorSpeed() RefactorSpeed {
	if d.cfg.Speed == "" {
		return SpeedNormal
	}
	return d.cfg.Speed
}

// ScoreModifier returns the piece score ratio as numerator, denominator.
func (d *DifficultyStrategy) ScoreModifier() (num, den int) {
	return d.cfg.ScoreNumerator, d.cfg.ScoreDenominator
}

// ApplyScoreModifier scales a piece score.
func (d *DifficultyStrategy) ApplyScoreModifier(score int) int {
	return score * d.cfg.ScoreNumerator / d.cfg.ScoreDenominator
}

// DropAmount returns how many tiles drop after a move that removed
// pieceSize tiles, given tiles on a board of cells at level.
func (d *DifficultyStrategy) DropAmount(tiles, cells, level, pieceSize int) int {
	c := d.cfg

	// Levels past MinLevel stop adding the interval bonus and instead add
	// one tile per level.
	levelDrop := level / c.LevelInterval
	if level > c.MinLevel {
		levelDrop = c.MinLevel / c.LevelInterval
	}
	drop := pieceSize + levelDrop + c.MinDrop
	if level > c.MinLevel {
		drop += level - c.MinLevel
	}

	// Refill faster when the board is running empty.
	if cells > 0 && tiles*100/cells < c.TileRatio {
		drop += (cells - tiles) / 10
	}

	return clampInt(drop, 0, c.MaxDrop+pieceSize)
}

// TimeForLevel returns the move timer in milliseconds.
func (d *DifficultyStrategy) TimeForLevel(level int) int {
	c := d.cfg
	t := c.BaseTime - ((level-c.TimeLevelOffset)/c.TimeLevelDivisor)*c.TimeStep
	if t < c.MinTime {
		t = c.MinTime
	}
	return t
}

// clampInt restricts an int to [min, max].
func clampInt(val, min, max int) int {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
