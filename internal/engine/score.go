package engine

import (
	"github.com/vovakirdan/wezzle/internal/board"
	"github.com/vovakirdan/wezzle/internal/config"
)

// ScoreKind is what removed a set of tiles.
type ScoreKind int

const (
	ScoreLine ScoreKind = iota
	ScoreRocket
	ScoreStar
	ScoreBomb
)

// longLine is the length up to which every line tile is worth the same.
const longLine = 4

// Scorer turns removals into points.
type Scorer struct {
	lineTile       int
	pieceTile      int
	targetPerLevel int
	strategy       *config.DifficultyStrategy
}

// NewScorer reads the point values from s and the modifier from strategy.
func NewScorer(s config.Lookup, strategy *config.DifficultyStrategy) *Scorer {
	return &Scorer{
		lineTile:       s.Int(config.KeyLineTile),
		pieceTile:      s.Int(config.KeyPieceTile),
		targetPerLevel: s.Int(config.KeyTargetPerLevel),
		strategy:       strategy,
	}
}

// TilePoints is the base value of n tiles removed by kind, before
// multipliers. Stars pay half; lines longer than four pay a growing bonus
// per extra tile.
func (s *Scorer) TilePoints(n int, kind ScoreKind) int {
	if n <= 0 {
		return 0
	}
	switch {
	case kind == ScoreStar:
		return n * s.lineTile / 2
	case n <= longLine || kind == ScoreBomb || kind == ScoreRocket:
		return n * s.lineTile
	}
	points := longLine * s.lineTile
	for i := 0; i < n-longLine; i++ {
		points += (i + 2) * s.lineTile
	}
	return points
}

// LineScore scores the tiles of set on b: the base value times 2, 3 or 4
// for every multiplier tile in the set, times the chain count, scaled by
// the difficulty modifier.
func (s *Scorer) LineScore(b *board.Board, set *board.Set, kind ScoreKind, chain int) int {
	points := s.TilePoints(set.Len(), kind)
	set.Each(func(i int) {
		if t := b.Tile(i); t != nil && t.Type.IsMultiplier() {
			points *= t.Type.Multiplier()
		}
	})
	return s.strategy.ApplyScoreModifier(points * chain)
}

// PieceScore scores n tiles removed by a piece.
func (s *Scorer) PieceScore(n int) int {
	return s.strategy.ApplyScoreModifier(n * s.pieceTile)
}

// TargetScore is the level score needed to finish level.
func (s *Scorer) TargetScore(level int) int {
	if level < 1 {
		level = 1
	}
	return level * s.targetPerLevel
}

// CarryOver is the part of a finished level's excess score that counts
// towards the next level: at most half of that level's target.
func (s *Scorer) CarryOver(levelScore, target, nextLevel int) int {
	excess := levelScore - target
	if half := s.TargetScore(nextLevel) / 2; excess > half {
		return half
	}
	return max(excess, 0)
}
