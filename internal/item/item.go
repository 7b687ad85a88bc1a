// Package item tracks the spawn catalog: which tile types may appear, how
// often, how many are on the board and which are cooling down. It picks the
// type of every new tile that is not a plain coloured one.
package item

import "github.com/vovakirdan/wezzle/internal/tile"

// Item is the spawn descriptor of one tile type.
type Item struct {
	Type          tile.Type
	InitialAmount int // tiles of this type on a freshly generated board
	CurrentAmount int // tiles of this type on the board right now
	Weight        int // selection weight; -1 keeps the entry but gives it no width
	MaxOnBoard    int
	Cooldown      int // committed moves until the type may spawn again
}

// EffectiveWeight is the weight used for selection: zero once the board
// already holds MaxOnBoard tiles of this type.
func (it Item) EffectiveWeight() int {
	if it.CurrentAmount >= it.MaxOnBoard {
		return 0
	}
	return it.Weight
}

func (it *Item) incrementCurrent() { it.CurrentAmount++ }

func (it *Item) decrementCurrent() {
	if it.CurrentAmount > 0 {
		it.CurrentAmount--
	}
}

func (it *Item) decrementCooldown() {
	if it.Cooldown > 0 {
		it.Cooldown--
	}
}
