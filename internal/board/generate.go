package board

import "github.com/vovakirdan/wezzle/internal/item"

// Generate clears the board and fills it from the item catalog: each item
// contributes its initial amount, the first (NORMAL) entry level-1 more.
// The tiles are shuffled, settled and re-coloured until no line remains.
func (b *Board) Generate(items []item.Item, level int) {
	b.Clear()

	count := 0
	for i, it := range items {
		n := it.InitialAmount
		if i == 0 {
			n += level - 1
		}
		for j := 0; j < n && count < b.cells; j++ {
			b.CreateTileRandom(count, it.Type)
			count++
		}
	}

	b.shuffle()
	b.InstantRefactor()

	set := b.NewSet()
	rerolls := 0
	for b.FindMatches(set, nil) {
		set.Each(func(i int) {
			b.CreateTileRandom(i, b.board[i].Type)
		})
		rerolls += set.Len()
		set.Clear()
	}

	b.logger.Debug("board generated", "tiles", b.numberOfTiles, "level", level, "rerolls", rerolls)
}

func (b *Board) shuffle() {
	for i := 0; i < b.cells; i++ {
		b.SwapTile(i, b.rng.Intn(b.cells))
	}
}
