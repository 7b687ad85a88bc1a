package board

import "fmt"

// Synchronize rebuilds cell occupancy from the tiles' pixel positions and
// swaps it in. It is the seam between animated movement and cell logic:
// call it once a shift has finished. A tile outside the frame, two tiles in
// one cell or a changed tile count panic.
func (b *Board) Synchronize() {
	clear(b.scratch)

	for i, t := range b.board {
		if t == nil {
			continue
		}
		column := (t.X - b.frame.X) / b.cellWidth
		row := (t.Y - b.frame.Y) / b.cellHeight
		if !b.frame.Contains(t.X, t.Y) {
			invariant("synchronize", i, ErrOutOfRange)
		}
		b.scratch[b.Index(column, row)] = t
	}

	n := 0
	for _, t := range b.scratch {
		if t != nil {
			n++
		}
	}
	if n != b.numberOfTiles {
		panic(&InvariantError{
			Op:    "synchronize",
			Index: n,
			Err:   fmt.Errorf("%w: expected %d, found %d", ErrTileCount, b.numberOfTiles, n),
		})
	}

	b.board, b.scratch = b.scratch, b.board
}

// CountLiveCells counts the occupied cells directly. After Synchronize it
// always equals NumberOfTiles.
func (b *Board) CountLiveCells() int {
	n := 0
	for _, t := range b.board {
		if t != nil {
			n++
		}
	}
	return n
}
