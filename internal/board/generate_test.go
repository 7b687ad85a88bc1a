package board

import (
	"testing"

	"github.com/vovakirdan/wezzle/internal/tile"
)

func TestGenerateHasNoMatches(t *testing.T) {
	for seed := int64(1); seed <= 50; seed++ {
		for level := 1; level <= 5; level++ {
			f := newFixture(t, seed)
			b := f.board
			b.Generate(f.items.Catalog(), level)

			if b.FindMatches(b.NewSet(), nil) {
				t.Fatalf("seed %d level %d: generated board has a line:\n%s", seed, level, b)
			}
		}
	}
}

func TestGenerateTileCounts(t *testing.T) {
	f := newFixture(t, 7)
	b := f.board

	// 28 normal + 2 level bonus + 2 x2
	b.Generate(f.items.Catalog(), 3)

	if b.NumberOfTiles() != 32 {
		t.Errorf("NumberOfTiles() = %d, expected 32", b.NumberOfTiles())
	}
	if b.CountLiveCells() != b.NumberOfTiles() {
		t.Errorf("live cells %d != NumberOfTiles() %d", b.CountLiveCells(), b.NumberOfTiles())
	}
	if b.NumberOfMultipliers() != 2 {
		t.Errorf("NumberOfMultipliers() = %d, expected 2", b.NumberOfMultipliers())
	}
	if n := f.items.Item(tile.X2).CurrentAmount; n != 2 {
		t.Errorf("item manager X2 amount = %d, expected 2", n)
	}
}

func TestGenerateIsSettled(t *testing.T) {
	f := newFixture(t, 11)
	b := f.board
	b.Generate(f.items.Catalog(), 1)

	// Down-left gravity: every tile has no gap below it and none to its left.
	for i := range b.Cells() {
		if b.Tile(i) == nil {
			continue
		}
		c, r := b.Column(i), b.Row(i)
		if r < b.Rows()-1 && b.TileAt(c, r+1) == nil {
			t.Fatalf("gap below (%d, %d):\n%s", c, r, b)
		}
		if c > 0 && b.TileAt(c-1, r) == nil {
			t.Fatalf("gap left of (%d, %d):\n%s", c, r, b)
		}
	}
}

func TestGenerateReplacesPreviousBoard(t *testing.T) {
	f := newFixture(t, 2)
	b := f.board

	b.Generate(f.items.Catalog(), 1)
	b.Generate(f.items.Catalog(), 1)

	if b.NumberOfTiles() != 30 {
		t.Errorf("NumberOfTiles() = %d after regenerating, expected 30", b.NumberOfTiles())
	}
	if n := f.items.Item(tile.X2).CurrentAmount; n != 2 {
		t.Errorf("X2 amount = %d after regenerating, expected 2", n)
	}
}

func TestGenerateCapsAtBoardSize(t *testing.T) {
	f := newFixture(t, 2)
	b := f.board

	b.Generate(f.items.Catalog(), 100)
	if b.NumberOfTiles() != b.Cells() {
		t.Errorf("NumberOfTiles() = %d, expected a full board of %d", b.NumberOfTiles(), b.Cells())
	}
}
