package board

import (
	"errors"
	"testing"

	"github.com/vovakirdan/wezzle/internal/tile"
)

func TestCountTilesInDirection(t *testing.T) {
	b := newFixture(t, 1).board

	// Column 1 holds rows 0, 3 and 9; row 5 holds columns 0, 4 and 7.
	for _, r := range []int{0, 3, 9} {
		b.CreateTile(b.Index(1, r), tile.Normal, tile.Red)
	}
	for _, c := range []int{0, 4, 7} {
		b.CreateTile(b.Index(c, 5), tile.Normal, tile.Blue)
	}

	tests := []struct {
		name     string
		dir      tile.Direction
		index    int
		expected int
	}{
		{"below top tile", tile.Down, b.Index(1, 0), 2},
		{"above bottom tile", tile.Up, b.Index(1, 9), 2},
		{"bottom row", tile.Down, b.Index(1, 9), 0},
		{"left of column 4", tile.Left, b.Index(4, 5), 1},
		{"right of column 0", tile.Right, b.Index(0, 5), 2},
		{"empty cell counts too", tile.Down, b.Index(1, 1), 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := b.CountTilesInDirection(tc.dir, tc.index); got != tc.expected {
				t.Errorf("CountTilesInDirection() = %d, expected %d", got, tc.expected)
			}
		})
	}
}

func TestCalculateBound(t *testing.T) {
	b := newFixture(t, 1).board // frame (16, 16) 256x320, 32px cells

	tests := []struct {
		dir      tile.Direction
		count    int
		expected int
	}{
		{tile.Up, 0, 16},
		{tile.Up, 2, 80},
		{tile.Down, 0, 304},
		{tile.Down, 2, 240},
		{tile.Left, 0, 16},
		{tile.Left, 3, 112},
		{tile.Right, 0, 240},
		{tile.Right, 1, 208},
	}

	for _, tc := range tests {
		if got := b.CalculateBound(tc.dir, tc.count); got != tc.expected {
			t.Errorf("CalculateBound(%v, %d) = %d, expected %d", tc.dir, tc.count, got, tc.expected)
		}
	}
}

func TestVerticalShiftSettlesColumnInOrder(t *testing.T) {
	f := newFixture(t, 1)
	b := f.board

	var column []*tile.Tile
	for _, r := range []int{0, 2, 4} {
		column = append(column, b.CreateTile(b.Index(0, r), tile.Normal, tile.Color(r/2)))
	}

	handles, err := b.StartVerticalShift(300, 1000)
	if err != nil {
		t.Fatalf("StartVerticalShift failed: %v", err)
	}
	if len(handles) != 3 {
		t.Fatalf("got %d handles, expected one per tile", len(handles))
	}

	f.settle(t)
	if !f.anims.AllFinished(handles) {
		t.Fatal("handles still running after settle")
	}
	b.Synchronize()

	for k, r := range []int{7, 8, 9} {
		if got := b.TileAt(0, r); got != column[k] {
			t.Errorf("row %d holds %v, expected tile %d of the column", r, got, k)
		}
	}
	for _, r := range []int{0, 2, 4} {
		if b.TileAt(0, r) != nil {
			t.Errorf("row %d should be empty after the shift", r)
		}
	}
}

func TestHorizontalShiftRight(t *testing.T) {
	f := newFixture(t, 1)
	b := f.board
	b.SetGravity(Gravity{Vertical: tile.Down, Horizontal: tile.Right})

	a := b.CreateTile(b.Index(0, 9), tile.Normal, tile.Red)
	c := b.CreateTile(b.Index(3, 9), tile.Normal, tile.Blue)

	if _, err := b.StartHorizontalShift(400); err != nil {
		t.Fatalf("StartHorizontalShift failed: %v", err)
	}
	f.settle(t)
	b.Synchronize()

	if b.TileAt(6, 9) != a || b.TileAt(7, 9) != c {
		t.Errorf("row 9 after shift:\n%s", b)
	}
}

func TestUpwardShift(t *testing.T) {
	f := newFixture(t, 1)
	b := f.board
	b.SetGravity(Gravity{Vertical: tile.Up, Horizontal: tile.Left})

	low := b.CreateTile(b.Index(5, 9), tile.Normal, tile.Red)
	high := b.CreateTile(b.Index(5, 6), tile.Normal, tile.Blue)

	if _, err := b.StartVerticalShift(300, 1000); err != nil {
		t.Fatalf("StartVerticalShift failed: %v", err)
	}
	f.settle(t)
	b.Synchronize()

	if b.TileAt(5, 0) != high || b.TileAt(5, 1) != low {
		t.Errorf("column 5 after shift up:\n%s", b)
	}
}

func TestShiftArgumentErrors(t *testing.T) {
	b := newFixture(t, 1).board

	if _, err := b.StartVerticalShift(0, 100); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("expected ErrInvalidSpeed, got %v", err)
	}
	if _, err := b.StartVerticalShift(100, -1); !errors.Is(err, ErrInvalidGravity) {
		t.Errorf("expected ErrInvalidGravity, got %v", err)
	}
	if _, err := b.StartHorizontalShift(0); !errors.Is(err, ErrInvalidSpeed) {
		t.Errorf("expected ErrInvalidSpeed, got %v", err)
	}
}

func TestInstantRefactor(t *testing.T) {
	b := newFixture(t, 3).board

	b.CreateTile(b.Index(4, 0), tile.Normal, tile.Red)
	b.CreateTile(b.Index(6, 3), tile.Normal, tile.Blue)
	b.CreateTile(b.Index(6, 5), tile.Normal, tile.Green)

	b.InstantRefactor()

	// Columns 4 and 6 collapse down, then every row packs to the left.
	if b.TileAt(0, 9) == nil || b.TileAt(1, 9) == nil || b.TileAt(0, 8) == nil {
		t.Fatalf("unexpected layout:\n%s", b)
	}
	if b.CountLiveCells() != 3 {
		t.Errorf("CountLiveCells() = %d, expected 3", b.CountLiveCells())
	}
}

func TestInstantRefactorIdempotent(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		f := newFixture(t, seed)
		b := f.board
		b.Generate(f.items.Catalog(), 1)

		// Punch some holes so the refactor has work to do.
		for _, i := range b.Indices(nil)[:10] {
			b.RemoveTile(i)
		}

		b.InstantRefactor()
		first := b.String()
		b.InstantRefactor()
		if second := b.String(); first != second {
			t.Fatalf("seed %d: second refactor changed the board:\n%s\n---\n%s", seed, first, second)
		}
	}
}
