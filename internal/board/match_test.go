package board

import (
	"testing"

	"github.com/vovakirdan/wezzle/internal/tile"
)

func TestFindXMatchRunOfFive(t *testing.T) {
	b := newFixture(t, 1).board

	for c := 0; c < 5; c++ {
		b.CreateTile(c, tile.Normal, tile.Red)
	}

	set := b.NewSet()
	var lines []Line
	if n := b.FindXMatch(set, &lines); n != 1 {
		t.Fatalf("FindXMatch() = %d lines, expected 1", n)
	}
	if len(lines) != 1 || lines[0].Len() != 5 {
		t.Fatalf("lines = %+v, expected a single line of 5", lines)
	}
	for k, idx := range lines[0].Indices {
		if idx != k {
			t.Errorf("line index %d = %d, expected %d", k, idx, k)
		}
		if lines[0].Tiles[k] != b.Tile(idx) {
			t.Errorf("line tile %d does not match the board", k)
		}
	}
	if set.Len() != 5 {
		t.Errorf("set holds %d indices, expected 5", set.Len())
	}

	if n := b.FindYMatch(b.NewSet(), nil); n != 0 {
		t.Errorf("FindYMatch() = %d, expected 0", n)
	}
}

func TestFindXMatchBrokenRuns(t *testing.T) {
	b := newFixture(t, 1).board

	// R R . R R R  -> only the second run matches
	b.CreateTile(0, tile.Normal, tile.Red)
	b.CreateTile(1, tile.Normal, tile.Red)
	b.CreateTile(3, tile.Normal, tile.Red)
	b.CreateTile(4, tile.Normal, tile.Red)
	b.CreateTile(5, tile.Normal, tile.Red)
	// G G at the end of the next row is too short
	b.CreateTile(b.Index(6, 1), tile.Normal, tile.Green)
	b.CreateTile(b.Index(7, 1), tile.Normal, tile.Green)

	set := b.NewSet()
	if n := b.FindXMatch(set, nil); n != 1 {
		t.Fatalf("FindXMatch() = %d, expected 1", n)
	}
	want := []int{3, 4, 5}
	got := set.Slice()
	if len(got) != len(want) {
		t.Fatalf("matched %v, expected %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("matched %v, expected %v", got, want)
		}
	}
}

func TestFindYMatchColumn(t *testing.T) {
	b := newFixture(t, 1).board

	for r := 6; r < 10; r++ {
		b.CreateTile(b.Index(2, r), tile.Normal, tile.Yellow)
	}

	set := b.NewSet()
	var lines []Line
	if n := b.FindYMatch(set, &lines); n != 1 {
		t.Fatalf("FindYMatch() = %d, expected 1", n)
	}
	if lines[0].Len() != 4 || lines[0].Indices[0] != b.Index(2, 6) {
		t.Errorf("line = %v", lines[0].Indices)
	}
}

func TestCrossingLinesShareTiles(t *testing.T) {
	b := newFixture(t, 1).board

	// A plus sign centred on (3, 3)
	for c := 2; c <= 4; c++ {
		b.CreateTile(b.Index(c, 3), tile.Normal, tile.Blue)
	}
	b.CreateTile(b.Index(3, 2), tile.Normal, tile.Blue)
	b.CreateTile(b.Index(3, 4), tile.Normal, tile.Blue)

	set := b.NewSet()
	var lines []Line
	if !b.FindMatches(set, &lines) {
		t.Fatal("FindMatches found nothing")
	}
	if len(lines) != 2 {
		t.Errorf("found %d lines, expected 2", len(lines))
	}
	if set.Len() != 5 {
		t.Errorf("set holds %d indices, expected 5 (centre counted once)", set.Len())
	}
}
