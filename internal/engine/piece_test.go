package engine

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/wezzle/internal/tile"
)

func TestPieceSizes(t *testing.T) {
	tests := []struct {
		typ  PieceType
		want int
	}{
		{PieceDot, 1},
		{PieceDash, 2},
		{PieceLine, 3},
		{PieceDiagonal, 2},
		{PieceL, 3},
	}
	for _, tt := range tests {
		t.Run(tt.typ.String(), func(t *testing.T) {
			if got := NewPiece(tt.typ).Size(); got != tt.want {
				t.Errorf("Size() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPieceRotation(t *testing.T) {
	for typ := PieceDot; typ < numPieceTypes; typ++ {
		p := NewPiece(typ)

		q := p
		for i := 0; i < 4; i++ {
			q.RotateRight()
		}
		if q != p {
			t.Errorf("%s: four right turns changed the piece", typ)
		}

		q = p
		q.RotateRight()
		q.RotateLeft()
		if q != p {
			t.Errorf("%s: right then left changed the piece", typ)
		}
		if q.Size() != p.Size() {
			t.Errorf("%s: rotation changed the size", typ)
		}
	}
}

func TestPieceRotateLine(t *testing.T) {
	p := NewPiece(PieceLine)
	if !p.Has(0, -1) || !p.Has(0, 1) {
		t.Fatal("line should start vertical")
	}
	p.RotateRight()
	if !p.Has(-1, 0) || !p.Has(0, 0) || !p.Has(1, 0) {
		t.Error("line should be horizontal after a right turn")
	}
	if p.Has(0, -1) || p.Has(0, 1) {
		t.Error("rotated line still covers its old cells")
	}
}

func TestRandomPieceIsValid(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		p := RandomPiece(rng)
		if !p.Has(0, 0) {
			t.Fatalf("%s does not cover the cursor", p.Type)
		}
		if n := p.Size(); n < 1 || n > 3 {
			t.Fatalf("%s has size %d", p.Type, n)
		}
	}
}

func TestPieceManagerClamp(t *testing.T) {
	r := newRig(t, 1)
	pm := NewPieceManager(r.board, rand.New(rand.NewSource(1)))
	cols, rows := r.board.Columns(), r.board.Rows()

	tests := []struct {
		name         string
		piece        PieceType
		right        int
		column, row  int
		wantC, wantR int
	}{
		{"vertical line top", PieceLine, 0, 0, 0, 0, 1},
		{"vertical line bottom", PieceLine, 0, cols - 1, rows - 1, cols - 1, rows - 2},
		{"horizontal line left", PieceLine, 1, 0, 0, 1, 0},
		{"horizontal line far out", PieceLine, 1, -5, 20, 1, rows - 1},
		{"diagonal corner", PieceDiagonal, 0, cols - 1, rows - 1, cols - 2, rows - 2},
		{"dot anywhere", PieceDot, 0, 3, 4, 3, 4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewPiece(tt.piece)
			for i := 0; i < tt.right; i++ {
				p.RotateRight()
			}
			pm.Set(p)
			c, row := pm.Clamp(tt.column, tt.row)
			if c != tt.wantC || row != tt.wantR {
				t.Errorf("Clamp(%d,%d) = (%d,%d), want (%d,%d)", tt.column, tt.row, c, row, tt.wantC, tt.wantR)
			}
		})
	}
}

func TestPieceManagerRotateKeepsPieceOnBoard(t *testing.T) {
	r := newRig(t, 1)
	pm := NewPieceManager(r.board, rand.New(rand.NewSource(1)))
	p := NewPiece(PieceLine)
	p.RotateRight()
	pm.Set(p)
	pm.MoveTo(0, 0)

	pm.RotateRight()
	c, row := pm.Cursor()
	if c != 1 || row != 1 {
		t.Errorf("cursor = (%d,%d), want (1,1)", c, row)
	}
}

func TestPieceManagerSelection(t *testing.T) {
	r := newRig(t, 1)
	r.put(3, 5, tile.Normal, tile.Blue)

	pm := NewPieceManager(r.board, rand.New(rand.NewSource(1)))
	pm.Set(NewPiece(PieceDash))

	tiles, blanks := r.board.NewSet(), r.board.NewSet()
	c, row := pm.Selection(3, 4, tiles, blanks)
	if c != 3 || row != 4 {
		t.Fatalf("cursor = (%d,%d), want (3,4)", c, row)
	}
	if tiles.Len() != 1 || !tiles.Has(r.board.Index(3, 5)) {
		t.Errorf("tiles = %v, want [%d]", tiles.Slice(), r.board.Index(3, 5))
	}
	if blanks.Len() != 1 || !blanks.Has(r.board.Index(3, 4)) {
		t.Errorf("blanks = %v, want [%d]", blanks.Slice(), r.board.Index(3, 4))
	}

	// nil sets are allowed
	pm.Selection(3, 4, nil, nil)
}
