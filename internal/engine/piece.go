package engine

import (
	"math/rand"

	"github.com/vovakirdan/wezzle/internal/board"
)

// PieceType is the shape of a piece.
type PieceType int

const (
	PieceDot PieceType = iota
	PieceDash
	PieceLine
	PieceDiagonal
	PieceL
	numPieceTypes
)

var pieceNames = [...]string{
	PieceDot:      "dot",
	PieceDash:     "dash",
	PieceLine:     "line",
	PieceDiagonal: "diagonal",
	PieceL:        "l",
}

func (p PieceType) String() string {
	if p < 0 || p >= numPieceTypes {
		return "unknown"
	}
	return pieceNames[p]
}

// pieceSpan is the width and height of a piece structure.
const pieceSpan = 3

// Piece is a selection shape on a 3x3 structure centred on the cursor.
// structure[i][j] is the cell i-1 columns and j-1 rows from the cursor.
type Piece struct {
	Type      PieceType
	structure [pieceSpan][pieceSpan]bool
}

// NewPiece returns the unrotated piece of type t.
func NewPiece(t PieceType) Piece {
	p := Piece{Type: t}
	s := &p.structure
	s[1][1] = true
	switch t {
	case PieceDash:
		s[1][2] = true
	case PieceLine:
		s[1][0] = true
		s[1][2] = true
	case PieceDiagonal:
		s[2][2] = true
	case PieceL:
		s[1][2] = true
		s[2][1] = true
	}
	return p
}

// RandomPiece picks a shape uniformly and turns it right one to four times.
func RandomPiece(rng *rand.Rand) Piece {
	p := NewPiece(PieceType(rng.Intn(int(numPieceTypes))))
	for n := rng.Intn(4); n >= 0; n-- {
		p.RotateRight()
	}
	return p
}

// RotateRight turns the piece a quarter clockwise about the cursor.
func (p *Piece) RotateRight() {
	var out [pieceSpan][pieceSpan]bool
	for i := 0; i < pieceSpan; i++ {
		for j := 0; j < pieceSpan; j++ {
			out[2-j][i] = p.structure[i][j]
		}
	}
	p.structure = out
}

// RotateLeft turns the piece a quarter counter-clockwise.
func (p *Piece) RotateLeft() {
	var out [pieceSpan][pieceSpan]bool
	for i := 0; i < pieceSpan; i++ {
		for j := 0; j < pieceSpan; j++ {
			out[j][2-i] = p.structure[i][j]
		}
	}
	p.structure = out
}

// Has reports whether the piece covers the cell dc columns and dr rows away
// from the cursor.
func (p Piece) Has(dc, dr int) bool {
	i, j := dc+1, dr+1
	if i < 0 || i >= pieceSpan || j < 0 || j >= pieceSpan {
		return false
	}
	return p.structure[i][j]
}

// Size is the number of cells the piece covers.
func (p Piece) Size() int {
	n := 0
	p.each(func(int, int) { n++ })
	return n
}

// each calls fn with the offset of every covered cell, row by row.
func (p Piece) each(fn func(dc, dr int)) {
	for j := 0; j < pieceSpan; j++ {
		for i := 0; i < pieceSpan; i++ {
			if p.structure[i][j] {
				fn(i-1, j-1)
			}
		}
	}
}

// PieceManager holds the current piece and the cursor it hangs from.
type PieceManager struct {
	board   *board.Board
	rng     *rand.Rand
	piece   Piece
	column  int
	row     int
	visible bool
}

// NewPieceManager creates a manager with a random piece centred on b.
func NewPieceManager(b *board.Board, rng *rand.Rand) *PieceManager {
	pm := &PieceManager{
		board:  b,
		rng:    rng,
		column: b.Columns() / 2,
		row:    b.Rows() / 2,
	}
	pm.Load()
	return pm
}

// Load draws a new random piece and shows it at the current cursor.
func (pm *PieceManager) Load() {
	pm.piece = RandomPiece(pm.rng)
	pm.column, pm.row = pm.Clamp(pm.column, pm.row)
	pm.visible = true
}

// Set replaces the current piece, e.g. when a saved game is restored.
func (pm *PieceManager) Set(p Piece) {
	pm.piece = p
	pm.column, pm.row = pm.Clamp(pm.column, pm.row)
}

func (pm *PieceManager) Piece() Piece              { return pm.piece }
func (pm *PieceManager) Cursor() (column, row int) { return pm.column, pm.row }
func (pm *PieceManager) Visible() bool             { return pm.visible }
func (pm *PieceManager) Show()                     { pm.visible = true }
func (pm *PieceManager) Hide()                     { pm.visible = false }

// Move shifts the cursor by dc columns and dr rows, keeping the piece on
// the board.
func (pm *PieceManager) Move(dc, dr int) {
	pm.column, pm.row = pm.Clamp(pm.column+dc, pm.row+dr)
}

// MoveTo places the cursor, keeping the piece on the board.
func (pm *PieceManager) MoveTo(column, row int) {
	pm.column, pm.row = pm.Clamp(column, row)
}

func (pm *PieceManager) RotateRight() {
	pm.piece.RotateRight()
	pm.column, pm.row = pm.Clamp(pm.column, pm.row)
}

func (pm *PieceManager) RotateLeft() {
	pm.piece.RotateLeft()
	pm.column, pm.row = pm.Clamp(pm.column, pm.row)
}

// Clamp limits a cursor position so that every cell of the current piece
// lies on the board.
func (pm *PieceManager) Clamp(column, row int) (int, int) {
	cols, rows := pm.board.Columns(), pm.board.Rows()
	column = max(0, min(column, cols-1))
	row = max(0, min(row, rows-1))

	pm.piece.each(func(dc, dr int) {
		switch {
		case column+dc < 0:
			column++
		case column+dc >= cols:
			column--
		}
		switch {
		case row+dr < 0:
			row++
		case row+dr >= rows:
			row--
		}
	})
	return column, row
}

// Selection collects the cells under the piece at the clamped cursor
// (column, row): occupied cells go to tiles, empty ones to blanks. Either
// set may be nil. The clamped cursor is returned.
func (pm *PieceManager) Selection(column, row int, tiles, blanks *board.Set) (int, int) {
	column, row = pm.Clamp(column, row)
	pm.piece.each(func(dc, dr int) {
		c, r := column+dc, row+dr
		i := pm.board.Index(c, r)
		if pm.board.TileAt(c, r) != nil {
			if tiles != nil {
				tiles.Add(i)
			}
		} else if blanks != nil {
			blanks.Add(i)
		}
	})
	return column, row
}
