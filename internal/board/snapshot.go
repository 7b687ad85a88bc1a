package board

import (
	"fmt"

	"github.com/vovakirdan/wezzle/internal/tile"
)

// TileState is the persistent part of a tile.
type TileState struct {
	Type      tile.Type      `json:"type"`
	Color     tile.Color     `json:"color"`
	Direction tile.Direction `json:"direction,omitempty"`
}

// Snapshot is a value copy of the board that can be restored wholesale.
// Cells holds one entry per cell, nil for empty cells.
type Snapshot struct {
	Columns        int          `json:"columns"`
	Rows           int          `json:"rows"`
	NumberOfColors int          `json:"colors"`
	NumberOfItems  int          `json:"items"`
	NumberOfMults  int          `json:"multipliers"`
	Gravity        Gravity      `json:"gravity"`
	Cells          []*TileState `json:"cells"`
}

// Tiles returns the number of occupied cells in the snapshot.
func (s Snapshot) Tiles() int {
	n := 0
	for _, c := range s.Cells {
		if c != nil {
			n++
		}
	}
	return n
}

// Save captures the board.
func (b *Board) Save() Snapshot {
	s := Snapshot{
		Columns:        b.columns,
		Rows:           b.rows,
		NumberOfColors: b.numberOfColors,
		NumberOfItems:  b.numberOfItems,
		NumberOfMults:  b.numberOfMults,
		Gravity:        b.gravity,
		Cells:          make([]*TileState, b.cells),
	}
	for i, t := range b.board {
		if t != nil {
			s.Cells[i] = &TileState{Type: t.Type, Color: t.Color, Direction: t.Direction}
		}
	}
	return s
}

// Load replaces the board with a snapshot. Tiles are re-created so the
// item counters and the display list are rebuilt along the way.
func (b *Board) Load(s Snapshot) error {
	if s.Columns != b.columns || s.Rows != b.rows || len(s.Cells) != b.cells {
		return fmt.Errorf("board: load %dx%d snapshot into %dx%d board: %w",
			s.Columns, s.Rows, b.columns, b.rows, ErrSnapshotShape)
	}
	if s.NumberOfColors < 1 || s.NumberOfColors > int(tile.MaxColors) {
		return fmt.Errorf("board: snapshot has %d colors: %w", s.NumberOfColors, ErrSnapshotShape)
	}
	if !s.Gravity.Vertical.IsVertical() || s.Gravity.Horizontal.IsVertical() || s.Gravity.Horizontal > tile.Right {
		return fmt.Errorf("board: snapshot gravity %v/%v: %w", s.Gravity.Vertical, s.Gravity.Horizontal, ErrSnapshotShape)
	}
	for i, c := range s.Cells {
		if c != nil && (c.Type >= tile.NumTypes || c.Color >= tile.MaxColors || c.Direction > tile.Right) {
			return fmt.Errorf("board: snapshot cell %d holds %v/%v: %w", i, c.Type, c.Color, ErrSnapshotShape)
		}
	}

	b.Clear()
	b.numberOfColors = s.NumberOfColors
	b.gravity = s.Gravity
	for i, c := range s.Cells {
		if c == nil {
			continue
		}
		t := b.CreateTile(i, c.Type, c.Color)
		t.Direction = c.Direction
	}

	if b.numberOfItems != s.NumberOfItems || b.numberOfMults != s.NumberOfMults {
		b.logger.Warn("snapshot counters disagree with its tiles",
			"items", s.NumberOfItems, "counted_items", b.numberOfItems,
			"multipliers", s.NumberOfMults, "counted_multipliers", b.numberOfMults)
	}
	return nil
}
