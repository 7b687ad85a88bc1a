package board

import (
	"fmt"

	"github.com/vovakirdan/wezzle/internal/anim"
	"github.com/vovakirdan/wezzle/internal/tile"
)

// CountTilesInDirection counts the occupied cells strictly between index
// and the wall in direction dir.
func (b *Board) CountTilesInDirection(dir tile.Direction, index int) int {
	b.checkIndex("count tiles", index)

	dc, dr := dir.Delta()
	count := 0
	for c, r := b.Column(index)+dc, b.Row(index)+dr; c >= 0 && c < b.columns && r >= 0 && r < b.rows; c, r = c+dc, r+dr {
		if b.board[b.Index(c, r)] != nil {
			count++
		}
	}
	return count
}

// CalculateBound converts the number of tiles between a tile and the wall
// into the pixel coordinate the tile comes to rest at.
func (b *Board) CalculateBound(dir tile.Direction, tileCount int) int {
	f := b.frame
	switch dir {
	case tile.Up:
		return f.Y + tileCount*b.cellHeight
	case tile.Down:
		return f.Y + f.H - (tileCount+1)*b.cellHeight
	case tile.Left:
		return f.X + tileCount*b.cellWidth
	default:
		return f.X + f.W - (tileCount+1)*b.cellWidth
	}
}

// StartShift schedules one move per tile towards the wall in direction dir
// and returns the handles. Gravity only applies to vertical shifts.
func (b *Board) StartShift(dir tile.Direction, speed, gravity float64) []anim.Handle {
	var handles []anim.Handle
	f := b.frame

	for i, t := range b.board {
		if t == nil {
			continue
		}
		bound := b.CalculateBound(dir, b.CountTilesInDirection(dir, i))

		// The cross axis is pinned to the tile's current coordinate.
		m := anim.Move{
			Entity: t,
			Theta:  dir.Degrees(),
			Speed:  speed,
			Bounds: anim.Bounds{MinX: t.X, MaxX: t.X, MinY: t.Y, MaxY: t.Y},
		}
		switch dir {
		case tile.Up:
			m.Bounds.MinY, m.Bounds.MaxY = bound, f.Bottom()
			m.Gravity = gravity
		case tile.Down:
			m.Bounds.MinY, m.Bounds.MaxY = f.Y, bound
			m.Gravity = gravity
		case tile.Left:
			m.Bounds.MinX, m.Bounds.MaxX = bound, f.Right()
		case tile.Right:
			m.Bounds.MinX, m.Bounds.MaxX = f.X, bound
		}
		handles = append(handles, b.sched.Schedule(m))
	}
	return handles
}

// StartVerticalShift shifts towards the vertical gravity wall.
func (b *Board) StartVerticalShift(speed, gravity float64) ([]anim.Handle, error) {
	if speed <= 0 {
		return nil, fmt.Errorf("board: vertical shift: %w", ErrInvalidSpeed)
	}
	if gravity < 0 {
		return nil, fmt.Errorf("board: vertical shift: %w", ErrInvalidGravity)
	}
	b.logger.Debug("vertical shift", "direction", b.gravity.Vertical, "speed", speed)
	return b.StartShift(b.gravity.Vertical, speed, gravity), nil
}

// StartHorizontalShift shifts towards the horizontal gravity wall.
func (b *Board) StartHorizontalShift(speed float64) ([]anim.Handle, error) {
	if speed <= 0 {
		return nil, fmt.Errorf("board: horizontal shift: %w", ErrInvalidSpeed)
	}
	b.logger.Debug("horizontal shift", "direction", b.gravity.Horizontal, "speed", speed)
	return b.StartShift(b.gravity.Horizontal, speed, 0), nil
}

// InstantRefactor settles every tile against the gravity walls without
// animating: vertical first, then horizontal, synchronising after each.
func (b *Board) InstantRefactor() {
	b.instantShift(b.gravity.Vertical)
	b.Synchronize()
	b.instantShift(b.gravity.Horizontal)
	b.Synchronize()
}

func (b *Board) instantShift(dir tile.Direction) {
	// Bounds are computed from the pre-shift occupancy, so collect them
	// before moving anything.
	bounds := make([]int, b.cells)
	for i, t := range b.board {
		if t != nil {
			bounds[i] = b.CalculateBound(dir, b.CountTilesInDirection(dir, i))
		}
	}
	for i, t := range b.board {
		if t == nil {
			continue
		}
		if dir.IsVertical() {
			t.Y = bounds[i]
		} else {
			t.X = bounds[i]
		}
	}
}
