package board

import (
	"fmt"

	"github.com/vovakirdan/wezzle/internal/tile"
)

// Effect pairs a triggered special tile with the tiles it hit. Cause is
// never part of Tiles.
type Effect struct {
	Cause *tile.Tile
	Tiles []*tile.Tile
}

func (b *Board) trigger(op string, index int, want tile.Type) (*tile.Tile, error) {
	t := b.Tile(index)
	if t == nil {
		return nil, fmt.Errorf("board: %s at %d: %w", op, index, ErrEmptyCell)
	}
	if t.Type != want {
		return nil, fmt.Errorf("board: %s: %s at %d: %w", op, t.Type, index, ErrWrongTrigger)
	}
	return t, nil
}

// ProcessRockets collects, for each rocket in triggers, every tile from the
// rocket to the wall it points at. affected is cleared first and ends up
// holding the rockets too; one Effect per rocket is appended to effects.
func (b *Board) ProcessRockets(triggers, affected *Set, effects *[]Effect) error {
	affected.Clear()

	var err error
	triggers.Each(func(ri int) {
		if err != nil {
			return
		}
		rocket, terr := b.trigger("process rockets", ri, tile.Rocket)
		if terr != nil {
			err = terr
			return
		}

		dc, dr := rocket.Direction.Delta()
		eff := Effect{Cause: rocket}
		for c, r := b.Column(ri), b.Row(ri); c >= 0 && c < b.columns && r >= 0 && r < b.rows; c, r = c+dc, r+dr {
			idx := b.Index(c, r)
			t := b.board[idx]
			if t == nil {
				continue
			}
			affected.Add(idx)
			if t != rocket {
				eff.Tiles = append(eff.Tiles, t)
			}
		}
		*effects = append(*effects, eff)
	})
	return err
}

// ProcessStars collects, for each star in triggers, every tile sharing its
// colour.
func (b *Board) ProcessStars(triggers, affected *Set, effects *[]Effect) error {
	affected.Clear()

	var err error
	triggers.Each(func(si int) {
		if err != nil {
			return
		}
		star, terr := b.trigger("process stars", si, tile.Star)
		if terr != nil {
			err = terr
			return
		}

		eff := Effect{Cause: star}
		for i, t := range b.board {
			if t == nil || t.Color != star.Color {
				continue
			}
			affected.Add(i)
			if t != star {
				eff.Tiles = append(eff.Tiles, t)
			}
		}
		*effects = append(*effects, eff)
	})
	return err
}

// ProcessBombs collects, for each bomb in triggers, its 3x3 neighbourhood
// clipped at the walls.
func (b *Board) ProcessBombs(triggers, affected *Set, effects *[]Effect) error {
	affected.Clear()

	var err error
	triggers.Each(func(bi int) {
		if err != nil {
			return
		}
		bomb, terr := b.trigger("process bombs", bi, tile.Bomb)
		if terr != nil {
			err = terr
			return
		}

		eff := Effect{Cause: bomb}
		col, row := b.Column(bi), b.Row(bi)
		for dr := -1; dr <= 1; dr++ {
			for dc := -1; dc <= 1; dc++ {
				t := b.TileAt(col+dc, row+dr)
				if t == nil {
					continue
				}
				affected.Add(b.Index(col+dc, row+dr))
				if t != bomb {
					eff.Tiles = append(eff.Tiles, t)
				}
			}
		}
		*effects = append(*effects, eff)
	})
	return err
}

// ScanFor counts the tiles of type t among the indices of in, adding them
// to found when it is non-nil.
func (b *Board) ScanFor(t tile.Type, in, found *Set) int {
	count := 0
	in.Each(func(i int) {
		bt := b.Tile(i)
		if bt == nil || bt.Type != t {
			return
		}
		count++
		if found != nil {
			found.Add(i)
		}
	})
	return count
}

// CenterPoint returns the pixel centre of the bounding box of the tiles in
// set. Empty cells are skipped.
func (b *Board) CenterPoint(set *Set) (x, y int) {
	l, r := int(^uint(0)>>1), 0
	u, d := l, 0
	found := false
	set.Each(func(i int) {
		t := b.board[i]
		if t == nil {
			b.logger.Warn("center point of empty cell", "index", i)
			return
		}
		found = true
		l = min(l, t.X)
		r = max(r, t.X+b.cellWidth)
		u = min(u, t.Y)
		d = max(d, t.Y+b.cellHeight)
	})
	if !found {
		return b.frame.Center()
	}
	return l + (r-l)/2, u + (d-u)/2
}
