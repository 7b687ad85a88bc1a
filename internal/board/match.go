package board

import "github.com/vovakirdan/wezzle/internal/tile"

// Line is a run of same coloured tiles in one row or column.
type Line struct {
	Indices []int
	Tiles   []*tile.Tile
}

// Len returns the number of tiles in the line.
func (l Line) Len() int { return len(l.Indices) }

// FindXMatch scans every row for runs of at least MinimumMatch tiles of one
// colour. Matched indices go into set; if lines is non-nil each run is
// appended to it. Runs are extended greedily, so a run of five is one line.
// It returns the number of lines found.
func (b *Board) FindXMatch(set *Set, lines *[]Line) int {
	count := 0
	for r := 0; r < b.rows; r++ {
		count += b.scanRun(set, lines, b.columns, func(k int) int { return b.Index(k, r) })
	}
	return count
}

// FindYMatch is FindXMatch for columns.
func (b *Board) FindYMatch(set *Set, lines *[]Line) int {
	count := 0
	for c := 0; c < b.columns; c++ {
		count += b.scanRun(set, lines, b.rows, func(k int) int { return b.Index(c, k) })
	}
	return count
}

// scanRun scans one row or column of length n; at maps a position along
// it to a cell index.
func (b *Board) scanRun(set *Set, lines *[]Line, n int, at func(k int) int) int {
	count := 0
	for k := 0; k <= n-b.minimumMatch; k++ {
		first := b.board[at(k)]
		if first == nil {
			continue
		}

		j := 1
		for ; k+j < n; j++ {
			t := b.board[at(k+j)]
			if t == nil || t.Color != first.Color {
				break
			}
		}
		if j < b.minimumMatch {
			continue
		}

		count++
		var line Line
		for m := k; m < k+j; m++ {
			idx := at(m)
			set.Add(idx)
			if lines != nil {
				line.Indices = append(line.Indices, idx)
				line.Tiles = append(line.Tiles, b.board[idx])
			}
		}
		if lines != nil {
			*lines = append(*lines, line)
		}
		k += j - 1
	}
	return count
}

// FindMatches runs both scans into one set and reports whether anything
// matched.
func (b *Board) FindMatches(set *Set, lines *[]Line) bool {
	x := b.FindXMatch(set, lines)
	y := b.FindYMatch(set, lines)
	return x+y > 0
}
