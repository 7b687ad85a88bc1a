// Package board is the wezzle board store: a fixed grid of optional tiles
// with match detection, special tile effects and gravity refactoring.
//
// The board never blocks. Animated operations schedule move descriptors on
// an injected Scheduler and return their handles; the caller decides when
// the shift is over and calls Synchronize to read the settled positions
// back into cells.
package board

import (
	"io"
	"math/rand"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wezzle/internal/anim"
	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/core"
	"github.com/vovakirdan/wezzle/internal/layer"
	"github.com/vovakirdan/wezzle/internal/tile"
)

// Scheduler runs animations on behalf of the board.
type Scheduler interface {
	Schedule(d anim.Descriptor) anim.Handle
	IsFinished(h anim.Handle) bool
	Cancel(h anim.Handle)
	CancelFor(target any) int
}

// DisplayList receives tiles as they enter and leave the board.
type DisplayList interface {
	Add(d layer.Drawable, l layer.Layer)
	Remove(d layer.Drawable, l layer.Layer) bool
}

// ItemCounter is told about every non-normal tile entering or leaving.
type ItemCounter interface {
	Added(t tile.Type)
	Removed(t tile.Type)
}

// Settings provides the integer tuning constants the board reads.
type Settings interface {
	Int(key string) int
}

// Gravity is the pair of walls tiles settle against.
type Gravity struct {
	Vertical   tile.Direction `json:"vertical"`
	Horizontal tile.Direction `json:"horizontal"`
}

// DefaultGravity is down and left.
var DefaultGravity = Gravity{Vertical: tile.Down, Horizontal: tile.Left}

// Board is the grid of tiles.
type Board struct {
	frame        core.Rect
	columns      int
	rows         int
	cells        int
	cellWidth    int
	cellHeight   int
	minimumMatch int

	numberOfColors int
	numberOfTiles  int
	numberOfItems  int
	numberOfMults  int

	gravity Gravity
	visible bool

	board   []*tile.Tile
	scratch []*tile.Tile

	sched   Scheduler
	display DisplayList
	items   ItemCounter
	rng     *rand.Rand
	logger  *log.Logger
}

// New creates an empty board sized from settings. Every dependency except
// the logger is required.
func New(s Settings, sched Scheduler, display DisplayList, items ItemCounter, rng *rand.Rand, logger *log.Logger) *Board {
	switch {
	case s == nil:
		panic("board: nil settings")
	case sched == nil:
		panic("board: nil scheduler")
	case display == nil:
		panic("board: nil display list")
	case items == nil:
		panic("board: nil item counter")
	case rng == nil:
		panic("board: nil rand source")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	columns := s.Int(config.KeyColumns)
	rows := s.Int(config.KeyRows)
	cw := s.Int(config.KeyCellWidth)
	ch := s.Int(config.KeyCellHeight)

	b := &Board{
		frame:          core.NewRect(s.Int(config.KeyBoardX), s.Int(config.KeyBoardY), columns*cw, rows*ch),
		columns:        columns,
		rows:           rows,
		cells:          columns * rows,
		cellWidth:      cw,
		cellHeight:     ch,
		minimumMatch:   s.Int(config.KeyMinimumMatch),
		numberOfColors: s.Int(config.KeyColors),
		gravity:        DefaultGravity,
		visible:        true,
		sched:          sched,
		display:        display,
		items:          items,
		rng:            rng,
		logger:         logger,
	}
	b.board = make([]*tile.Tile, b.cells)
	b.scratch = make([]*tile.Tile, b.cells)
	return b
}

func (b *Board) Columns() int {
	return b.columns
}

func (b *Board) Rows() int {
	return b.rows
}

func (b *Board) Cells() int {
	return b.cells
}

func (b *Board) CellWidth() int {
	return b.cellWidth
}

func (b *Board) CellHeight() int {
	return b.cellHeight
}

// Frame returns the board's pixel rectangle.
func (b *Board) Frame() core.Rect {
	return b.frame
}

func (b *Board) MinimumMatch() int {
	return b.minimumMatch
}

// NumberOfTiles returns the number of occupied cells.
func (b *Board) NumberOfTiles() int {
	return b.numberOfTiles
}

func (b *Board) NumberOfItems() int {
	return b.numberOfItems
}

func (b *Board) NumberOfMultipliers() int {
	return b.numberOfMults
}

func (b *Board) NumberOfColors() int {
	return b.numberOfColors
}

// Gravity returns the walls tiles settle against.
func (b *Board) Gravity() Gravity {
	return b.gravity
}

func (b *Board) SetGravity(g Gravity) {
	b.gravity = g
}

// SetNumberOfColors changes how many colours new tiles are drawn from.
func (b *Board) SetNumberOfColors(n int) {
	if n < 1 || n > int(tile.MaxColors) {
		invariant("set colors", n, ErrOutOfRange)
	}
	b.numberOfColors = n
}

// NewSet returns an empty index set sized for this board.
func (b *Board) NewSet() *Set { return NewSet(b.cells) }

// Column returns the column of a cell index.
func (b *Board) Column(index int) int { return index % b.columns }

// Row returns the row of a cell index.
func (b *Board) Row(index int) int { return index / b.columns }

// Index returns the cell index of (column, row).
func (b *Board) Index(column, row int) int { return row*b.columns + column }

// CellPosition returns the resting pixel position of a cell.
func (b *Board) CellPosition(index int) (x, y int) {
	return b.frame.X + (index%b.columns)*b.cellWidth, b.frame.Y + (index/b.columns)*b.cellHeight
}

func (b *Board) checkIndex(op string, index int) {
	if index < 0 || index >= b.cells {
		invariant(op, index, ErrOutOfRange)
	}
}

// Tile returns the tile at index, or nil for an empty cell.
func (b *Board) Tile(index int) *tile.Tile {
	b.checkIndex("get tile", index)
	return b.board[index]
}

// TileAt returns the tile at (column, row). Coordinates off the board
// yield nil.
func (b *Board) TileAt(column, row int) *tile.Tile {
	if column < 0 || column >= b.columns || row < 0 || row >= b.rows {
		return nil
	}
	return b.board[b.Index(column, row)]
}

// IndexOf returns the cell holding t, or -1.
func (b *Board) IndexOf(t *tile.Tile) int {
	for i, bt := range b.board {
		if bt == t {
			return i
		}
	}
	return -1
}

// CreateTileRandom creates a tile of type t with a random colour.
func (b *Board) CreateTileRandom(index int, t tile.Type) *tile.Tile {
	return b.CreateTile(index, t, tile.RandomColor(b.rng, b.numberOfColors))
}

// CreateTile creates a tile at index, replacing any tile already there.
// Rockets get a random direction.
func (b *Board) CreateTile(index int, t tile.Type, c tile.Color) *tile.Tile {
	b.checkIndex("create tile", index)

	x, y := b.CellPosition(index)
	nt := tile.New(t, c, x, y)
	if t == tile.Rocket {
		nt.Direction = tile.RandomDirection(b.rng)
	}
	b.addTile(index, nt)
	return nt
}

func (b *Board) addTile(index int, t *tile.Tile) {
	t.SetPosition(b.CellPosition(index))

	if b.board[index] != nil {
		b.RemoveTile(index)
	}

	switch {
	case t.Type.IsMultiplier():
		b.numberOfMults++
	case t.Type.IsItem():
		b.numberOfItems++
	}
	if t.Type != tile.Normal {
		b.items.Added(t.Type)
	}

	b.board[index] = t
	b.numberOfTiles++

	t.SetVisible(b.visible)
	b.display.Add(t, layer.Tile)
}

// RemoveTile removes the tile at index. Removing an empty cell panics.
func (b *Board) RemoveTile(index int) {
	b.checkIndex("remove tile", index)

	t := b.board[index]
	if t == nil {
		invariant("remove tile", index, ErrEmptyCell)
	}

	switch {
	case t.Type.IsMultiplier():
		b.numberOfMults--
	case t.Type.IsItem():
		b.numberOfItems--
	}
	if t.Type != tile.Normal {
		b.items.Removed(t.Type)
	}

	b.display.Remove(t, layer.Tile)
	b.board[index] = nil
	b.sched.CancelFor(t)
	b.numberOfTiles--
}

// RemoveTiles removes every tile in set.
func (b *Board) RemoveTiles(set *Set) {
	set.Each(b.RemoveTile)
}

// Clear removes every tile.
func (b *Board) Clear() {
	for i, t := range b.board {
		if t != nil {
			b.RemoveTile(i)
		}
	}
}

// SwapTile exchanges two cells and snaps both tiles to their new cells.
func (b *Board) SwapTile(i, j int) {
	b.checkIndex("swap tile", i)
	b.checkIndex("swap tile", j)

	b.board[i], b.board[j] = b.board[j], b.board[i]
	if t := b.board[i]; t != nil {
		t.SetPosition(b.CellPosition(i))
	}
	if t := b.board[j]; t != nil {
		t.SetPosition(b.CellPosition(j))
	}
}

// ReplaceTileType swaps the tile at index for one of type t, keeping its
// colour.
func (b *Board) ReplaceTileType(index int, t tile.Type) *tile.Tile {
	old := b.Tile(index)
	if old == nil {
		invariant("replace tile", index, ErrEmptyCell)
	}
	c := old.Color
	b.RemoveTile(index)
	return b.CreateTile(index, t, c)
}

// ReplaceTileColor swaps the tile at index for one of colour c, keeping
// its type.
func (b *Board) ReplaceTileColor(index int, c tile.Color) *tile.Tile {
	old := b.Tile(index)
	if old == nil {
		invariant("replace tile", index, ErrEmptyCell)
	}
	t, dir := old.Type, old.Direction
	b.RemoveTile(index)
	nt := b.CreateTile(index, t, c)
	nt.Direction = dir
	return nt
}

// InsertItemRandomly turns a random NORMAL tile into one of type t. It
// reports false when the board holds no NORMAL tile.
func (b *Board) InsertItemRandomly(t tile.Type) bool {
	var normals []int
	for i, bt := range b.board {
		if bt != nil && bt.Type == tile.Normal {
			normals = append(normals, i)
		}
	}
	if len(normals) == 0 {
		return false
	}
	b.ReplaceTileType(normals[b.rng.Intn(len(normals))], t)
	return true
}

// Indices returns the occupied cells whose tile satisfies keep, ascending.
func (b *Board) Indices(keep func(t *tile.Tile) bool) []int {
	var out []int
	for i, t := range b.board {
		if t != nil && (keep == nil || keep(t)) {
			out = append(out, i)
		}
	}
	return out
}

// SetVisible shows or hides every tile, e.g. while the game is paused.
func (b *Board) SetVisible(v bool) {
	b.visible = v
	for _, t := range b.board {
		if t != nil {
			t.SetVisible(v)
		}
	}
}

// Visible reports whether the board is shown.
func (b *Board) Visible() bool { return b.visible }

// String renders the grid as text, one row per line. Empty cells are dots,
// normal tiles the first letter of their colour, specials their glyph.
func (b *Board) String() string {
	var sb strings.Builder
	for r := 0; r < b.rows; r++ {
		for c := 0; c < b.columns; c++ {
			t := b.board[b.Index(c, r)]
			switch {
			case t == nil:
				sb.WriteByte('.')
			case t.Type == tile.Normal:
				sb.WriteRune(t.Color.Letter())
			default:
				sb.WriteRune(t.Rune())
			}
		}
		if r < b.rows-1 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
