package engine

import (
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wezzle/internal/anim"
	"github.com/vovakirdan/wezzle/internal/board"
	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/tile"
)

// maxParallelDrop is the most tiles dropped in one wave.
const maxParallelDrop = 4

// maxRecolorRounds bounds the search for drop colours that form no line.
const maxRecolorRounds = 64

// ItemSource picks the type of an item tile to drop.
type ItemSource interface {
	GetItem(numItems, numMults int) tile.Type
}

// Dropper feeds new tiles into the entry row in waves. Each wave zooms in,
// then hands over to the refactorer; the next wave starts once the board
// has settled again.
type Dropper struct {
	board      *board.Board
	anims      Animator
	items      ItemSource
	refactorer *Refactorer
	listener   Listener
	rng        *rand.Rand
	logger     *log.Logger

	zoomMs   int
	maxItems int
	maxMults int

	dropping  bool
	animating bool
	amount    int
	dropped   []*tile.Tile
	handles   []anim.Handle
}

// NewDropper creates an idle dropper.
func NewDropper(b *board.Board, anims Animator, items ItemSource, r *Refactorer, s config.Lookup, rng *rand.Rand, listener Listener, logger *log.Logger) *Dropper {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if listener == nil {
		listener = nopListener{}
	}
	return &Dropper{
		board:      b,
		anims:      anims,
		items:      items,
		refactorer: r,
		listener:   listener,
		rng:        rng,
		logger:     logger,
		zoomMs:     s.Int(config.KeyDropZoom),
		maxItems:   s.Int(config.KeyMaximumItems),
		maxMults:   s.Int(config.KeyMaximumMultipliers),
	}
}

// Reset cancels any drop in progress.
func (d *Dropper) Reset() {
	d.dropping = false
	d.animating = false
	d.amount = 0
	d.dropped = nil
	d.handles = nil
}

// SetAmount sets how many tiles are still owed.
func (d *Dropper) SetAmount(n int) { d.amount = n }

func (d *Dropper) Amount() int    { return d.amount }
func (d *Dropper) Dropping() bool { return d.dropping }

// Start begins dropping the owed tiles.
func (d *Dropper) Start() {
	d.logger.Debug("tile drop started", "amount", d.amount)
	d.dropping = true
}

// EntryRow is the row new tiles appear in: the row opposite the vertical
// gravity wall.
func (d *Dropper) EntryRow() int {
	if d.board.Gravity().Vertical == tile.Up {
		return d.board.Rows() - 1
	}
	return 0
}

// Update runs one step of the drop. It must only be called while the board
// is neither refactoring nor removing tiles. It reports true when tiles are
// owed but the entry row is full, which ends the game.
func (d *Dropper) Update() (bool, error) {
	if !d.dropping {
		return false, nil
	}
	if d.animating {
		d.finishWave()
		return false, nil
	}
	if d.amount <= 0 {
		d.dropping = false
		return false, nil
	}

	row := d.EntryRow()
	var open []int
	for c := 0; c < d.board.Columns(); c++ {
		if d.board.TileAt(c, row) == nil {
			open = append(open, c)
		}
	}
	if len(open) == 0 {
		d.dropping = false
		d.logger.Debug("entry row full", "owed", d.amount)
		return true, nil
	}
	d.rng.Shuffle(len(open), func(i, j int) { open[i], open[j] = open[j], open[i] })

	items, mults := d.board.NumberOfItems(), d.board.NumberOfMultipliers()
	d.dropped = d.dropped[:0]
	if d.amount <= len(open) && d.amount <= maxParallelDrop && (items < d.maxItems || mults < d.maxMults) {
		// The last wave carries one item.
		for _, c := range open[:d.amount-1] {
			d.dropped = append(d.dropped, d.board.CreateTileRandom(d.board.Index(c, row), tile.Normal))
		}
		t := d.items.GetItem(items, mults)
		d.dropped = append(d.dropped, d.board.CreateTileRandom(d.board.Index(open[d.amount-1], row), t))
	} else {
		n := min(maxParallelDrop, d.amount, len(open))
		for _, c := range open[:n] {
			d.dropped = append(d.dropped, d.board.CreateTileRandom(d.board.Index(c, row), tile.Normal))
		}
	}

	if err := d.recolor(); err != nil {
		return false, err
	}

	d.handles = d.handles[:0]
	for _, t := range d.dropped {
		t.SetScale(0)
		d.handles = append(d.handles, d.anims.Schedule(anim.Zoom{
			Scaler:   t,
			From:     0,
			To:       1,
			Duration: d.zoomMs,
		}))
	}
	d.animating = true
	d.listener.Notify(Event{Kind: EventDrop})
	return false, nil
}

// recolor settles the dropped tiles where they will land and changes the
// colour of any that would complete a line there, then puts them back in
// the entry row.
func (d *Dropper) recolor() error {
	start := make([]int, len(d.dropped))
	for k, t := range d.dropped {
		start[k] = d.board.IndexOf(t)
	}

	d.board.InstantRefactor()

	landed := make([]int, len(d.dropped))
	for k, t := range d.dropped {
		landed[k] = d.board.IndexOf(t)
	}

	set := d.board.NewSet()
	for round := 0; ; round++ {
		set.Clear()
		d.board.FindMatches(set, nil)

		changed := false
		for k, i := range landed {
			if !set.Has(i) {
				continue
			}
			if round >= maxRecolorRounds {
				d.logger.Warn("drop forms a line", "index", i)
				break
			}
			old := d.board.Tile(i).Color
			d.dropped[k] = d.board.ReplaceTileColor(i, tile.RandomColor(d.rng, d.board.NumberOfColors(), old))
			changed = true
		}
		if !changed {
			break
		}
	}

	type dropState struct {
		t   tile.Type
		c   tile.Color
		dir tile.Direction
	}
	states := make([]dropState, len(d.dropped))
	for k, t := range d.dropped {
		states[k] = dropState{t.Type, t.Color, t.Direction}
		d.board.RemoveTile(landed[k])
	}
	for k, s := range states {
		if d.board.Tile(start[k]) != nil {
			return fmt.Errorf("engine: drop: entry cell %d taken: %w", start[k], board.ErrTileCount)
		}
		nt := d.board.CreateTile(start[k], s.t, s.c)
		nt.Direction = s.dir
		d.dropped[k] = nt
	}
	return nil
}

// finishWave hands the settled wave to the refactorer once every zoom is
// done.
func (d *Dropper) finishWave() {
	for _, h := range d.handles {
		if !d.anims.IsFinished(h) {
			return
		}
	}
	d.animating = false
	d.amount -= len(d.dropped)
	d.dropped = d.dropped[:0]
	d.handles = d.handles[:0]
	d.refactorer.Start()
	if d.amount <= 0 {
		d.amount = 0
		d.dropping = false
	}
}
