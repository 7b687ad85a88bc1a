package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wezzle/internal/anim"
	"github.com/vovakirdan/wezzle/internal/board"
	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/tile"
)

// removalHooks is how the remover reports back to the game.
type removalHooks interface {
	// award adds points to the score.
	award(points int)
	// settled is called when a refactor leaves the board without lines.
	settled()
}

// Remover runs the removal cycle: once a refactor finishes the board is
// scanned for lines, the lines fade out and are removed, and any rockets,
// stars and bombs in them go off in that order, each stage removing its
// own tiles. A refactor follows and the cycle repeats until a scan comes
// up empty.
type Remover struct {
	board      *board.Board
	anims      Animator
	refactorer *Refactorer
	scorer     *Scorer
	stats      *Stats
	hooks      removalHooks
	listener   Listener
	logger     *log.Logger

	fadeMs      int
	levelFadeMs int

	activateLines   bool
	activateRockets bool
	activateStars   bool
	activateBombs   bool
	inProgress      bool
	noScore         bool
	noItems         bool
	shiftNext       bool

	removal   *board.Set
	lastMatch *board.Set
	rockets   *board.Set
	stars     *board.Set
	bombs     *board.Set
	scratch   *board.Set
	lines     []board.Line
	effects   []board.Effect
	handles   []anim.Handle
}

// NewRemover wires a remover to the board and the refactorer it restarts.
func NewRemover(b *board.Board, anims Animator, r *Refactorer, scorer *Scorer, s config.Lookup, stats *Stats, hooks removalHooks, listener Listener, logger *log.Logger) *Remover {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	if listener == nil {
		listener = nopListener{}
	}
	return &Remover{
		board:       b,
		anims:       anims,
		refactorer:  r,
		scorer:      scorer,
		stats:       stats,
		hooks:       hooks,
		listener:    listener,
		logger:      logger,
		fadeMs:      s.Int(config.KeyRemoveFade),
		levelFadeMs: s.Int(config.KeyLevelUpFade),
		removal:     b.NewSet(),
		lastMatch:   b.NewSet(),
		rockets:     b.NewSet(),
		stars:       b.NewSet(),
		bombs:       b.NewSet(),
		scratch:     b.NewSet(),
	}
}

// Reset drops any removal in progress.
func (r *Remover) Reset() {
	r.activateLines = false
	r.activateRockets = false
	r.activateStars = false
	r.activateBombs = false
	r.inProgress = false
	r.noScore = false
	r.noItems = false
	r.shiftNext = false
	for _, s := range []*board.Set{r.removal, r.lastMatch, r.rockets, r.stars, r.bombs} {
		s.Clear()
	}
	r.handles = nil
}

// Removing reports whether any removal stage is pending or animating.
func (r *Remover) Removing() bool {
	return r.activateLines || r.activateRockets || r.activateStars ||
		r.activateBombs || r.inProgress
}

// LastMatch returns the cells matched by the latest scan.
func (r *Remover) LastMatch() *board.Set { return r.lastMatch }

// Lines returns the lines found by the latest scan.
func (r *Remover) Lines() []board.Line { return r.lines }

// Effects returns the effect records of the latest rocket, star or bomb
// stage.
func (r *Remover) Effects() []board.Effect { return r.effects }

// Update runs every stage that is due. A refactor that finished during this
// tick triggers the scan.
func (r *Remover) Update() error {
	if r.refactorer.Finished() {
		r.refactorFinished()
	}
	if r.activateLines {
		r.removeLines()
	}
	if r.activateRockets {
		if err := r.removeRockets(); err != nil {
			return err
		}
	}
	if r.activateStars {
		if err := r.removeStars(); err != nil {
			return err
		}
	}
	if r.activateBombs {
		if err := r.removeBombs(); err != nil {
			return err
		}
	}
	if r.inProgress {
		r.checkProgress()
	}
	return nil
}

// LevelUp clears the row against the vertical gravity wall.
func (r *Remover) LevelUp() {
	row := r.board.Rows() - 1
	if r.board.Gravity().Vertical == tile.Up {
		row = 0
	}
	r.removal.Clear()
	for c := 0; c < r.board.Columns(); c++ {
		if r.board.TileAt(c, row) != nil {
			r.removal.Add(r.board.Index(c, row))
		}
	}
	r.logger.Debug("level up row cleared", "row", row, "tiles", r.removal.Len())
	if r.removal.Len() == 0 {
		r.advance()
		return
	}
	r.fade(r.levelFadeMs)
	r.inProgress = true
}

// SkipNextScore makes the next line removal award no points.
func (r *Remover) SkipNextScore() { r.noScore = true }

// SkipNextItems makes the next line removal treat items as plain tiles.
func (r *Remover) SkipNextItems() { r.noItems = true }

func (r *Remover) refactorFinished() {
	r.removal.Clear()
	r.lines = r.lines[:0]
	n := r.board.FindXMatch(r.removal, &r.lines)
	n += r.board.FindYMatch(r.removal, &r.lines)
	r.stats.Lines += n

	r.lastMatch.Clear()
	r.lastMatch.AddAll(r.removal)

	if r.removal.Len() > 0 {
		r.activateLines = true
		return
	}
	if r.stats.Chain > 0 {
		r.logger.Debug("chain ended", "chain", r.stats.Chain)
	}
	r.stats.Chain = 0
	r.hooks.settled()
}

func (r *Remover) removeLines() {
	r.activateLines = false
	r.stats.Chain++
	r.stats.MaxChain = max(r.stats.MaxChain, r.stats.Chain)

	points := 0
	if r.noScore {
		r.noScore = false
	} else {
		points = r.scorer.LineScore(r.board, r.removal, ScoreLine, r.stats.Chain)
		r.hooks.award(points)
	}
	r.notify(EventLine, points)

	if r.noItems {
		r.noItems = false
	} else {
		r.rockets.Clear()
		r.stars.Clear()
		r.bombs.Clear()
		r.board.ScanFor(tile.Rocket, r.removal, r.rockets)
		r.board.ScanFor(tile.Star, r.removal, r.stars)
		r.board.ScanFor(tile.Bomb, r.removal, r.bombs)
		r.removal.RemoveAll(r.rockets)
		r.removal.RemoveAll(r.stars)
		r.removal.RemoveAll(r.bombs)

		r.scratch.Clear()
		if n := r.board.ScanFor(tile.Gravity, r.removal, r.scratch); n%2 == 1 {
			r.flipGravity()
		}
	}

	if r.removal.Len() == 0 {
		r.advance()
		return
	}
	r.fade(r.fadeMs)
	r.inProgress = true
}

// flipGravity swaps the horizontal gravity wall. The following refactor
// runs at shift speed.
func (r *Remover) flipGravity() {
	g := r.board.Gravity()
	g.Horizontal = g.Horizontal.Opposite()
	r.board.SetGravity(g)
	r.shiftNext = true
	r.logger.Debug("gravity flipped", "horizontal", g.Horizontal)
	r.notify(EventGravity, 0)
}

func (r *Remover) removeRockets() error {
	r.activateRockets = false
	r.prune(r.rockets, tile.Rocket)

	r.effects = r.effects[:0]
	if err := r.board.ProcessRockets(r.rockets, r.removal, &r.effects); err != nil {
		return fmt.Errorf("engine: rockets: %w", err)
	}
	r.removal.RemoveAll(r.stars)

	// Rockets hit by a rocket fire in the next round. Bombs hit go off in
	// the bomb stage. Neither is scored here.
	next := r.board.NewSet()
	r.board.ScanFor(tile.Rocket, r.removal, next)
	next.RemoveAll(r.rockets)
	r.removal.RemoveAll(next)
	r.board.ScanFor(tile.Bomb, r.removal, r.bombs)
	r.removal.RemoveAll(r.bombs)

	points := r.scorer.LineScore(r.board, r.removal, ScoreRocket, r.stats.Chain)
	r.hooks.award(points)
	r.notify(EventRocket, points)

	r.rockets = next
	r.fade(r.fadeMs)
	r.inProgress = true
	return nil
}

func (r *Remover) removeStars() error {
	r.activateStars = false
	r.prune(r.stars, tile.Star)

	r.effects = r.effects[:0]
	if err := r.board.ProcessStars(r.stars, r.removal, &r.effects); err != nil {
		return fmt.Errorf("engine: stars: %w", err)
	}
	r.removal.RemoveAll(r.bombs)

	// Rockets and bombs of the star's colour go off in their own stages.
	// Other stars of that colour are plain tiles by now.
	r.board.ScanFor(tile.Rocket, r.removal, r.rockets)
	r.removal.RemoveAll(r.rockets)
	r.board.ScanFor(tile.Bomb, r.removal, r.bombs)
	r.removal.RemoveAll(r.bombs)

	points := r.scorer.LineScore(r.board, r.removal, ScoreStar, r.stats.Chain)
	r.hooks.award(points)
	r.notify(EventStar, points)

	r.stars.Clear()
	r.fade(r.fadeMs)
	r.inProgress = true
	return nil
}

func (r *Remover) removeBombs() error {
	r.activateBombs = false
	r.prune(r.bombs, tile.Bomb)

	r.effects = r.effects[:0]
	if err := r.board.ProcessBombs(r.bombs, r.removal, &r.effects); err != nil {
		return fmt.Errorf("engine: bombs: %w", err)
	}
	next := r.board.NewSet()
	r.board.ScanFor(tile.Bomb, r.removal, next)
	next.RemoveAll(r.bombs)
	r.removal.RemoveAll(next)
	r.board.ScanFor(tile.Rocket, r.removal, r.rockets)
	r.removal.RemoveAll(r.rockets)

	points := r.scorer.LineScore(r.board, r.removal, ScoreBomb, r.stats.Chain)
	r.hooks.award(points)
	r.notify(EventBomb, points)

	r.bombs = next
	r.fade(r.fadeMs)
	r.inProgress = true
	return nil
}

// checkProgress removes the fading tiles once every fade has finished and
// moves on to the next stage.
func (r *Remover) checkProgress() {
	for _, h := range r.handles {
		if !r.anims.IsFinished(h) {
			return
		}
	}
	r.handles = r.handles[:0]
	r.board.RemoveTiles(r.removal)
	r.removal.Clear()
	r.inProgress = false
	r.advance()
}

// advance activates the next pending effect stage, or refactors once none
// is left.
func (r *Remover) advance() {
	switch {
	case r.rockets.Len() > 0:
		r.activateRockets = true
	case r.stars.Len() > 0:
		r.activateStars = true
	case r.bombs.Len() > 0:
		r.activateBombs = true
	case r.shiftNext:
		r.shiftNext = false
		r.refactorer.StartAt(config.SpeedShift)
	default:
		r.refactorer.Start()
	}
}

// prune drops triggers that are no longer on the board as type t.
func (r *Remover) prune(set *board.Set, t tile.Type) {
	for _, i := range set.Slice() {
		if bt := r.board.Tile(i); bt == nil || bt.Type != t {
			r.logger.Warn("dropping stale trigger", "index", i, "want", t)
			set.Remove(i)
		}
	}
}

// fade schedules a fade out of every tile in the removal set.
func (r *Remover) fade(ms int) {
	r.handles = r.handles[:0]
	r.removal.Each(func(i int) {
		t := r.board.Tile(i)
		if t == nil {
			return
		}
		r.handles = append(r.handles, r.anims.Schedule(anim.Fade{
			Fader:    t,
			From:     t.Opacity,
			To:       0,
			Duration: ms,
		}))
	})
}

func (r *Remover) notify(kind EventKind, points int) {
	r.listener.Notify(Event{Kind: kind, Score: points, Chain: r.stats.Chain, Level: r.stats.Level})
}
