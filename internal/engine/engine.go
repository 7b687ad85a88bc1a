// Package engine drives a game of wezzle on top of the board store: it
// commits pieces, chains line removals and item effects, drops new tiles,
// runs the move timer and tracks score and level.
//
// The engine is advanced by Step with the simulated milliseconds of each
// tick and never blocks. It is not safe for concurrent use.
package engine

import (
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wezzle/internal/anim"
	"github.com/vovakirdan/wezzle/internal/board"
	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/item"
	"github.com/vovakirdan/wezzle/internal/layer"
)

var (
	ErrBusy     = errors.New("engine: busy")
	ErrGameOver = errors.New("engine: game over")
)

// Stats is the progress of a game.
type Stats struct {
	Level       int `json:"level"`
	Score       int `json:"score"`
	LevelScore  int `json:"level_score"`
	TargetScore int `json:"target_score"`
	Moves       int `json:"moves"`
	Lines       int `json:"lines"`
	Chain       int `json:"-"`
	MaxChain    int `json:"max_chain"`
}

// Options configures a new engine.
type Options struct {
	Config   config.WezzleConfig
	Preset   config.DifficultyPreset
	Level    int // starting level, 1 if zero
	Seed     int64
	Listener Listener
	Logger   *log.Logger
}

// SaveState is everything needed to resume a game between moves.
type SaveState struct {
	Preset config.DifficultyPreset `json:"preset"`
	Stats  Stats                   `json:"stats"`
	Board  board.Snapshot          `json:"board"`
}

// Engine is one game of wezzle.
type Engine struct {
	cfg      config.WezzleConfig
	preset   config.DifficultyPreset
	strategy *config.DifficultyStrategy
	rng      *rand.Rand
	logger   *log.Logger
	listener Listener

	settings   *config.Settings
	anims      *anim.Manager
	display    *layer.List
	items      *item.Manager
	board      *board.Board
	scorer     *Scorer
	refactorer *Refactorer
	remover    *Remover
	dropper    *Dropper
	pieces     *PieceManager
	timer      *Timer

	stats    Stats
	gameOver bool
	paused   bool
	tutorial bool
}

// New validates the config and starts a game at opts.Level.
func New(opts Options) (*Engine, error) {
	if err := opts.Config.Validate(); err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	if opts.Preset == "" {
		opts.Preset = config.DifficultyEasy
	}
	if opts.Level < 1 {
		opts.Level = 1
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Listener == nil {
		opts.Listener = nopListener{}
	}

	e := &Engine{
		cfg:      opts.Config,
		preset:   opts.Preset,
		strategy: config.NewDifficultyStrategy(opts.Config.Strategy(opts.Preset)),
		rng:      rand.New(rand.NewSource(opts.Seed)),
		logger:   opts.Logger,
		listener: opts.Listener,
	}
	e.build(opts.Level)
	return e, nil
}

// build wires a fresh set of components and generates the board for level.
func (e *Engine) build(level int) {
	e.settings = config.NewSettings(e.cfg)
	e.anims = anim.NewManager()
	e.display = layer.NewList()
	e.items = item.NewManager(e.cfg.Items, item.LevelRules(e.cfg.Rules), e.rng, e.logger)
	e.items.SetTutorial(e.tutorial)
	e.board = board.New(e.settings, e.anims, e.display, e.items, e.rng, e.logger)
	e.scorer = NewScorer(e.settings, e.strategy)

	e.stats = Stats{Level: level, TargetScore: e.scorer.TargetScore(level)}
	e.gameOver = false
	e.paused = false

	e.refactorer = NewRefactorer(e.board, e.anims, e.settings, e.strategy.RefactorSpeed(), e.logger)
	e.remover = NewRemover(e.board, e.anims, e.refactorer, e.scorer, e.settings, &e.stats, e, e.listener, e.logger)
	e.dropper = NewDropper(e.board, e.anims, e.items, e.refactorer, e.settings, e.rng, e.listener, e.logger)
	e.pieces = NewPieceManager(e.board, e.rng)
	e.timer = NewTimer(e.strategy.TimeForLevel(level))

	e.items.Evaluate(e.itemStats())
	e.items.LevelChanged(level)
	e.board.Generate(e.items.Catalog(), level)
	e.logger.Debug("game started", "level", level, "preset", e.preset)
}

// Reset starts over at level. It fails with ErrBusy while tiles are moving
// or a tutorial is running.
func (e *Engine) Reset(level int) error {
	if e.Busy() || e.tutorial {
		return ErrBusy
	}
	if level < 1 {
		level = 1
	}
	e.build(level)
	return nil
}

// Busy reports whether a refactor, removal or drop is in flight.
func (e *Engine) Busy() bool {
	return e.refactorer.Refactoring() || e.remover.Removing() || e.dropper.Dropping()
}

// AwaitingMove reports whether the player can commit a piece.
func (e *Engine) AwaitingMove() bool {
	return !e.gameOver && !e.paused && e.pieces.Visible() && !e.Busy()
}

// Step advances the game by deltaMs milliseconds.
func (e *Engine) Step(deltaMs int) error {
	if e.gameOver || e.paused {
		return nil
	}
	// A move's timer starts on the step after the board settles.
	ready := e.AwaitingMove()

	e.anims.Tick(deltaMs)
	if err := e.refactorer.Update(); err != nil {
		return err
	}
	if err := e.remover.Update(); err != nil {
		return err
	}
	if !e.refactorer.Refactoring() && !e.remover.Removing() {
		over, err := e.dropper.Update()
		if err != nil {
			return err
		}
		if over {
			e.endGame()
			return nil
		}
	}

	if !e.AwaitingMove() {
		return nil
	}
	if e.stats.LevelScore >= e.stats.TargetScore {
		e.levelUp()
		return nil
	}
	if ready && !e.tutorial && e.timer.Tick(deltaMs) {
		e.timeout()
	}
	return nil
}

// Commit removes the tiles under the piece, scores them and starts the
// drop and refactor that follow a move.
func (e *Engine) Commit() error {
	switch {
	case e.gameOver:
		return ErrGameOver
	case !e.AwaitingMove():
		return ErrBusy
	}

	tiles := e.board.NewSet()
	column, row := e.pieces.Cursor()
	e.pieces.Selection(column, row, tiles, nil)

	points := e.scorer.PieceScore(tiles.Len())
	e.award(points)
	e.listener.Notify(Event{Kind: EventClick, Score: points, Level: e.stats.Level})

	e.board.RemoveTiles(tiles)
	e.items.MoveCommitted()
	if !e.tutorial {
		e.stats.Moves++
	}

	amount := e.strategy.DropAmount(e.board.NumberOfTiles(), e.board.Cells(), e.stats.Level, e.pieces.Piece().Size())
	e.dropper.SetAmount(amount)
	if amount > 0 {
		e.dropper.Start()
	}
	e.pieces.Hide()
	e.refactorer.Start()
	e.logger.Debug("move committed", "tiles", tiles.Len(), "points", points, "drop", amount)
	return nil
}

// MoveCursor shifts the piece by dc columns and dr rows.
func (e *Engine) MoveCursor(dc, dr int) {
	if e.gameOver || e.paused {
		return
	}
	e.pieces.Move(dc, dr)
}

func (e *Engine) RotateLeft() {
	if !e.gameOver && !e.paused {
		e.pieces.RotateLeft()
	}
}

func (e *Engine) RotateRight() {
	if !e.gameOver && !e.paused {
		e.pieces.RotateRight()
	}
}

// SetPaused pauses or resumes the game. A paused board is hidden.
func (e *Engine) SetPaused(p bool) {
	if e.gameOver {
		return
	}
	e.paused = p
	e.board.SetVisible(!p)
}

// SetTutorial marks tutorial play: no score, no moves counted, no timer and
// no item cooldowns.
func (e *Engine) SetTutorial(on bool) {
	e.tutorial = on
	e.items.SetTutorial(on)
}

// Save captures the game between moves.
func (e *Engine) Save() (SaveState, error) {
	switch {
	case e.gameOver:
		return SaveState{}, ErrGameOver
	case e.Busy():
		return SaveState{}, ErrBusy
	}
	return SaveState{Preset: e.preset, Stats: e.stats, Board: e.board.Save()}, nil
}

// Load resumes a saved game.
func (e *Engine) Load(s SaveState) error {
	if e.Busy() {
		return ErrBusy
	}
	if s.Board.Columns != e.board.Columns() || s.Board.Rows != e.board.Rows() {
		return fmt.Errorf("engine: load: %dx%d board: %w", s.Board.Columns, s.Board.Rows, board.ErrSnapshotShape)
	}
	if s.Preset != "" && s.Preset != e.preset {
		e.preset = s.Preset
		e.strategy = config.NewDifficultyStrategy(e.cfg.Strategy(s.Preset))
	}

	level := max(s.Stats.Level, 1)
	e.build(level)
	if err := e.board.Load(s.Board); err != nil {
		return fmt.Errorf("engine: load: %w", err)
	}
	e.stats = s.Stats
	e.stats.Level = level
	e.stats.Chain = 0
	e.stats.TargetScore = e.scorer.TargetScore(level)
	e.logger.Debug("game loaded", "level", level, "score", e.stats.Score)
	return nil
}

func (e *Engine) Stats() Stats                         { return e.stats }
func (e *Engine) Preset() config.DifficultyPreset      { return e.preset }
func (e *Engine) Board() *board.Board                  { return e.board }
func (e *Engine) Display() *layer.List                 { return e.display }
func (e *Engine) Pieces() *PieceManager                { return e.pieces }
func (e *Engine) Timer() *Timer                        { return e.timer }
func (e *Engine) Items() *item.Manager                 { return e.items }
func (e *Engine) Settings() *config.Settings           { return e.settings }
func (e *Engine) Strategy() *config.DifficultyStrategy { return e.strategy }
func (e *Engine) GameOver() bool                       { return e.gameOver }
func (e *Engine) Paused() bool                         { return e.paused }

// award adds points unless a tutorial is running.
func (e *Engine) award(points int) {
	if e.tutorial {
		return
	}
	e.stats.Score += points
	e.stats.LevelScore += points
}

// settled hands the board back to the player once no more tiles are owed.
func (e *Engine) settled() {
	if e.dropper.Dropping() {
		return
	}
	e.pieces.Load()
	e.timer.Reset(e.strategy.TimeForLevel(e.stats.Level))
}

func (e *Engine) levelUp() {
	next := e.stats.Level + 1
	e.stats.LevelScore = e.scorer.CarryOver(e.stats.LevelScore, e.stats.TargetScore, next)
	e.stats.Level = next
	e.stats.TargetScore = e.scorer.TargetScore(next)

	e.items.LevelChanged(next)
	e.items.Evaluate(e.itemStats())
	e.timer.Reset(e.strategy.TimeForLevel(next))
	e.pieces.Hide()

	e.logger.Info("level up", "level", next, "score", e.stats.Score)
	e.listener.Notify(Event{Kind: EventLevelUp, Level: next})
	e.remover.LevelUp()
}

// timeout drops tiles as if a move removing nothing had been made.
func (e *Engine) timeout() {
	amount := e.strategy.DropAmount(e.board.NumberOfTiles(), e.board.Cells(), e.stats.Level, 0)
	e.logger.Debug("move timer expired", "drop", amount)
	if amount <= 0 {
		e.timer.Reset(e.strategy.TimeForLevel(e.stats.Level))
		return
	}
	e.pieces.Hide()
	e.dropper.SetAmount(amount)
	e.dropper.Start()
}

func (e *Engine) endGame() {
	e.gameOver = true
	e.pieces.Hide()
	e.timer.SetPaused(true)
	e.logger.Info("game over", "score", e.stats.Score, "level", e.stats.Level, "moves", e.stats.Moves)
	e.listener.Notify(Event{Kind: EventGameOver, Score: e.stats.Score, Level: e.stats.Level})
}

func (e *Engine) itemStats() item.Stats {
	return item.Stats{
		Level: e.stats.Level,
		Score: e.stats.Score,
		Moves: e.stats.Moves,
		Lines: e.stats.Lines,
	}
}
