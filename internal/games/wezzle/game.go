// Package wezzle adapts the engine to the platform's Game interface and
// draws it into a core.Screen. It registers one mode per difficulty preset.
package wezzle

import (
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/core"
	"github.com/vovakirdan/wezzle/internal/engine"
	"github.com/vovakirdan/wezzle/internal/registry"
)

// Mode IDs, also used as score and snapshot keys.
const (
	IDEasy = "wezzle"
	IDHard = "wezzle_hard"
)

// Game is one wezzle mode. The engine is created on Reset.
type Game struct {
	id     string
	title  string
	preset config.DifficultyPreset
	cfg    config.WezzleConfig
	logger *log.Logger
	events engine.Listener

	eng        *engine.Engine
	rc         core.RuntimeConfig
	startLevel int
	resume     *engine.SaveState
	err        error
	tooSmall   bool
}

func init() {
	registry.Register(IDEasy, func(deps registry.Deps) registry.Game {
		return New(IDEasy, "Wezzle", config.DifficultyEasy, deps)
	})
	registry.Register(IDHard, func(deps registry.Deps) registry.Game {
		return New(IDHard, "Wezzle (Hard)", config.DifficultyHard, deps)
	})
}

// New creates a mode playing preset. A zero deps.Config means the built-in
// defaults.
func New(id, title string, preset config.DifficultyPreset, deps registry.Deps) *Game {
	cfg := deps.Config
	if cfg.Board.Columns == 0 {
		cfg = config.DefaultWezzleConfig()
	}
	logger := deps.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Game{
		id:     id,
		title:  title,
		preset: preset,
		cfg:    cfg,
		logger: logger,
		events: deps.Listener,
	}
}

// ModeFor returns the mode ID that plays preset.
func ModeFor(preset config.DifficultyPreset) string {
	if preset == config.DifficultyHard {
		return IDHard
	}
	return IDEasy
}

func (g *Game) ID() string    { return g.id }
func (g *Game) Title() string { return g.title }

// SetStartLevel makes the next Reset start at level instead of 1.
func (g *Game) SetStartLevel(level int) {
	g.startLevel = level
}

// Resume makes the next Reset continue s instead of starting a new game.
func (g *Game) Resume(s engine.SaveState) {
	g.resume = &s
}

// Reset starts a new game, or the pending resumed one.
func (g *Game) Reset(rc core.RuntimeConfig) {
	g.rc = rc
	g.err = nil
	g.checkScreenSize()

	eng, err := engine.New(engine.Options{
		Config:   g.cfg,
		Preset:   g.preset,
		Level:    g.startLevel,
		Seed:     rc.Seed,
		Listener: g.events,
		Logger:   g.logger,
	})
	if err != nil {
		g.logger.Error("cannot start game", "mode", g.id, "error", err)
		g.err = err
		g.eng = nil
		return
	}
	g.eng = eng

	if g.resume != nil {
		s := *g.resume
		g.resume = nil
		if err := eng.Load(s); err != nil {
			g.logger.Warn("cannot resume game, starting a new one", "mode", g.id, "error", err)
		} else {
			g.logger.Info("game resumed", "mode", g.id, "level", s.Stats.Level, "score", s.Stats.Score)
		}
	}
}

// Step applies the frame's actions, then advances the engine by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.eng == nil {
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.eng.SetPaused(!g.eng.Paused())
	}

	switch {
	case in.Has(core.ActionUp):
		g.eng.MoveCursor(0, -1)
	case in.Has(core.ActionDown):
		g.eng.MoveCursor(0, 1)
	case in.Has(core.ActionLeft):
		g.eng.MoveCursor(-1, 0)
	case in.Has(core.ActionRight):
		g.eng.MoveCursor(1, 0)
	}

	switch {
	case in.Has(core.ActionRotateLeft):
		g.eng.RotateLeft()
	case in.Has(core.ActionRotateRight):
		g.eng.RotateRight()
	}

	if in.Has(core.ActionCommit) {
		if err := g.eng.Commit(); err != nil && !errors.Is(err, engine.ErrBusy) && !errors.Is(err, engine.ErrGameOver) {
			g.logger.Error("commit failed", "error", err)
		}
	}

	if err := g.eng.Step(g.rc.TickMillis()); err != nil {
		g.logger.Error("engine stopped", "mode", g.id, "error", err)
		g.err = err
	}

	return core.StepResult{State: g.State()}
}

// State maps the engine stats to the platform's view of the game.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		return core.GameState{GameOver: g.err != nil}
	}
	s := g.eng.Stats()
	return core.GameState{
		Score:    s.Score,
		Level:    s.Level,
		Moves:    s.Moves,
		Lines:    s.Lines,
		Chain:    s.MaxChain,
		GameOver: g.eng.GameOver() || g.err != nil,
		Paused:   g.eng.Paused(),
		Busy:     g.eng.Busy(),
	}
}

// Save captures the running game between moves.
func (g *Game) Save() (engine.SaveState, error) {
	if g.eng == nil {
		return engine.SaveState{}, engine.ErrGameOver
	}
	return g.eng.Save()
}

// Preset returns the difficulty the mode plays.
func (g *Game) Preset() config.DifficultyPreset { return g.preset }

// Config returns the configuration the mode plays with.
func (g *Game) Config() config.WezzleConfig { return g.cfg }

// Engine returns the running engine, nil before the first Reset.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Err returns the error that stopped the game, if any.
func (g *Game) Err() error {
	return g.err
}

// Controls returns the control hints for the game.
func (g *Game) Controls() string {
	return "Arrows/WASD: Move | Z/X: Rotate | Space: Commit | P: Pause | R: Restart | Q: Quit"
}

func (g *Game) checkScreenSize() {
	w, h := g.layoutSize()
	g.tooSmall = g.rc.ScreenW < w || g.rc.ScreenH < h
}
