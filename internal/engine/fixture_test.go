package engine

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/wezzle/internal/anim"
	"github.com/vovakirdan/wezzle/internal/board"
	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/item"
	"github.com/vovakirdan/wezzle/internal/layer"
	"github.com/vovakirdan/wezzle/internal/tile"
)

// rig wires the engine components around an empty board, without an Engine.
type rig struct {
	cfg        config.WezzleConfig
	settings   *config.Settings
	anims      *anim.Manager
	items      *item.Manager
	board      *board.Board
	scorer     *Scorer
	refactorer *Refactorer
	remover    *Remover
	dropper    *Dropper
	stats      Stats
	hooks      *fakeHooks
	events     *recorder
}

type fakeHooks struct {
	points  []int
	settles int
}

func (h *fakeHooks) award(points int) { h.points = append(h.points, points) }
func (h *fakeHooks) settled()         { h.settles++ }

func (h *fakeHooks) total() int {
	sum := 0
	for _, p := range h.points {
		sum += p
	}
	return sum
}

type recorder struct {
	events []Event
}

func (r *recorder) Notify(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func (r *recorder) count(k EventKind) int {
	n := 0
	for _, e := range r.events {
		if e.Kind == k {
			n++
		}
	}
	return n
}

func newRig(t *testing.T, seed int64) *rig {
	t.Helper()

	cfg := config.DefaultWezzleConfig()
	rng := rand.New(rand.NewSource(seed))
	r := &rig{
		cfg:      cfg,
		settings: config.NewSettings(cfg),
		anims:    anim.NewManager(),
		hooks:    &fakeHooks{},
		events:   &recorder{},
	}
	r.items = item.NewManager(cfg.Items, nil, rng, nil)
	r.board = board.New(r.settings, r.anims, layer.NewList(), r.items, rng, nil)
	strategy := config.NewDifficultyStrategy(cfg.Strategy(config.DifficultyEasy))
	r.scorer = NewScorer(r.settings, strategy)
	r.refactorer = NewRefactorer(r.board, r.anims, r.settings, config.SpeedNormal, nil)
	r.stats.Level = 1
	r.remover = NewRemover(r.board, r.anims, r.refactorer, r.scorer, r.settings, &r.stats, r.hooks, r.events, nil)
	r.dropper = NewDropper(r.board, r.anims, r.items, r.refactorer, r.settings, rng, r.events, nil)
	return r
}

// put creates a tile at (column, row).
func (r *rig) put(column, row int, t tile.Type, c tile.Color) *tile.Tile {
	return r.board.CreateTile(r.board.Index(column, row), t, c)
}

// run ticks the components the way Engine.Step does until nothing is
// pending.
func (r *rig) run(t *testing.T) {
	t.Helper()
	for i := 0; ; i++ {
		if i > 20000 {
			t.Fatal("board never settled")
		}
		r.anims.Tick(16)
		if err := r.refactorer.Update(); err != nil {
			t.Fatalf("refactor: %v", err)
		}
		if err := r.remover.Update(); err != nil {
			t.Fatalf("remove: %v", err)
		}
		if !r.refactorer.Refactoring() && !r.remover.Removing() {
			if _, err := r.dropper.Update(); err != nil {
				t.Fatalf("drop: %v", err)
			}
		}
		if !r.refactorer.Refactoring() && !r.remover.Removing() && !r.dropper.Dropping() && !r.anims.Busy() {
			return
		}
	}
}

// checkCount fails if the live cells and the tile counter disagree.
func checkCount(t *testing.T, b *board.Board) {
	t.Helper()
	if live, n := b.CountLiveCells(), b.NumberOfTiles(); live != n {
		t.Fatalf("live cells = %d, tile counter = %d", live, n)
	}
}

func newEngine(t *testing.T, seed int64, preset config.DifficultyPreset) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	e, err := New(Options{
		Config:   config.DefaultWezzleConfig(),
		Preset:   preset,
		Seed:     seed,
		Listener: rec,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return e, rec
}

// settle steps the engine until it waits for a move or the game ends.
func settle(t *testing.T, e *Engine) {
	t.Helper()
	for i := 0; !e.AwaitingMove() && !e.GameOver(); i++ {
		if i > 50000 {
			t.Fatal("engine never settled")
		}
		if err := e.Step(16); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
}
