package tui

import (
	"io"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wezzle/internal/core"
	"github.com/vovakirdan/wezzle/internal/engine"
	"github.com/vovakirdan/wezzle/internal/games/wezzle"
	"github.com/vovakirdan/wezzle/internal/registry"
	"github.com/vovakirdan/wezzle/internal/storage"
)

// scriptedGame ends after a fixed number of steps.
type scriptedGame struct {
	steps    int
	endAfter int
	resets   int
	seen     []core.InputFrame
	state    core.GameState
	saveErr  error
}

func (g *scriptedGame) ID() string    { return "scripted" }
func (g *scriptedGame) Title() string { return "Scripted" }

func (g *scriptedGame) Reset(core.RuntimeConfig) {
	g.resets++
	g.steps = 0
	g.state = core.GameState{Level: 1}
}

func (g *scriptedGame) Step(in core.InputFrame) core.StepResult {
	g.steps++
	frame := core.NewInputFrame()
	for a := range in.Actions {
		frame.Set(a)
	}
	g.seen = append(g.seen, frame)
	if in.Has(core.ActionPause) {
		g.state.Paused = !g.state.Paused
	}
	if g.steps >= g.endAfter {
		g.state = core.GameState{Score: 420, Level: 3, Moves: 12, Chain: 4, GameOver: true}
	}
	return core.StepResult{State: g.state}
}

func (g *scriptedGame) Render(dst *core.Screen) { dst.DrawText(0, 0, "scripted") }
func (g *scriptedGame) State() core.GameState   { return g.state }

func (g *scriptedGame) Save() (engine.SaveState, error) {
	return engine.SaveState{}, g.saveErr
}

func openStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func newTestModel(g registry.Game, store *storage.Store) Model {
	m := NewModel(g, core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1}, Options{
		Store:    store,
		Renderer: NewScreenRenderer(lipgloss.NewRenderer(io.Discard)),
		Embedded: true,
	})
	m.Init()
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelSavesScoreOnce(t *testing.T) {
	store := openStore(t)
	g := &scriptedGame{endAfter: 2}
	m := newTestModel(g, store)

	for range 5 {
		m, _ = update(t, m, TickMsg{})
	}

	scores, err := store.TopScores("scripted", 10)
	if err != nil {
		t.Fatalf("TopScores: %v", err)
	}
	if len(scores) != 1 {
		t.Fatalf("saved %d scores, want 1", len(scores))
	}
	s := scores[0]
	if s.Score != 420 || s.Level != 3 || s.Moves != 12 || s.MaxChain != 4 {
		t.Errorf("saved entry = %+v", s)
	}
}

func TestModelActionsReachGame(t *testing.T) {
	g := &scriptedGame{endAfter: 100}
	m := newTestModel(g, nil)

	m, _ = update(t, m, runeKey('x'))
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, TickMsg{})

	if len(g.seen) != 2 {
		t.Fatalf("steps = %d, want 2", len(g.seen))
	}
	if !g.seen[0].Has(core.ActionRotateRight) || !g.seen[0].Has(core.ActionCommit) {
		t.Errorf("first frame = %v, want rotate and commit", g.seen[0].Actions)
	}
	if g.seen[1].Has(core.ActionCommit) {
		t.Error("frame not cleared after a tick")
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	g := &scriptedGame{endAfter: 3}
	m := newTestModel(g, nil)

	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	if g.resets != 1 {
		t.Fatalf("restart honoured mid-game: resets = %d", g.resets)
	}

	for range 3 {
		m, _ = update(t, m, TickMsg{})
	}
	if !m.State().GameOver {
		t.Fatal("game should be over")
	}
	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	if g.resets != 2 {
		t.Errorf("resets = %d, want 2", g.resets)
	}
}

func TestModelBackToMenu(t *testing.T) {
	g := &scriptedGame{endAfter: 100}
	m := newTestModel(g, nil)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.BackToMenu() {
		t.Fatal("back honoured during play")
	}

	m, _ = update(t, m, runeKey('p'))
	m, _ = update(t, m, TickMsg{})
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.BackToMenu() {
		t.Fatal("back ignored while paused")
	}
	if cmd != nil {
		t.Error("embedded model should not quit the program")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(&scriptedGame{endAfter: 100}, nil)
	m, cmd := update(t, m, runeKey('q'))
	if !m.IsQuitting() || cmd == nil {
		t.Error("q did not quit")
	}
	if m.View() != "" {
		t.Error("view not empty after quitting")
	}
}

func TestModelSaveSnapshot(t *testing.T) {
	store := openStore(t)

	g := wezzle.New(wezzle.IDEasy, "Wezzle", "easy", registry.Deps{})
	m := newTestModel(g, store)
	for i := 0; !g.Engine().AwaitingMove(); i++ {
		if i > 10000 {
			t.Fatal("game never waited for a move")
		}
		m, _ = update(t, m, TickMsg{})
	}

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.HasPrefix(m.status, "Saved game #") {
		t.Fatalf("status = %q", m.status)
	}
	snaps, err := store.ListSnapshots(wezzle.IDEasy, 10)
	if err != nil {
		t.Fatalf("ListSnapshots: %v", err)
	}
	if len(snaps) != 1 {
		t.Fatalf("snapshots = %d, want 1", len(snaps))
	}

	resumed, err := LoadGame(store, snaps[0].ID, registry.Deps{})
	if err != nil {
		t.Fatalf("LoadGame: %v", err)
	}
	resumed.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 2})
	if got, want := resumed.(*wezzle.Game).Engine().Board().String(), g.Engine().Board().String(); got != want {
		t.Errorf("resumed board =\n%s\nwant\n%s", got, want)
	}
}

func TestModelSaveWhileBusy(t *testing.T) {
	store := openStore(t)
	m := newTestModel(&scriptedGame{endAfter: 100, saveErr: engine.ErrBusy}, store)

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlS})
	if !strings.Contains(m.status, "settle") {
		t.Errorf("status = %q", m.status)
	}
	if cmd == nil {
		t.Error("status should schedule its own removal")
	}
	if snaps, _ := store.ListSnapshots("", 10); len(snaps) != 0 {
		t.Errorf("stored %d snapshots while busy", len(snaps))
	}
}

func TestModelViewHasFooter(t *testing.T) {
	m := newTestModel(&scriptedGame{endAfter: 100}, nil)
	out := m.View()
	if !strings.HasPrefix(out, "scripted") {
		t.Errorf("view does not start with the game screen: %q", out[:min(len(out), 40)])
	}
	if !strings.Contains(out, "commit") {
		t.Error("help footer missing")
	}
}

func TestScreenRendererPlain(t *testing.T) {
	scr := core.NewScreen(6, 2)
	scr.DrawTextColored(0, 0, "ab", core.ColorRed)
	scr.DrawText(2, 0, "cd")
	scr.DrawTextColored(0, 1, "xyz", core.ColorGray)

	r := NewScreenRenderer(lipgloss.NewRenderer(io.Discard))
	if got, want := r.Render(scr), scr.String(); got != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}
