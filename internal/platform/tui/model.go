package tui

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wezzle/internal/core"
	"github.com/vovakirdan/wezzle/internal/engine"
	"github.com/vovakirdan/wezzle/internal/registry"
	"github.com/vovakirdan/wezzle/internal/storage"
)

const statusTimeout = 3 * time.Second

// Saver is implemented by games that can be snapshotted between moves.
type Saver interface {
	Save() (engine.SaveState, error)
}

// Resizer is implemented by games that can follow a terminal resize
// without restarting.
type Resizer interface {
	Resize(w, h int)
}

// Options configures a game Model.
type Options struct {
	Store         *storage.Store
	Logger        *log.Logger
	Renderer      *ScreenRenderer
	ScreenshotDir string
	// Embedded models leave the program running when the player goes back
	// to the menu; the owner checks BackToMenu instead.
	Embedded bool
}

// Model is the Bubble Tea model running one game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	renderer   *ScreenRenderer
	shotDir    string
	embedded   bool
	config     core.RuntimeConfig
	width      int
	height     int
	keys       *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	status     string
	statusAt   time.Time
	quitting   bool
	backToMenu bool
	scoreSaved bool // Whether score has been saved for current game over
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game registry.Game, cfg core.RuntimeConfig, opts Options) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Renderer == nil {
		opts.Renderer = defaultRenderer
	}

	m := Model{
		game:       game,
		store:      opts.Store,
		logger:     opts.Logger,
		renderer:   opts.Renderer,
		shotDir:    opts.ScreenshotDir,
		embedded:   opts.Embedded,
		config:     cfg,
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		keys:       NewKeyMapper(),
		help:       help.New(),
		inputFrame: core.NewInputFrame(),
	}
	m.help.Width = cfg.ScreenW
	m.config.ScreenH = m.gameHeight()
	m.screen = core.NewScreen(m.config.ScreenW, m.config.ScreenH)
	return m
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		return m.relayout(), nil

	case TickMsg:
		return m.handleTick()

	case statusClearMsg:
		if time.Time(msg).Equal(m.statusAt) {
			m.status = ""
		}
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m.relayout(), nil
	case key.Matches(msg, keys.Save):
		return m.saveSnapshot()
	case key.Matches(msg, keys.Screenshot):
		return m.saveScreenshot()
	}

	action, isQuit := m.keys.MapKey(msg)
	switch {
	case isQuit:
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
			if !m.embedded {
				return m, tea.Quit
			}
		}
		return m, nil
	case action == core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
		return m, nil
	case action != core.ActionNone:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// relayout sizes the game screen to the window minus the footer.
func (m Model) relayout() Model {
	m.config.ScreenW = m.width
	m.config.ScreenH = m.gameHeight()
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)

	if r, ok := m.game.(Resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	} else if !m.gameState.GameOver {
		m.game.Reset(m.config)
	}
	return m
}

func (m Model) gameHeight() int {
	return max(m.height-lipgloss.Height(m.footer()), 1)
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.backToMenu {
		return m, nil
	}

	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		m.config.Seed = time.Now().UnixNano()
		m.game.Reset(m.config)
		m.gameState = m.game.State()
		m.scoreSaved = false
		m.inputFrame.Clear()
		return m, tickCmd(m.config.TickRate)
	}

	result := m.game.Step(m.inputFrame)
	m.gameState = result.State

	if m.gameState.GameOver && !m.scoreSaved {
		m.saveScore()
		m.scoreSaved = true
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// saveScore records the finished game. Games without points are skipped.
func (m *Model) saveScore() {
	if m.store == nil || m.gameState.Score <= 0 {
		return
	}
	entry := storage.ScoreEntry{
		GameID:   m.game.ID(),
		Score:    m.gameState.Score,
		Level:    m.gameState.Level,
		Moves:    m.gameState.Moves,
		MaxChain: m.gameState.Chain,
	}
	if _, err := m.store.SaveScore(entry); err != nil {
		m.logger.Error("cannot save score", "game", entry.GameID, "error", err)
		return
	}
	m.logger.Info("score saved", "game", entry.GameID, "score", entry.Score, "level", entry.Level)
}

// saveSnapshot stores the running game so it can be resumed later.
func (m Model) saveSnapshot() (tea.Model, tea.Cmd) {
	saver, ok := m.game.(Saver)
	if !ok || m.store == nil {
		return m.setStatus("Saving is not available")
	}

	state, err := saver.Save()
	switch {
	case errors.Is(err, engine.ErrBusy):
		return m.setStatus("Wait for the board to settle, then save")
	case errors.Is(err, engine.ErrGameOver):
		return m.setStatus("The game is over")
	case err != nil:
		m.logger.Error("cannot snapshot game", "error", err)
		return m.setStatus("Save failed")
	}

	id, err := m.store.SaveSnapshot(m.game.ID(), state)
	if err != nil {
		m.logger.Error("cannot store snapshot", "error", err)
		return m.setStatus("Save failed")
	}
	m.logger.Info("game saved", "id", id, "level", state.Stats.Level, "score", state.Stats.Score)
	return m.setStatus(fmt.Sprintf("Saved game #%d", id))
}

// saveScreenshot writes the current screen as plain text.
func (m Model) saveScreenshot() (tea.Model, tea.Cmd) {
	m.game.Render(m.screen)

	dir := m.shotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return m.setStatus("Screenshot failed")
		}
		dir = filepath.Join(home, ".wezzle", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Error("cannot create screenshot directory", "dir", dir, "error", err)
		return m.setStatus("Screenshot failed")
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Error("cannot write screenshot", "path", path, "error", err)
		return m.setStatus("Screenshot failed")
	}
	return m.setStatus("Screenshot saved to " + path)
}

func (m Model) setStatus(s string) (tea.Model, tea.Cmd) {
	m.status = s
	m.statusAt = time.Now()
	return m, clearStatusAfter(statusTimeout, m.statusAt)
}

func (m Model) footer() string {
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return helpStyle.Render(m.help.View(m.keys.Keys()))
}

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(m.renderer.Render(m.screen))
	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState { return m.gameState }

// IsQuitting returns true if user requested to quit entirely.
func (m Model) IsQuitting() bool { return m.quitting }

// BackToMenu returns true if user requested to go back to menu.
func (m Model) BackToMenu() bool { return m.backToMenu }

// Run plays game until the player quits or goes back to the menu.
func Run(game registry.Game, cfg core.RuntimeConfig, opts Options) error {
	model := NewModel(game, cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
