package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wezzle/internal/engine"
	"github.com/vovakirdan/wezzle/internal/registry"
	"github.com/vovakirdan/wezzle/internal/storage"
)

const maxSnapshots = 50

// SnapshotKeyMap defines the key bindings for the saved games browser.
type SnapshotKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Resume key.Binding
	Delete key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SnapshotKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Resume, k.Delete, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k SnapshotKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultSnapshotKeyMap returns default key bindings.
func DefaultSnapshotKeyMap() SnapshotKeyMap {
	return SnapshotKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "down"),
		),
		Resume: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "resume"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// SnapshotsModel lists saved games and lets the player pick one to resume.
type SnapshotsModel struct {
	store     *storage.Store
	snapshots []storage.SnapshotInfo
	table     table.Model
	help      help.Model
	keys      SnapshotKeyMap
	width     int
	height    int
	err       error
	chosen    int64
	quitting  bool
	goingBack bool
}

// NewSnapshotsModel loads the most recent saved games.
func NewSnapshotsModel(store *storage.Store, width, height int) SnapshotsModel {
	m := SnapshotsModel{
		store:  store,
		help:   help.New(),
		keys:   DefaultSnapshotKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.reload()
	return m
}

func (m *SnapshotsModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 5},
		{Title: "Mode", Width: 14},
		{Title: "Level", Width: 5},
		{Title: "Score", Width: 8},
		{Title: "Tiles", Width: 5},
		{Title: "Saved", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload queries the store and refreshes the rows.
func (m *SnapshotsModel) reload() {
	m.snapshots = nil
	if m.store != nil {
		snaps, err := m.store.ListSnapshots("", maxSnapshots)
		m.err = err
		m.snapshots = snaps
	}

	rows := make([]table.Row, len(m.snapshots))
	for i, s := range m.snapshots {
		rows[i] = table.Row{
			fmt.Sprintf("%d", s.ID),
			registry.Title(s.GameID),
			fmt.Sprintf("%d", s.Level),
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Tiles),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m SnapshotsModel) selected() (storage.SnapshotInfo, bool) {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.snapshots) {
		return storage.SnapshotInfo{}, false
	}
	return m.snapshots[i], true
}

// Init initializes the model.
func (m SnapshotsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the browser.
func (m SnapshotsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Resume):
			if s, ok := m.selected(); ok {
				m.chosen = s.ID
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.Delete):
			if s, ok := m.selected(); ok {
				m.err = m.store.DeleteSnapshot(s.ID)
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.table = m.createTable()
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the browser.
func (m SnapshotsModel) View() string {
	if m.quitting || m.goingBack || m.chosen != 0 {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229"))
	b.WriteString(titleStyle.Render(centerText("SAVED GAMES", m.width)))
	b.WriteString("\n\n")

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	var content string
	if len(m.snapshots) == 0 {
		content = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4).
			Render("No saved games.\nPress ctrl+s during a game to save it.")
	} else {
		content = m.table.View()
	}
	b.WriteString(centerText(boxStyle.Render(content), m.width))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render(m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keys)))
	return b.String()
}

// Chosen returns the ID of the snapshot to resume, 0 if none.
func (m SnapshotsModel) Chosen() int64 { return m.chosen }

// IsGoingBack returns true if user wants to go back to the menu.
func (m SnapshotsModel) IsGoingBack() bool { return m.goingBack }

// IsQuitting returns true if user wants to quit entirely.
func (m SnapshotsModel) IsQuitting() bool { return m.quitting }

// SnapshotResult is the outcome of the saved games browser.
type SnapshotResult struct {
	ID     int64 // snapshot to resume, 0 if none
	GoBack bool
}

// RunSnapshots runs the saved games browser.
func RunSnapshots(store *storage.Store, width, height int) (SnapshotResult, error) {
	p := tea.NewProgram(
		NewSnapshotsModel(store, width, height),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return SnapshotResult{}, err
	}

	m, ok := finalModel.(SnapshotsModel)
	if !ok {
		return SnapshotResult{}, nil
	}
	return SnapshotResult{ID: m.Chosen(), GoBack: m.IsGoingBack()}, nil
}

// Resumer is implemented by games that can continue a saved game.
type Resumer interface {
	Resume(s engine.SaveState)
}

// LoadGame creates the mode snapshot id was saved from, primed to resume it
// on its first Reset.
func LoadGame(store *storage.Store, id int64, deps registry.Deps) (registry.Game, error) {
	if store == nil {
		return nil, fmt.Errorf("tui: load snapshot %d: no database", id)
	}
	gameID, state, err := store.LoadSnapshot(id)
	if err != nil {
		return nil, err
	}
	game, err := registry.Create(gameID, deps)
	if err != nil {
		return nil, err
	}
	r, ok := game.(Resumer)
	if !ok {
		return nil, fmt.Errorf("tui: mode %q cannot resume saved games", gameID)
	}
	r.Resume(state)
	return game, nil
}
