package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/core"
	"github.com/vovakirdan/wezzle/internal/engine"
)

// SelectableLevels is how many start levels the selector offers.
const SelectableLevels = 15

// LevelInfo describes one start level.
type LevelInfo struct {
	Level   int
	Target  int // points needed to clear the level
	Seconds int // move timer
}

// Levels describes the first n levels of preset.
func Levels(cfg config.WezzleConfig, preset config.DifficultyPreset, n int) []LevelInfo {
	strategy := config.NewDifficultyStrategy(cfg.Strategy(preset))
	scorer := engine.NewScorer(config.NewSettings(cfg), strategy)

	levels := make([]LevelInfo, n)
	for i := range levels {
		level := i + 1
		levels[i] = LevelInfo{
			Level:   level,
			Target:  scorer.TargetScore(level),
			Seconds: strategy.TimeForLevel(level) / 1000,
		}
	}
	return levels
}

// LevelModel lets users start a mode from level 1 or pick a later level.
type LevelModel struct {
	title         string
	levels        []LevelInfo
	cursor        int
	levelCursor   int
	inLevelSelect bool
	width         int
	height        int
	keyMapper     *KeyMapper
	level         int // chosen start level, 0 while choosing
	quitting      bool
	back          bool
}

// NewLevelModel creates a start level selector for the mode called title.
func NewLevelModel(title string, levels []LevelInfo, width, height int) LevelModel {
	return LevelModel{
		title:     title,
		levels:    levels,
		width:     width,
		height:    height,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the model.
func (m LevelModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m LevelModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleStartKey(action)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

func (m LevelModel) handleStartKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		m.cursor = 0
	case MenuActionDown:
		if len(m.levels) > 1 {
			m.cursor = 1
		}
	case MenuActionSelect:
		if m.cursor == 0 {
			m.level = 1
			return m, tea.Quit
		}
		m.inLevelSelect = true
		m.levelCursor = 0
	case MenuActionBack:
		m.back = true
		return m, tea.Quit
	}
	return m, nil
}

func (m LevelModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < len(m.levels)-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		m.level = m.levels[m.levelCursor].Level
		return m, tea.Quit
	case MenuActionBack:
		m.inLevelSelect = false
	}
	return m, nil
}

var (
	levelTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	levelHintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// View renders the selector.
func (m LevelModel) View() string {
	if m.quitting || m.back || m.level != 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	if m.inLevelSelect {
		b.WriteString(levelTitleStyle.Render(centerText("SELECT LEVEL", m.width)))
		b.WriteString("\n\n")
		for i, l := range m.levels {
			cursor := "  "
			if i == m.levelCursor {
				cursor = "> "
			}
			line := fmt.Sprintf("%sLevel %2d   target %5d   %3ds", cursor, l.Level, l.Target, l.Seconds)
			b.WriteString(centerText(line, m.width))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(levelTitleStyle.Render(centerText(strings.ToUpper(m.title), m.width)))
		b.WriteString("\n\n")
		for i, opt := range []string{"Start at level 1", "Select level..."} {
			cursor := "  "
			if i == m.cursor {
				cursor = "> "
			}
			b.WriteString(centerText(cursor+opt, m.width))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(levelHintStyle.Render(centerText("Enter: Select  |  Esc: Back  |  Q: Quit", m.width)))
	return b.String()
}

// Level returns the chosen start level, 0 if none was chosen.
func (m LevelModel) Level() int { return m.level }

// IsQuitting returns true if user wants to quit.
func (m LevelModel) IsQuitting() bool { return m.quitting }

// WantsBack returns true if user pressed back.
func (m LevelModel) WantsBack() bool { return m.back }

// RunLevelSelector asks for the start level of the mode called title. It
// returns 0 when the player backed out or quit.
func RunLevelSelector(cfg core.RuntimeConfig, title string, levels []LevelInfo) (int, error) {
	p := tea.NewProgram(
		NewLevelModel(title, levels, cfg.ScreenW, cfg.ScreenH),
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return 0, err
	}

	m, ok := finalModel.(LevelModel)
	if !ok {
		return 0, nil
	}
	return m.Level(), nil
}
