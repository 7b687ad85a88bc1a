package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/wezzle/internal/config"
)

func TestLevels(t *testing.T) {
	cfg := config.DefaultWezzleConfig()
	easy := Levels(cfg, config.DifficultyEasy, 5)
	if len(easy) != 5 {
		t.Fatalf("got %d levels, want 5", len(easy))
	}
	for i, l := range easy {
		if l.Level != i+1 {
			t.Errorf("levels[%d].Level = %d", i, l.Level)
		}
		if l.Target != (i+1)*cfg.Scoring.TargetPerLevel {
			t.Errorf("level %d target = %d", l.Level, l.Target)
		}
		if i > 0 && l.Seconds > easy[i-1].Seconds {
			t.Errorf("level %d has more time than level %d", l.Level, l.Level-1)
		}
	}

	hard := Levels(cfg, config.DifficultyHard, 1)
	if hard[0].Seconds > easy[0].Seconds {
		t.Errorf("hard gives %ds, easy %ds", hard[0].Seconds, easy[0].Seconds)
	}
}

func levelUpdate(t *testing.T, m LevelModel, msg tea.Msg) LevelModel {
	t.Helper()
	next, _ := m.Update(msg)
	lm, ok := next.(LevelModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return lm
}

func TestLevelModelSelect(t *testing.T) {
	levels := Levels(config.DefaultWezzleConfig(), config.DifficultyEasy, SelectableLevels)
	enter := tea.KeyMsg{Type: tea.KeyEnter}
	down := tea.KeyMsg{Type: tea.KeyDown}

	m := levelUpdate(t, NewLevelModel("Wezzle", levels, 80, 24), enter)
	if m.Level() != 1 {
		t.Errorf("start = level %d, want 1", m.Level())
	}

	m = NewLevelModel("Wezzle", levels, 80, 24)
	m = levelUpdate(t, m, down)
	m = levelUpdate(t, m, enter)
	if m.Level() != 0 {
		t.Fatal("entering the level list chose a level")
	}
	for range 3 {
		m = levelUpdate(t, m, down)
	}
	m = levelUpdate(t, m, enter)
	if m.Level() != 4 {
		t.Errorf("chose level %d, want 4", m.Level())
	}
}

func TestLevelModelBack(t *testing.T) {
	levels := Levels(config.DefaultWezzleConfig(), config.DifficultyEasy, 3)
	esc := tea.KeyMsg{Type: tea.KeyEsc}

	m := NewLevelModel("Wezzle", levels, 80, 24)
	m = levelUpdate(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = levelUpdate(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = levelUpdate(t, m, esc)
	if m.WantsBack() {
		t.Fatal("esc in the level list left the selector")
	}
	m = levelUpdate(t, m, esc)
	if !m.WantsBack() || m.Level() != 0 {
		t.Errorf("back = %v, level = %d", m.WantsBack(), m.Level())
	}
}
