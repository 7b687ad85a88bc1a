package item

import (
	"math/rand"
	"testing"

	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/tile"
)

// sequenceSource feeds scripted values to rand.Intn. Each value must be
// below the n it is drawn against.
type sequenceSource struct {
	t      *testing.T
	values []int
}

func (s *sequenceSource) Int63() int64 {
	if len(s.values) == 0 {
		s.t.Fatal("sequenceSource exhausted")
	}
	v := s.values[0]
	s.values = s.values[1:]
	return int64(v) << 32
}

func (s *sequenceSource) Seed(int64) {}

func scripted(t *testing.T, values ...int) *rand.Rand {
	return rand.New(&sequenceSource{t: t, values: values})
}

func multiplierCatalog() config.ItemsConfig {
	return config.ItemsConfig{
		MaximumItems:       3,
		MaximumMultipliers: 3,
		StarCooldown:       4,
		Catalog: []config.ItemConfig{
			{Type: tile.Normal, Initial: 28, Weight: 5, Max: 100},
			{Type: tile.X2, Weight: 50, Max: 3},
			{Type: tile.X3, Weight: 20, Max: 1},
			{Type: tile.X4, Weight: 10, Max: 1},
			{Type: tile.Star, Weight: 0, Max: 1},
		},
	}
}

func TestGetItemSingleCandidate(t *testing.T) {
	cfg := config.ItemsConfig{
		MaximumItems:       3,
		MaximumMultipliers: 3,
		Catalog: []config.ItemConfig{
			{Type: tile.Normal, Weight: 5, Max: 100},
			{Type: tile.X2, Weight: 37, Max: 3},
		},
	}
	m := NewManager(cfg, nil, rand.New(rand.NewSource(3)), nil)

	for i := 0; i < 1000; i++ {
		got := m.GetItem(0, 0)
		if got != tile.X2 && got != tile.Normal {
			t.Fatalf("GetItem returned %v with X2 as the only candidate", got)
		}
	}
}

func TestGetItemForcedDraws(t *testing.T) {
	tests := []struct {
		name     string
		draw     int
		expected tile.Type
	}{
		{"first bucket start", 0, tile.X2},
		{"second bucket start", 50, tile.X3},
		{"last draw picks last candidate", 79, tile.X4},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// no normal override, multiplier pool, then the weighted draw
			m := NewManager(multiplierCatalog(), nil, scripted(t, 50, 99, tc.draw), nil)
			if got := m.GetItem(0, 0); got != tc.expected {
				t.Errorf("GetItem() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestGetItemNormalOverride(t *testing.T) {
	m := NewManager(multiplierCatalog(), nil, scripted(t, 5), nil)
	if got := m.GetItem(0, 0); got != tile.Normal {
		t.Errorf("a draw of 5 should force NORMAL, got %v", got)
	}

	m = NewManager(multiplierCatalog(), nil, scripted(t, 6, 0, 0), nil)
	if got := m.GetItem(0, 0); got != tile.X2 {
		t.Errorf("a draw of 6 should not force NORMAL, got %v", got)
	}
}

func TestGetItemBothPoolsCapped(t *testing.T) {
	m := NewManager(multiplierCatalog(), nil, scripted(t, 50, 0), nil)
	if got := m.GetItem(3, 3); got != tile.Normal {
		t.Errorf("capped pools should yield NORMAL, got %v", got)
	}
}

func TestGetItemSkipsCappedTypes(t *testing.T) {
	m := NewManager(multiplierCatalog(), nil, scripted(t, 50, 99, 29), nil)
	m.Added(tile.X3) // X3 is now at its cap of 1

	if w := m.Item(tile.X3).EffectiveWeight(); w != 0 {
		t.Fatalf("EffectiveWeight() at cap = %d, expected 0", w)
	}
	// Candidates are X2 (50) and X4 (10): a draw of 29 lands in X2.
	if got := m.GetItem(0, 1); got != tile.X2 {
		t.Errorf("GetItem() = %v, expected x2", got)
	}
}

func TestStarCooldown(t *testing.T) {
	m := NewManager(multiplierCatalog(), nil, scripted(t, 50, 0, 0, 50, 0), nil)
	m.Tune(tile.Star, 0, 10, 1)

	// Multipliers capped, so the item pool is used and star is the only item.
	if got := m.GetItem(0, 3); got != tile.Star {
		t.Fatalf("GetItem() = %v, expected star", got)
	}
	if cd := m.Item(tile.Star).Cooldown; cd != 4 {
		t.Fatalf("star cooldown = %d, expected 4", cd)
	}

	if got := m.GetItem(0, 3); got != tile.Normal {
		t.Errorf("star on cooldown should not spawn, got %v", got)
	}

	m.SetTutorial(true)
	m.MoveCommitted()
	if cd := m.Item(tile.Star).Cooldown; cd != 4 {
		t.Errorf("tutorial moves should not tick cooldowns, got %d", cd)
	}

	m.SetTutorial(false)
	for i := 0; i < 6; i++ {
		m.MoveCommitted()
	}
	if cd := m.Item(tile.Star).Cooldown; cd != 0 {
		t.Errorf("cooldown after 6 moves = %d, expected 0", cd)
	}
}

func TestAddedRemovedIgnoreNormal(t *testing.T) {
	m := NewManager(multiplierCatalog(), nil, rand.New(rand.NewSource(1)), nil)

	m.Added(tile.Normal)
	m.Added(tile.X2)
	m.Added(tile.X2)
	m.Removed(tile.X2)
	m.Removed(tile.X4) // never below zero

	if n := m.Item(tile.Normal).CurrentAmount; n != 0 {
		t.Errorf("NORMAL should not be counted, got %d", n)
	}
	if n := m.Item(tile.X2).CurrentAmount; n != 1 {
		t.Errorf("X2 count = %d, expected 1", n)
	}
	if n := m.Item(tile.X4).CurrentAmount; n != 0 {
		t.Errorf("X4 count = %d, expected 0", n)
	}

	m.ResetCounts()
	if n := m.Item(tile.X2).CurrentAmount; n != 0 {
		t.Errorf("ResetCounts left X2 at %d", n)
	}
}

func TestLevelRules(t *testing.T) {
	cfg := config.DefaultWezzleConfig()
	m := NewManager(cfg.Items, LevelRules(cfg.Rules), rand.New(rand.NewSource(1)), nil)

	if m.Unlocked(tile.Rocket) {
		t.Fatal("rocket should start locked")
	}

	m.Evaluate(Stats{Level: 3})
	if !m.Unlocked(tile.Rocket) {
		t.Error("rocket should unlock at level 3")
	}
	if it := m.Item(tile.Rocket); it.Weight != 55 || it.MaxOnBoard != 3 || it.InitialAmount != 1 {
		t.Errorf("rocket tuned to %+v", *it)
	}
	if m.PendingRules() != 3 {
		t.Errorf("PendingRules() = %d, expected 3", m.PendingRules())
	}

	// A rule fires once even if its predicate keeps holding.
	m.Item(tile.Rocket).Weight = 1
	m.Evaluate(Stats{Level: 3})
	if m.Item(tile.Rocket).Weight != 1 {
		t.Error("a fired rule should not apply again")
	}

	m.Evaluate(Stats{Level: 10})
	if m.PendingRules() != 0 {
		t.Errorf("all rules should have fired by level 10, %d pending", m.PendingRules())
	}
}

func TestLevelChanged(t *testing.T) {
	cfg := config.DefaultWezzleConfig()
	m := NewManager(cfg.Items, nil, rand.New(rand.NewSource(1)), nil)

	m.LevelChanged(1)
	if n := m.Item(tile.Normal).CurrentAmount; n != 0 {
		t.Errorf("level 1 should leave NORMAL alone, got %d", n)
	}
	m.LevelChanged(3)
	if n := m.Item(tile.Normal).CurrentAmount; n != 30 {
		t.Errorf("NORMAL amount at level 3 = %d, expected 30", n)
	}
}
