package item

import (
	"io"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/tile"
)

const (
	normalChance   = 5  // percent-ish: draws 0..5 out of 100 force NORMAL
	itemBias       = 15 // per tile of imbalance between items and multipliers
	itemBaseChance = 50
)

// Manager owns the spawn catalog. It is not safe for concurrent use; the
// engine calls it from the game tick only.
type Manager struct {
	rng    *rand.Rand
	logger *log.Logger

	items        [tile.NumTypes]*Item
	order        []tile.Type
	rules        []Rule
	maxItems     int
	maxMults     int
	starCooldown int

	tutorial bool
}

// NewManager builds a manager from the item section of the config and the
// unlock rules. A nil logger discards warnings.
func NewManager(cfg config.ItemsConfig, rules []Rule, rng *rand.Rand, logger *log.Logger) *Manager {
	if rng == nil {
		panic("item: nil rand source")
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	m := &Manager{
		rng:          rng,
		logger:       logger,
		rules:        append([]Rule(nil), rules...),
		maxItems:     cfg.MaximumItems,
		maxMults:     cfg.MaximumMultipliers,
		starCooldown: cfg.StarCooldown,
	}
	for _, ic := range cfg.Catalog {
		m.items[ic.Type] = &Item{
			Type:          ic.Type,
			InitialAmount: ic.Initial,
			Weight:        ic.Weight,
			MaxOnBoard:    ic.Max,
			Cooldown:      ic.Cooldown,
		}
	}
	for t := tile.Type(0); t < tile.NumTypes; t++ {
		if m.items[t] != nil {
			m.order = append(m.order, t)
		}
	}
	return m
}

// Item returns the descriptor for t, or nil if t is not in the catalog.
func (m *Manager) Item(t tile.Type) *Item {
	return m.items[t]
}

// Catalog returns a copy of every descriptor, NORMAL first.
func (m *Manager) Catalog() []Item {
	out := make([]Item, 0, len(m.order))
	for _, t := range m.order {
		out = append(out, *m.items[t])
	}
	return out
}

// SetTutorial marks tutorial play; tutorial moves do not tick cooldowns.
func (m *Manager) SetTutorial(on bool) { m.tutorial = on }

// Tune sets the spawn parameters of t, adding it to the catalog if needed.
func (m *Manager) Tune(t tile.Type, initial, weight, max int) {
	it := m.items[t]
	if it == nil {
		it = &Item{Type: t}
		m.items[t] = it
		m.order = append(m.order, t)
	}
	it.InitialAmount = initial
	it.Weight = weight
	it.MaxOnBoard = max
}

// Added records a tile of type t entering the board.
func (m *Manager) Added(t tile.Type) {
	if t == tile.Normal {
		return
	}
	if it := m.items[t]; it != nil {
		it.incrementCurrent()
	}
}

// Removed records a tile of type t leaving the board.
func (m *Manager) Removed(t tile.Type) {
	if t == tile.Normal {
		return
	}
	if it := m.items[t]; it != nil {
		it.decrementCurrent()
	}
}

// ResetCounts zeroes every on-board counter, e.g. before a board is rebuilt.
func (m *Manager) ResetCounts() {
	for _, t := range m.order {
		m.items[t].CurrentAmount = 0
	}
}

// MoveCommitted ticks every cooldown down by one.
func (m *Manager) MoveCommitted() {
	if m.tutorial {
		return
	}
	for _, t := range m.order {
		it := m.items[t]
		it.decrementCooldown()
		if it.Cooldown > 0 {
			m.logger.Debug("item cooling down", "type", t, "cooldown", it.Cooldown)
		}
	}
}

// LevelChanged grows the NORMAL share of the spawn mix with the level.
func (m *Manager) LevelChanged(level int) {
	if level == 1 {
		return
	}
	if n := m.items[tile.Normal]; n != nil {
		n.CurrentAmount = n.InitialAmount + level - 1
	}
}

// Evaluate runs every rule whose predicate holds and drops it.
func (m *Manager) Evaluate(s Stats) {
	kept := m.rules[:0]
	for _, r := range m.rules {
		if r.When(s) {
			m.logger.Debug("rule applied", "rule", r.Name)
			r.Apply(m)
			continue
		}
		kept = append(kept, r)
	}
	m.rules = kept
}

// PendingRules returns how many rules have not fired yet.
func (m *Manager) PendingRules() int { return len(m.rules) }

// GetItem picks the type of the next spawned tile given how many items and
// multipliers are on the board.
func (m *Manager) GetItem(numItems, numMults int) tile.Type {
	if m.rng.Intn(100) <= normalChance {
		return tile.Normal
	}

	probItems := (numMults-numItems)*itemBias + itemBaseChance
	if !m.anyItemUnlocked() {
		probItems = 0
	}

	pick := m.rng.Intn(100)

	var useItems, useMults bool
	switch {
	case numMults < m.maxMults && numItems < m.maxItems:
		if pick < probItems {
			useItems = true
		} else {
			useMults = true
		}
	case numMults < m.maxMults:
		useMults = true
	case numItems < m.maxItems:
		useItems = true
	}

	var candidates []*Item
	for _, t := range m.order {
		if t == tile.Normal {
			continue
		}
		if !(useItems && t.IsItem()) && !(useMults && t.IsMultiplier()) {
			continue
		}
		it := m.items[t]
		if it.Cooldown > 0 || it.EffectiveWeight() <= 0 {
			continue
		}
		candidates = append(candidates, it)
	}
	if len(candidates) == 0 {
		return tile.Normal
	}

	weights := make([]int, len(candidates))
	for i, it := range candidates {
		weights[i] = it.EffectiveWeight()
	}
	dist := Distribution(weights)

	draw := m.rng.Intn(dist[len(dist)-1])
	j := Bucket(dist, draw)
	if j < 0 {
		m.logger.Warn("item draw out of range", "draw", draw, "total", dist[len(dist)-1])
		return candidates[0].Type
	}

	picked := candidates[j]
	if picked.Type == tile.Star {
		picked.Cooldown = m.starCooldown
	}
	return picked.Type
}

func (m *Manager) anyItemUnlocked() bool {
	for _, t := range m.order {
		if t.IsItem() && m.Unlocked(t) {
			return true
		}
	}
	return false
}
