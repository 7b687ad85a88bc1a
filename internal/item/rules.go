package item

import (
	"fmt"

	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/tile"
)

// Stats is the game progress rules are evaluated against.
type Stats struct {
	Level int
	Score int
	Moves int
	Lines int
}

// Rule is a one-shot (predicate, action) pair. Once When holds, Apply runs
// and the rule is dropped.
type Rule struct {
	Name  string
	When  func(Stats) bool
	Apply func(m *Manager)
}

// LevelRules builds the level-gated unlock rules from config.
func LevelRules(rcs []config.RuleConfig) []Rule {
	rules := make([]Rule, 0, len(rcs))
	for _, rc := range rcs {
		rc := rc
		rules = append(rules, Rule{
			Name: fmt.Sprintf("%s at level %d", rc.Type, rc.Level),
			When: func(s Stats) bool { return s.Level >= rc.Level },
			Apply: func(m *Manager) {
				m.Tune(rc.Type, rc.Initial, rc.Weight, rc.Max)
			},
		})
	}
	return rules
}

// Unlocked reports whether t is in play: it has a non-zero base weight.
func (m *Manager) Unlocked(t tile.Type) bool {
	it := m.items[t]
	return it != nil && it.Weight != 0
}
