// Package registry provides a global registry of playable modes.
// Modes register themselves in init() functions, so the platform can list
// and start them without knowing about the engine behind each one.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/wezzle/internal/config"
	"github.com/vovakirdan/wezzle/internal/core"
	"github.com/vovakirdan/wezzle/internal/engine"
)

// Game is what the platform drives. Implementations hold no terminal or
// Bubble Tea state; the platform maps keys to actions and paints the screen.
type Game interface {
	// ID returns the mode identifier (e.g. "wezzle_hard").
	// Used for CLI arguments and as the score table key.
	ID() string

	// Title returns a human-readable name for menus and the scoreboard.
	Title() string

	// Reset starts a new game sized for the screen and seeded from cfg.
	Reset(cfg core.RuntimeConfig)

	// Step applies the actions of one tick and advances the simulation by
	// one tick's worth of milliseconds.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current game into dst.
	Render(dst *core.Screen)

	// State returns the current score, level and status flags.
	State() core.GameState
}

// Deps are the shared services handed to every mode factory. Zero values
// are valid: the default config, no listener and a discarding logger.
type Deps struct {
	Config   config.WezzleConfig
	Listener engine.Listener
	Logger   *log.Logger
}

// GameInfo contains metadata about a registered mode.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a new instance of a mode.
type Factory func(deps Deps) Game

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a mode factory. Panics if id is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	factories[id] = f
	titles[id] = f(Deps{}).Title()
}

// List returns all registered modes sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(factories))
	for id := range factories {
		result = append(result, GameInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a mode by its ID.
func Create(id string, deps Deps) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}

	return f(deps), nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}

// Title returns the title of a registered mode, or id itself if unknown.
func Title(id string) string {
	mu.RLock()
	defer mu.RUnlock()

	if t, ok := titles[id]; ok {
		return t
	}
	return id
}
