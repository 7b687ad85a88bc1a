package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// TickMillis returns the simulated duration of a single tick in milliseconds.
func (c RuntimeConfig) TickMillis() int {
	if c.TickRate <= 0 {
		return 1000 / 60
	}
	return 1000 / c.TickRate
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Level    int  // Current level (1-based)
	Moves    int  // Committed moves
	Lines    int  // Lines cleared so far
	Chain    int  // Longest chain reached
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Busy     bool // Whether a removal/refactor cascade is in flight
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
}
