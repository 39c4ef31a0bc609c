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

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int    // Current score
	Best     int    // Best score known to the game
	GameOver bool   // Whether the current run has ended
	Paused   bool   // Whether the game is paused
	Phase    string // Game-specific phase name
	Variant  string // Selected variant (character), empty if none
	Cause    string // What ended the run, empty while not over
}

// Event is a notable thing that happened during a tick.
type Event uint8

const (
	EventFlap Event = 1 << iota
	EventScore
	EventCrash
	EventNewBest
	EventRunStart
)

// Has reports whether e contains all bits of other.
func (e Event) Has(other Event) bool {
	return e&other == other
}

// StepResult is returned by Game.Step() after each simulation tick.
// Contains the updated game state and any events that occurred.
type StepResult struct {
	State  GameState
	Events Event
}

// BestStore persists a single best-score scalar per key.
// LoadBest returns 0 when nothing usable is stored.
type BestStore interface {
	LoadBest(key string) (int, error)
	SaveBest(key string, score int) error
}
