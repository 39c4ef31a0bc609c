// Package registry maps game IDs to factories. Game packages register from
// init, so hosts only need a blank import to make a game available.
package registry

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/vovakirdan/arcane-flight/internal/core"
)

// Game is what a host drives: fixed-step simulation plus drawing.
// Games never touch the terminal; input arrives as core actions.
type Game interface {
	// ID is the stable identifier used on the command line and in storage.
	ID() string

	// Title is the display name.
	Title() string

	// Reset prepares a fresh game for the given runtime config.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick with the actions collected since the last one.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State reports score and phase without stepping.
	State() core.GameState
}

// Persistent is implemented by games that keep a best score across sessions.
type Persistent interface {
	SetBestStore(store core.BestStore)
}

// Pointer is implemented by games that accept mouse clicks.
// x and y are screen cells; the screen size lets the game hit-test its layout.
type Pointer interface {
	PointerAction(x, y, screenW, screenH int) core.Action
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// Factory returns a new, not yet reset, game.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = map[string]entry{}
)

// Register adds a factory under id. Registering an id twice panics.
func Register(id string, f Factory) {
	title := f().Title()

	mu.Lock()
	defer mu.Unlock()
	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: title}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		out = append(out, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(out, func(a, b GameInfo) int { return strings.Compare(a.ID, b.ID) })
	return out
}

// Create builds a new instance of the game registered as id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := entries[id]
	return ok
}
