package arcane

import (
	"github.com/vovakirdan/arcane-flight/internal/config"
	"github.com/vovakirdan/arcane-flight/internal/core"
	"github.com/vovakirdan/arcane-flight/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "arcane"

// BestKey is the storage key of the persisted best score.
const BestKey = "arcane-best"

// configPath stores the custom config path set via CLI
var configPath string
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the difficulty preset. Unknown names keep the config default.
func SetDifficultyPreset(preset string) {
	difficultyPreset = config.ParsePreset(preset)
}

// LoadConfig loads the game config the same way Reset does.
func LoadConfig() (config.ArcaneConfig, error) {
	cfg, err := config.LoadArcane(configPath)
	if err != nil {
		return config.DefaultArcaneConfig(), err
	}
	config.ApplyArcanePreset(&cfg, difficultyPreset)
	return cfg, nil
}

// Game adapts Sim to the registry.Game interface.
// Pausing lives here; the simulation has no notion of it.
type Game struct {
	sim     *Sim
	runtime core.RuntimeConfig
	paused  bool
	store   core.BestStore
	lastErr error
}

// New creates a new Arcane Flight game instance.
func New() *Game {
	return &Game{}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Arcane Flight"
}

// SetBestStore connects persistent best-score storage.
// The stored value is read on the next Reset.
func (g *Game) SetBestStore(store core.BestStore) {
	g.store = store
}

// Err returns the last storage or config error, if any. Play continues regardless.
func (g *Game) Err() error {
	return g.lastErr
}

// Reset builds a fresh simulation. The session best survives.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime
	g.paused = false

	cfg, err := LoadConfig()
	if err != nil {
		g.lastErr = err
	}

	best := 0
	if g.sim != nil {
		best = g.sim.Best()
	}
	if g.store != nil {
		stored, err := g.store.LoadBest(BestKey)
		if err != nil {
			g.lastErr = err
		}
		best = max(best, stored)
	}

	g.sim = NewSim(cfg, runtime.Seed)
	g.sim.SetBest(best)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionPause) && g.sim.Phase() == PhaseRunning {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	events := g.sim.Step(in)
	if events.Has(core.EventNewBest) && g.store != nil {
		g.saveBest()
	}

	return core.StepResult{State: g.State(), Events: events}
}

// saveBest offers the session best to the store, then picks up a higher
// value another session may have saved since Reset.
func (g *Game) saveBest() {
	if err := g.store.SaveBest(BestKey, g.sim.Best()); err != nil {
		g.lastErr = err
		return
	}
	stored, err := g.store.LoadBest(BestKey)
	if err != nil {
		g.lastErr = err
		return
	}
	g.sim.SetBest(stored)
}

// Render draws the current game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	draw(dst, g.sim.Snapshot(), g.paused)
}

// Snapshot returns the current simulation snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.sim.Snapshot()
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.sim.Score(),
		Best:     g.sim.Best(),
		GameOver: g.sim.Phase() == PhaseDead,
		Paused:   g.paused,
		Phase:    g.sim.Phase().String(),
	}
	if ch, ok := g.sim.Character(); ok {
		st.Variant = ch.ID
	}
	if st.GameOver {
		st.Cause = g.sim.Cause().String()
	}
	return st
}

// PointerAction maps a click at cell (x, y) to an action.
// On the select screen a click on a card chooses that witch; elsewhere it flaps.
func (g *Game) PointerAction(x, y, screenW, screenH int) core.Action {
	if g.sim.Phase() != PhaseSelect {
		return core.ActionJump
	}
	actions := [...]core.Action{core.ActionChooseA, core.ActionChooseB}
	for i, r := range SelectCards(screenW, screenH, len(g.sim.cfg.Characters)) {
		if r.Contains(x, y) {
			return actions[i]
		}
	}
	return core.ActionNone
}

// Register the game with the registry
func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}
