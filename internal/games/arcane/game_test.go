package arcane

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/arcane-flight/internal/core"
	"github.com/vovakirdan/arcane-flight/internal/registry"
	"github.com/vovakirdan/arcane-flight/internal/storage"
)

// memStore is an in-memory BestStore.
type memStore struct {
	values  map[string]int
	saves   int
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{values: make(map[string]int)}
}

func (m *memStore) LoadBest(key string) (int, error) {
	return m.values[key], nil
}

func (m *memStore) SaveBest(key string, score int) error {
	m.saves++
	if m.saveErr != nil {
		return m.saveErr
	}
	m.values[key] = score
	return nil
}

func newTestGame(t *testing.T, store *memStore) *Game {
	t.Helper()
	g := New()
	if store != nil {
		g.SetBestStore(store)
	}
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
	return g
}

// crashGame ends the current run with the given score.
func crashGame(g *Game, score int) core.StepResult {
	g.sim.score = score
	g.sim.player.Y = 470
	return g.Step(core.NewInputFrame())
}

func TestGameRegistered(t *testing.T) {
	if !registry.Exists(ID) {
		t.Fatalf("game %q not registered", ID)
	}
	g, err := registry.Create(ID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if g.Title() != "Arcane Flight" {
		t.Errorf("Title = %q", g.Title())
	}
	if _, ok := g.(registry.Persistent); !ok {
		t.Error("game should accept a best store")
	}
	if _, ok := g.(registry.Pointer); !ok {
		t.Error("game should accept pointer input")
	}
}

func TestGameLoadsStoredBest(t *testing.T) {
	store := newMemStore()
	store.values[BestKey] = 12

	g := newTestGame(t, store)
	if got := g.State().Best; got != 12 {
		t.Errorf("Best = %d, want 12", got)
	}
}

func TestGameSavesBestOncePerRecord(t *testing.T) {
	store := newMemStore()
	g := newTestGame(t, store)

	g.Step(core.InputOf(core.ActionChooseB))
	g.Step(core.InputOf(core.ActionJump))
	if g.State().Phase != "running" {
		t.Fatalf("Phase = %q, want running", g.State().Phase)
	}

	res := crashGame(g, 4)
	if !res.State.GameOver || !res.Events.Has(core.EventNewBest) {
		t.Fatalf("state %+v events %b, want game over with new best", res.State, res.Events)
	}
	for i := 0; i < 20; i++ {
		g.Step(core.NewInputFrame())
	}
	if store.saves != 1 || store.values[BestKey] != 4 {
		t.Errorf("saves = %d value = %d, want one save of 4", store.saves, store.values[BestKey])
	}

	// A worse run writes nothing.
	g.Step(core.InputOf(core.ActionJump))
	crashGame(g, 2)
	if store.saves != 1 {
		t.Errorf("saves = %d after a worse run, want 1", store.saves)
	}
}

func TestGameSharedStoreBestNeverDrops(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	// Both sessions start while nothing is stored.
	a, b := New(), New()
	for _, g := range []*Game{a, b} {
		g.SetBestStore(store)
		g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7})
		g.Step(core.InputOf(core.ActionChooseB))
		g.Step(core.InputOf(core.ActionJump))
	}

	crashGame(a, 10)
	if best, _ := store.LoadBest(BestKey); best != 10 {
		t.Fatalf("stored best after 10 = %d", best)
	}

	res := crashGame(b, 3)
	if !res.Events.Has(core.EventNewBest) {
		t.Fatalf("second session should see 3 as its own new best")
	}
	if best, _ := store.LoadBest(BestKey); best != 10 {
		t.Errorf("stored best dropped to %d, want 10", best)
	}
	if b.State().Best != 10 {
		t.Errorf("second session best = %d, want the stored 10", b.State().Best)
	}
	if b.Err() != nil {
		t.Errorf("unexpected error: %v", b.Err())
	}
}

func TestGameKeepsPlayingWhenSaveFails(t *testing.T) {
	store := newMemStore()
	store.saveErr = errors.New("disk full")
	g := newTestGame(t, store)

	g.Step(core.InputOf(core.ActionChooseA))
	g.Step(core.InputOf(core.ActionJump))
	crashGame(g, 3)

	if g.Err() == nil {
		t.Error("Err should report the failed save")
	}
	if g.State().Best != 3 {
		t.Errorf("Best = %d, want 3 in memory", g.State().Best)
	}
	g.Step(core.InputOf(core.ActionJump))
	if g.State().Phase != "running" {
		t.Errorf("Phase = %q, want running after retry", g.State().Phase)
	}
}

func TestGameResetKeepsSessionBest(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(core.InputOf(core.ActionChooseB))
	g.Step(core.InputOf(core.ActionJump))
	crashGame(g, 6)

	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, Seed: 8})
	if g.State().Best != 6 {
		t.Errorf("Best = %d after Reset, want 6", g.State().Best)
	}
	if g.State().Phase != "select" {
		t.Errorf("Phase = %q after Reset, want select", g.State().Phase)
	}
}

func TestGamePause(t *testing.T) {
	g := newTestGame(t, nil)

	g.Step(core.InputOf(core.ActionPause))
	if g.State().Paused {
		t.Error("pause should be ignored on the select screen")
	}

	g.Step(core.InputOf(core.ActionChooseB))
	g.Step(core.InputOf(core.ActionJump))
	g.Step(core.InputOf(core.ActionPause))
	if !g.State().Paused {
		t.Fatal("game should be paused")
	}

	tick := g.sim.Tick()
	y := g.sim.Player().Y
	for i := 0; i < 10; i++ {
		g.Step(core.InputOf(core.ActionJump))
	}
	if g.sim.Tick() != tick || g.sim.Player().Y != y {
		t.Error("simulation advanced while paused")
	}

	g.Step(core.InputOf(core.ActionPause))
	if g.State().Paused {
		t.Error("second pause should resume")
	}
}

func TestGameStateVariant(t *testing.T) {
	g := newTestGame(t, nil)
	if v := g.State().Variant; v != "" {
		t.Errorf("Variant = %q before choosing, want empty", v)
	}
	g.Step(core.InputOf(core.ActionChooseA))
	if v := g.State().Variant; v != "violet" {
		t.Errorf("Variant = %q, want violet", v)
	}
}

func TestPointerAction(t *testing.T) {
	g := newTestGame(t, nil)
	cards := SelectCards(80, 24, 2)
	if len(cards) != 2 {
		t.Fatalf("cards = %d, want 2", len(cards))
	}

	x, y := cards[0].Center()
	if got := g.PointerAction(x, y, 80, 24); got != core.ActionChooseA {
		t.Errorf("click on first card = %v, want ChooseA", got)
	}
	x, y = cards[1].Center()
	if got := g.PointerAction(x, y, 80, 24); got != core.ActionChooseB {
		t.Errorf("click on second card = %v, want ChooseB", got)
	}
	if got := g.PointerAction(0, 0, 80, 24); got != core.ActionNone {
		t.Errorf("click outside cards = %v, want None", got)
	}

	g.Step(core.InputOf(core.ActionChooseA))
	if got := g.PointerAction(0, 0, 80, 24); got != core.ActionJump {
		t.Errorf("click while ready = %v, want Jump", got)
	}
}

func TestRenderPhases(t *testing.T) {
	g := newTestGame(t, nil)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"ARCANE FLIGHT", "Violet Witch", "Gold Witch", "[1]", "[2]"} {
		if !strings.Contains(out, want) {
			t.Errorf("select screen missing %q", want)
		}
	}

	g.Step(core.InputOf(core.ActionChooseB))
	g.Render(screen)
	out = screen.String()
	if !strings.Contains(out, "Score: 0") || !strings.Contains(out, "Space or click to fly") {
		t.Errorf("ready screen missing HUD or hint:\n%s", out)
	}

	g.Step(core.InputOf(core.ActionJump))
	crashGame(g, 1)
	g.Render(screen)
	if !strings.Contains(screen.String(), "CRASHED") {
		t.Error("dead screen missing crash banner")
	}
}

func TestRenderGroundAndPlayer(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(core.InputOf(core.ActionChooseB))
	g.Step(core.InputOf(core.ActionJump))
	screen := core.NewScreen(96, 54)

	g.Render(screen)

	// 540 px over 54 rows: the ground line at 464 px lands on row 46.
	if got := screen.Get(0, 46); got != GroundTopChar {
		t.Errorf("ground row = %q, want %q", got, GroundTopChar)
	}
	if got := screen.Get(0, 50); got != GroundChar {
		t.Errorf("below ground = %q, want %q", got, GroundChar)
	}

	snap := g.Snapshot()
	col := int(snap.Player.X / 10)
	row := int((snap.Player.Y + Bob(snap)) / 10)
	cell := screen.GetCell(col, row)
	if cell.Rune != PlayerUp {
		t.Errorf("player glyph = %q, want %q right after a flap", cell.Rune, PlayerUp)
	}
	if cell.Color != core.ColorGold {
		t.Errorf("player color = %v, want gold", cell.Color)
	}
}
