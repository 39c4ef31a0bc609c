package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/vovakirdan/arcane-flight/internal/core"
)

// Store must satisfy the game's persistence interface.
var _ core.BestStore = (*Store)(nil)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, s := range []struct {
		char  string
		score int
	}{
		{"violet", 10},
		{"gold", 5},
		{"violet", 20},
		{"gold", 7},
	} {
		if _, err := store.SaveScore("arcane", s.char, s.score); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	if _, err := store.SaveScore("other", "violet", 500); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}

	all, err := store.TopScores("arcane", "", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	want := []int{20, 10, 7, 5}
	if len(all) != len(want) {
		t.Fatalf("Expected %d scores, got %d", len(want), len(all))
	}
	for i, w := range want {
		if all[i].Score != w {
			t.Errorf("scores[%d] = %d, want %d", i, all[i].Score, w)
		}
	}

	gold, err := store.TopScores("arcane", "gold", 10)
	if err != nil {
		t.Fatalf("TopScores(gold) failed: %v", err)
	}
	if len(gold) != 2 || gold[0].Score != 7 || gold[0].Character != "gold" {
		t.Errorf("gold scores = %+v", gold)
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveScore("test", "violet", (i+1)*100)
	}

	scores, err := store.TopScores("test", "", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Errorf("Expected 3 scores with limit, got %d", len(scores))
	}
	if scores[0].Score != 500 || scores[1].Score != 400 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}

	// Non-positive limits fall back to 10.
	store.SaveScore("many", "gold", 1)
	for i := 0; i < 12; i++ {
		store.SaveScore("many", "gold", 2)
	}
	scores, _ = store.TopScores("many", "", 0)
	if len(scores) != 10 {
		t.Errorf("default limit returned %d scores, want 10", len(scores))
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore("arcane")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("arcane", "violet", 100)
	store.SaveScore("arcane", "gold", 300)
	store.SaveScore("arcane", "violet", 200)

	high, err = store.HighScore("arcane")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("arcane", "violet", 100)
	store.SaveScore("arcane", "gold", 200)
	store.SaveScore("other", "violet", 300)

	if err := store.ClearScores("arcane"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("arcane", "", 10); len(scores) != 0 {
		t.Errorf("Expected 0 scores after clear, got %d", len(scores))
	}
	if scores, _ := store.TopScores("other", "", 10); len(scores) != 1 {
		t.Errorf("Other game scores should not be affected by clearing arcane")
	}
}

func TestStoreAllScores(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("test", "gold", i*10)
	}

	scores, err := store.AllScores("test")
	if err != nil {
		t.Fatalf("AllScores() failed: %v", err)
	}
	if len(scores) != 20 {
		t.Errorf("Expected 20 scores, got %d", len(scores))
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not parsed")
	}
}

func TestStoreBest(t *testing.T) {
	store := openTestStore(t)

	best, err := store.LoadBest("arcane-best")
	if err != nil {
		t.Fatalf("LoadBest() on empty store failed: %v", err)
	}
	if best != 0 {
		t.Errorf("missing best = %d, want 0", best)
	}

	for _, score := range []int{4, 9} {
		if err := store.SaveBest("arcane-best", score); err != nil {
			t.Fatalf("SaveBest(%d) failed: %v", score, err)
		}
	}
	if best, _ := store.LoadBest("arcane-best"); best != 9 {
		t.Errorf("best = %d, want 9", best)
	}
	if best, _ := store.LoadBest("other"); best != 0 {
		t.Errorf("unrelated key best = %d, want 0", best)
	}

	// A lower or equal score from a stale session keeps the stored best.
	for _, score := range []int{3, 9, -1} {
		if err := store.SaveBest("arcane-best", score); err != nil {
			t.Fatalf("SaveBest(%d) failed: %v", score, err)
		}
		if best, _ := store.LoadBest("arcane-best"); best != 9 {
			t.Errorf("best = %d after SaveBest(%d), want 9", best, score)
		}
	}
}

func TestStoreBestReplacesMalformed(t *testing.T) {
	for _, value := range []string{"lots", "", "-3", "2.5", "99x"} {
		t.Run(value, func(t *testing.T) {
			store := openTestStore(t)
			if _, err := store.db.Exec(`INSERT INTO kv (key, value) VALUES ('arcane-best', ?)`, value); err != nil {
				t.Fatal(err)
			}
			if err := store.SaveBest("arcane-best", 1); err != nil {
				t.Fatalf("SaveBest failed: %v", err)
			}
			if best, _ := store.LoadBest("arcane-best"); best != 1 {
				t.Errorf("malformed %q not replaced: best = %d", value, best)
			}
		})
	}
}

func TestStoreBestMalformed(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"text", "lots"},
		{"empty", ""},
		{"negative", "-3"},
		{"float", "2.5"},
	}

	store := openTestStore(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := store.db.Exec(`INSERT OR REPLACE INTO kv (key, value) VALUES ('bad', ?)`, tt.value); err != nil {
				t.Fatal(err)
			}
			best, err := store.LoadBest("bad")
			if err != nil {
				t.Fatalf("LoadBest() failed: %v", err)
			}
			if best != 0 {
				t.Errorf("malformed %q loaded as %d, want 0", tt.value, best)
			}
		})
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("arcane", "violet", 10)
	store.SaveScore("arcane", "violet", 20)
	store.SaveScore("arcane", "gold", 6)
	store.SaveScore("other", "gold", 1)

	stats, err := store.GetGameStats("arcane")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 20 || stats.TotalScore != 36 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.AvgScore != 12 {
		t.Errorf("avg = %v, want 12", stats.AvgScore)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed not set")
	}

	empty, err := store.GetGameStats("nothing")
	if err != nil {
		t.Fatalf("GetGameStats(empty) failed: %v", err)
	}
	if empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", empty)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 2 || all["other"].GamesCount != 1 {
		t.Errorf("all stats = %+v", all)
	}

	chars, err := store.CharacterStats("arcane")
	if err != nil {
		t.Fatalf("CharacterStats() failed: %v", err)
	}
	if len(chars) != 2 {
		t.Fatalf("got %d character rows, want 2", len(chars))
	}
	if chars[0].Character != "gold" || chars[0].HighScore != 6 {
		t.Errorf("gold stats = %+v", chars[0])
	}
	if chars[1].Character != "violet" || chars[1].GamesCount != 2 {
		t.Errorf("violet stats = %+v", chars[1])
	}
}

func TestStoreMigratesOldSchema(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "old.db")

	// Schema from before scores carried a character.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`
		CREATE TABLE scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO scores (game_id, score) VALUES ('arcane', 42);
	`)
	db.Close()
	if err != nil {
		t.Fatal(err)
	}

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() on old schema failed: %v", err)
	}
	defer store.Close()

	scores, err := store.TopScores("arcane", "", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 1 || scores[0].Score != 42 || scores[0].Character != "" {
		t.Errorf("migrated scores = %+v", scores)
	}
	if _, err := store.SaveScore("arcane", "gold", 3); err != nil {
		t.Errorf("SaveScore() after migration failed: %v", err)
	}
}

func TestStoreExpandHomePath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
