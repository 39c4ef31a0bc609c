package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/vovakirdan/arcane-flight/internal/config"
	"github.com/vovakirdan/arcane-flight/internal/games/arcane"
	"github.com/vovakirdan/arcane-flight/internal/storage"
)

func TestGameIDArg(t *testing.T) {
	if got := gameIDArg(nil); got != "arcane" {
		t.Errorf("default game = %q", got)
	}
	if got := gameIDArg([]string{"other"}); got != "other" {
		t.Errorf("named game = %q", got)
	}
}

func TestSplitOrigins(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"https://a.example", []string{"https://a.example"}},
		{" https://a.example , ,http://localhost:*", []string{"https://a.example", "http://localhost:*"}},
	}
	for _, tt := range tests {
		if got := splitOrigins(tt.in); !slices.Equal(got, tt.want) {
			t.Errorf("splitOrigins(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"[::1]:2022":     "2022",
		"no-port-at-all": "no-port-at-all",
	}
	for in, want := range tests {
		if got := portOf(in); got != want {
			t.Errorf("portOf(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfigureArcaneRejectsUnknownDifficulty(t *testing.T) {
	flagDifficulty = "nightmare"
	defer func() { flagDifficulty = "" }()
	if _, err := configureArcane(); err == nil {
		t.Error("unknown difficulty accepted")
	}
}

func TestDefaultConfigIsValid(t *testing.T) {
	data := config.GetDefaultYAML("arcane")
	if len(data) == 0 {
		t.Fatal("no embedded default config")
	}
	path := filepath.Join(t.TempDir(), "arcane.yaml")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := config.LoadArcane(path); err != nil {
		t.Errorf("embedded default does not load: %v", err)
	}
}

func openCmdStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestBestScore(t *testing.T) {
	store := openCmdStore(t)
	if best, err := bestScore(store); err != nil || best != 0 {
		t.Fatalf("empty best = %d, %v", best, err)
	}

	store.SaveScore(arcane.ID, "gold", 7)
	if best, _ := bestScore(store); best != 7 {
		t.Errorf("best from runs = %d, want 7", best)
	}

	store.SaveBest(arcane.BestKey, 12)
	if best, _ := bestScore(store); best != 12 {
		t.Errorf("best from stored scalar = %d, want 12", best)
	}
}

func TestExportScores(t *testing.T) {
	store := openCmdStore(t)

	var buf bytes.Buffer
	if err := exportScores(&buf, store); err != nil {
		t.Fatal(err)
	}
	if got := bytes.TrimSpace(buf.Bytes()); string(got) != "[]" {
		t.Errorf("empty export = %s, want []", got)
	}

	store.SaveScore(arcane.ID, "violet", 3)
	store.SaveScore(arcane.ID, "gold", 8)
	store.SaveScore("other", "gold", 50)

	buf.Reset()
	if err := exportScores(&buf, store); err != nil {
		t.Fatal(err)
	}
	var runs []storage.ScoreEntry
	if err := json.Unmarshal(buf.Bytes(), &runs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(runs) != 2 || runs[0].Score != 8 || runs[1].Character != "violet" {
		t.Errorf("runs = %+v", runs)
	}
}

func TestPlayHelpNotesIgnoredKeys(t *testing.T) {
	for _, want := range []string{"Pick a witch (ignored while flying)", "Back to the witches (ignored while flying)"} {
		if !strings.Contains(playCmd.Long, want) {
			t.Errorf("play help missing %q", want)
		}
	}
}
