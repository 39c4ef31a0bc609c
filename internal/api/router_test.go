package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/vovakirdan/arcane-flight/internal/games/arcane"
	"github.com/vovakirdan/arcane-flight/internal/ratelimit"
	"github.com/vovakirdan/arcane-flight/internal/storage"
)

// failingScores always errors.
type failingScores struct{}

func (failingScores) TopScores(string, string, int) ([]storage.ScoreEntry, error) {
	return nil, errors.New("disk on fire")
}

func (failingScores) CharacterStats(string) ([]*storage.GameStats, error) {
	return nil, errors.New("disk on fire")
}

func (failingScores) GetGameStats(string) (*storage.GameStats, error) {
	return nil, errors.New("disk on fire")
}

func (failingScores) GetAllGamesStats() (map[string]*storage.GameStats, error) {
	return nil, errors.New("disk on fire")
}

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "api.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func get(t *testing.T, h http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndMetrics(t *testing.T) {
	r := NewRouter(RouterConfig{Scores: newTestStore(t)})

	if rec := get(t, r, "/healthz"); rec.Code != http.StatusOK || rec.Body.String() != "OK" {
		t.Errorf("/healthz = %d %q", rec.Code, rec.Body.String())
	}
	rec := get(t, r, "/metrics")
	if rec.Code != http.StatusOK {
		t.Fatalf("/metrics = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "arcane_best_score") {
		t.Error("/metrics is missing game collectors")
	}
}

func TestScores(t *testing.T) {
	store := newTestStore(t)
	store.SaveScore("arcane", "violet", 12)
	store.SaveScore("arcane", "gold", 30)
	store.SaveScore("arcane", "violet", 4)
	r := NewRouter(RouterConfig{Scores: store})

	tests := []struct {
		name   string
		path   string
		code   int
		scores []int
	}{
		{"all", "/api/scores/arcane", http.StatusOK, []int{30, 12, 4}},
		{"character", "/api/scores/arcane?character=violet", http.StatusOK, []int{12, 4}},
		{"limit", "/api/scores/arcane?limit=1", http.StatusOK, []int{30}},
		{"nobody", "/api/scores/arcane?character=nobody", http.StatusOK, []int{}},
		{"bad limit", "/api/scores/arcane?limit=zero", http.StatusBadRequest, nil},
		{"negative limit", "/api/scores/arcane?limit=-2", http.StatusBadRequest, nil},
		{"unknown game", "/api/scores/tetris", http.StatusNotFound, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, r, tt.path)
			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d (%s)", rec.Code, tt.code, rec.Body.String())
			}
			if tt.scores == nil {
				return
			}
			var got []storage.ScoreEntry
			if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != len(tt.scores) {
				t.Fatalf("got %d scores, want %d", len(got), len(tt.scores))
			}
			for i, want := range tt.scores {
				if got[i].Score != want {
					t.Errorf("scores[%d] = %d, want %d", i, got[i].Score, want)
				}
			}
		})
	}
}

func TestStats(t *testing.T) {
	store := newTestStore(t)
	store.SaveScore("arcane", "violet", 10)
	store.SaveScore("arcane", "gold", 3)
	r := NewRouter(RouterConfig{Scores: store})

	rec := get(t, r, "/api/stats/arcane")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats struct {
		All        storage.GameStats   `json:"all"`
		Characters []storage.GameStats `json:"characters"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if stats.All.GamesCount != 2 || stats.All.HighScore != 10 || stats.All.TotalScore != 13 {
		t.Errorf("totals = %+v", stats.All)
	}
	chars := stats.Characters
	if len(chars) != 2 || chars[0].Character != "gold" || chars[1].HighScore != 10 {
		t.Errorf("characters = %+v", chars)
	}

	rec = get(t, r, "/api/stats")
	var all map[string]storage.GameStats
	if err := json.Unmarshal(rec.Body.Bytes(), &all); err != nil {
		t.Fatalf("decode all: %v", err)
	}
	if len(all) != 1 || all["arcane"].GamesCount != 2 {
		t.Errorf("all games = %+v", all)
	}
}

func TestStatsEmpty(t *testing.T) {
	r := NewRouter(RouterConfig{Scores: newTestStore(t)})
	if body := get(t, r, "/api/stats").Body.String(); strings.TrimSpace(body) != "{}" {
		t.Errorf("/api/stats on an empty store = %s", body)
	}
	body := get(t, r, "/api/stats/arcane").Body.String()
	if !strings.Contains(body, `"characters":[]`) || !strings.Contains(body, `"games":0`) {
		t.Errorf("/api/stats/arcane on an empty store = %s", body)
	}
}

func TestGames(t *testing.T) {
	r := NewRouter(RouterConfig{Scores: newTestStore(t)})
	rec := get(t, r, "/api/games")
	if !strings.Contains(rec.Body.String(), `"id":"arcane"`) {
		t.Errorf("games = %s", rec.Body.String())
	}
}

func TestStoreErrors(t *testing.T) {
	r := NewRouter(RouterConfig{Scores: failingScores{}})
	for _, path := range []string{"/api/scores/arcane", "/api/stats/arcane", "/api/stats"} {
		rec := get(t, r, path)
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("%s = %d, want 500", path, rec.Code)
		}
		if strings.Contains(rec.Body.String(), "disk on fire") {
			t.Errorf("%s leaked the internal error", path)
		}
	}
}

func TestRateLimit(t *testing.T) {
	rl := ratelimit.New(ratelimit.Config{PerSecond: 0.001, Burst: 2})
	t.Cleanup(rl.Stop)
	r := NewRouter(RouterConfig{Scores: newTestStore(t), Limiter: rl})

	for i := 0; i < 2; i++ {
		if rec := get(t, r, "/healthz"); rec.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i, rec.Code)
		}
	}
	rec := get(t, r, "/healthz")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("third request = %d, want 429", rec.Code)
	}
	if rec.Header().Get("Retry-After") == "" {
		t.Error("missing Retry-After")
	}
}

func TestCORS(t *testing.T) {
	r := NewRouter(RouterConfig{Scores: newTestStore(t), CORSOrigins: []string{"https://arcade.example"}})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://arcade.example")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://arcade.example" {
		t.Errorf("allowed origin header = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin got %q", got)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"remote addr", nil, "192.0.2.1:5555", "192.0.2.1"},
		{"forwarded", map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.1"}, "10.0.0.1:1", "203.0.113.9"},
		{"real ip", map[string]string{"X-Real-IP": " 198.51.100.7 "}, "10.0.0.1:1", "198.51.100.7"},
		{"no port", nil, "pipe", "pipe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
