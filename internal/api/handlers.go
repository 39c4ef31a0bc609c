package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vovakirdan/arcane-flight/internal/registry"
	"github.com/vovakirdan/arcane-flight/internal/storage"
)

const maxLimit = 100

func (h *handlers) handleGames(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, registry.List())
}

// handleScores serves GET /api/scores/{game}?character=&limit=.
func (h *handlers) handleScores(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game")
	if !registry.Exists(gameID) {
		writeError(w, "unknown game", http.StatusNotFound)
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, "limit must be a positive integer", http.StatusBadRequest)
			return
		}
		limit = min(n, maxLimit)
	}

	scores, err := h.scores.TopScores(gameID, r.URL.Query().Get("character"), limit)
	if err != nil {
		writeError(w, "cannot load scores", http.StatusInternalServerError)
		return
	}
	if scores == nil {
		scores = []storage.ScoreEntry{}
	}
	writeJSON(w, scores)
}

// gameStats is the body of GET /api/stats/{game}.
type gameStats struct {
	All        *storage.GameStats   `json:"all"`
	Characters []*storage.GameStats `json:"characters"`
}

// handleStats serves GET /api/stats/{game}: totals plus one entry per character.
func (h *handlers) handleStats(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "game")
	if !registry.Exists(gameID) {
		writeError(w, "unknown game", http.StatusNotFound)
		return
	}

	all, err := h.scores.GetGameStats(gameID)
	if err != nil {
		writeError(w, "cannot load stats", http.StatusInternalServerError)
		return
	}
	chars, err := h.scores.CharacterStats(gameID)
	if err != nil {
		writeError(w, "cannot load stats", http.StatusInternalServerError)
		return
	}
	if chars == nil {
		chars = []*storage.GameStats{}
	}
	writeJSON(w, gameStats{All: all, Characters: chars})
}

// handleAllStats serves GET /api/stats: totals for every game with recorded runs.
func (h *handlers) handleAllStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.scores.GetAllGamesStats()
	if err != nil {
		writeError(w, "cannot load stats", http.StatusInternalServerError)
		return
	}
	if stats == nil {
		stats = map[string]*storage.GameStats{}
	}
	writeJSON(w, stats)
}

func writeJSON(w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
