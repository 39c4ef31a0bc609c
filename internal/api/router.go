// Package api serves the read-only HTTP side of an arcade server:
// leaderboards, per-character stats, health and Prometheus metrics.
package api

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vovakirdan/arcane-flight/internal/ratelimit"
	"github.com/vovakirdan/arcane-flight/internal/storage"
)

// ScoreSource is the part of the store the API reads.
type ScoreSource interface {
	TopScores(gameID, character string, limit int) ([]storage.ScoreEntry, error)
	CharacterStats(gameID string) ([]*storage.GameStats, error)
	GetGameStats(gameID string) (*storage.GameStats, error)
	GetAllGamesStats() (map[string]*storage.GameStats, error)
}

// RouterConfig contains the dependencies of the HTTP router.
type RouterConfig struct {
	// Scores backs the leaderboard routes (required).
	Scores ScoreSource

	// Limiter throttles requests per client IP. Nil disables limiting.
	Limiter *ratelimit.IPRateLimiter

	// CORSOrigins lists allowed browser origins. Nil allows local origins only.
	CORSOrigins []string

	// Logger receives one line per request. Nil disables request logging.
	Logger *log.Logger
}

type handlers struct {
	scores ScoreSource
}

// NewRouter builds the HTTP router. It starts no goroutines and opens no listeners.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	if cfg.Logger != nil {
		r.Use(requestLogger(cfg.Logger))
	}
	r.Use(middleware.Recoverer)

	// Reject before CORS work.
	if cfg.Limiter != nil {
		r.Use(RateLimit(cfg.Limiter))
	}

	origins := cfg.CORSOrigins
	if origins == nil {
		origins = []string{"http://localhost:*", "http://127.0.0.1:*"}
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	h := &handlers{scores: cfg.Scores}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/games", h.handleGames)
		r.Get("/scores/{game}", h.handleScores)
		r.Get("/stats", h.handleAllStats)
		r.Get("/stats/{game}", h.handleStats)
	})

	return r
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("http",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"took", time.Since(start),
			)
		})
	}
}
