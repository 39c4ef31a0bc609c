// Package storage provides SQLite-based persistence for run scores and the best score.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// sqliteTime is the layout SQLite uses for CURRENT_TIMESTAMP.
const sqliteTime = "2006-01-02 15:04:05"

// Store manages the SQLite database connection for score persistence.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single finished run.
type ScoreEntry struct {
	ID        int64     `json:"id"`
	GameID    string    `json:"game"`
	Character string    `json:"character"`
	Score     int       `json:"score"`
	CreatedAt time.Time `json:"created_at"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Databases written before per-character scores get the column added in place.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			character TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return err
	}

	has, err := s.hasColumn("scores", "character")
	if err != nil {
		return err
	}
	if !has {
		if _, err := s.db.Exec(`ALTER TABLE scores ADD COLUMN character TEXT NOT NULL DEFAULT ''`); err != nil {
			return err
		}
	}
	_, err = s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_scores_character ON scores(game_id, character, score DESC)`)
	return err
}

func (s *Store) hasColumn(table, column string) (bool, error) {
	rows, err := s.db.Query(`SELECT name FROM pragma_table_info(?)`, table)
	if err != nil {
		return false, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return false, err
		}
		if name == column {
			return true, nil
		}
	}
	return false, rows.Err()
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished run for the given game and character.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID, character string, score int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, character, score) VALUES (?, ?, ?)",
		gameID, character, score,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game.
// An empty character matches every character. Results are ordered by score descending.
func (s *Store) TopScores(gameID, character string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, character, score, created_at
		 FROM scores
		 WHERE game_id = ? AND (? = '' OR character = ?)
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, character, character, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// AllScores retrieves all scores for the given game (no limit).
func (s *Store) AllScores(gameID string) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT id, game_id, character, score, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Character, &e.Score, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// parseTime handles the driver returning either time.Time or the raw text.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(sqliteTime, t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// LoadBest returns the best score stored under key.
// A missing or unreadable value counts as 0.
func (s *Store) LoadBest(key string) (int, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM kv WHERE key = ?", key).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load %s: %w", key, err)
	}

	best, err := strconv.Atoi(raw)
	if err != nil || best < 0 {
		return 0, nil
	}
	return best, nil
}

// SaveBest raises the best score under key to score. A stored value that is
// already at least score is kept, so concurrent sessions never lower it.
// Malformed stored values count as 0, the same as in LoadBest.
func (s *Store) SaveBest(key string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value
		 WHERE CASE WHEN kv.value <> '' AND kv.value NOT GLOB '*[^0-9]*'
		            THEN CAST(kv.value AS INTEGER) ELSE 0 END
		       < CAST(excluded.value AS INTEGER)`,
		key, strconv.Itoa(max(score, 0)),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save %s: %w", key, err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game or one of its characters.
type GameStats struct {
	GameID     string    `json:"game"`
	Character  string    `json:"character,omitempty"`
	GamesCount int       `json:"games"`
	HighScore  int       `json:"high_score"`
	AvgScore   float64   `json:"avg_score"`
	TotalScore int64     `json:"total_score"`
	LastPlayed time.Time `json:"last_played"`
}

// GetGameStats retrieves aggregated statistics for a specific game.
func (s *Store) GetGameStats(gameID string) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0)
		 FROM scores WHERE game_id = ?`,
		gameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? ORDER BY created_at DESC LIMIT 1`,
		gameID,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for all games that have been played.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, '', COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}

	list, err := scanStats(rows)
	if err != nil {
		return nil, err
	}
	stats := make(map[string]*GameStats, len(list))
	for _, st := range list {
		stats[st.GameID] = st
	}
	return stats, nil
}

// CharacterStats retrieves statistics per character for one game, ordered by character.
func (s *Store) CharacterStats(gameID string) ([]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, character, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(created_at)
		 FROM scores
		 WHERE game_id = ?
		 GROUP BY character
		 ORDER BY character`,
		gameID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get character stats: %w", err)
	}
	return scanStats(rows)
}

func scanStats(rows *sql.Rows) ([]*GameStats, error) {
	defer rows.Close()

	var list []*GameStats
	for rows.Next() {
		var st GameStats
		var lastPlayed any
		if err := rows.Scan(&st.GameID, &st.Character, &st.GamesCount, &st.HighScore, &st.AvgScore, &st.TotalScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		list = append(list, &st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return list, nil
}
