// Package storage provides SQLite-based persistence for the best score and
// the history of finished rounds.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/candle-rush/internal/games/candles"
)

const (
	// GameID tags the rows of the score history.
	GameID = "candles"

	// BestScoreKey is the settings key holding the best score.
	BestScoreKey = "candles.bestScore"
)

// ErrMalformedBest is returned when the stored best score is not a number.
// The accompanying value is 0.
var ErrMalformedBest = errors.New("storage: stored best score is not a number")

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished round in the score history.
type RunRecord struct {
	ID       int64
	RunID    string
	Score    int
	Voucher  string
	PlayedAt time.Time
}

// Stats contains aggregated statistics over the score history.
type Stats struct {
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	LastPlayed time.Time
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

	// SSH sessions share one store; serialise writers.
	db.SetMaxOpenConns(1)

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			run_id TEXT NOT NULL DEFAULT '',
			score INTEGER NOT NULL,
			voucher TEXT NOT NULL DEFAULT '',
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_game_id ON scores(game_id);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// LoadBestScore returns the stored best score, or 0 when none is stored.
// A value that is not a number yields 0 and ErrMalformedBest.
func (s *Store) LoadBestScore() (int, error) {
	var raw string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", BestScoreKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot load best score: %w", err)
	}

	return parseBest(raw)
}

// parseBest reads an integer best score. Whole-valued decimals that fit in
// an int are accepted; anything else is malformed.
func parseBest(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if v, err := strconv.Atoi(raw); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || f < math.MinInt || f >= math.MaxInt {
		return 0, fmt.Errorf("%w: %q", ErrMalformedBest, raw)
	}
	return int(f), nil
}

// SaveBestScore stores score as the best score.
func (s *Store) SaveBestScore(score int) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		BestScoreKey, strconv.Itoa(score),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// ResetBestScore forgets the best score.
func (s *Store) ResetBestScore() error {
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", BestScoreKey); err != nil {
		return fmt.Errorf("storage: cannot reset best score: %w", err)
	}
	return nil
}

var _ candles.BestScoreStore = (*Store)(nil)

// SaveRun records a finished round. Returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	playedAt := r.PlayedAt
	if playedAt.IsZero() {
		playedAt = time.Now()
	}

	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, run_id, score, voucher, created_at) VALUES (?, ?, ?, ?, ?)",
		GameID, r.RunID, r.Score, r.Voucher, playedAt.UTC().Format(time.DateTime),
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

// SaveSummary records the summary of an ended round.
func (s *Store) SaveSummary(sum candles.Summary) (int64, error) {
	return s.SaveRun(RunRecord{
		RunID:    sum.RunID,
		Score:    sum.FinalScore,
		Voucher:  sum.Voucher,
		PlayedAt: sum.PlayedAt,
	})
}

// TopRuns retrieves the best N rounds, highest score first.
func (s *Store) TopRuns(limit int) ([]RunRecord, error) {
	return s.queryRuns("ORDER BY score DESC, id ASC", limit)
}

// RecentRuns retrieves the last N rounds, newest first.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	return s.queryRuns("ORDER BY id DESC", limit)
}

func (s *Store) queryRuns(order string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, run_id, score, voucher, created_at
		 FROM scores
		 WHERE game_id = ? `+order+`
		 LIMIT ?`,
		GameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []RunRecord
	for rows.Next() {
		var e RunRecord
		var createdAt any
		if err := rows.Scan(&e.ID, &e.RunID, &e.Score, &e.Voucher, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.PlayedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score in the history.
// Returns 0 if no scores exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		GameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes the score history. The best score is kept.
func (s *Store) ClearRuns() error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", GameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GetStats retrieves aggregated statistics over the score history.
func (s *Store) GetStats() (*Stats, error) {
	stats := &Stats{}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0), MAX(created_at)
		 FROM scores WHERE game_id = ?`,
		GameID,
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// parseTime handles the datetime shapes the driver returns.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse(time.DateTime, v); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
