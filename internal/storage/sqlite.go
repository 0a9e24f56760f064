// Package storage provides SQLite-based persistence for match history and
// player preferences. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
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

// Setting keys.
const (
	SettingMuted = "audio.muted"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// MatchRecord is one finished match.
type MatchRecord struct {
	ID         int64
	Winner     string // "red" or "blue"
	RedLives   int
	BlueLives  int
	RedHuman   bool
	BlueHuman  bool
	Strategy   string
	Ticks      int64
	Seed       int64
	Spectators int
	CreatedAt  time.Time
}

// Players returns how many paddles were human controlled.
func (r MatchRecord) Players() int {
	n := 0
	if r.RedHuman {
		n++
	}
	if r.BlueHuman {
		n++
	}
	return n
}

// MatchStats aggregates the match table.
type MatchStats struct {
	Played       int
	RedWins      int
	BlueWins     int
	LongestTicks int64
	LastPlayed   time.Time
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS matches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			winner TEXT NOT NULL,
			red_lives INTEGER NOT NULL DEFAULT 0,
			blue_lives INTEGER NOT NULL DEFAULT 0,
			red_human INTEGER NOT NULL DEFAULT 0,
			blue_human INTEGER NOT NULL DEFAULT 0,
			strategy TEXT NOT NULL,
			ticks INTEGER NOT NULL DEFAULT 0,
			seed INTEGER NOT NULL DEFAULT 0,
			spectators INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_matches_winner ON matches(winner);
		CREATE INDEX IF NOT EXISTS idx_matches_created ON matches(created_at DESC);

		CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
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

// SaveMatch records a finished match and returns its ID.
func (s *Store) SaveMatch(r MatchRecord) (int64, error) {
	if r.Winner != "red" && r.Winner != "blue" {
		return 0, fmt.Errorf("storage: invalid winner %q", r.Winner)
	}

	result, err := s.db.Exec(
		`INSERT INTO matches
		 (winner, red_lives, blue_lives, red_human, blue_human, strategy, ticks, seed, spectators)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Winner, r.RedLives, r.BlueLives, r.RedHuman, r.BlueHuman,
		r.Strategy, r.Ticks, r.Seed, r.Spectators,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// RecentMatches returns up to limit matches, newest first.
func (s *Store) RecentMatches(limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, winner, red_lives, blue_lives, red_human, blue_human,
		        strategy, ticks, seed, spectators, created_at
		 FROM matches
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var records []MatchRecord
	for rows.Next() {
		var r MatchRecord
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Winner,
			&r.RedLives,
			&r.BlueLives,
			&r.RedHuman,
			&r.BlueHuman,
			&r.Strategy,
			&r.Ticks,
			&r.Seed,
			&r.Spectators,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// Stats aggregates every recorded match.
func (s *Store) Stats() (*MatchStats, error) {
	stats := &MatchStats{}
	var lastPlayed any

	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN winner = 'red' THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN winner = 'blue' THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(ticks), 0),
		        MAX(created_at)
		 FROM matches`,
	).Scan(&stats.Played, &stats.RedWins, &stats.BlueWins, &stats.LongestTicks, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get match stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// ClearMatches deletes the match history.
func (s *Store) ClearMatches() error {
	if _, err := s.db.Exec("DELETE FROM matches"); err != nil {
		return fmt.Errorf("storage: cannot clear matches: %w", err)
	}
	return nil
}

// Setting returns the stored value for key and whether it exists.
func (s *Store) Setting(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read setting %s: %w", key, err)
	}
	return value, true, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %s: %w", key, err)
	}
	return nil
}

// Muted returns the saved mute preference, or fallback when none is stored.
func (s *Store) Muted(fallback bool) (bool, error) {
	v, ok, err := s.Setting(SettingMuted)
	if err != nil || !ok {
		return fallback, err
	}
	muted, err := strconv.ParseBool(v)
	if err != nil {
		return fallback, fmt.Errorf("storage: bad %s value %q: %w", SettingMuted, v, err)
	}
	return muted, nil
}

// SetMuted saves the mute preference.
func (s *Store) SetMuted(muted bool) error {
	return s.SetSetting(SettingMuted, strconv.FormatBool(muted))
}

// parseTime handles both time.Time and the SQLite text form.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
