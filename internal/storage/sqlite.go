// Package storage provides SQLite-based persistence for win tallies.
// Only aggregate counters are kept; individual matches are never recorded.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/blink-tac-toe/internal/blink"
	"github.com/vovakirdan/blink-tac-toe/internal/match"
)

// Store manages the SQLite database connection for tally persistence.
type Store struct {
	db *sql.DB
}

// TallyKey identifies one counter row: a mode, a difficulty (empty for two
// players) and the category each seat played.
type TallyKey struct {
	Mode            string
	Difficulty      string
	Player1Category string
	Player2Category string
}

// TallyEntry is an aggregated win count.
type TallyEntry struct {
	TallyKey
	Player1Wins int
	Player2Wins int
	UpdatedAt   time.Time
}

// Total returns the number of decided matches counted in the entry.
func (e TallyEntry) Total() int {
	return e.Player1Wins + e.Player2Wins
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
		CREATE TABLE IF NOT EXISTS win_tallies (
			mode TEXT NOT NULL,
			difficulty TEXT NOT NULL DEFAULT '',
			player1_category TEXT NOT NULL,
			player2_category TEXT NOT NULL,
			player1_wins INTEGER NOT NULL DEFAULT 0,
			player2_wins INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (mode, difficulty, player1_category, player2_category)
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

// AddWin increments the counter for winner under key.
func (s *Store) AddWin(key TallyKey, winner blink.Seat) error {
	var p1, p2 int
	switch winner {
	case blink.Seat1:
		p1 = 1
	case blink.Seat2:
		p2 = 1
	default:
		return fmt.Errorf("storage: cannot record win for %v", winner)
	}

	_, err := s.db.Exec(
		`INSERT INTO win_tallies
		 (mode, difficulty, player1_category, player2_category, player1_wins, player2_wins)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT (mode, difficulty, player1_category, player2_category) DO UPDATE SET
		   player1_wins = player1_wins + excluded.player1_wins,
		   player2_wins = player2_wins + excluded.player2_wins,
		   updated_at = CURRENT_TIMESTAMP`,
		key.Mode, key.Difficulty, key.Player1Category, key.Player2Category, p1, p2,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save win: %w", err)
	}
	return nil
}

// RecordWin implements match.ResultSaver.
// The match ID is not stored: only the counters move.
func (s *Store) RecordWin(rec match.WinRecord) error {
	return s.AddWin(TallyKey{
		Mode:            rec.Mode.String(),
		Difficulty:      rec.Difficulty,
		Player1Category: rec.Player1Category,
		Player2Category: rec.Player2Category,
	}, rec.Winner)
}

// Ensure Store implements ResultSaver
var _ match.ResultSaver = (*Store)(nil)

// Tally returns the counters for key. A key with no wins yet reads as zero.
func (s *Store) Tally(key TallyKey) (TallyEntry, error) {
	entry := TallyEntry{TallyKey: key}
	var updatedAt any

	err := s.db.QueryRow(
		`SELECT player1_wins, player2_wins, updated_at
		 FROM win_tallies
		 WHERE mode = ? AND difficulty = ? AND player1_category = ? AND player2_category = ?`,
		key.Mode, key.Difficulty, key.Player1Category, key.Player2Category,
	).Scan(&entry.Player1Wins, &entry.Player2Wins, &updatedAt)

	if err == sql.ErrNoRows {
		return entry, nil
	}
	if err != nil {
		return entry, fmt.Errorf("storage: cannot query tally: %w", err)
	}

	entry.UpdatedAt = parseTime(updatedAt)
	return entry, nil
}

// Tallies returns every counter row, busiest pairing first.
func (s *Store) Tallies() ([]TallyEntry, error) {
	rows, err := s.db.Query(
		`SELECT mode, difficulty, player1_category, player2_category,
		        player1_wins, player2_wins, updated_at
		 FROM win_tallies
		 ORDER BY player1_wins + player2_wins DESC, mode, difficulty, player1_category, player2_category`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query tallies: %w", err)
	}
	defer rows.Close()

	var entries []TallyEntry
	for rows.Next() {
		var e TallyEntry
		var updatedAt any
		if err := rows.Scan(
			&e.Mode,
			&e.Difficulty,
			&e.Player1Category,
			&e.Player2Category,
			&e.Player1Wins,
			&e.Player2Wins,
			&updatedAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ModeTotals sums wins per seat across all pairings of a mode.
type ModeTotals struct {
	Mode        string
	Player1Wins int
	Player2Wins int
}

// TotalsByMode returns the per-mode sums keyed by mode name.
func (s *Store) TotalsByMode() (map[string]ModeTotals, error) {
	rows, err := s.db.Query(
		`SELECT mode, SUM(player1_wins), SUM(player2_wins)
		 FROM win_tallies
		 GROUP BY mode`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]ModeTotals)
	for rows.Next() {
		var t ModeTotals
		if err := rows.Scan(&t.Mode, &t.Player1Wins, &t.Player2Wins); err != nil {
			return nil, fmt.Errorf("storage: cannot scan totals row: %w", err)
		}
		totals[t.Mode] = t
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return totals, nil
}

// ClearTallies deletes all counters.
func (s *Store) ClearTallies() error {
	if _, err := s.db.Exec("DELETE FROM win_tallies"); err != nil {
		return fmt.Errorf("storage: cannot clear tallies: %w", err)
	}
	return nil
}

// parseTime handles both time.Time and string datetimes from the driver.
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
