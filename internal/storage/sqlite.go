// Package storage keeps the run log in an in-memory SQLite database.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Nothing is written to disk: the log lives as long as the process.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the run log database.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Run is one finished game.
type Run struct {
	ID        int64
	RunID     string
	Player    string
	Score     int
	Duration  time.Duration
	CreatedAt time.Time
}

// Stats aggregates every run in the log.
type Stats struct {
	Runs       int
	HighScore  int
	AvgScore   float64
	TotalTime  time.Duration
	LastPlayed time.Time
}

// Open creates an empty in-memory run log.
func Open() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Every connection to :memory: is its own database, so keep exactly one.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: time.Now}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}
	return store, nil
}

// migrate creates the schema.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL UNIQUE,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database; the log is gone afterwards.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run and returns it with its new IDs.
func (s *Store) SaveRun(player string, score int, d time.Duration) (Run, error) {
	if player == "" {
		player = "anonymous"
	}
	run := Run{
		RunID:     uuid.NewString(),
		Player:    player,
		Score:     score,
		Duration:  d.Truncate(time.Millisecond),
		CreatedAt: s.now().UTC().Truncate(time.Millisecond),
	}

	res, err := s.db.Exec(
		`INSERT INTO runs (run_id, player, score, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		run.RunID, run.Player, run.Score, run.Duration.Milliseconds(), run.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot save run: %w", err)
	}

	run.ID, err = res.LastInsertId()
	if err != nil {
		return Run{}, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	return run, nil
}

const runColumns = `id, run_id, player, score, duration_ms, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var (
		r         Run
		durMS     int64
		createdMS int64
	)
	if err := row.Scan(&r.ID, &r.RunID, &r.Player, &r.Score, &durMS, &createdMS); err != nil {
		return Run{}, err
	}
	r.Duration = time.Duration(durMS) * time.Millisecond
	r.CreatedAt = time.UnixMilli(createdMS).UTC()
	return r, nil
}

// TopRuns returns the best runs, highest score first. Ties keep the
// earlier run first.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunByID looks a run up by its run ID. Returns nil if there is none.
func (s *Store) RunByID(runID string) (*Run, error) {
	r, err := scanRun(s.db.QueryRow(
		`SELECT `+runColumns+` FROM runs WHERE run_id = ?`,
		runID,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &r, nil
}

// HighScore returns the best score in the log, or 0 when it is empty.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	if err := s.db.QueryRow("SELECT MAX(score) FROM runs").Scan(&score); err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// Stats summarises the whole log.
func (s *Store) Stats() (Stats, error) {
	var (
		st      Stats
		totalMS int64
		lastMS  int64
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(duration_ms), 0), COALESCE(MAX(created_at), 0)
		 FROM runs`,
	).Scan(&st.Runs, &st.HighScore, &st.AvgScore, &totalMS, &lastMS)
	if err != nil {
		return Stats{}, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	st.TotalTime = time.Duration(totalMS) * time.Millisecond
	if st.Runs > 0 {
		st.LastPlayed = time.UnixMilli(lastMS).UTC()
	}
	return st, nil
}

// Clear deletes every run.
func (s *Store) Clear() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
