// Package storage provides SQLite-based persistence for simulation runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Sources of a run.
const (
	SourceTUI      = "tui"
	SourceHeadless = "headless"
	SourceSSH      = "ssh"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished simulation.
type Run struct {
	Seq       int64
	ID        string // UUID, assigned by SaveRun when empty
	Ruleset   string // ruleset name, or the unsaved-table name
	Rules     string // the table in "0-0-L-1-1" form, one rule per line
	Steps     uint64
	Painted   int
	Source    string
	User      string // SSH user, empty for local runs
	Duration  time.Duration
	CreatedAt time.Time
}

// Stats contains aggregated statistics for a ruleset.
type Stats struct {
	Ruleset    string
	Runs       int
	MaxSteps   uint64
	MaxPainted int
	TotalSteps uint64
	LastRun    time.Time
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
		CREATE TABLE IF NOT EXISTS runs (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			ruleset TEXT NOT NULL,
			rules TEXT NOT NULL,
			steps INTEGER NOT NULL DEFAULT 0,
			painted INTEGER NOT NULL DEFAULT 0,
			source TEXT NOT NULL,
			user_name TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_ruleset ON runs(ruleset);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(ruleset, steps DESC);
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

// SaveRun records a finished run and returns it with ID, Seq and CreatedAt set.
func (s *Store) SaveRun(run Run) (Run, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	result, err := s.db.Exec(
		`INSERT INTO runs (id, ruleset, rules, steps, painted, source, user_name, duration_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Ruleset,
		run.Rules,
		int64(run.Steps),
		run.Painted,
		run.Source,
		run.User,
		run.Duration.Milliseconds(),
		run.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return run, fmt.Errorf("storage: cannot save run: %w", err)
	}

	seq, err := result.LastInsertId()
	if err != nil {
		return run, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}
	run.Seq = seq

	return run, nil
}

const runColumns = `seq, id, ruleset, rules, steps, painted, source, user_name, duration_ms, created_at`

// RecentRuns retrieves the most recent runs across all rulesets.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY seq DESC LIMIT ?`,
		limit,
	)
}

// RunsFor retrieves the most recent runs of one ruleset.
func (s *Store) RunsFor(ruleset string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE ruleset = ? ORDER BY seq DESC LIMIT ?`,
		ruleset, limit,
	)
}

// LongestRuns retrieves the runs of a ruleset with the most steps.
func (s *Store) LongestRuns(ruleset string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE ruleset = ? ORDER BY steps DESC, seq ASC LIMIT ?`,
		ruleset, limit,
	)
}

// RunByID retrieves a run by its ID. Returns nil if there is no such run.
func (s *Store) RunByID(id string) (*Run, error) {
	run, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query run: %w", err)
	}
	return &run, nil
}

// ClearRuns deletes all runs of the given ruleset.
func (s *Store) ClearRuns(ruleset string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE ruleset = ?", ruleset)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RulesetStats retrieves aggregated statistics for one ruleset.
func (s *Store) RulesetStats(ruleset string) (*Stats, error) {
	stats := &Stats{Ruleset: ruleset}

	var maxSteps, totalSteps int64
	var lastRun sql.NullString
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(steps), 0), COALESCE(MAX(painted), 0), COALESCE(SUM(steps), 0), MAX(created_at)
		 FROM runs WHERE ruleset = ?`,
		ruleset,
	).Scan(&stats.Runs, &maxSteps, &stats.MaxPainted, &totalSteps, &lastRun)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get ruleset stats: %w", err)
	}

	stats.MaxSteps = uint64(maxSteps)
	stats.TotalSteps = uint64(totalSteps)
	if lastRun.Valid {
		stats.LastRun = parseTime(lastRun.String)
	}
	return stats, nil
}

// AllStats retrieves statistics for every ruleset that has runs, sorted by name.
func (s *Store) AllStats() ([]Stats, error) {
	rows, err := s.db.Query(
		`SELECT ruleset, COUNT(*), MAX(steps), MAX(painted), SUM(steps), MAX(created_at)
		 FROM runs
		 GROUP BY ruleset
		 ORDER BY ruleset`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	var all []Stats
	for rows.Next() {
		var st Stats
		var maxSteps, totalSteps int64
		var lastRun any
		if err := rows.Scan(&st.Ruleset, &st.Runs, &maxSteps, &st.MaxPainted, &totalSteps, &lastRun); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.MaxSteps = uint64(maxSteps)
		st.TotalSteps = uint64(totalSteps)
		st.LastRun = parseTime(lastRun)
		all = append(all, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return all, nil
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var run Run
	var steps, durationMS int64
	var createdAt any

	err := row.Scan(
		&run.Seq,
		&run.ID,
		&run.Ruleset,
		&run.Rules,
		&steps,
		&run.Painted,
		&run.Source,
		&run.User,
		&durationMS,
		&createdAt,
	)
	if err != nil {
		return Run{}, err
	}

	run.Steps = uint64(steps)
	run.Duration = time.Duration(durationMS) * time.Millisecond
	run.CreatedAt = parseTime(createdAt)
	return run, nil
}

// parseTime handles both time.Time and the string layouts SQLite hands back.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range []string{time.RFC3339Nano, "2006-01-02 15:04:05.999999999-07:00", "2006-01-02 15:04:05"} {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}
