// Package persistence provides SQLite-based storage for finished simulation
// runs: the parameters and the per-round attachment summaries. Population
// state itself is never stored.
package persistence

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/talgya/socialsim/internal/engine"
)

// DB wraps a SQLite connection for run storage.
type DB struct {
	conn *sqlx.DB
}

// Run is a recorded simulation run.
type Run struct {
	ID         string    `db:"id" json:"id"`
	Seed       int64     `db:"seed" json:"seed"`
	Size       int       `db:"size" json:"size"`
	Iterations int       `db:"iterations" json:"iterations"`
	Pull       float64   `db:"pull" json:"pull"`
	FinalMean  float64   `db:"final_mean" json:"final_mean"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// Round is one recorded per-round summary.
type Round struct {
	Round        int     `db:"round" json:"round"`
	Count        int     `db:"count" json:"count"`
	Mean         float64 `db:"mean" json:"mean"`
	StdDev       float64 `db:"std_dev" json:"std_dev"`
	Min          float64 `db:"min" json:"min"`
	Max          float64 `db:"max" json:"max"`
	Interactions int     `db:"interactions" json:"interactions"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// SQLite allows one writer; a single connection also keeps ":memory:" coherent.
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		seed INTEGER NOT NULL,
		size INTEGER NOT NULL,
		iterations INTEGER NOT NULL,
		pull REAL NOT NULL,
		final_mean REAL NOT NULL,
		created_at TIMESTAMP NOT NULL
	);

	CREATE TABLE IF NOT EXISTS rounds (
		run_id TEXT NOT NULL REFERENCES runs(id),
		round INTEGER NOT NULL,
		count INTEGER NOT NULL,
		mean REAL NOT NULL,
		std_dev REAL NOT NULL,
		min REAL NOT NULL,
		max REAL NOT NULL,
		interactions INTEGER NOT NULL,
		PRIMARY KEY (run_id, round)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// NewRun creates a run record for the given parameters with a fresh ID.
func NewRun(p engine.Params, seed int64, iterations int) Run {
	return Run{
		ID:         uuid.NewString(),
		Seed:       seed,
		Size:       p.Size,
		Iterations: iterations,
		Pull:       p.Pull,
		CreatedAt:  time.Now().UTC(),
	}
}

// SaveRun writes a run and its rounds in one transaction. FinalMean is taken
// from the last round.
func (db *DB) SaveRun(run Run, rounds []Round) error {
	if len(rounds) > 0 {
		run.FinalMean = rounds[len(rounds)-1].Mean
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.NamedExec(`INSERT INTO runs
		(id, seed, size, iterations, pull, final_mean, created_at)
		VALUES (:id, :seed, :size, :iterations, :pull, :final_mean, :created_at)`, run)
	if err != nil {
		return fmt.Errorf("insert run %s: %w", run.ID, err)
	}

	stmt, err := tx.Preparex(`INSERT INTO rounds
		(run_id, round, count, mean, std_dev, min, max, interactions)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, r := range rounds {
		_, err := stmt.Exec(run.ID, r.Round, r.Count, r.Mean, r.StdDev, r.Min, r.Max, r.Interactions)
		if err != nil {
			return fmt.Errorf("insert round %d: %w", r.Round, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	slog.Info("run recorded", "id", run.ID, "rounds", len(rounds))
	return nil
}

// LoadRounds returns the rounds of a run in order.
func (db *DB) LoadRounds(runID string) ([]Round, error) {
	var rounds []Round
	err := db.conn.Select(&rounds,
		`SELECT round, count, mean, std_dev, min, max, interactions
		 FROM rounds WHERE run_id = ? ORDER BY round`,
		runID,
	)
	return rounds, err
}

// GetRun returns a single run by ID.
func (db *DB) GetRun(runID string) (Run, error) {
	var run Run
	err := db.conn.Get(&run, "SELECT * FROM runs WHERE id = ?", runID)
	return run, err
}

// RecentRuns returns the most recent N runs, newest first.
func (db *DB) RecentRuns(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs,
		"SELECT * FROM runs ORDER BY created_at DESC LIMIT ?",
		limit,
	)
	return runs, err
}
