// Package store provides SQLite-backed persistence for household snapshots
// and their simulation run history.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // register sqlite driver
)

var (
	ErrSnapshotNotFound = errors.New("snapshot not found")
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS snapshots (
	id                      TEXT PRIMARY KEY,
	created_at              TEXT NOT NULL,
	city                    TEXT NOT NULL,
	monthly_income_takehome REAL NOT NULL,
	emergency_fund_balance  REAL NOT NULL,
	essential_total         REAL NOT NULL,
	discretionary_total     REAL NOT NULL,
	col_profile_json        TEXT
);
CREATE INDEX IF NOT EXISTS idx_snapshots_city ON snapshots(city);

CREATE TABLE IF NOT EXISTS simulation_runs (
	id            TEXT PRIMARY KEY,
	snapshot_id   TEXT NOT NULL REFERENCES snapshots(id),
	created_at    TEXT NOT NULL,
	scenario_kind TEXT NOT NULL,
	params_json   TEXT NOT NULL,
	results_json  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_snapshot ON simulation_runs(snapshot_id, created_at);
`

// Store wraps the SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at the given path and bootstraps the
// schema.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating database dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Snapshot is a persisted household financial position. Field names follow
// the API payloads (income is take-home, expense fields are monthly totals).
type Snapshot struct {
	ID                    string
	CreatedAt             time.Time
	City                  string
	MonthlyIncomeTakehome float64
	EmergencyFundBalance  float64
	EssentialTotal        float64
	DiscretionaryTotal    float64
	COLProfileJSON        string
}

// SimulationRun is one persisted scenario execution for a snapshot. Params
// and results are stored as JSON documents.
type SimulationRun struct {
	ID           string
	SnapshotID   string
	CreatedAt    time.Time
	ScenarioKind string
	ParamsJSON   string
	ResultsJSON  string
}

// CreateSnapshot inserts a snapshot, assigning its ID and creation time when
// unset.
func (s *Store) CreateSnapshot(snap *Snapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`INSERT INTO snapshots
		(id, created_at, city, monthly_income_takehome, emergency_fund_balance,
		 essential_total, discretionary_total, col_profile_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.CreatedAt.UTC().Format(time.RFC3339), snap.City,
		snap.MonthlyIncomeTakehome, snap.EmergencyFundBalance,
		snap.EssentialTotal, snap.DiscretionaryTotal, snap.COLProfileJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting snapshot: %w", err)
	}
	return nil
}

// GetSnapshot fetches one snapshot, returning ErrSnapshotNotFound when the
// ID is unknown.
func (s *Store) GetSnapshot(id string) (Snapshot, error) {
	row := s.db.QueryRow(`SELECT id, created_at, city, monthly_income_takehome,
		emergency_fund_balance, essential_total, discretionary_total, col_profile_json
		FROM snapshots WHERE id = ?`, id)

	snap, err := scanSnapshot(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, ErrSnapshotNotFound
	}
	return snap, err
}

// ListSnapshots returns the most recent snapshots, newest first.
func (s *Store) ListSnapshots(limit int) ([]Snapshot, error) {
	rows, err := s.db.Query(`SELECT id, created_at, city, monthly_income_takehome,
		emergency_fund_balance, essential_total, discretionary_total, col_profile_json
		FROM snapshots ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Snapshot
	for rows.Next() {
		snap, err := scanSnapshot(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// SaveRun inserts a simulation run, assigning its ID and creation time when
// unset.
func (s *Store) SaveRun(run *SimulationRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.Exec(`INSERT INTO simulation_runs
		(id, snapshot_id, created_at, scenario_kind, params_json, results_json)
		VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.SnapshotID, run.CreatedAt.UTC().Format(time.RFC3339),
		run.ScenarioKind, run.ParamsJSON, run.ResultsJSON,
	)
	if err != nil {
		return fmt.Errorf("inserting simulation run: %w", err)
	}
	return nil
}

// ListRuns returns all runs for a snapshot, newest first.
func (s *Store) ListRuns(snapshotID string) ([]SimulationRun, error) {
	rows, err := s.db.Query(`SELECT id, snapshot_id, created_at, scenario_kind,
		params_json, results_json
		FROM simulation_runs WHERE snapshot_id = ? ORDER BY created_at DESC, id`, snapshotID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []SimulationRun
	for rows.Next() {
		var run SimulationRun
		var createdAt string
		if err := rows.Scan(&run.ID, &run.SnapshotID, &createdAt,
			&run.ScenarioKind, &run.ParamsJSON, &run.ResultsJSON); err != nil {
			return nil, err
		}
		run.CreatedAt = parseTime(createdAt)
		out = append(out, run)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row rowScanner) (Snapshot, error) {
	var snap Snapshot
	var createdAt string
	var colProfile sql.NullString
	err := row.Scan(&snap.ID, &createdAt, &snap.City, &snap.MonthlyIncomeTakehome,
		&snap.EmergencyFundBalance, &snap.EssentialTotal, &snap.DiscretionaryTotal, &colProfile)
	if err != nil {
		return Snapshot{}, err
	}
	snap.CreatedAt = parseTime(createdAt)
	snap.COLProfileJSON = colProfile.String
	return snap, nil
}

func parseTime(value string) time.Time {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
