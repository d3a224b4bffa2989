// Package store keeps a history of simulation runs in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"schedsim/internal/sched"
	"schedsim/internal/session"

	_ "modernc.org/sqlite"
)

// timeLayout is fixed-width so created_at sorts lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// ErrNotFound is returned when a run id is unknown.
var ErrNotFound = errors.New("run not found")

// Run is one recorded simulation.
type Run struct {
	ID        string
	CreatedAt time.Time
	Algorithm string // reported name
	Ran       string // concrete algorithm id
	Quantum   int
	Cores     int
	Metrics   sched.Metrics
	Processes []*sched.Process
	Timeline  []sched.Segment
}

// FromOutcome captures a finished session run.
func FromOutcome(o *session.Outcome) *Run {
	return &Run{
		Algorithm: o.Name,
		Ran:       o.Ran.String(),
		Quantum:   o.Quantum,
		Cores:     o.Cores,
		Metrics:   o.Metrics,
		Processes: o.Processes,
		Timeline:  o.Timeline,
	}
}

// RunStore persists runs in SQLite.
type RunStore struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// Open opens (or creates) the database at path.
// Use ":memory:" for an in-memory database (useful in tests).
func Open(path string, log logrus.FieldLogger) (*RunStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// a single connection keeps ":memory:" databases shared
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("pragma wal: %w", err)
	}

	return &RunStore{db: db, log: log.WithField("component", "store")}, nil
}

// Close closes the underlying database connection.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// Migrate creates all required tables and indexes.
func (s *RunStore) Migrate(ctx context.Context) error {
	s.log.Debug("migrate")
	return migrate(ctx, s.db)
}

// SaveRun inserts r, assigning an id and timestamp when missing.
func (s *RunStore) SaveRun(ctx context.Context, r *Run) error {
	if r.ID == "" {
		r.ID = "run_" + uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	s.log.WithField("id", r.ID).Debug("insert run")

	procsJSON, err := json.Marshal(r.Processes)
	if err != nil {
		return fmt.Errorf("marshal processes: %w", err)
	}
	timelineJSON, err := json.Marshal(r.Timeline)
	if err != nil {
		return fmt.Errorf("marshal timeline: %w", err)
	}

	m := r.Metrics
	_, err = s.db.ExecContext(ctx, `INSERT INTO runs
		(id, created_at, algorithm, ran, quantum, cores, avg_waiting, avg_turnaround, avg_response,
		 makespan, cpu_utilization, throughput, completed, processes, timeline)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(timeLayout), r.Algorithm, r.Ran, r.Quantum, r.Cores,
		m.AvgWaiting, m.AvgTurnaround, m.AvgResponse, m.Makespan, m.CPUUtilization, m.Throughput, m.Completed,
		string(procsJSON), string(timelineJSON))
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}
	return nil
}

const selectRun = `SELECT id, created_at, algorithm, ran, quantum, cores, avg_waiting, avg_turnaround,
	avg_response, makespan, cpu_utilization, throughput, completed, processes, timeline FROM runs`

// GetRun returns the run with the given id.
func (s *RunStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx, selectRun+` WHERE id = ?`, id)
	r, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return r, err
}

// ListRuns returns up to limit runs, newest first. limit <= 0 means no limit.
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx, selectRun+` ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*Run, error) {
	var (
		r                 Run
		created           string
		procsJSON, tlJSON string
	)
	err := sc.Scan(&r.ID, &created, &r.Algorithm, &r.Ran, &r.Quantum, &r.Cores,
		&r.Metrics.AvgWaiting, &r.Metrics.AvgTurnaround, &r.Metrics.AvgResponse, &r.Metrics.Makespan,
		&r.Metrics.CPUUtilization, &r.Metrics.Throughput, &r.Metrics.Completed, &procsJSON, &tlJSON)
	if err != nil {
		return nil, err
	}
	if r.CreatedAt, err = time.Parse(timeLayout, created); err != nil {
		return nil, fmt.Errorf("run %s: parse created_at: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(procsJSON), &r.Processes); err != nil {
		return nil, fmt.Errorf("run %s: unmarshal processes: %w", r.ID, err)
	}
	if err := json.Unmarshal([]byte(tlJSON), &r.Timeline); err != nil {
		return nil, fmt.Errorf("run %s: unmarshal timeline: %w", r.ID, err)
	}
	return &r, nil
}
