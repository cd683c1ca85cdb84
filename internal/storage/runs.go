package storage

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/SeamusWaldron/concurrentcube/internal/stress"
)

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000Z07:00"

// Run is a stored stress run.
type Run struct {
	RunID  string
	Report stress.Report
}

// RunRepository provides access to stored stress runs.
type RunRepository struct {
	db *DB
}

// NewRunRepository creates a new run repository.
func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// Create stores a report and returns its run ID.
func (r *RunRepository) Create(report stress.Report) (string, error) {
	id := uuid.New().String()
	w := report.Workload
	v := report.Violations

	_, err := r.db.Exec(`
		INSERT INTO runs (
			run_id, started_at, duration_ms, size,
			workers, ops_per_worker, show_every, cancel_ratio, seed,
			rotations, shows, cancelled,
			axis_overlaps, layer_overlaps, rotate_while_showing, show_while_rotating,
			max_handovers_waited, conserved, final_state
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, report.StartedAt.UTC().Format(timeLayout), report.Duration.Milliseconds(), report.Size,
		w.Workers, w.OpsPerWorker, w.ShowEvery, w.CancelRatio, w.Seed,
		report.Rotations, report.Shows, report.Cancelled,
		v.AxisOverlap, v.LayerOverlap, v.RotateWhileShowing, v.ShowWhileRotating,
		report.MaxHandoversWaited, report.Conserved, report.Final)
	if err != nil {
		return "", fmt.Errorf("failed to create run: %w", err)
	}

	return id, nil
}

const runColumns = `
	run_id, started_at, duration_ms, size,
	workers, ops_per_worker, show_every, cancel_ratio, seed,
	rotations, shows, cancelled,
	axis_overlaps, layer_overlaps, rotate_while_showing, show_while_rotating,
	max_handovers_waited, conserved, final_state`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var startedAt string
	var durationMs int64
	rep := &run.Report

	err := row.Scan(
		&run.RunID, &startedAt, &durationMs, &rep.Size,
		&rep.Workload.Workers, &rep.Workload.OpsPerWorker, &rep.Workload.ShowEvery,
		&rep.Workload.CancelRatio, &rep.Workload.Seed,
		&rep.Rotations, &rep.Shows, &rep.Cancelled,
		&rep.Violations.AxisOverlap, &rep.Violations.LayerOverlap,
		&rep.Violations.RotateWhileShowing, &rep.Violations.ShowWhileRotating,
		&rep.MaxHandoversWaited, &rep.Conserved, &rep.Final,
	)
	if err != nil {
		return nil, err
	}

	rep.StartedAt, err = time.Parse(timeLayout, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start time: %w", err)
	}
	rep.Duration = time.Duration(durationMs) * time.Millisecond

	return &run, nil
}

// Get retrieves a run by ID. It returns nil if no such run exists.
func (r *RunRepository) Get(runID string) (*Run, error) {
	run, err := scanRun(r.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, runID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	return run, nil
}

// List returns up to limit runs, newest first. A limit of zero or less
// returns all runs.
func (r *RunRepository) List(limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, *run)
	}

	return runs, rows.Err()
}

// Prune deletes all but the newest keep runs and returns how many were
// removed.
func (r *RunRepository) Prune(keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}

	var removed int64
	err := r.db.Transaction(func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			DELETE FROM runs
			WHERE run_id NOT IN (
				SELECT run_id FROM runs
				ORDER BY started_at DESC, rowid DESC
				LIMIT ?
			)
		`, keep)
		if err != nil {
			return err
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	return int(removed), nil
}

// Count returns the number of stored runs.
func (r *RunRepository) Count() (int, error) {
	var n int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return n, nil
}
