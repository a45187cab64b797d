package database

import (
	"fmt"
)

var _ RunRepository = (*RunRepo)(nil)

// RunRepo handles database operations for audit run history
type RunRepo struct {
	db *DB
}

func NewRunRepository(db *DB) *RunRepo {
	return &RunRepo{db: db}
}

// SaveRun inserts one audit run and its problems in a single transaction.
func (r *RunRepo) SaveRun(run Run, problems []string) (int64, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.Exec(`
		INSERT INTO audit_runs (source_url, source_kind, target, collected, pages_visited,
			stop_cause, passed, unparsable_count, fatal, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.SourceURL, run.SourceKind, run.Target, run.Collected, run.PagesVisited,
		run.StopCause, run.Passed, run.UnparsableCount, run.Fatal, run.StartedAt, run.FinishedAt)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w", err)
	}

	for i, problem := range problems {
		_, err := tx.Exec(`
			INSERT INTO audit_problems (run_id, seq, description)
			VALUES (?, ?, ?)
		`, runID, i+1, problem)
		if err != nil {
			return 0, fmt.Errorf("failed to insert problem %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

func (r *RunRepo) GetRun(id int64) (*Run, error) {
	row := r.db.QueryRow(`
		SELECT id, source_url, source_kind, target, collected, pages_visited,
			stop_cause, passed, unparsable_count, fatal, started_at, finished_at, created_at
		FROM audit_runs
		WHERE id = ?
	`, id)

	var run Run
	err := row.Scan(&run.ID, &run.SourceURL, &run.SourceKind, &run.Target, &run.Collected,
		&run.PagesVisited, &run.StopCause, &run.Passed, &run.UnparsableCount, &run.Fatal,
		&run.StartedAt, &run.FinishedAt, &run.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return &run, nil
}

func (r *RunRepo) GetRecentRuns(limit int) ([]Run, error) {
	rows, err := r.db.Query(`
		SELECT id, source_url, source_kind, target, collected, pages_visited,
			stop_cause, passed, unparsable_count, fatal, started_at, finished_at, created_at
		FROM audit_runs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		err := rows.Scan(&run.ID, &run.SourceURL, &run.SourceKind, &run.Target, &run.Collected,
			&run.PagesVisited, &run.StopCause, &run.Passed, &run.UnparsableCount, &run.Fatal,
			&run.StartedAt, &run.FinishedAt, &run.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

func (r *RunRepo) GetRunProblems(runID int64) ([]string, error) {
	rows, err := r.db.Query(`
		SELECT description
		FROM audit_problems
		WHERE run_id = ?
		ORDER BY seq
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query problems: %w", err)
	}
	defer rows.Close()

	var problems []string
	for rows.Next() {
		var description string
		if err := rows.Scan(&description); err != nil {
			return nil, fmt.Errorf("failed to scan problem: %w", err)
		}
		problems = append(problems, description)
	}

	return problems, rows.Err()
}

func (r *RunRepo) GetRunCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM audit_runs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}
