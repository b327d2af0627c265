// Package pgx implements store.Storage on PostgreSQL.
package pgx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seaotterie/grantgraph/internal/util"
	"github.com/seaotterie/grantgraph/pkg/store"
)

type Store struct {
	conn *pgxpool.Pool
}

func New(conn *pgxpool.Pool) *Store {
	return &Store{conn: conn}
}

var _ store.Storage = (*Store)(nil)

func (s *Store) CreateDataset(ctx context.Context, d store.Dataset) error {
	_, err := s.conn.Exec(ctx, `
		INSERT INTO datasets (id, name, object_key, org_count)
		VALUES ($1, $2, $3, $4)`,
		d.ID, util.SanitizePostgresText(d.Name), d.ObjectKey, d.OrgCount,
	)
	if err != nil {
		return fmt.Errorf("inserting dataset: %w", err)
	}
	return nil
}

func (s *Store) GetDataset(ctx context.Context, id string) (store.Dataset, error) {
	var d store.Dataset
	err := s.conn.QueryRow(ctx, `
		SELECT id, name, object_key, org_count, created_at
		FROM datasets WHERE id = $1`, id,
	).Scan(&d.ID, &d.Name, &d.ObjectKey, &d.OrgCount, &d.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Dataset{}, store.ErrNotFound
	}
	if err != nil {
		return store.Dataset{}, fmt.Errorf("fetching dataset: %w", err)
	}
	return d, nil
}

func (s *Store) ListDatasets(ctx context.Context) ([]store.Dataset, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, name, object_key, org_count, created_at
		FROM datasets ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing datasets: %w", err)
	}
	defer rows.Close()

	out := make([]store.Dataset, 0)
	for rows.Next() {
		var d store.Dataset
		if err := rows.Scan(&d.ID, &d.Name, &d.ObjectKey, &d.OrgCount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning dataset row: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (s *Store) DeleteDataset(ctx context.Context, id string) error {
	tag, err := s.conn.Exec(ctx, `DELETE FROM datasets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting dataset: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) CreateAnalysis(ctx context.Context, run store.AnalysisRun) error {
	status := run.Status
	if status == "" {
		status = store.StatusPending
	}
	_, err := s.conn.Exec(ctx, `
		INSERT INTO analysis_runs (id, dataset_id, status, params)
		VALUES ($1, $2, $3, $4)`,
		run.ID, run.DatasetID, status, run.Params,
	)
	if err != nil {
		return fmt.Errorf("inserting analysis run: %w", err)
	}
	return nil
}

func (s *Store) GetAnalysis(ctx context.Context, id string) (store.AnalysisRun, error) {
	var run store.AnalysisRun
	err := s.conn.QueryRow(ctx, `
		SELECT id, dataset_id, status, params, result, COALESCE(error, ''),
		       created_at, started_at, completed_at
		FROM analysis_runs WHERE id = $1`, id,
	).Scan(
		&run.ID, &run.DatasetID, &run.Status, &run.Params, &run.Result,
		&run.Error, &run.CreatedAt, &run.StartedAt, &run.CompletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.AnalysisRun{}, store.ErrNotFound
	}
	if err != nil {
		return store.AnalysisRun{}, fmt.Errorf("fetching analysis run: %w", err)
	}
	return run, nil
}

func (s *Store) ListAnalysesByDataset(ctx context.Context, datasetID string) ([]store.AnalysisRun, error) {
	rows, err := s.conn.Query(ctx, `
		SELECT id, dataset_id, status, params, result, COALESCE(error, ''),
		       created_at, started_at, completed_at
		FROM analysis_runs WHERE dataset_id = $1
		ORDER BY created_at DESC`, datasetID)
	if err != nil {
		return nil, fmt.Errorf("listing analysis runs: %w", err)
	}
	defer rows.Close()

	out := make([]store.AnalysisRun, 0)
	for rows.Next() {
		var run store.AnalysisRun
		if err := rows.Scan(
			&run.ID, &run.DatasetID, &run.Status, &run.Params, &run.Result,
			&run.Error, &run.CreatedAt, &run.StartedAt, &run.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning analysis row: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (s *Store) MarkAnalysisRunning(ctx context.Context, id string) error {
	return s.setStatus(ctx, `
		UPDATE analysis_runs
		SET status = $2, started_at = now(), error = NULL
		WHERE id = $1`, id, store.StatusRunning)
}

func (s *Store) MarkAnalysisCompleted(ctx context.Context, id string, result []byte) error {
	tag, err := s.conn.Exec(ctx, `
		UPDATE analysis_runs
		SET status = $2, result = $3, completed_at = now()
		WHERE id = $1`, id, store.StatusCompleted, result)
	if err != nil {
		return fmt.Errorf("completing analysis run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) MarkAnalysisFailed(ctx context.Context, id string, message string) error {
	tag, err := s.conn.Exec(ctx, `
		UPDATE analysis_runs
		SET status = $2, error = $3, completed_at = now()
		WHERE id = $1`, id, store.StatusFailed, util.SanitizePostgresText(message))
	if err != nil {
		return fmt.Errorf("failing analysis run: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// ResetStaleAnalyses flips runs stuck in the running state back to pending
// so a recovered worker can pick them up again.
func (s *Store) ResetStaleAnalyses(ctx context.Context, olderThan time.Duration) ([]store.AnalysisRun, error) {
	rows, err := s.conn.Query(ctx, `
		UPDATE analysis_runs
		SET status = $1, started_at = NULL
		WHERE status = $2 AND started_at < now() - $3::interval
		RETURNING id, dataset_id, status, params, result, COALESCE(error, ''),
		          created_at, started_at, completed_at`,
		store.StatusPending, store.StatusRunning, olderThan.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("resetting stale analyses: %w", err)
	}
	defer rows.Close()

	out := make([]store.AnalysisRun, 0)
	for rows.Next() {
		var run store.AnalysisRun
		if err := rows.Scan(
			&run.ID, &run.DatasetID, &run.Status, &run.Params, &run.Result,
			&run.Error, &run.CreatedAt, &run.StartedAt, &run.CompletedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning stale analysis row: %w", err)
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (s *Store) setStatus(ctx context.Context, sql string, args ...any) error {
	tag, err := s.conn.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("updating analysis status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
