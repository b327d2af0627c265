// Package timing records how long analysis runs take so the API can
// give a rough duration estimate before a run is queued.
package timing

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// AddAnalysisTime stores one finished run's duration keyed by dataset size.
func AddAnalysisTime(
	ctx context.Context,
	conn *pgxpool.Pool,
	datasetID string,
	orgCount int32,
	durationMs int64,
) error {
	_, err := conn.Exec(ctx, `
		INSERT INTO process_times (dataset_id, org_count, duration_ms)
		VALUES ($1, $2, $3)`,
		datasetID, orgCount, durationMs,
	)
	return err
}

// PredictAnalysisTime estimates the duration in milliseconds for a dataset
// of the given size, scaling the recorded per-organization average. Returns
// zero when no history exists yet.
func PredictAnalysisTime(ctx context.Context, conn *pgxpool.Pool, orgCount int32) (int64, error) {
	var estimate int64
	err := conn.QueryRow(ctx, `
		SELECT (COALESCE(AVG(duration_ms::float8 / GREATEST(org_count, 1)), 0) * $1)::bigint
		FROM process_times`,
		orgCount,
	).Scan(&estimate)
	if err != nil {
		return 0, err
	}
	return estimate, nil
}
