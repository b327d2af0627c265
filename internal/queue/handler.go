package queue

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rabbitmq/amqp091-go"

	"github.com/seaotterie/grantgraph/pkg/logger"
	pgxstore "github.com/seaotterie/grantgraph/pkg/store/pgx"
)

// staleAfter is how long a run may sit in the running state before a
// restarted worker assumes its original owner died.
const staleAfter = 30 * time.Minute

// RecoverStaleAnalyses re-queues analysis runs that were left in the
// running state by a crashed worker. Called once at worker startup.
func RecoverStaleAnalyses(
	ctx context.Context,
	ch *amqp091.Channel,
	conn *pgxpool.Pool,
) error {
	st := pgxstore.New(conn)

	stale, err := st.ResetStaleAnalyses(ctx, staleAfter)
	if err != nil {
		return err
	}
	if len(stale) == 0 {
		logger.Debug("[Queue] No stale analysis runs found")
		return nil
	}

	logger.Info("[Queue] Found stale analysis runs", "count", len(stale))

	for _, run := range stale {
		if err := PublishAnalyzeJob(ch, run.ID, run.DatasetID); err != nil {
			logger.Error("[Queue] Failed to republish stale analysis", "analysis_id", run.ID, "err", err)
			continue
		}
		logger.Info("[Queue] Recovered stale analysis run", "analysis_id", run.ID, "dataset_id", run.DatasetID)
	}

	return nil
}
