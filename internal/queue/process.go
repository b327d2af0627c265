package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seaotterie/grantgraph/internal/storage"
	"github.com/seaotterie/grantgraph/internal/timing"
	"github.com/seaotterie/grantgraph/internal/util"
	"github.com/seaotterie/grantgraph/pkg/analyzer"
	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/leaselock"
	"github.com/seaotterie/grantgraph/pkg/logger"
	"github.com/seaotterie/grantgraph/pkg/pathway"
	"github.com/seaotterie/grantgraph/pkg/store"
	pgxstore "github.com/seaotterie/grantgraph/pkg/store/pgx"
)

// RunParams is the JSON shape of an analysis run's parameters as stored
// on the run row and accepted by the API.
type RunParams struct {
	IncludeFunding bool `json:"include_funding"`
	MaxPerPair     int  `json:"max_per_pair,omitempty"`
	MaxPathLength  int  `json:"max_path_length,omitempty"`

	// MaxOrganizations caps how many organizations enter pathway analysis,
	// which is quadratic in their number. Zero means no limit. When the
	// dataset is larger, the best-staffed organizations are kept.
	MaxOrganizations int `json:"max_organizations,omitempty"`
}

const s3FetchRetries = 3

// ProcessAnalyzeMessage executes one analysis run end to end: load the
// run and its dataset, fetch the raw records from S3, run the analyzer,
// and persist the outcome. A lease on the dataset keeps two workers from
// analyzing the same dataset at once.
//
// Returned errors are transient (S3, database, lease); they send the
// message through the retry queue. Analysis failures are terminal and are
// recorded on the run instead of returned.
func ProcessAnalyzeMessage(
	ctx context.Context,
	client *s3.Client,
	conn *pgxpool.Pool,
	body string,
) error {
	var msg AnalyzeJobMsg
	if err := json.Unmarshal([]byte(body), &msg); err != nil {
		return fmt.Errorf("unmarshaling analyze job: %w", err)
	}
	if msg.AnalysisID == "" {
		return errors.New("analyze job missing analysis_id")
	}

	st := pgxstore.New(conn)

	run, err := st.GetAnalysis(ctx, msg.AnalysisID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Run was deleted after queueing. Nothing left to do.
			logger.Warn("[Worker] Analysis run no longer exists", "analysis_id", msg.AnalysisID)
			return nil
		}
		return fmt.Errorf("loading analysis run: %w", err)
	}
	if run.Status == store.StatusCompleted {
		logger.Debug("[Worker] Analysis already completed, skipping", "analysis_id", run.ID)
		return nil
	}

	dataset, err := st.GetDataset(ctx, run.DatasetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return st.MarkAnalysisFailed(ctx, run.ID, "dataset no longer exists")
		}
		return fmt.Errorf("loading dataset: %w", err)
	}

	locks := leaselock.New(conn)
	return locks.WithLease(ctx, "dataset:"+dataset.ID, leaselock.Options{
		TTL:  10 * time.Minute,
		Wait: false,
	}, func(ctx context.Context) error {
		start := time.Now()
		completed, err := runAnalysis(ctx, client, st, run, dataset)
		if err != nil {
			return err
		}
		if completed {
			durationMs := time.Since(start).Milliseconds()
			if err := timing.AddAnalysisTime(ctx, conn, dataset.ID, dataset.OrgCount, durationMs); err != nil {
				logger.Warn("[Worker] Failed to record analysis duration", "analysis_id", run.ID, "err", err)
			}
		}
		return nil
	})
}

func runAnalysis(
	ctx context.Context,
	client *s3.Client,
	st store.Storage,
	run store.AnalysisRun,
	dataset store.Dataset,
) (completed bool, err error) {
	payload, err := util.RetryWithContext(ctx, s3FetchRetries, func(ctx context.Context) ([]byte, error) {
		return storage.GetFile(ctx, client, dataset.ObjectKey)
	})
	if err != nil {
		return false, fmt.Errorf("fetching dataset object: %w", err)
	}

	var orgs []common.OrganizationRecord
	if err := json.Unmarshal(payload, &orgs); err != nil {
		// A malformed payload never gets better on retry.
		return false, st.MarkAnalysisFailed(ctx, run.ID, fmt.Sprintf("decoding dataset payload: %v", err))
	}

	if err := st.MarkAnalysisRunning(ctx, run.ID); err != nil {
		return false, fmt.Errorf("marking analysis running: %w", err)
	}

	var params RunParams
	if len(run.Params) > 0 {
		if err := json.Unmarshal(run.Params, &params); err != nil {
			return false, st.MarkAnalysisFailed(ctx, run.ID, fmt.Sprintf("decoding run parameters: %v", err))
		}
	}

	if params.MaxOrganizations > 0 && len(orgs) > params.MaxOrganizations {
		logger.Info("[Worker] Capping organizations for analysis",
			"analysis_id", run.ID,
			"total", len(orgs),
			"cap", params.MaxOrganizations,
		)
		orgs = topOrganizations(orgs, params.MaxOrganizations)
	}

	pathwayCfg := pathway.DefaultConfig()
	if params.MaxPerPair > 0 {
		pathwayCfg.MaxPerPair = params.MaxPerPair
	}
	if params.MaxPathLength > 0 {
		pathwayCfg.MaxPathLength = params.MaxPathLength
	}

	a := analyzer.New(analyzer.Params{
		Pathway:        pathwayCfg,
		IncludeFunding: params.IncludeFunding,
	})

	logger.Info("[Worker] Running analysis",
		"analysis_id", run.ID,
		"dataset_id", dataset.ID,
		"organizations", len(orgs),
	)
	result := a.Run(ctx, orgs)

	if !result.Success {
		if ctx.Err() != nil {
			// Cancelled mid-run; let the retry queue redeliver.
			return false, ctx.Err()
		}
		return false, st.MarkAnalysisFailed(ctx, run.ID, result.Message)
	}

	resultJSON, err := json.Marshal(result)
	if err != nil {
		return false, st.MarkAnalysisFailed(ctx, run.ID, fmt.Sprintf("encoding result: %v", err))
	}
	if err := st.MarkAnalysisCompleted(ctx, run.ID, resultJSON); err != nil {
		return false, fmt.Errorf("marking analysis completed: %w", err)
	}

	logger.Info("[Worker] Analysis completed",
		"analysis_id", run.ID,
		"connections", len(result.Connections),
		"pathways", len(result.Pathways),
	)
	return true, nil
}

// topOrganizations keeps the k organizations with the largest boards,
// preserving their original relative order.
func topOrganizations(orgs []common.OrganizationRecord, k int) []common.OrganizationRecord {
	idx := make([]int, len(orgs))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return len(orgs[idx[a]].BoardMembers) > len(orgs[idx[b]].BoardMembers)
	})
	keep := idx[:k]
	sort.Ints(keep)

	out := make([]common.OrganizationRecord, 0, k)
	for _, i := range keep {
		out = append(out, orgs[i])
	}
	return out
}
