package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/seaotterie/grantgraph/internal/queue"
	"github.com/seaotterie/grantgraph/internal/server/middleware"
	"github.com/seaotterie/grantgraph/internal/timing"
	"github.com/seaotterie/grantgraph/pkg/logger"
	"github.com/seaotterie/grantgraph/pkg/store"
)

// CreateAnalysisHandler queues a new analysis run over a dataset. The
// run executes asynchronously on the worker; the response carries the
// pending run for polling.
func CreateAnalysisHandler(c echo.Context) error {
	type createAnalysisBody struct {
		IncludeFunding   bool `json:"include_funding"`
		MaxPerPair       int  `json:"max_per_pair" validate:"omitempty,min=1,max=50"`
		MaxPathLength    int  `json:"max_path_length" validate:"omitempty,min=2,max=8"`
		MaxOrganizations int  `json:"max_organizations" validate:"omitempty,min=2"`
	}

	type createAnalysisResponse struct {
		Message             string             `json:"message"`
		Analysis            *store.AnalysisRun `json:"analysis,omitempty"`
		EstimatedDurationMs int64              `json:"estimated_duration_ms,omitempty"`
	}

	datasetID := c.Param("id")
	if datasetID == "" {
		return c.JSON(http.StatusBadRequest, createAnalysisResponse{
			Message: "Missing dataset id",
		})
	}

	data := new(createAnalysisBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createAnalysisResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createAnalysisResponse{
			Message: "Invalid request body",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	dataset, err := app.Store.GetDataset(ctx, datasetID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, createAnalysisResponse{
				Message: "Dataset not found",
			})
		}
		logger.Error("Failed to get dataset", "dataset_id", datasetID, "err", err)
		return c.JSON(http.StatusInternalServerError, createAnalysisResponse{
			Message: "Internal server error",
		})
	}

	id, err := gonanoid.New()
	if err != nil {
		logger.Error("Failed to generate analysis ID", "err", err)
		return c.JSON(http.StatusInternalServerError, createAnalysisResponse{
			Message: "Internal server error",
		})
	}

	params, err := json.Marshal(queue.RunParams{
		IncludeFunding:   data.IncludeFunding,
		MaxPerPair:       data.MaxPerPair,
		MaxPathLength:    data.MaxPathLength,
		MaxOrganizations: data.MaxOrganizations,
	})
	if err != nil {
		logger.Error("Failed to encode run parameters", "err", err)
		return c.JSON(http.StatusInternalServerError, createAnalysisResponse{
			Message: "Internal server error",
		})
	}

	run := store.AnalysisRun{
		ID:        id,
		DatasetID: datasetID,
		Status:    store.StatusPending,
		Params:    params,
	}
	if err := app.Store.CreateAnalysis(ctx, run); err != nil {
		logger.Error("Failed to create analysis run", "analysis_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, createAnalysisResponse{
			Message: "Internal server error",
		})
	}

	if err := queue.PublishAnalyzeJob(app.Queue, id, datasetID); err != nil {
		logger.Error("Failed to queue analysis run", "analysis_id", id, "err", err)
		if failErr := app.Store.MarkAnalysisFailed(ctx, id, "failed to queue analysis"); failErr != nil {
			logger.Error("Failed to mark unqueued analysis as failed", "analysis_id", id, "err", failErr)
		}
		return c.JSON(http.StatusInternalServerError, createAnalysisResponse{
			Message: "Internal server error",
		})
	}

	created, err := app.Store.GetAnalysis(ctx, id)
	if err != nil {
		created = run
	}

	estimate, err := timing.PredictAnalysisTime(ctx, app.DBConn, dataset.OrgCount)
	if err != nil {
		logger.Warn("Failed to predict analysis duration", "dataset_id", datasetID, "err", err)
		estimate = 0
	}

	logger.Info("Queued analysis run", "analysis_id", id, "dataset_id", datasetID)
	return c.JSON(http.StatusAccepted, createAnalysisResponse{
		Message:             "Analysis queued",
		Analysis:            &created,
		EstimatedDurationMs: estimate,
	})
}
