package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seaotterie/grantgraph/internal/server/middleware"
	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/logger"
	"github.com/seaotterie/grantgraph/pkg/store"
)

// analysisView is the API shape of a run: the stored JSON documents are
// decoded so clients get structured params and results, not raw bytes.
type analysisView struct {
	store.AnalysisRun
	Params json.RawMessage        `json:"params,omitempty"`
	Result *common.AnalysisResult `json:"result,omitempty"`
}

func toAnalysisView(run store.AnalysisRun) (analysisView, error) {
	view := analysisView{AnalysisRun: run}
	view.AnalysisRun.Result = nil
	view.AnalysisRun.Params = nil
	if len(run.Params) > 0 {
		view.Params = json.RawMessage(run.Params)
	}
	if len(run.Result) > 0 {
		var result common.AnalysisResult
		if err := json.Unmarshal(run.Result, &result); err != nil {
			return analysisView{}, err
		}
		view.Result = &result
	}
	return view, nil
}

func GetAnalysisHandler(c echo.Context) error {
	type getAnalysisResponse struct {
		Message  string        `json:"message"`
		Analysis *analysisView `json:"analysis,omitempty"`
	}

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, getAnalysisResponse{
			Message: "Missing analysis id",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	run, err := app.Store.GetAnalysis(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getAnalysisResponse{
				Message: "Analysis not found",
			})
		}
		logger.Error("Failed to get analysis", "analysis_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, getAnalysisResponse{
			Message: "Internal server error",
		})
	}

	view, err := toAnalysisView(run)
	if err != nil {
		logger.Error("Failed to decode analysis result", "analysis_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, getAnalysisResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getAnalysisResponse{
		Message:  "OK",
		Analysis: &view,
	})
}

func GetDatasetAnalysesHandler(c echo.Context) error {
	type getAnalysesResponse struct {
		Message  string         `json:"message"`
		Analyses []analysisView `json:"analyses,omitempty"`
	}

	datasetID := c.Param("id")
	if datasetID == "" {
		return c.JSON(http.StatusBadRequest, getAnalysesResponse{
			Message: "Missing dataset id",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	runs, err := app.Store.ListAnalysesByDataset(ctx, datasetID)
	if err != nil {
		logger.Error("Failed to list analyses", "dataset_id", datasetID, "err", err)
		return c.JSON(http.StatusInternalServerError, getAnalysesResponse{
			Message: "Internal server error",
		})
	}

	views := make([]analysisView, 0, len(runs))
	for _, run := range runs {
		view, err := toAnalysisView(run)
		if err != nil {
			logger.Error("Failed to decode analysis result", "analysis_id", run.ID, "err", err)
			continue
		}
		views = append(views, view)
	}

	return c.JSON(http.StatusOK, getAnalysesResponse{
		Message:  "OK",
		Analyses: views,
	})
}
