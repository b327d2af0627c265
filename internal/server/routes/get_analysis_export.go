package routes

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seaotterie/grantgraph/internal/server/middleware"
	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/export"
	"github.com/seaotterie/grantgraph/pkg/logger"
	"github.com/seaotterie/grantgraph/pkg/store"
)

func ExportAnalysisHandler(c echo.Context) error {
	type exportErrorResponse struct {
		Message string `json:"message"`
	}

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, exportErrorResponse{
			Message: "Missing analysis id",
		})
	}

	kind := c.QueryParam("kind")
	if kind == "" {
		kind = "json"
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	run, err := app.Store.GetAnalysis(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, exportErrorResponse{
				Message: "Analysis not found",
			})
		}
		logger.Error("Failed to get analysis", "analysis_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, exportErrorResponse{
			Message: "Internal server error",
		})
	}

	if run.Status != store.StatusCompleted {
		return c.JSON(http.StatusConflict, exportErrorResponse{
			Message: fmt.Sprintf("Analysis is %s, export requires a completed run", run.Status),
		})
	}

	var result common.AnalysisResult
	if err := json.Unmarshal(run.Result, &result); err != nil {
		logger.Error("Failed to decode analysis result", "analysis_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, exportErrorResponse{
			Message: "Internal server error",
		})
	}

	switch kind {
	case "connections":
		payload, err := export.ConnectionsCSV(result.Connections)
		if err != nil {
			logger.Error("Failed to export connections", "analysis_id", id, "err", err)
			return c.JSON(http.StatusInternalServerError, exportErrorResponse{
				Message: "Internal server error",
			})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%s_connections.csv", id))
		return c.Blob(http.StatusOK, "text/csv", payload)
	case "pathways":
		payload, err := export.PathwaysCSV(result.Pathways)
		if err != nil {
			logger.Error("Failed to export pathways", "analysis_id", id, "err", err)
			return c.JSON(http.StatusInternalServerError, exportErrorResponse{
				Message: "Internal server error",
			})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%s_pathways.csv", id))
		return c.Blob(http.StatusOK, "text/csv", payload)
	case "json":
		payload, err := export.ResultJSON(&result)
		if err != nil {
			logger.Error("Failed to export result", "analysis_id", id, "err", err)
			return c.JSON(http.StatusInternalServerError, exportErrorResponse{
				Message: "Internal server error",
			})
		}
		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%s.json", id))
		return c.Blob(http.StatusOK, echo.MIMEApplicationJSON, payload)
	default:
		return c.JSON(http.StatusBadRequest, exportErrorResponse{
			Message: "Unknown export kind, expected connections, pathways or json",
		})
	}
}
