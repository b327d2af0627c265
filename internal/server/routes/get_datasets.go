package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seaotterie/grantgraph/internal/server/middleware"
	"github.com/seaotterie/grantgraph/pkg/logger"
	"github.com/seaotterie/grantgraph/pkg/store"
)

func GetDatasetsHandler(c echo.Context) error {
	type getDatasetsResponse struct {
		Message  string          `json:"message"`
		Datasets []store.Dataset `json:"datasets,omitempty"`
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	datasets, err := app.Store.ListDatasets(ctx)
	if err != nil {
		logger.Error("Failed to list datasets", "err", err)
		return c.JSON(http.StatusInternalServerError, getDatasetsResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getDatasetsResponse{
		Message:  "OK",
		Datasets: datasets,
	})
}

func GetDatasetHandler(c echo.Context) error {
	type getDatasetResponse struct {
		Message string         `json:"message"`
		Dataset *store.Dataset `json:"dataset,omitempty"`
	}

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, getDatasetResponse{
			Message: "Missing dataset id",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	dataset, err := app.Store.GetDataset(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, getDatasetResponse{
				Message: "Dataset not found",
			})
		}
		logger.Error("Failed to get dataset", "dataset_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, getDatasetResponse{
			Message: "Internal server error",
		})
	}

	return c.JSON(http.StatusOK, getDatasetResponse{
		Message: "OK",
		Dataset: &dataset,
	})
}
