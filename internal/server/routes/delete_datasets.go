package routes

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/seaotterie/grantgraph/internal/server/middleware"
	"github.com/seaotterie/grantgraph/internal/storage"
	"github.com/seaotterie/grantgraph/pkg/logger"
	"github.com/seaotterie/grantgraph/pkg/store"
)

// DeleteDatasetHandler removes a dataset, its stored payload, and (via
// cascade) every analysis run over it.
func DeleteDatasetHandler(c echo.Context) error {
	type deleteDatasetResponse struct {
		Message string `json:"message"`
	}

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, deleteDatasetResponse{
			Message: "Missing dataset id",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	dataset, err := app.Store.GetDataset(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, deleteDatasetResponse{
				Message: "Dataset not found",
			})
		}
		logger.Error("Failed to get dataset", "dataset_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, deleteDatasetResponse{
			Message: "Internal server error",
		})
	}

	if err := app.Store.DeleteDataset(ctx, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		logger.Error("Failed to delete dataset", "dataset_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, deleteDatasetResponse{
			Message: "Internal server error",
		})
	}

	// The catalog row is gone; a dangling object only wastes space, so a
	// cleanup failure is logged rather than surfaced.
	if err := storage.DeleteFile(ctx, app.S3, dataset.ObjectKey); err != nil {
		logger.Error("Failed to delete dataset object", "dataset_id", id, "err", err)
	}

	logger.Info("Deleted dataset", "dataset_id", id)
	return c.JSON(http.StatusOK, deleteDatasetResponse{
		Message: "Dataset deleted",
	})
}
