package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/seaotterie/grantgraph/internal/server/middleware"
	"github.com/seaotterie/grantgraph/internal/storage"
	"github.com/seaotterie/grantgraph/pkg/common"
	"github.com/seaotterie/grantgraph/pkg/logger"
	"github.com/seaotterie/grantgraph/pkg/store"
)

// CreateDatasetHandler uploads a new organization dataset. The raw records
// go to object storage; the catalog row goes to the database.
func CreateDatasetHandler(c echo.Context) error {
	type createDatasetBody struct {
		Name          string                      `json:"name" validate:"required"`
		Organizations []common.OrganizationRecord `json:"organizations" validate:"required,min=1"`
	}

	type createDatasetResponse struct {
		Message string         `json:"message"`
		Dataset *store.Dataset `json:"dataset,omitempty"`
	}

	data := new(createDatasetBody)
	if err := c.Bind(data); err != nil {
		return c.JSON(http.StatusBadRequest, createDatasetResponse{
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(data); err != nil {
		return c.JSON(http.StatusBadRequest, createDatasetResponse{
			Message: "Invalid request body",
		})
	}

	withID := 0
	for _, org := range data.Organizations {
		if org.ID != "" {
			withID++
		}
	}
	if withID == 0 {
		return c.JSON(http.StatusBadRequest, createDatasetResponse{
			Message: "No organization in the dataset has an identifier",
		})
	}

	id, err := gonanoid.New()
	if err != nil {
		logger.Error("Failed to generate dataset ID", "err", err)
		return c.JSON(http.StatusInternalServerError, createDatasetResponse{
			Message: "Internal server error",
		})
	}

	payload, err := json.Marshal(data.Organizations)
	if err != nil {
		logger.Error("Failed to encode dataset payload", "err", err)
		return c.JSON(http.StatusInternalServerError, createDatasetResponse{
			Message: "Internal server error",
		})
	}

	ctx := c.Request().Context()
	app := c.(*middleware.AppContext).App

	key := storage.DatasetKey(id)
	if err := storage.PutFile(ctx, app.S3, key, "application/json", payload); err != nil {
		logger.Error("Failed to upload dataset payload", "dataset_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, createDatasetResponse{
			Message: "Internal server error",
		})
	}

	dataset := store.Dataset{
		ID:        id,
		Name:      data.Name,
		ObjectKey: key,
		OrgCount:  int32(len(data.Organizations)),
	}
	if err := app.Store.CreateDataset(ctx, dataset); err != nil {
		// Roll the object back so storage does not leak.
		if delErr := storage.DeleteFile(ctx, app.S3, key); delErr != nil {
			logger.Error("Failed to clean up dataset object", "dataset_id", id, "err", delErr)
		}
		logger.Error("Failed to create dataset", "dataset_id", id, "err", err)
		return c.JSON(http.StatusInternalServerError, createDatasetResponse{
			Message: "Internal server error",
		})
	}

	created, err := app.Store.GetDataset(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusInternalServerError, createDatasetResponse{
				Message: "Internal server error",
			})
		}
		created = dataset
	}

	logger.Info("Created dataset", "dataset_id", id, "organizations", len(data.Organizations))
	return c.JSON(http.StatusCreated, createDatasetResponse{
		Message: "Dataset created",
		Dataset: &created,
	})
}
