package server

import (
	"github.com/labstack/echo/v4"

	"github.com/seaotterie/grantgraph/internal/server/middleware"
	"github.com/seaotterie/grantgraph/internal/server/routes"
)

func RegisterRoutes(e *echo.Echo) {
	// Health check route
	e.GET("/health", func(c echo.Context) error {
		return c.String(200, "OK")
	})

	apiRoutes := e.Group("/api", middleware.AuthMiddleware)

	// Dataset routes
	apiRoutes.GET("/datasets", routes.GetDatasetsHandler, middleware.RequirePermission("dataset.view"))
	apiRoutes.POST("/datasets", routes.CreateDatasetHandler, middleware.RequirePermission("dataset.create"))
	apiRoutes.GET("/datasets/:id", routes.GetDatasetHandler, middleware.RequirePermission("dataset.view"))
	apiRoutes.DELETE("/datasets/:id", routes.DeleteDatasetHandler, middleware.RequirePermission("dataset.delete"))

	// Analysis routes
	apiRoutes.POST("/datasets/:id/analyses", routes.CreateAnalysisHandler, middleware.RequirePermission("analysis.create"))
	apiRoutes.GET("/datasets/:id/analyses", routes.GetDatasetAnalysesHandler, middleware.RequirePermission("analysis.view"))
	apiRoutes.GET("/analyses/:id", routes.GetAnalysisHandler, middleware.RequirePermission("analysis.view"))
	apiRoutes.GET("/analyses/:id/export", routes.ExportAnalysisHandler, middleware.RequireAnyPermission("analysis.export", "analysis.view"))
}
