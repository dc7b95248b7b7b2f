package rest

import (
	"net/http"

	"imgpress/di"

	"github.com/labstack/echo/v4"
)

func registerStatsRoutes(api *echo.Group, container *di.ApplicationComponents) {
	api.GET("/stats", handleStats(container))
}

func handleStats(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		stats, err := container.FetchStatsUsecase.Execute(c.Request().Context())
		if err != nil {
			return handleError(c, err, "fetchStats")
		}
		return c.JSON(http.StatusOK, stats)
	}
}
