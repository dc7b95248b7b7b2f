package rest

import (
	"net/http"
	"strings"

	"imgpress/config"
	"imgpress/di"
	middleware_custom "imgpress/middleware"
	"imgpress/utils/logger"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(e *echo.Echo, container *di.ApplicationComponents, cfg *config.Config) {
	// 1. Request ID middleware first - every request gets an id
	e.Use(middleware_custom.RequestIDMiddleware())

	// 2. Recovery middleware early - catch panics before anything else
	e.Use(middleware.Recover())

	// 3. Security headers
	e.Use(middleware.SecureWithConfig(middleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	// 4. CORS - the API is deliberately public: any origin, credentials
	// allowed.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:                             []string{"*"},
		AllowMethods:                             []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders:                             []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "Cache-Control", "X-Requested-With"},
		AllowCredentials:                         true,
		UnsafeWildcardOriginWithAllowCredentials: true,
		MaxAge:                                   86400,
	}))

	// 5. Request timeout
	e.Use(middleware.TimeoutWithConfig(middleware.TimeoutConfig{
		Timeout: cfg.Server.ReadTimeout,
	}))

	// 6. Logging middleware
	e.Use(middleware_custom.LoggingMiddleware(logger.Logger))

	// 7. Compression last. ZIP downloads are already compressed.
	e.Use(middleware.GzipWithConfig(middleware.GzipConfig{
		Level: 5,
		Skipper: func(c echo.Context) bool {
			return strings.Contains(c.Path(), "/health") ||
				strings.Contains(c.Path(), "/download-zip")
		},
	}))

	api := e.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, HealthResponse{Status: "healthy"})
	})

	registerOptimizeRoutes(api, container, cfg)
	registerArchiveRoutes(api, container, cfg)
	registerStatsRoutes(api, container)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
