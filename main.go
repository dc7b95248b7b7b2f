package main

import (
	"context"
	"fmt"

	"imgpress/config"
	"imgpress/di"
	"imgpress/job"
	"imgpress/rest"
	"imgpress/utils/logger"

	"github.com/labstack/echo/v4"
)

func main() {
	log := logger.InitLogger()
	log.Info("Starting server")

	cfg, err := config.NewConfig()
	if err != nil {
		logger.Logger.Error("Failed to load configuration", "error", err)
		panic(err)
	}

	container := di.NewApplicationComponents(cfg)

	ctx := context.Background()
	if container.Ledger != nil {
		go job.StatsReporterRunner(ctx, container.FetchStatsUsecase, job.DefaultStatsReportInterval)
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout
	e.Server.IdleTimeout = cfg.Server.IdleTimeout

	rest.RegisterRoutes(e, container, cfg)

	err = e.Start(fmt.Sprintf(":%d", cfg.Server.Port))
	if err != nil {
		logger.Logger.Error("Error starting server", "error", err)
		panic(err)
	}
}
