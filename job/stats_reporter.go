package job

import (
	"context"
	"time"

	"imgpress/usecase/stats_usecase"
	"imgpress/utils/logger"
)

// DefaultStatsReportInterval is how often the aggregate summary is logged.
const DefaultStatsReportInterval = 1 * time.Hour

// StatsReporterRunner periodically logs the aggregate optimization stats.
// It runs until the context is cancelled.
func StatsReporterRunner(ctx context.Context, usecase *stats_usecase.FetchStatsUsecase, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultStatsReportInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Logger.InfoContext(ctx, "Stopping stats reporter job")
			return
		case <-ticker.C:
			stats, err := usecase.Execute(ctx)
			if err != nil {
				logger.Logger.ErrorContext(ctx, "Error collecting optimization stats", "error", err)
				continue
			}
			logger.Logger.InfoContext(ctx, "optimization summary",
				"total_images", stats.TotalImages,
				"total_savings_bytes", stats.TotalSavings,
				"average_reduction_pct", stats.AverageReduction,
				"average_processing_ms", stats.AverageProcessingTime,
			)
		}
	}
}
