package di

import (
	"imgpress/config"
	"imgpress/gateway/archive_gateway"
	"imgpress/gateway/image_codec_gateway"
	"imgpress/gateway/ledger_gateway"
	"imgpress/port/ledger_port"
	"imgpress/usecase/archive_usecase"
	"imgpress/usecase/optimize_usecase"
	"imgpress/usecase/stats_usecase"
	"imgpress/utils/metrics"

	"github.com/prometheus/client_golang/prometheus"
)

type ApplicationComponents struct {
	OptimizeImageUsecase *optimize_usecase.OptimizeImageUsecase
	BuildArchiveUsecase  *archive_usecase.BuildArchiveUsecase
	FetchStatsUsecase    *stats_usecase.FetchStatsUsecase
	Ledger               ledger_port.LedgerPort
}

func NewApplicationComponents(cfg *config.Config) *ApplicationComponents {
	return newComponents(cfg, prometheus.DefaultRegisterer)
}

// NewTestApplicationComponents wires the container against an isolated
// prometheus registry so tests don't collide on collector registration.
func NewTestApplicationComponents(cfg *config.Config) *ApplicationComponents {
	return newComponents(cfg, prometheus.NewRegistry())
}

func newComponents(cfg *config.Config, reg prometheus.Registerer) *ApplicationComponents {
	optimizationMetrics := metrics.NewOptimizationMetrics(reg)

	codecGatewayImpl := image_codec_gateway.NewCodecGateway()
	archiveGatewayImpl := archive_gateway.NewArchiveGateway(cfg.Archive.IncludeReadme)

	// The ledger is explicitly constructed here and injected; handlers never
	// reach for a package-level instance.
	var ledger ledger_port.LedgerPort
	if cfg.Ledger.Enabled {
		ledger = ledger_gateway.NewLedgerGateway(cfg.Ledger.Capacity)
	}

	optimizeImageUsecase := optimize_usecase.NewOptimizeImageUsecase(codecGatewayImpl, ledger, optimizationMetrics)
	buildArchiveUsecase := archive_usecase.NewBuildArchiveUsecase(archiveGatewayImpl, optimizationMetrics)
	fetchStatsUsecase := stats_usecase.NewFetchStatsUsecase(ledger)

	return &ApplicationComponents{
		OptimizeImageUsecase: optimizeImageUsecase,
		BuildArchiveUsecase:  buildArchiveUsecase,
		FetchStatsUsecase:    fetchStatsUsecase,
		Ledger:               ledger,
	}
}
