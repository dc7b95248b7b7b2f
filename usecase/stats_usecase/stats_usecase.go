package stats_usecase

import (
	"context"

	"imgpress/domain"
	"imgpress/port/ledger_port"
	"imgpress/utils/errors"
)

// FetchStatsUsecase aggregates recent ledger entries into the stats view.
type FetchStatsUsecase struct {
	ledger ledger_port.LedgerPort
}

// NewFetchStatsUsecase creates a new FetchStatsUsecase. ledger may be nil
// when recording is disabled; stats are then all zeros.
func NewFetchStatsUsecase(ledger ledger_port.LedgerPort) *FetchStatsUsecase {
	return &FetchStatsUsecase{ledger: ledger}
}

// Execute computes aggregates over the most recent entries.
func (u *FetchStatsUsecase) Execute(ctx context.Context) (domain.OptimizationStats, error) {
	if u.ledger == nil {
		return domain.OptimizationStats{}, nil
	}

	entries, err := u.ledger.Recent(ctx, domain.StatsWindow)
	if err != nil {
		return domain.OptimizationStats{}, errors.NewUnknownContextError(
			"failed to read optimization ledger",
			"usecase", "FetchStatsUsecase", "Execute",
			err,
			nil,
		)
	}

	stats := domain.OptimizationStats{TotalImages: len(entries)}
	if len(entries) == 0 {
		return stats, nil
	}

	var ratioSum, timeSum int64
	for _, entry := range entries {
		stats.TotalSavings += int64(entry.OriginalSize - entry.OptimizedSize)
		ratioSum += int64(entry.CompressionRatio)
		timeSum += entry.ProcessingTime
	}

	stats.AverageReduction = roundDiv(ratioSum, int64(len(entries)))
	stats.AverageProcessingTime = int64(roundDiv(timeSum, int64(len(entries))))

	return stats, nil
}

// roundDiv divides and rounds half away from zero, matching the ratio
// rounding used elsewhere.
func roundDiv(sum, n int64) int {
	if n == 0 {
		return 0
	}
	q := float64(sum) / float64(n)
	if q >= 0 {
		return int(q + 0.5)
	}
	return int(q - 0.5)
}
