package domain

import "time"

// LedgerEntry records one successful optimization for aggregate statistics.
// Entries are never mutated after creation.
type LedgerEntry struct {
	ID               int64       `json:"id"`
	OriginalName     string      `json:"original_name"`
	OriginalSize     int         `json:"original_size"`
	OptimizedSize    int         `json:"optimized_size"`
	Format           ImageFormat `json:"format"`
	Quality          int         `json:"quality"`
	CompressionRatio int         `json:"compression_ratio"`
	ProcessingTime   int64       `json:"processing_time_ms"`
	CreatedAt        time.Time   `json:"created_at"`
}

// OptimizationStats is the aggregate view served by the stats endpoint.
type OptimizationStats struct {
	TotalImages           int   `json:"totalImages"`
	TotalSavings          int64 `json:"totalSavings"`
	AverageReduction      int   `json:"averageReduction"`
	AverageProcessingTime int64 `json:"averageProcessingTime"`
}

// StatsWindow is how many recent ledger entries the aggregate is computed
// over.
const StatsWindow = 100
