package rest

// OptimizeResponse is the success payload of POST /api/optimize.
type OptimizeResponse struct {
	Success          bool   `json:"success"`
	OriginalSize     int    `json:"originalSize"`
	OptimizedSize    int    `json:"optimizedSize"`
	CompressionRatio int    `json:"compressionRatio"`
	ProcessingTime   int64  `json:"processingTime"`
	OptimizedImage   string `json:"optimizedImage"`
}

// BatchOptimizeResponse aggregates per-file outcomes of POST
// /api/optimize-batch. A failed file is marked in its own result; the batch
// itself still succeeds.
type BatchOptimizeResponse struct {
	Results []BatchFileResult `json:"results"`
}

type BatchFileResult struct {
	Filename         string `json:"filename"`
	Success          bool   `json:"success"`
	OriginalSize     int    `json:"originalSize,omitempty"`
	OptimizedSize    int    `json:"optimizedSize,omitempty"`
	CompressionRatio int    `json:"compressionRatio,omitempty"`
	ProcessingTime   int64  `json:"processingTime,omitempty"`
	OptimizedImage   string `json:"optimizedImage,omitempty"`
	Error            string `json:"error,omitempty"`
}

// HealthResponse is the payload of GET /api/health.
type HealthResponse struct {
	Status string `json:"status"`
}
