package optimize_usecase

import (
	"context"

	"imgpress/domain"
	"imgpress/port/image_codec_port"
	"imgpress/port/ledger_port"
	"imgpress/utils/errors"
	"imgpress/utils/logger"
	"imgpress/utils/metrics"
)

// OptimizeImageUsecase orchestrates a single-image optimization: validate
// settings, transcode, record the outcome.
type OptimizeImageUsecase struct {
	codec         image_codec_port.ImageCodecPort
	ledger        ledger_port.LedgerPort
	metrics       *metrics.OptimizationMetrics
	contextLogger *logger.ContextLogger
}

// NewOptimizeImageUsecase creates a new OptimizeImageUsecase. ledger and
// metrics may be nil when recording is disabled.
func NewOptimizeImageUsecase(
	codec image_codec_port.ImageCodecPort,
	ledger ledger_port.LedgerPort,
	m *metrics.OptimizationMetrics,
) *OptimizeImageUsecase {
	return &OptimizeImageUsecase{
		codec:         codec,
		ledger:        ledger,
		metrics:       m,
		contextLogger: logger.NewContextLogger(logger.Logger),
	}
}

// Execute transcodes one uploaded file. On success the outcome is appended
// to the ledger; a ledger failure is logged but never fails the request.
func (u *OptimizeImageUsecase) Execute(ctx context.Context, file domain.UploadedFile, settings domain.OptimizationSettings) (*domain.OptimizationOutcome, error) {
	if len(file.Data) == 0 {
		return nil, errors.NewAppContextError(
			"VALIDATION_ERROR",
			"no image file provided",
			"usecase", "OptimizeImageUsecase", "Execute",
			errors.ErrNoFile,
			map[string]interface{}{"file_name": file.Name},
		)
	}

	if err := settings.Validate(); err != nil {
		return nil, errors.NewAppContextError(
			"VALIDATION_ERROR",
			err.Error(),
			"usecase", "OptimizeImageUsecase", "Execute",
			errors.ErrInvalidSettings,
			map[string]interface{}{"format": string(settings.Format), "quality": settings.Quality},
		)
	}

	outcome, err := u.codec.Transcode(ctx, file.Data, file.MIMEType, settings)
	if u.metrics != nil {
		if outcome != nil {
			u.metrics.RecordOptimization(string(outcome.Format), err, outcome.OriginalSize, outcome.OptimizedSize, outcome.ProcessingTime)
		} else {
			u.metrics.RecordOptimization(string(settings.Format), err, 0, 0, 0)
		}
	}
	if err != nil {
		u.contextLogger.LogError(ctx, "transcodeImage", err)
		return nil, errors.NewProcessingContextError(
			"failed to optimize image",
			"usecase", "OptimizeImageUsecase", "Execute",
			err,
			map[string]interface{}{"file_name": file.Name, "mime_type": file.MIMEType},
		)
	}
	u.contextLogger.LogDuration(ctx, "transcodeImage", outcome.ProcessingTime)

	if u.ledger != nil {
		entry := domain.LedgerEntry{
			OriginalName:     file.Name,
			OriginalSize:     outcome.OriginalSize,
			OptimizedSize:    outcome.OptimizedSize,
			Format:           outcome.Format,
			Quality:          settings.Quality,
			CompressionRatio: outcome.CompressionRatio,
			ProcessingTime:   outcome.ProcessingTime.Milliseconds(),
		}
		if _, recordErr := u.ledger.Record(ctx, entry); recordErr != nil {
			logger.Logger.Warn("ledger record failed",
				"file_name", file.Name,
				"error", recordErr,
			)
		}
	}

	return outcome, nil
}

// BatchResult is the per-file outcome of a batch optimization.
type BatchResult struct {
	Filename string
	Outcome  *domain.OptimizationOutcome
	Err      error
}

// ExecuteBatch optimizes files sequentially with the same settings. A failed
// file is marked in its result and never aborts the rest of the batch.
func (u *OptimizeImageUsecase) ExecuteBatch(ctx context.Context, files []domain.UploadedFile, settings domain.OptimizationSettings) []BatchResult {
	results := make([]BatchResult, 0, len(files))
	for _, file := range files {
		outcome, err := u.Execute(ctx, file, settings)
		results = append(results, BatchResult{
			Filename: file.Name,
			Outcome:  outcome,
			Err:      err,
		})
	}
	return results
}
