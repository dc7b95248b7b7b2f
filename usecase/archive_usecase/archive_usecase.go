package archive_usecase

import (
	"context"

	"imgpress/domain"
	"imgpress/port/archive_port"
	"imgpress/utils/errors"
	"imgpress/utils/metrics"
)

// BuildArchiveUsecase bundles already-optimized uploads into one ZIP stream.
// The server does not re-optimize at this stage.
type BuildArchiveUsecase struct {
	archive archive_port.ArchivePort
	metrics *metrics.OptimizationMetrics
}

// NewBuildArchiveUsecase creates a new BuildArchiveUsecase. metrics may be
// nil.
func NewBuildArchiveUsecase(archive archive_port.ArchivePort, m *metrics.OptimizationMetrics) *BuildArchiveUsecase {
	return &BuildArchiveUsecase{archive: archive, metrics: m}
}

// Execute builds the ZIP archive for the given entries.
func (u *BuildArchiveUsecase) Execute(ctx context.Context, entries []domain.ArchiveEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, errors.NewValidationContextError(
			"no files to archive",
			"usecase", "BuildArchiveUsecase", "Execute",
			nil,
		)
	}

	data, err := u.archive.BuildArchive(ctx, entries)
	if u.metrics != nil {
		u.metrics.RecordArchive(err)
	}
	if err != nil {
		return nil, errors.NewArchiveContextError(
			"failed to create ZIP archive",
			"usecase", "BuildArchiveUsecase", "Execute",
			err,
			map[string]interface{}{"entry_count": len(entries)},
		)
	}

	return data, nil
}
