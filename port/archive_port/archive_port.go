package archive_port

import (
	"context"

	"imgpress/domain"
)

// ArchivePort defines the interface for bundling named byte streams into a
// single ZIP stream.
type ArchivePort interface {
	// BuildArchive produces a ZIP archive containing every entry. Any entry
	// write failure aborts the whole archive.
	BuildArchive(ctx context.Context, entries []domain.ArchiveEntry) ([]byte, error)
}
