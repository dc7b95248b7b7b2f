package archive_gateway

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"imgpress/domain"
	"imgpress/utils/errors"
)

// ArchiveGateway implements ArchivePort on top of archive/zip. Entries keep
// their caller-supplied names; colliding names are suffixed with a counter
// ("a.jpg", "a-1.jpg") so no upload silently overwrites another.
type ArchiveGateway struct {
	includeReadme bool
}

// NewArchiveGateway creates a new ArchiveGateway. When includeReadme is set,
// a fixed README entry is appended to every archive.
func NewArchiveGateway(includeReadme bool) *ArchiveGateway {
	return &ArchiveGateway{includeReadme: includeReadme}
}

// BuildArchive produces a ZIP stream containing every entry. Any write
// failure aborts the whole archive.
func (g *ArchiveGateway) BuildArchive(ctx context.Context, entries []domain.ArchiveEntry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, errors.ErrNoArchiveFiles
	}

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	seen := make(map[string]int, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := dedupeName(seen, entry.Name)
		w, err := zw.Create(name)
		if err != nil {
			return nil, fmt.Errorf("create archive entry %q: %w", name, err)
		}
		if _, err := w.Write(entry.Data); err != nil {
			return nil, fmt.Errorf("write archive entry %q: %w", name, err)
		}
	}

	if g.includeReadme {
		w, err := zw.Create(domain.ArchiveReadmeName)
		if err != nil {
			return nil, fmt.Errorf("create readme entry: %w", err)
		}
		if _, err := w.Write([]byte(domain.ArchiveReadmeBody)); err != nil {
			return nil, fmt.Errorf("write readme entry: %w", err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}

	return buf.Bytes(), nil
}

// dedupeName returns name unchanged on first sight and "name-N.ext" for
// repeats.
func dedupeName(seen map[string]int, name string) string {
	count := seen[name]
	seen[name] = count + 1
	if count == 0 {
		return name
	}

	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return fmt.Sprintf("%s-%d%s", base, count, ext)
}
