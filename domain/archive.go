package domain

// ArchiveEntry is one named byte stream destined for a ZIP archive.
type ArchiveEntry struct {
	Name string
	Data []byte
}

const (
	// ArchiveFilename is the fixed Content-Disposition filename for bundles.
	ArchiveFilename = "optimized-images.zip"

	// ArchiveReadmeName is the name of the optional README entry.
	ArchiveReadmeName = "README.txt"
)

// ArchiveReadmeBody is appended to archives when the README entry is enabled.
const ArchiveReadmeBody = `Your optimized images.

Each file in this archive was re-encoded at the quality you selected.
Filenames that collided were suffixed with a counter to keep every
upload intact.
`
