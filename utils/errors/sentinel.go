package errors

import "errors"

// Sentinel errors usable with errors.Is() across layers.
var (
	ErrNoFile               = errors.New("no image file provided")
	ErrNoArchiveFiles       = errors.New("no files to archive")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrInvalidSettings      = errors.New("invalid optimization settings")
	ErrEmptyImageData       = errors.New("empty image data")
	ErrUnsupportedTarget    = errors.New("unsupported target format")
)

// IsNoFile checks if an error represents a missing upload.
func IsNoFile(err error) bool {
	return errors.Is(err, ErrNoFile)
}

// IsUnsupportedMediaType checks if an error represents a rejected MIME type.
func IsUnsupportedMediaType(err error) bool {
	return errors.Is(err, ErrUnsupportedMediaType)
}

// IsInvalidSettings checks if an error represents out-of-range settings.
func IsInvalidSettings(err error) bool {
	return errors.Is(err, ErrInvalidSettings)
}
