package domain

import (
	"fmt"
	"strings"
	"time"
)

// ImageFormat identifies a target encoding for an optimization request.
type ImageFormat string

const (
	// FormatKeep re-encodes the image in its source format.
	FormatKeep ImageFormat = "keep"
	FormatJPEG ImageFormat = "jpeg"
	FormatPNG  ImageFormat = "png"
	FormatWebP ImageFormat = "webp"
	FormatAVIF ImageFormat = "avif"
)

const (
	// MinQuality and MaxQuality bound the lossy-compression parameter.
	MinQuality = 10
	MaxQuality = 100

	// DefaultQuality is applied when the caller supplies no settings.
	DefaultQuality = 85

	// MaxOptimizeUploadSize is the per-request byte ceiling for /api/optimize.
	MaxOptimizeUploadSize = 30 * 1024 * 1024

	// MaxArchiveUploadSize is the per-request byte ceiling for /api/download-zip.
	MaxArchiveUploadSize = 100 * 1024 * 1024

	// MaxBatchFiles caps the number of images in one batch request.
	MaxBatchFiles = 10
)

// UploadedFile holds one multipart upload for the duration of a request.
type UploadedFile struct {
	Name     string
	MIMEType string
	Data     []byte
}

// OptimizationSettings is the caller-supplied transcode configuration.
type OptimizationSettings struct {
	Format  ImageFormat `json:"format"`
	Quality int         `json:"quality"`
}

// DefaultOptimizationSettings returns the leniency fallback used when the
// settings payload is absent or malformed.
func DefaultOptimizationSettings() OptimizationSettings {
	return OptimizationSettings{Format: FormatKeep, Quality: DefaultQuality}
}

// Validate checks the format against the known set and the quality range.
func (s OptimizationSettings) Validate() error {
	switch s.Format {
	case FormatKeep, FormatJPEG, FormatPNG, FormatWebP, FormatAVIF:
	default:
		return fmt.Errorf("unknown format %q", s.Format)
	}
	if s.Quality < MinQuality || s.Quality > MaxQuality {
		return fmt.Errorf("quality must be between %d and %d, got %d", MinQuality, MaxQuality, s.Quality)
	}
	return nil
}

// OptimizationOutcome is the result of a single transcode call. It lives only
// for the duration of the response; the ledger keeps a derived record.
type OptimizationOutcome struct {
	OriginalSize     int
	OptimizedSize    int
	CompressionRatio int
	ProcessingTime   time.Duration
	Format           ImageFormat
	Data             []byte
}

// CompressionRatio computes the rounded percentage reduction in byte size.
// The result is negative when the output is larger than the input; no
// clamping is applied.
func CompressionRatio(originalSize, optimizedSize int) int {
	if originalSize == 0 {
		return 0
	}
	ratio := float64(originalSize-optimizedSize) / float64(originalSize) * 100
	if ratio >= 0 {
		return int(ratio + 0.5)
	}
	return int(ratio - 0.5)
}

// mimeFormats is the single lookup consulted for the "keep" branch. Types
// outside the table are passed through untouched.
var mimeFormats = map[string]ImageFormat{
	"image/jpeg": FormatJPEG,
	"image/jpg":  FormatJPEG,
	"image/png":  FormatPNG,
	"image/webp": FormatWebP,
	"image/avif": FormatAVIF,
}

// FormatForMIMEType maps a declared MIME type to its codec format. The
// second return value is false for unrecognized types.
func FormatForMIMEType(mimeType string) (ImageFormat, bool) {
	format, ok := mimeFormats[strings.ToLower(strings.TrimSpace(mimeType))]
	return format, ok
}

// IsAllowedMIMEType reports whether the declared MIME type is accepted by
// the upload intake.
func IsAllowedMIMEType(mimeType string) bool {
	_, ok := FormatForMIMEType(mimeType)
	return ok
}

// MIMEType returns the canonical MIME type for an explicit image format.
func (f ImageFormat) MIMEType() string {
	switch f {
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	case FormatWebP:
		return "image/webp"
	case FormatAVIF:
		return "image/avif"
	default:
		return "application/octet-stream"
	}
}
