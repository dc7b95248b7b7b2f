package image_codec_port

import (
	"context"

	"imgpress/domain"
)

// ImageCodecPort defines the interface for decoding and re-encoding images.
type ImageCodecPort interface {
	// Transcode re-encodes data according to settings. With FormatKeep the
	// target is derived from the source MIME type; unrecognized types pass
	// through unchanged.
	Transcode(ctx context.Context, data []byte, sourceMIMEType string, settings domain.OptimizationSettings) (*domain.OptimizationOutcome, error)
}
