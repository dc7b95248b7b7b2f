package image_codec_gateway

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	"image/png"
	"time"

	"imgpress/domain"
	"imgpress/utils/errors"

	"github.com/chai2010/webp"
	"github.com/gen2brain/avif"
	_ "golang.org/x/image/webp"
)

// CodecGateway implements ImageCodecPort. Decoding goes through the stdlib
// image registry (jpeg/png/gif plus webp via x/image and avif via
// gen2brain/avif); encoding dispatches per target format.
type CodecGateway struct{}

// NewCodecGateway creates a new CodecGateway.
func NewCodecGateway() *CodecGateway {
	return &CodecGateway{}
}

// Transcode decodes data and re-encodes it at the requested quality. With
// FormatKeep the target is looked up from the source MIME type; types
// outside the lookup table are returned unchanged.
func (g *CodecGateway) Transcode(ctx context.Context, data []byte, sourceMIMEType string, settings domain.OptimizationSettings) (*domain.OptimizationOutcome, error) {
	if len(data) == 0 {
		return nil, errors.ErrEmptyImageData
	}

	start := time.Now()
	originalSize := len(data)

	target := settings.Format
	if target == domain.FormatKeep {
		resolved, ok := domain.FormatForMIMEType(sourceMIMEType)
		if !ok {
			// Unrecognized source type: no forced re-encode.
			return &domain.OptimizationOutcome{
				OriginalSize:     originalSize,
				OptimizedSize:    originalSize,
				CompressionRatio: 0,
				ProcessingTime:   time.Since(start),
				Format:           domain.FormatKeep,
				Data:             data,
			}, nil
		}
		target = resolved
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	var buf bytes.Buffer
	if err := encode(&buf, img, target, settings.Quality); err != nil {
		return nil, err
	}

	encoded := buf.Bytes()
	return &domain.OptimizationOutcome{
		OriginalSize:     originalSize,
		OptimizedSize:    len(encoded),
		CompressionRatio: domain.CompressionRatio(originalSize, len(encoded)),
		ProcessingTime:   time.Since(start),
		Format:           target,
		Data:             encoded,
	}, nil
}

func encode(buf *bytes.Buffer, img image.Image, target domain.ImageFormat, quality int) error {
	switch target {
	case domain.FormatJPEG:
		if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return fmt.Errorf("encode JPEG: %w", err)
		}
	case domain.FormatPNG:
		encoder := png.Encoder{CompressionLevel: pngCompressionLevel(quality)}
		if err := encoder.Encode(buf, img); err != nil {
			return fmt.Errorf("encode PNG: %w", err)
		}
	case domain.FormatWebP:
		if err := webp.Encode(buf, img, &webp.Options{Lossless: false, Quality: float32(quality)}); err != nil {
			return fmt.Errorf("encode WebP: %w", err)
		}
	case domain.FormatAVIF:
		if err := avif.Encode(buf, img, avif.Options{Quality: quality, Speed: 8}); err != nil {
			return fmt.Errorf("encode AVIF: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", errors.ErrUnsupportedTarget, target)
	}
	return nil
}

// pngCompressionLevel maps the lossy quality scale onto zlib effort. PNG is
// lossless, so quality only trades encode time against byte size.
func pngCompressionLevel(quality int) png.CompressionLevel {
	switch {
	case quality <= 50:
		return png.BestCompression
	case quality <= 90:
		return png.DefaultCompression
	default:
		return png.BestSpeed
	}
}
