package image_codec_gateway

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"imgpress/domain"
)

func TestCodecGateway_Transcode_KeepJPEG(t *testing.T) {
	gw := NewCodecGateway()

	img := createTestImage(320, 240)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 95}); err != nil {
		t.Fatal(err)
	}
	input := buf.Bytes()

	outcome, err := gw.Transcode(context.Background(), input, "image/jpeg", domain.OptimizationSettings{
		Format:  domain.FormatKeep,
		Quality: 60,
	})
	if err != nil {
		t.Fatalf("Transcode failed: %v", err)
	}

	if outcome.Format != domain.FormatJPEG {
		t.Errorf("expected resolved format jpeg, got %s", outcome.Format)
	}
	if len(outcome.Data) == 0 {
		t.Fatal("expected non-empty output")
	}
	if outcome.OptimizedSize != len(outcome.Data) {
		t.Errorf("OptimizedSize mismatch: %d vs len %d", outcome.OptimizedSize, len(outcome.Data))
	}
	if outcome.OriginalSize != len(input) {
		t.Errorf("OriginalSize mismatch: %d vs %d", outcome.OriginalSize, len(input))
	}
	if outcome.CompressionRatio != domain.CompressionRatio(outcome.OriginalSize, outcome.OptimizedSize) {
		t.Error("CompressionRatio not derived from sizes")
	}

	// Output of keep on a JPEG input must itself decode as JPEG.
	_, format, err := image.Decode(bytes.NewReader(outcome.Data))
	if err != nil {
		t.Fatalf("output not decodable: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
}

func TestCodecGateway_Transcode_PNGToJPEG(t *testing.T) {
	gw := NewCodecGateway()

	img := createTestImage(100, 100)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	outcome, err := gw.Transcode(context.Background(), buf.Bytes(), "image/png", domain.OptimizationSettings{
		Format:  domain.FormatJPEG,
		Quality: 70,
	})
	if err != nil {
		t.Fatalf("Transcode failed: %v", err)
	}

	_, format, err := image.Decode(bytes.NewReader(outcome.Data))
	if err != nil {
		t.Fatalf("output not decodable: %v", err)
	}
	if format != "jpeg" {
		t.Errorf("expected jpeg output, got %s", format)
	}
	if outcome.Format != domain.FormatJPEG {
		t.Errorf("expected format jpeg, got %s", outcome.Format)
	}
}

func TestCodecGateway_Transcode_JPEGToWebP(t *testing.T) {
	gw := NewCodecGateway()

	img := createTestImage(64, 64)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}

	outcome, err := gw.Transcode(context.Background(), buf.Bytes(), "image/jpeg", domain.OptimizationSettings{
		Format:  domain.FormatWebP,
		Quality: 75,
	})
	if err != nil {
		t.Fatalf("Transcode failed: %v", err)
	}

	_, format, err := image.Decode(bytes.NewReader(outcome.Data))
	if err != nil {
		t.Fatalf("output not decodable: %v", err)
	}
	if format != "webp" {
		t.Errorf("expected webp output, got %s", format)
	}
}

func TestCodecGateway_Transcode_JPEGToAVIF(t *testing.T) {
	gw := NewCodecGateway()

	img := createTestImage(16, 16)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		t.Fatal(err)
	}

	outcome, err := gw.Transcode(context.Background(), buf.Bytes(), "image/jpeg", domain.OptimizationSettings{
		Format:  domain.FormatAVIF,
		Quality: 50,
	})
	if err != nil {
		t.Fatalf("Transcode failed: %v", err)
	}
	if len(outcome.Data) == 0 {
		t.Fatal("expected non-empty AVIF output")
	}
	if outcome.Format != domain.FormatAVIF {
		t.Errorf("expected format avif, got %s", outcome.Format)
	}
}

func TestCodecGateway_Transcode_PNGQualityBands(t *testing.T) {
	gw := NewCodecGateway()

	img := createTestImage(200, 200)
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}

	for _, quality := range []int{10, 85, 100} {
		outcome, err := gw.Transcode(context.Background(), buf.Bytes(), "image/png", domain.OptimizationSettings{
			Format:  domain.FormatPNG,
			Quality: quality,
		})
		if err != nil {
			t.Fatalf("Transcode at quality %d failed: %v", quality, err)
		}
		if outcome.OptimizedSize < 1 {
			t.Errorf("quality %d: expected optimizedSize >= 1, got %d", quality, outcome.OptimizedSize)
		}
		if _, format, err := image.Decode(bytes.NewReader(outcome.Data)); err != nil || format != "png" {
			t.Errorf("quality %d: output not a decodable PNG (format=%s, err=%v)", quality, format, err)
		}
	}
}

func TestCodecGateway_Transcode_KeepUnknownTypePassesThrough(t *testing.T) {
	gw := NewCodecGateway()

	input := []byte("GIF87a not really but also not re-encoded")
	outcome, err := gw.Transcode(context.Background(), input, "image/gif", domain.OptimizationSettings{
		Format:  domain.FormatKeep,
		Quality: 85,
	})
	if err != nil {
		t.Fatalf("expected silent pass-through, got %v", err)
	}

	if !bytes.Equal(outcome.Data, input) {
		t.Error("expected input bytes unchanged")
	}
	if outcome.CompressionRatio != 0 {
		t.Errorf("expected ratio 0 for pass-through, got %d", outcome.CompressionRatio)
	}
	if outcome.Format != domain.FormatKeep {
		t.Errorf("expected format keep for pass-through, got %s", outcome.Format)
	}
}

func TestCodecGateway_Transcode_EmptyData(t *testing.T) {
	gw := NewCodecGateway()

	_, err := gw.Transcode(context.Background(), nil, "image/jpeg", domain.DefaultOptimizationSettings())
	if err == nil {
		t.Fatal("expected error for empty data")
	}
}

func TestCodecGateway_Transcode_InvalidData(t *testing.T) {
	gw := NewCodecGateway()

	_, err := gw.Transcode(context.Background(), []byte("not an image"), "image/jpeg", domain.DefaultOptimizationSettings())
	if err == nil {
		t.Fatal("expected error for invalid image data")
	}
}

func createTestImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{
				R: uint8(x * 255 / width),
				G: uint8(y * 255 / height),
				B: uint8((x + y) * 255 / (width + height)),
				A: 255,
			})
		}
	}
	return img
}
