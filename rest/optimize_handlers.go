package rest

import (
	"encoding/base64"
	"net/http"

	"imgpress/config"
	"imgpress/di"
	"imgpress/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func registerOptimizeRoutes(api *echo.Group, container *di.ApplicationComponents, cfg *config.Config) {
	bodyLimit := middleware.BodyLimit(cfg.Upload.OptimizeBodyLimit)

	api.POST("/optimize", handleOptimize(container, cfg), bodyLimit)
	api.POST("/optimize-batch", handleOptimizeBatch(container, cfg), bodyLimit)
}

func handleOptimize(container *di.ApplicationComponents, cfg *config.Config) echo.HandlerFunc {
	defaults := domain.OptimizationSettings{
		Format:  domain.FormatKeep,
		Quality: cfg.Optimizer.DefaultQuality,
	}

	return func(c echo.Context) error {
		fh, err := c.FormFile("image")
		if err != nil {
			return handleValidationError(c, "No image file provided", "image", nil)
		}

		mimeType := fh.Header.Get("Content-Type")
		if !domain.IsAllowedMIMEType(mimeType) {
			return handleUnsupportedMedia(c, mimeType)
		}

		file, err := readFileHeader(fh)
		if err != nil {
			return handleError(c, err, "readUpload")
		}

		settings := parseSettings(c, defaults)

		outcome, err := container.OptimizeImageUsecase.Execute(c.Request().Context(), file, settings)
		if err != nil {
			return handleError(c, err, "optimizeImage")
		}

		return c.JSON(http.StatusOK, OptimizeResponse{
			Success:          true,
			OriginalSize:     outcome.OriginalSize,
			OptimizedSize:    outcome.OptimizedSize,
			CompressionRatio: outcome.CompressionRatio,
			ProcessingTime:   outcome.ProcessingTime.Milliseconds(),
			OptimizedImage:   base64.StdEncoding.EncodeToString(outcome.Data),
		})
	}
}

func handleOptimizeBatch(container *di.ApplicationComponents, cfg *config.Config) echo.HandlerFunc {
	defaults := domain.OptimizationSettings{
		Format:  domain.FormatKeep,
		Quality: cfg.Optimizer.DefaultQuality,
	}

	return func(c echo.Context) error {
		form, err := c.MultipartForm()
		if err != nil {
			return handleValidationError(c, "No image files provided", "images", nil)
		}

		headers := form.File["images"]
		if len(headers) == 0 {
			return handleValidationError(c, "No image files provided", "images", nil)
		}
		if len(headers) > cfg.Upload.MaxBatchFiles {
			return handleValidationError(c, "Too many files in one batch", "images", len(headers))
		}

		settings := parseSettings(c, defaults)

		// Files are processed sequentially; a failed file is marked in its
		// own result and never blocks the rest.
		files := make([]domain.UploadedFile, 0, len(headers))
		results := make([]BatchFileResult, 0, len(headers))
		for _, fh := range headers {
			mimeType := fh.Header.Get("Content-Type")
			if !domain.IsAllowedMIMEType(mimeType) {
				results = append(results, BatchFileResult{
					Filename: fh.Filename,
					Error:    "unsupported media type",
				})
				continue
			}

			file, err := readFileHeader(fh)
			if err != nil {
				results = append(results, BatchFileResult{
					Filename: fh.Filename,
					Error:    "failed to read upload",
				})
				continue
			}
			files = append(files, file)
		}

		for _, result := range container.OptimizeImageUsecase.ExecuteBatch(c.Request().Context(), files, settings) {
			if result.Err != nil {
				results = append(results, BatchFileResult{
					Filename: result.Filename,
					Error:    "failed to optimize image",
				})
				continue
			}
			results = append(results, BatchFileResult{
				Filename:         result.Filename,
				Success:          true,
				OriginalSize:     result.Outcome.OriginalSize,
				OptimizedSize:    result.Outcome.OptimizedSize,
				CompressionRatio: result.Outcome.CompressionRatio,
				ProcessingTime:   result.Outcome.ProcessingTime.Milliseconds(),
				OptimizedImage:   base64.StdEncoding.EncodeToString(result.Outcome.Data),
			})
		}

		return c.JSON(http.StatusOK, BatchOptimizeResponse{Results: results})
	}
}
