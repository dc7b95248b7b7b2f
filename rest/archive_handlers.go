package rest

import (
	"fmt"
	"net/http"

	"imgpress/config"
	"imgpress/di"
	"imgpress/domain"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

func registerArchiveRoutes(api *echo.Group, container *di.ApplicationComponents, cfg *config.Config) {
	api.POST("/download-zip", handleDownloadZip(container), middleware.BodyLimit(cfg.Upload.ArchiveBodyLimit))
}

func handleDownloadZip(container *di.ApplicationComponents) echo.HandlerFunc {
	return func(c echo.Context) error {
		form, err := c.MultipartForm()
		if err != nil {
			return handleValidationError(c, "No files to archive", "files", nil)
		}

		headers := form.File["files"]
		if len(headers) == 0 {
			return handleValidationError(c, "No files to archive", "files", nil)
		}

		entries := make([]domain.ArchiveEntry, 0, len(headers))
		for _, fh := range headers {
			file, err := readFileHeader(fh)
			if err != nil {
				return handleError(c, err, "readUpload")
			}
			entries = append(entries, domain.ArchiveEntry{Name: file.Name, Data: file.Data})
		}

		data, err := container.BuildArchiveUsecase.Execute(c.Request().Context(), entries)
		if err != nil {
			return handleError(c, err, "buildArchive")
		}

		c.Response().Header().Set(echo.HeaderContentDisposition,
			fmt.Sprintf("attachment; filename=%q", domain.ArchiveFilename))
		return c.Blob(http.StatusOK, "application/zip", data)
	}
}
