package rest

import (
	"encoding/json"
	"io"
	"mime/multipart"

	"imgpress/domain"
	"imgpress/utils/errors"
	"imgpress/utils/logger"

	"github.com/labstack/echo/v4"
)

// handleError converts errors to sanitized HTTP responses. The full error
// chain is logged server-side; clients receive only the code, a stable
// message and the request id.
func handleError(c echo.Context, err error, operation string) error {
	var enrichedErr *errors.AppContextError
	requestID := logger.RequestIDFromContext(c.Request().Context())

	if appContextErr, ok := err.(*errors.AppContextError); ok {
		enrichedErr = errors.EnrichWithContext(
			appContextErr,
			"rest",
			"RESTHandler",
			operation,
			map[string]interface{}{
				"path":        c.Request().URL.Path,
				"method":      c.Request().Method,
				"remote_addr": c.Request().RemoteAddr,
				"request_id":  requestID,
			},
		)
	} else {
		enrichedErr = errors.NewUnknownContextError(
			"internal server error",
			"rest",
			"RESTHandler",
			operation,
			err,
			map[string]interface{}{
				"path":        c.Request().URL.Path,
				"method":      c.Request().Method,
				"remote_addr": c.Request().RemoteAddr,
				"request_id":  requestID,
			},
		)
	}

	logger.Logger.Error("REST handler error",
		"error", enrichedErr.Error(),
		"error_code", enrichedErr.Code,
		"layer", enrichedErr.Layer,
		"component", enrichedErr.Component,
		"operation", enrichedErr.Operation,
		"path", c.Request().URL.Path,
		"method", c.Request().Method,
	)

	return c.JSON(enrichedErr.HTTPStatusCode(), enrichedErr.ToHTTPResponse(requestID))
}

// handleValidationError creates a validation error response.
func handleValidationError(c echo.Context, message string, field string, value interface{}) error {
	requestID := logger.RequestIDFromContext(c.Request().Context())
	validationErr := errors.NewValidationContextError(
		message,
		"rest",
		"RESTHandler",
		"validateInput",
		map[string]interface{}{
			"field":       field,
			"value":       value,
			"path":        c.Request().URL.Path,
			"method":      c.Request().Method,
			"remote_addr": c.Request().RemoteAddr,
			"request_id":  requestID,
		},
	)

	logger.Logger.Error("REST validation error",
		"error", validationErr.Error(),
		"field", field,
		"value", value,
		"path", c.Request().URL.Path,
	)

	return c.JSON(validationErr.HTTPStatusCode(), validationErr.ToHTTPResponse(requestID))
}

// handleUnsupportedMedia rejects declared MIME types outside the accepted
// image set.
func handleUnsupportedMedia(c echo.Context, mimeType string) error {
	mediaErr := errors.NewUnsupportedMediaContextError(
		"only JPEG, PNG, WebP and AVIF images are accepted",
		"rest",
		"RESTHandler",
		"filterMIMEType",
		map[string]interface{}{
			"mime_type": mimeType,
			"path":      c.Request().URL.Path,
		},
	)

	logger.Logger.Warn("rejected upload",
		"mime_type", mimeType,
		"path", c.Request().URL.Path,
	)

	requestID := logger.RequestIDFromContext(c.Request().Context())
	return c.JSON(mediaErr.HTTPStatusCode(), mediaErr.ToHTTPResponse(requestID))
}

// parseSettings reads the settings form field. A missing or malformed JSON
// payload silently falls back to the defaults. Out-of-range values inside
// well-formed JSON are NOT forgiven here; Validate catches them downstream.
func parseSettings(c echo.Context, defaults domain.OptimizationSettings) domain.OptimizationSettings {
	raw := c.FormValue("settings")
	if raw == "" {
		return defaults
	}

	settings := defaults
	if err := json.Unmarshal([]byte(raw), &settings); err != nil {
		logger.Logger.Warn("malformed settings payload, using defaults",
			"error", err,
			"path", c.Request().URL.Path,
		)
		return defaults
	}

	return settings
}

// readFileHeader loads one multipart file into memory for the duration of
// the request.
func readFileHeader(fh *multipart.FileHeader) (domain.UploadedFile, error) {
	f, err := fh.Open()
	if err != nil {
		return domain.UploadedFile{}, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return domain.UploadedFile{}, err
	}

	return domain.UploadedFile{
		Name:     fh.Filename,
		MIMEType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, nil
}
