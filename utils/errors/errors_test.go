package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppContextError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *AppContextError
		want string
	}{
		{
			name: "full context with cause",
			err: NewProcessingContextError(
				"failed to optimize image",
				"gateway", "CodecGateway", "transcode",
				errors.New("unexpected EOF"),
				nil,
			),
			want: "[gateway:CodecGateway:transcode] PROCESSING_ERROR: failed to optimize image (caused by: unexpected EOF)",
		},
		{
			name: "no cause",
			err:  NewValidationContextError("quality out of range", "usecase", "OptimizeImageUsecase", "validate", nil),
			want: "[usecase:OptimizeImageUsecase:validate] VALIDATION_ERROR: quality out of range",
		},
		{
			name: "bare error without location",
			err:  &AppContextError{Code: "UNKNOWN_ERROR", Message: "boom"},
			want: "UNKNOWN_ERROR: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

func TestAppContextError_HTTPStatusCode(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"VALIDATION_ERROR", http.StatusBadRequest},
		{"PAYLOAD_TOO_LARGE", http.StatusRequestEntityTooLarge},
		{"UNSUPPORTED_MEDIA_ERROR", http.StatusUnsupportedMediaType},
		{"PROCESSING_ERROR", http.StatusInternalServerError},
		{"ARCHIVE_ERROR", http.StatusInternalServerError},
		{"UNKNOWN_ERROR", http.StatusInternalServerError},
		{"SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := &AppContextError{Code: tt.code}
			assert.Equal(t, tt.want, err.HTTPStatusCode())
		})
	}
}

func TestAppContextError_Unwrap(t *testing.T) {
	cause := errors.New("disk full")
	err := NewArchiveContextError("failed to create ZIP archive", "gateway", "ArchiveGateway", "buildArchive", cause, nil)

	assert.True(t, errors.Is(err, cause))

	var appErr *AppContextError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "ARCHIVE_ERROR", appErr.Code)
}

func TestToHTTPResponse_SanitizesCause(t *testing.T) {
	err := NewProcessingContextError(
		"failed to optimize image",
		"gateway", "CodecGateway", "transcode",
		errors.New("cgo allocator panic at 0xdeadbeef"),
		map[string]interface{}{"filename": "secret-internal-name.png"},
	)

	resp := err.ToHTTPResponse("req-123")

	assert.Equal(t, "error", resp.Error)
	assert.Equal(t, "PROCESSING_ERROR", resp.Code)
	assert.Equal(t, "failed to optimize image", resp.Message)
	assert.Equal(t, "req-123", resp.RequestID)
	assert.NotContains(t, resp.Message, "deadbeef")
}

func TestEnrichWithContext(t *testing.T) {
	base := NewValidationContextError("empty file", "usecase", "OptimizeImageUsecase", "validate",
		map[string]interface{}{"filename": "a.png"})

	enriched := EnrichWithContext(base, "rest", "RESTHandler", "optimizeImage",
		map[string]interface{}{"request_id": "req-9"})

	assert.Equal(t, "VALIDATION_ERROR", enriched.Code)
	assert.Equal(t, "rest", enriched.Layer)
	assert.Equal(t, "RESTHandler", enriched.Component)
	assert.Equal(t, "optimizeImage", enriched.Operation)
	assert.Equal(t, "a.png", enriched.Context["filename"])
	assert.Equal(t, "req-9", enriched.Context["request_id"])

	// Original untouched.
	assert.Equal(t, "usecase", base.Layer)
	_, ok := base.Context["request_id"]
	assert.False(t, ok)
}

func TestUnsupportedMediaSentinel(t *testing.T) {
	err := NewUnsupportedMediaContextError("only JPEG, PNG, WebP and AVIF images are accepted",
		"rest", "RESTHandler", "filterMIMEType", nil)

	assert.True(t, IsUnsupportedMediaType(err))
	assert.Equal(t, http.StatusUnsupportedMediaType, err.HTTPStatusCode())
}
