package errors

import (
	"fmt"
	"net/http"
)

// AppContextError carries an error code plus the layer, component and
// operation where it was raised. The cause is never serialized; clients see
// only the code and a sanitized message.
type AppContextError struct {
	Code      string                 `json:"code"`
	Message   string                 `json:"message"`
	Layer     string                 `json:"layer,omitempty"`
	Component string                 `json:"component,omitempty"`
	Operation string                 `json:"operation,omitempty"`
	Cause     error                  `json:"-"`
	Context   map[string]interface{} `json:"context,omitempty"`
}

// Error implements the error interface.
func (e *AppContextError) Error() string {
	var prefix string
	if e.Layer != "" && e.Component != "" && e.Operation != "" {
		prefix = fmt.Sprintf("[%s:%s:%s] ", e.Layer, e.Component, e.Operation)
	}

	if e.Cause != nil {
		return fmt.Sprintf("%s%s: %s (caused by: %v)", prefix, e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Code, e.Message)
}

// Unwrap returns the underlying error for error chain unwrapping.
func (e *AppContextError) Unwrap() error {
	return e.Cause
}

// HTTPStatusCode maps error codes to HTTP status codes.
func (e *AppContextError) HTTPStatusCode() int {
	switch e.Code {
	case "VALIDATION_ERROR":
		return http.StatusBadRequest
	case "PAYLOAD_TOO_LARGE":
		return http.StatusRequestEntityTooLarge
	case "UNSUPPORTED_MEDIA_ERROR":
		return http.StatusUnsupportedMediaType
	case "PROCESSING_ERROR", "ARCHIVE_ERROR", "UNKNOWN_ERROR":
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// HTTPContextResponse is the error payload sent to clients. The underlying
// cause stays in the server logs; the response carries only the code, a
// stable message and the request id.
type HTTPContextResponse struct {
	Error     string `json:"error"`
	Code      string `json:"code"`
	Message   string `json:"message"`
	RequestID string `json:"request_id,omitempty"`
}

// ToHTTPResponse converts an AppContextError to a sanitized HTTP error
// response.
func (e *AppContextError) ToHTTPResponse(requestID string) HTTPContextResponse {
	return HTTPContextResponse{
		Error:     "error",
		Code:      e.Code,
		Message:   e.Message,
		RequestID: requestID,
	}
}

// NewAppContextError creates a new AppContextError with full context.
func NewAppContextError(
	code, message, layer, component, operation string,
	cause error,
	context map[string]interface{},
) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}

	return &AppContextError{
		Code:      code,
		Message:   message,
		Layer:     layer,
		Component: component,
		Operation: operation,
		Cause:     cause,
		Context:   context,
	}
}

// EnrichWithContext returns a copy of err annotated with the given layer,
// component and operation, merging any additional context.
func EnrichWithContext(
	err *AppContextError,
	layer, component, operation string,
	additionalContext map[string]interface{},
) *AppContextError {
	mergedContext := make(map[string]interface{})
	for k, v := range err.Context {
		mergedContext[k] = v
	}
	for k, v := range additionalContext {
		mergedContext[k] = v
	}

	return &AppContextError{
		Code:      err.Code,
		Message:   err.Message,
		Layer:     layer,
		Component: component,
		Operation: operation,
		Cause:     err.Cause,
		Context:   mergedContext,
	}
}

// NewValidationContextError creates a validation error with context.
func NewValidationContextError(message, layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError("VALIDATION_ERROR", message, layer, component, operation, nil, context)
}

// NewUnsupportedMediaContextError creates an error for rejected MIME types.
func NewUnsupportedMediaContextError(message, layer, component, operation string, context map[string]interface{}) *AppContextError {
	return NewAppContextError("UNSUPPORTED_MEDIA_ERROR", message, layer, component, operation, ErrUnsupportedMediaType, context)
}

// NewProcessingContextError creates a codec failure error. The cause is kept
// for logging; the message shown to clients is the stable one passed here.
func NewProcessingContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}
	context["error_type"] = "processing"
	return NewAppContextError("PROCESSING_ERROR", message, layer, component, operation, cause, context)
}

// NewArchiveContextError creates an archive build failure error.
func NewArchiveContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	if context == nil {
		context = make(map[string]interface{})
	}
	context["error_type"] = "archive"
	return NewAppContextError("ARCHIVE_ERROR", message, layer, component, operation, cause, context)
}

// NewUnknownContextError creates an error for unclassified failures.
func NewUnknownContextError(message, layer, component, operation string, cause error, context map[string]interface{}) *AppContextError {
	return NewAppContextError("UNKNOWN_ERROR", message, layer, component, operation, cause, context)
}
