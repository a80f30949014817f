// Package httperr maps errors to JSON error responses.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jobboard_backend/internal/platform/recordstore"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

// Error returns the client-facing message.
func (e *HTTPError) Error() string {
	return e.Message
}

// New creates a new HTTP error.
func New(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{Error: e.Message, Code: e.Code}
}

// Mapper translates a feature's domain errors. It returns nil for errors it
// does not know.
type Mapper func(err error) *HTTPError

// BadRequest is used for request bodies that fail binding.
func BadRequest(err error) *HTTPError {
	return New(http.StatusBadRequest, err.Error(), "INVALID_REQUEST")
}

// NotFound is used when a looked-up record is absent.
func NotFound(what string) *HTTPError {
	return New(http.StatusNotFound, what+" not found", "NOT_FOUND")
}

// Map resolves err through the feature mapper first, then the storage
// errors every feature shares. Anything else is an internal error.
func Map(err error, m Mapper) *HTTPError {
	var he *HTTPError
	if errors.As(err, &he) {
		return he
	}
	if m != nil {
		if he := m(err); he != nil {
			return he
		}
	}
	switch {
	case errors.Is(err, recordstore.ErrConflict):
		return New(http.StatusConflict, "the record was modified concurrently, retry", "CONFLICT")
	case errors.Is(err, recordstore.ErrCascadeFailed):
		return New(http.StatusInternalServerError, "the update could not be completed and was rolled back", "CASCADE_FAILED")
	case errors.Is(err, recordstore.ErrCorrupt):
		return New(http.StatusInternalServerError, "stored data failed an integrity check", "DATA_CORRUPT")
	default:
		return New(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}

// Respond writes the mapped error and aborts the chain. Server-side
// failures are logged with the original error.
func Respond(c *gin.Context, l *zap.Logger, err error, m Mapper) {
	he := Map(err, m)
	if he.StatusCode >= http.StatusInternalServerError && l != nil {
		l.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.String("code", he.Code),
			zap.Error(err),
		)
	}
	c.AbortWithStatusJSON(he.StatusCode, he.ToErrorResponse())
}
