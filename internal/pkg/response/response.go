// internal/pkg/response/response.go
package response

import (
	"errors"
	"net/http"

	xerrors "customer-lookup-service/internal/pkg/errors"

	"github.com/gin-gonic/gin"
)

// Response defines the standard API response format.
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// Success sends a successful response with a message and optional data.
func Success(c *gin.Context, status int, message string, data interface{}) {
	if status == 0 {
		status = http.StatusOK
	}

	c.JSON(status, Response{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// Error sends a standardized error response.
func Error(c *gin.Context, code int, message string, err error, data ...interface{}) {
	// Abort first so later handlers do not write over the response.
	c.Abort()

	response := Response{
		Success: false,
		Message: message,
	}

	if err != nil {
		response.Error = err.Error()
	}

	if len(data) > 0 {
		response.Data = data[0]
	}

	c.JSON(code, response)
}

// FromError picks the status code for err from the sentinel it wraps.
func FromError(c *gin.Context, message string, err error) {
	Error(c, StatusOf(err), message, err)
}

// StatusOf maps application errors to HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, xerrors.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, xerrors.ErrMalformedSource), errors.Is(err, xerrors.ErrUnsupportedSource):
		return http.StatusUnprocessableEntity
	case errors.Is(err, xerrors.ErrSourceUnavailable):
		return http.StatusBadGateway
	case errors.Is(err, xerrors.ErrLoadInProgress):
		return http.StatusConflict
	case errors.Is(err, xerrors.ErrNoDataset), errors.Is(err, xerrors.ErrNoSelection), errors.Is(err, xerrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, xerrors.ErrAssistantDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// ValidationError sends a 400 Bad Request response for invalid input.
func ValidationError(c *gin.Context, message string, err error) {
	Error(c, http.StatusBadRequest, message, err)
}
