package handler

import (
	"errors"
	"net/http"

	"shop-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleServiceError maps domain errors to HTTP status codes in one place.
// Token failures collapse into a single generic 401 so callers cannot tell
// "expired" from "tampered". Anything unrecognized is logged with detail and
// surfaced as a generic 500.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var message string

	switch {
	case errors.Is(err, models.ErrInvalidInput), errors.Is(err, models.ErrEmptyUpdate):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case errors.Is(err, models.ErrInvalidCredentials):
		statusCode = http.StatusUnauthorized
		message = "Invalid credentials"
	case errors.Is(err, models.ErrTokenInvalid),
		errors.Is(err, models.ErrTokenMalformed),
		errors.Is(err, models.ErrTokenExpired):
		statusCode = http.StatusUnauthorized
		message = "Invalid or expired token"
	case errors.Is(err, models.ErrUserAlreadyExists):
		statusCode = http.StatusConflict
		message = "User already exists"
	case errors.Is(err, models.ErrProductNotFound):
		statusCode = http.StatusNotFound
		message = "Product not found"
	case errors.Is(err, models.ErrUserNotFound):
		statusCode = http.StatusNotFound
		message = "User not found"
	case errors.Is(err, models.ErrUploadTooLarge):
		statusCode = http.StatusRequestEntityTooLarge
		message = err.Error()
	case errors.Is(err, models.ErrUnsupportedMediaType):
		statusCode = http.StatusUnsupportedMediaType
		message = err.Error()
	case errors.Is(err, models.ErrBackendNotConfigured):
		statusCode = http.StatusServiceUnavailable
		message = "Uploads are not configured"
	default:
		zap.L().Error("Unhandled internal error", zap.Error(err))
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.AbortWithStatusJSON(statusCode, gin.H{"error": message})
}
