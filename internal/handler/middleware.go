package handler

import (
	"strings"

	"shop-server/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextKeyUsername is the Gin context key the resolved identity is stored
// under for downstream handlers.
const ContextKeyUsername = "username"

// AuthMiddleware validates the bearer token on protected routes and attaches
// the resolved claims to the request context. Every failure path ends in the
// same generic 401.
func (h *APIHandler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			zap.L().Warn("Authorization header missing", zap.String("path", c.Request.URL.Path))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			zap.L().Warn("Invalid Authorization header format", zap.String("path", c.Request.URL.Path))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, models.ErrTokenInvalid)
			return
		}

		claims, err := h.authService.VerifyToken(parts[1])
		if err != nil {
			zap.L().Warn("Token verification failed", zap.Error(err), zap.String("path", c.Request.URL.Path))
			tokenVerificationsTotal.WithLabelValues("failure").Inc()
			handleServiceError(c, err)
			return
		}

		tokenVerificationsTotal.WithLabelValues("success").Inc()
		c.Set(ContextKeyUsername, claims.Username)
		c.Next()
	}
}
