package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	portssvc "github.com/JuanPescoran/bond-valuation-app/internal/core/ports/services"
	"github.com/gin-gonic/gin"
)

// TokenFromRequest extracts the session token. An explicit
// `Authorization: Bearer <token>` header wins over the session cookie, so a
// stale browser cookie never masks the token an API client sends.
func TokenFromRequest(c *gin.Context, cookieName string) string {
	// Check the Authorization header first
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return parts[1]
	}
	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token
	}
	return ""
}

// AuthMiddleware creates a Gin middleware handler that requires a live session.
// Requests without one are rejected with 401 before reaching the handler.
func AuthMiddleware(authSvc portssvc.AuthSvc, cookieName string) gin.HandlerFunc {
	return sessionMiddleware(authSvc, cookieName, true)
}

// OptionalAuthMiddleware resolves the session when a token is present but lets
// anonymous requests through.
func OptionalAuthMiddleware(authSvc portssvc.AuthSvc, cookieName string) gin.HandlerFunc {
	return sessionMiddleware(authSvc, cookieName, false)
}

func sessionMiddleware(authSvc portssvc.AuthSvc, cookieName string, required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		logger := GetLoggerFromCtx(c.Request.Context())

		token := TokenFromRequest(c, cookieName)
		if token == "" {
			if required {
				logger.Warn("Session token missing")
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
				return
			}
			c.Next()
			return
		}

		session, err := authSvc.Resolve(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, apperrors.ErrAuthenticationRequired) {
				logger.Error("Failed to resolve session", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve session"})
				return
			}
			if required {
				logger.Warn("Session rejected", slog.String("error", err.Error()))
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or invalid"})
				return
			}
			c.Next()
			return
		}

		enrichedLogger := logger.With(slog.Int64("user_id", session.ID))
		ctx := WithSession(c.Request.Context(), session)
		c.Request = c.Request.WithContext(WithLogger(ctx, enrichedLogger))

		c.Next()
	}
}
