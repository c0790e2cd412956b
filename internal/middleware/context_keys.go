package middleware

import (
	"context"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// sessionKey is the key used to store the authenticated session in the request context.
const sessionKey = contextKey("session")

// WithSession returns a copy of ctx carrying session.
func WithSession(ctx context.Context, session *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

// GetSessionFromCtx retrieves the authenticated session from a context.
func GetSessionFromCtx(ctx context.Context) (*domain.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*domain.Session)
	return session, ok && session != nil
}

// GetSessionFromContext retrieves the authenticated session from the Gin request.
// It returns the session and a boolean indicating if it was found.
func GetSessionFromContext(c *gin.Context) (*domain.Session, bool) {
	return GetSessionFromCtx(c.Request.Context())
}

// GetUserIDFromContext retrieves the authenticated user ID from the Gin request.
func GetUserIDFromContext(c *gin.Context) (int64, bool) {
	session, ok := GetSessionFromContext(c)
	if !ok {
		return 0, false
	}
	return session.ID, true
}
