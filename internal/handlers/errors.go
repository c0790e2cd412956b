package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/JuanPescoran/bond-valuation-app/internal/apperrors"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/JuanPescoran/bond-valuation-app/internal/dto"
	"github.com/JuanPescoran/bond-valuation-app/internal/middleware"
	"github.com/gin-gonic/gin"
)

// historyPath is where a client recovers from a missing valuation.
const historyPath = "/history"

// respondError maps a service error to exactly one JSON response.
// action completes the sentence "Failed to ..." for unexpected errors.
func respondError(c *gin.Context, err error, action string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var serverErr *apperrors.ServerError

	switch {
	case errors.Is(err, apperrors.ErrValidation):
		logger.Warn("Validation failed", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Validation failed", Fields: apperrors.FieldErrors(err)})
	case errors.Is(err, apperrors.ErrAuthenticationRequired):
		logger.Warn("Authentication required", slog.String("action", action))
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Authentication required"})
	case errors.Is(err, apperrors.ErrNotFound):
		logger.Warn("Resource not found", slog.String("error", err.Error()))
		msg := "Valuation not found"
		if errors.As(err, &serverErr) && serverErr.Message != "" {
			msg = serverErr.Message
		}
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: msg, Recovery: historyPath})
	case errors.As(err, &serverErr) && serverErr.StatusCode >= 400 && serverErr.StatusCode < 500:
		// Client errors of the backend (bad credentials, duplicate user) are the caller's to fix.
		logger.Warn("Backend rejected request", slog.Int("backend_status", serverErr.StatusCode), slog.String("error", serverErr.Message))
		c.JSON(serverErr.StatusCode, dto.ErrorResponse{Error: serverErr.Message})
	case errors.As(err, &serverErr):
		logger.Error("Backend failed", slog.Int("backend_status", serverErr.StatusCode), slog.String("error", serverErr.Message))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: serverErr.Message})
	case errors.Is(err, apperrors.ErrInvalidServerResponse):
		logger.Error("Backend returned an invalid response", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: apperrors.ErrInvalidServerResponse.Error()})
	case errors.Is(err, apperrors.ErrServer):
		logger.Error("Backend unreachable", slog.String("error", err.Error()))
		c.JSON(http.StatusBadGateway, dto.ErrorResponse{Error: "The valuation service is unavailable"})
	default:
		logger.Error("Failed to "+action, slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Failed to " + action})
	}
}

// bindingError answers a request whose body or query could not be decoded.
func bindingError(c *gin.Context, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn("Failed to bind request", slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request format: " + err.Error()})
}

// sessionOrAbort returns the session set by the auth middleware.
func sessionOrAbort(c *gin.Context) (*domain.Session, bool) {
	session, ok := middleware.GetSessionFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("Session not found in context")
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "Unauthorized"})
		return nil, false
	}
	return session, true
}
