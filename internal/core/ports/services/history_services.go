package services

import (
	"context"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
)

// HistorySvcFacade owns the cached history list of each user.
type HistorySvcFacade interface {
	// List returns the user's history, loading it from the backend on a cache miss.
	List(ctx context.Context, session *domain.Session) ([]domain.HistoryItem, error)

	// Invalidate drops the cached list of userID.
	Invalidate(userID int64)
}
