package repositories

import (
	"context"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
)

// AuthGateway defines the authentication endpoints of the valuation backend.
type AuthGateway interface {
	// SignIn exchanges credentials for a token. The returned session has no expiry set.
	SignIn(ctx context.Context, username, password string) (*domain.Session, error)

	// SignUp registers a new account with the given roles.
	SignUp(ctx context.Context, username, password string, roles []string) (*domain.User, error)
}

// ValuationReader defines read endpoints for valuations.
type ValuationReader interface {
	// ListValuationsByUser returns every valuation owned by userID.
	ListValuationsByUser(ctx context.Context, token string, userID int64) ([]domain.ValuationResponse, error)

	// GetValuation returns a single valuation, or an error wrapping apperrors.ErrNotFound.
	GetValuation(ctx context.Context, token string, id int64) (*domain.ValuationResponse, error)
}

// ValuationWriter defines mutating endpoints for valuations.
type ValuationWriter interface {
	// CreateValuation submits a normalized request and returns the computed valuation.
	CreateValuation(ctx context.Context, token string, req domain.CreateValuationRequest) (*domain.ValuationResponse, error)

	// DeleteValuation removes a valuation by id.
	DeleteValuation(ctx context.Context, token string, id int64) error

	// SaveToHistory records a valuation under a display name.
	SaveToHistory(ctx context.Context, token string, valuationID int64, name string) (*domain.HistoryItem, error)
}

// BackendGatewayFacade combines every backend endpoint.
type BackendGatewayFacade interface {
	AuthGateway
	ValuationReader
	ValuationWriter
}
