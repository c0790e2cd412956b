package services

import (
	"context"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
)

// ValuationReaderSvc defines read operations for valuations.
type ValuationReaderSvc interface {
	// FormRules returns the requirement of every input field for the given selections.
	FormRules(ctx context.Context, session *domain.Session, rateType domain.RateType, graceType domain.GraceType) domain.FieldRules

	// Get returns a valuation by id, or an error wrapping apperrors.ErrNotFound.
	Get(ctx context.Context, session *domain.Session, id int64) (*domain.ValuationResponse, error)
}

// ValuationWriterSvc defines operations that validate or mutate valuations.
type ValuationWriterSvc interface {
	// Validate normalizes params without contacting the backend. session may be nil.
	Validate(ctx context.Context, session *domain.Session, params domain.BondParameters) (*domain.CreateValuationRequest, error)

	// Calculate validates params and asks the backend to compute the valuation.
	Calculate(ctx context.Context, session *domain.Session, params domain.BondParameters) (*domain.ValuationResponse, error)

	// Delete removes a valuation by id.
	Delete(ctx context.Context, session *domain.Session, id int64) error

	// SaveToHistory records a computed valuation under a display name.
	SaveToHistory(ctx context.Context, session *domain.Session, valuationID int64, name string) (*domain.HistoryItem, error)
}

// ValuationSvcFacade combines all valuation-related service interfaces.
type ValuationSvcFacade interface {
	ValuationReaderSvc
	ValuationWriterSvc
}
