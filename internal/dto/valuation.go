package dto

import (
	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/projection"
)

// FormRulesParams defines query parameters of the form-rules endpoint.
type FormRulesParams struct {
	RateType  domain.RateType  `form:"rateType"`
	GraceType domain.GraceType `form:"graceType"`
}

// FormRulesResponse lists the requirement of every input field.
type FormRulesResponse struct {
	RateType  domain.RateType   `json:"rateType"`
	GraceType domain.GraceType  `json:"graceType"`
	Fields    domain.FieldRules `json:"fields"`
}

// ValidateResponse wraps the normalized request produced by the validator.
type ValidateResponse struct {
	Request *domain.CreateValuationRequest `json:"request"`
}

// CreateValuationResponse is returned after the backend computed a valuation.
type CreateValuationResponse struct {
	Valuation  *domain.ValuationResponse `json:"valuation"`
	Summary    projection.Summary        `json:"summary"`
	Projection projection.Projection     `json:"projection"`
}

// ValuationDetailResponse backs the valuation detail page.
type ValuationDetailResponse struct {
	Valuation  *domain.ValuationResponse `json:"valuation"`
	Projection projection.Projection     `json:"projection"`
	Chart      []projection.ChartPoint   `json:"chart"`
}

// ListValuationsResponse wraps the history list. Formatted holds the same rows,
// in the same order, rendered in the user's display currency.
type ListValuationsResponse struct {
	Valuations []domain.HistoryItem              `json:"valuations"`
	Formatted  []projection.FormattedHistoryItem `json:"formatted"`
}

// SaveHistoryRequest names a computed valuation in the history.
type SaveHistoryRequest struct {
	ValuationID int64  `json:"valuationId"`
	Name        string `json:"name"`
}
