// Package projection derives display aggregates from computed valuations.
package projection

import (
	"encoding/json"
	"fmt"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Summary holds the cash-flow totals shown under every valuation.
type Summary struct {
	TotalCoupons   decimal.Decimal `json:"totalCoupons"`
	TotalPrincipal decimal.Decimal `json:"totalPrincipal"`
	TotalCashflow  decimal.Decimal `json:"totalCashflow"`
}

// MarshalJSON writes the totals as exact JSON numbers rather than quoted strings.
func (s Summary) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TotalCoupons   json.Number `json:"totalCoupons"`
		TotalPrincipal json.Number `json:"totalPrincipal"`
		TotalCashflow  json.Number `json:"totalCashflow"`
	}{
		TotalCoupons:   json.Number(s.TotalCoupons.String()),
		TotalPrincipal: json.Number(s.TotalPrincipal.String()),
		TotalCashflow:  json.Number(s.TotalCashflow.String()),
	})
}

// Summarize totals coupons and amortization in a single pass. An empty schedule yields zeros.
func Summarize(rows []domain.CashflowPeriod) Summary {
	coupons, principal := decimal.Zero, decimal.Zero
	for _, row := range rows {
		coupons = coupons.Add(decimal.NewFromFloat(row.Coupon))
		principal = principal.Add(decimal.NewFromFloat(row.Amortization))
	}
	return Summary{
		TotalCoupons:   coupons,
		TotalPrincipal: principal,
		TotalCashflow:  coupons.Add(principal),
	}
}

// ChartPoint is one bar of the cash-flow composition chart.
type ChartPoint struct {
	Label     string  `json:"label"`
	Period    int     `json:"period"`
	Coupon    float64 `json:"coupon"`
	Principal float64 `json:"principal"`
	Cashflow  float64 `json:"cashflow"`
}

// ChartSeries maps the schedule to chart points, preserving order.
func ChartSeries(rows []domain.CashflowPeriod) []ChartPoint {
	points := make([]ChartPoint, len(rows))
	for i, row := range rows {
		points[i] = ChartPoint{
			Label:     fmt.Sprintf("P%d", row.Number),
			Period:    row.Number,
			Coupon:    row.Coupon,
			Principal: row.Amortization,
			Cashflow:  row.Cashflow,
		}
	}
	return points
}
