package domain

import (
	"fmt"
	"math"
)

// CashflowPeriod is one row of the amortization schedule.
type CashflowPeriod struct {
	Number           int     `json:"number"`
	GracePeriodState string  `json:"gracePeriodState"`
	InitialBalance   float64 `json:"initialBalance"`
	Interest         float64 `json:"interest"`
	Coupon           float64 `json:"coupon"`
	Amortization     float64 `json:"amortization"`
	FinalBalance     float64 `json:"finalBalance"`
	Cashflow         float64 `json:"cashflow"`
}

// ValuationMetrics are the figures computed by the backend.
type ValuationMetrics struct {
	TCEA                    float64 `json:"tcea"`
	TREA                    float64 `json:"trea"`
	MacaulayDurationInYears float64 `json:"macaulayDurationInYears"`
	ModifiedDurationInYears float64 `json:"modifiedDurationInYears"`
	Convexity               float64 `json:"convexity"`
	DirtyPrice              float64 `json:"dirtyPrice"`
	CleanPrice              float64 `json:"cleanPrice"`
}

// ValuationResponse is a computed valuation as returned by the backend. Treat it as immutable.
type ValuationResponse struct {
	ID int64 `json:"id"`
	CreateValuationRequest
	ValuationMetrics
	CashFlow []CashflowPeriod `json:"cashFlow"`
}

// HistoryItem is the index entry shown in the history table.
type HistoryItem struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	CreatedAt string            `json:"createdAt"`
	FaceValue float64           `json:"faceValue"`
	TCEA      float64           `json:"tcea"`
	Valuation ValuationResponse `json:"valuation"`
}

// ToHistoryItem indexes a valuation. The backend has no save timestamp, so the issue date stands in.
func ToHistoryItem(v ValuationResponse) HistoryItem {
	return HistoryItem{
		ID:        v.ID,
		Name:      v.ValuationName,
		CreatedAt: v.IssueDate.String(),
		FaceValue: v.FaceValue,
		TCEA:      v.TCEA,
		Valuation: v,
	}
}

// ToHistoryItems indexes a list of valuations, preserving order.
func ToHistoryItems(vs []ValuationResponse) []HistoryItem {
	items := make([]HistoryItem, len(vs))
	for i, v := range vs {
		items[i] = ToHistoryItem(v)
	}
	return items
}

// scheduleTolerance absorbs float rounding on backend-computed balances.
const scheduleTolerance = 1e-6

// CheckSchedule verifies the row invariants of a cash-flow schedule and returns the first violation.
// faceValue seeds the first row's initial balance.
func CheckSchedule(faceValue float64, rows []CashflowPeriod) error {
	prev := faceValue
	for i, row := range rows {
		if row.Number != i+1 {
			return fmt.Errorf("period %d: expected number %d", row.Number, i+1)
		}
		if !near(row.InitialBalance, prev) {
			return fmt.Errorf("period %d: initial balance %.6f does not chain from %.6f", row.Number, row.InitialBalance, prev)
		}
		if !near(row.FinalBalance, row.InitialBalance-row.Amortization) {
			return fmt.Errorf("period %d: final balance %.6f != initial balance - amortization", row.Number, row.FinalBalance)
		}
		if !near(row.Cashflow, row.Coupon+row.Amortization) {
			return fmt.Errorf("period %d: cashflow %.6f != coupon + amortization", row.Number, row.Cashflow)
		}
		prev = row.FinalBalance
	}
	return nil
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= scheduleTolerance*math.Max(1, math.Abs(b))
}
