package projection

import "github.com/JuanPescoran/bond-valuation-app/internal/core/domain"

// FormattedRow is one schedule period with its amounts rendered in the display currency.
type FormattedRow struct {
	Number           int    `json:"number"`
	GracePeriodState string `json:"gracePeriodState"`
	InitialBalance   string `json:"initialBalance"`
	Interest         string `json:"interest"`
	Coupon           string `json:"coupon"`
	Amortization     string `json:"amortization"`
	FinalBalance     string `json:"finalBalance"`
	Cashflow         string `json:"cashflow"`
}

// FormattedHistoryItem is a history row as the history table shows it.
type FormattedHistoryItem struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"createdAt"`
	FaceValue string `json:"faceValue"`
	TCEA      string `json:"tcea"`
}

// Rows renders the schedule in order, one row per period.
func (f *Formatter) Rows(rows []domain.CashflowPeriod, code domain.Currency) []FormattedRow {
	out := make([]FormattedRow, len(rows))
	for i, row := range rows {
		out[i] = FormattedRow{
			Number:           row.Number,
			GracePeriodState: row.GracePeriodState,
			InitialBalance:   f.Currency(code, row.InitialBalance),
			Interest:         f.Currency(code, row.Interest),
			Coupon:           f.Currency(code, row.Coupon),
			Amortization:     f.Currency(code, row.Amortization),
			FinalBalance:     f.Currency(code, row.FinalBalance),
			Cashflow:         f.Currency(code, row.Cashflow),
		}
	}
	return out
}

// HistoryRows renders history items, preserving order.
func (f *Formatter) HistoryRows(items []domain.HistoryItem, code domain.Currency) []FormattedHistoryItem {
	out := make([]FormattedHistoryItem, len(items))
	for i, item := range items {
		out[i] = FormattedHistoryItem{
			ID:        item.ID,
			Name:      item.Name,
			CreatedAt: item.CreatedAt,
			FaceValue: f.Currency(code, item.FaceValue),
			TCEA:      FormatPercentage(item.TCEA),
		}
	}
	return out
}
