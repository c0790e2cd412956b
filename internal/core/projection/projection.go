package projection

import "github.com/JuanPescoran/bond-valuation-app/internal/core/domain"

// Headline holds the formatted metrics displayed as cards.
type Headline struct {
	DirtyPrice       string `json:"dirtyPrice"`
	CleanPrice       string `json:"cleanPrice"`
	TCEA             string `json:"tcea"`
	TREA             string `json:"trea"`
	MacaulayDuration string `json:"macaulayDuration"`
	ModifiedDuration string `json:"modifiedDuration"`
	Convexity        string `json:"convexity"`
}

// FormattedSummary is Summary rendered in the display currency.
type FormattedSummary struct {
	TotalCoupons   string `json:"totalCoupons"`
	TotalPrincipal string `json:"totalPrincipal"`
	TotalCashflow  string `json:"totalCashflow"`
}

// Projection is everything the detail page and the calculator panel render for a valuation.
type Projection struct {
	Currency  domain.Currency  `json:"currency"`
	Summary   Summary          `json:"summary"`
	Formatted FormattedSummary `json:"formatted"`
	Headline  Headline         `json:"headline"`
	Chart     []ChartPoint     `json:"chart"`
	Rows      []FormattedRow   `json:"rows"`
}

// Project derives the full display projection of v. It never mutates v.
func (f *Formatter) Project(v domain.ValuationResponse, code domain.Currency) Projection {
	summary := Summarize(v.CashFlow)
	return Projection{
		Currency: code,
		Summary:  summary,
		Formatted: FormattedSummary{
			TotalCoupons:   f.Decimal(code, summary.TotalCoupons),
			TotalPrincipal: f.Decimal(code, summary.TotalPrincipal),
			TotalCashflow:  f.Decimal(code, summary.TotalCashflow),
		},
		Headline: Headline{
			DirtyPrice:       f.Currency(code, v.DirtyPrice),
			CleanPrice:       f.Currency(code, v.CleanPrice),
			TCEA:             FormatPercentage(v.TCEA),
			TREA:             FormatPercentage(v.TREA),
			MacaulayDuration: FormatYears(v.MacaulayDurationInYears),
			ModifiedDuration: FormatYears(v.ModifiedDurationInYears),
			Convexity:        FormatRatio(v.Convexity),
		},
		Chart: ChartSeries(v.CashFlow),
		Rows:  f.Rows(v.CashFlow, code),
	}
}
