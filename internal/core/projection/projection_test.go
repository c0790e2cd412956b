package projection_test

import (
	"encoding/json"
	"testing"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/JuanPescoran/bond-valuation-app/internal/core/projection"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestSummarize_Empty(t *testing.T) {
	s := projection.Summarize(nil)
	assertDecimal(t, "0", s.TotalCoupons)
	assertDecimal(t, "0", s.TotalPrincipal)
	assertDecimal(t, "0", s.TotalCashflow)

	s = projection.Summarize([]domain.CashflowPeriod{})
	assertDecimal(t, "0", s.TotalCashflow)
}

func TestSummarize_TwoPeriods(t *testing.T) {
	s := projection.Summarize([]domain.CashflowPeriod{
		{Number: 1, Coupon: 50, Amortization: 100},
		{Number: 2, Coupon: 50, Amortization: 100},
	})
	assertDecimal(t, "100", s.TotalCoupons)
	assertDecimal(t, "200", s.TotalPrincipal)
	assertDecimal(t, "300", s.TotalCashflow)
}

func TestSummarize_SumProperty(t *testing.T) {
	schedules := [][]domain.CashflowPeriod{
		{{Coupon: 0.1, Amortization: 0.2}},
		{{Coupon: 25.125}, {Coupon: 25.125, Amortization: 1000}},
		{{Coupon: 33.3333, Amortization: 333.3333}, {Coupon: 22.2222, Amortization: 333.3333}, {Coupon: 11.1111, Amortization: 333.3334}},
	}

	for _, rows := range schedules {
		s := projection.Summarize(rows)

		coupons, principal := decimal.Zero, decimal.Zero
		for _, r := range rows {
			coupons = coupons.Add(decimal.NewFromFloat(r.Coupon))
			principal = principal.Add(decimal.NewFromFloat(r.Amortization))
		}
		assert.True(t, s.TotalCoupons.Equal(coupons))
		assert.True(t, s.TotalPrincipal.Equal(principal))
		assert.True(t, s.TotalCashflow.Equal(s.TotalCoupons.Add(s.TotalPrincipal)))
	}

	// Decimal arithmetic keeps 0.1 + 0.2 exact.
	assertDecimal(t, "0.3", projection.Summarize(schedules[0]).TotalCashflow)
}

func TestChartSeries(t *testing.T) {
	points := projection.ChartSeries([]domain.CashflowPeriod{
		{Number: 1, Coupon: 50, Amortization: 0, Cashflow: 50},
		{Number: 2, Coupon: 50, Amortization: 1000, Cashflow: 1050},
	})
	require.Len(t, points, 2)
	assert.Equal(t, "P1", points[0].Label)
	assert.Equal(t, 2, points[1].Period)
	assert.Equal(t, 1000.0, points[1].Principal)
	assert.Equal(t, 1050.0, points[1].Cashflow)
	assert.Empty(t, projection.ChartSeries(nil))
}

func TestFormatPercentage(t *testing.T) {
	assert.Equal(t, "5.0000%", projection.FormatPercentage(5))
	assert.Equal(t, "6.1235%", projection.FormatPercentage(6.123456))
	assert.Equal(t, "0.0000%", projection.FormatPercentage(0))
}

func TestFormatYears(t *testing.T) {
	assert.Equal(t, "4.5000 años", projection.FormatYears(4.5))
	assert.Equal(t, "1.2346", projection.FormatRatio(1.23456))
}

func TestFormatter_Currency(t *testing.T) {
	f, err := projection.NewFormatter(projection.DefaultLocale)
	require.NoError(t, err)
	assert.Equal(t, "es-PE", f.Locale())

	pen := f.Currency(domain.CurrencyPEN, 1234.5)
	usd := f.Currency(domain.CurrencyUSD, 1234.5)
	assert.Contains(t, pen, "234")
	assert.Contains(t, usd, "234")
	assert.NotEqual(t, pen, usd)
	assert.Equal(t, pen, f.Currency(domain.CurrencyPEN, 1234.5))

	_, err = projection.NewFormatter("not a locale!")
	assert.Error(t, err)
}

func TestFormatter_Project(t *testing.T) {
	f, err := projection.NewFormatter(projection.DefaultLocale)
	require.NoError(t, err)

	v := domain.ValuationResponse{
		ID: 1,
		ValuationMetrics: domain.ValuationMetrics{
			TCEA: 6.5, TREA: 5.25, MacaulayDurationInYears: 2, ModifiedDurationInYears: 1.9, Convexity: 4.2,
			DirtyPrice: 1010, CleanPrice: 1000,
		},
		CashFlow: []domain.CashflowPeriod{
			{Number: 1, Coupon: 50, Amortization: 100, Cashflow: 150},
			{Number: 2, Coupon: 50, Amortization: 100, Cashflow: 150},
		},
	}
	p := f.Project(v, domain.CurrencyUSD)

	assert.Equal(t, domain.CurrencyUSD, p.Currency)
	assertDecimal(t, "300", p.Summary.TotalCashflow)
	assert.Equal(t, "6.5000%", p.Headline.TCEA)
	assert.Equal(t, "5.2500%", p.Headline.TREA)
	assert.Equal(t, "1.9000 años", p.Headline.ModifiedDuration)
	assert.Equal(t, "4.2000", p.Headline.Convexity)
	assert.Equal(t, f.Currency(domain.CurrencyUSD, 300), p.Formatted.TotalCashflow)
	assert.Len(t, p.Chart, 2)
	require.Len(t, p.Rows, 2)
	assert.Equal(t, f.Currency(domain.CurrencyUSD, 150), p.Rows[1].Cashflow)
}

func TestSummary_MarshalJSONWritesNumbers(t *testing.T) {
	s := projection.Summarize([]domain.CashflowPeriod{
		{Coupon: 50.25, Amortization: 1000},
		{Coupon: 25.25, Amortization: 0},
	})

	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalCoupons":75.5,"totalPrincipal":1000,"totalCashflow":1075.5}`, string(b))

	var back projection.Summary
	require.NoError(t, json.Unmarshal(b, &back))
	assertDecimal(t, "1075.5", back.TotalCashflow)

	b, err = json.Marshal(projection.Summarize(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalCoupons":0,"totalPrincipal":0,"totalCashflow":0}`, string(b))
}

func TestFormatter_Rows(t *testing.T) {
	f, err := projection.NewFormatter(projection.DefaultLocale)
	require.NoError(t, err)

	rows := f.Rows([]domain.CashflowPeriod{
		{Number: 1, GracePeriodState: "PARTIAL", InitialBalance: 1000, Interest: 50, Coupon: 50, Amortization: 0, FinalBalance: 1000, Cashflow: 50},
		{Number: 2, GracePeriodState: "NONE", InitialBalance: 1000, Interest: 50, Coupon: 50, Amortization: 1000, FinalBalance: 0, Cashflow: 1050},
	}, domain.CurrencyPEN)

	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Number)
	assert.Equal(t, "PARTIAL", rows[0].GracePeriodState)
	assert.Equal(t, f.Currency(domain.CurrencyPEN, 1000), rows[0].InitialBalance)
	assert.Equal(t, f.Currency(domain.CurrencyPEN, 50), rows[0].Interest)
	assert.Equal(t, f.Currency(domain.CurrencyPEN, 0), rows[0].Amortization)
	assert.Equal(t, f.Currency(domain.CurrencyPEN, 0), rows[1].FinalBalance)
	assert.Equal(t, f.Currency(domain.CurrencyPEN, 1050), rows[1].Cashflow)
	assert.NotNil(t, f.Rows(nil, domain.CurrencyPEN))
}

func TestFormatter_HistoryRows(t *testing.T) {
	f, err := projection.NewFormatter(projection.DefaultLocale)
	require.NoError(t, err)

	items := []domain.HistoryItem{
		{ID: 2, Name: "B", CreatedAt: "2025-03-15", FaceValue: 2000, TCEA: 6.12346},
		{ID: 1, Name: "A", CreatedAt: "2025-01-01", FaceValue: 1000, TCEA: 5},
	}
	rows := f.HistoryRows(items, domain.CurrencyUSD)

	require.Len(t, rows, 2)
	assert.Equal(t, int64(2), rows[0].ID)
	assert.Equal(t, "B", rows[0].Name)
	assert.Equal(t, "2025-03-15", rows[0].CreatedAt)
	assert.Equal(t, f.Currency(domain.CurrencyUSD, 2000), rows[0].FaceValue)
	assert.Equal(t, "6.1235%", rows[0].TCEA)
	assert.Equal(t, "5.0000%", rows[1].TCEA)
}
