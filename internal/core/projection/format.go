package projection

import (
	"fmt"

	"github.com/JuanPescoran/bond-valuation-app/internal/core/domain"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is the display locale of the dashboard.
const DefaultLocale = "es-PE"

// Formatter renders amounts for one display locale. Its methods are pure.
type Formatter struct {
	tag     language.Tag
	printer *message.Printer
}

// NewFormatter returns a Formatter for a BCP 47 locale such as "es-PE".
func NewFormatter(locale string) (*Formatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("invalid display locale %q: %w", locale, err)
	}
	return &Formatter{tag: tag, printer: message.NewPrinter(tag)}, nil
}

// Locale returns the locale the formatter was built for.
func (f *Formatter) Locale() string {
	return f.tag.String()
}

// Currency formats v in the given currency with two decimals and locale grouping.
func (f *Formatter) Currency(code domain.Currency, v float64) string {
	amount := number.Decimal(v, number.Scale(2))
	unit, err := currency.ParseISO(string(code))
	if err != nil {
		return f.printer.Sprintf("%s %v", code, amount)
	}
	return f.printer.Sprintf("%v %v", currency.Symbol(unit), amount)
}

// Decimal formats a decimal total in the given currency.
func (f *Formatter) Decimal(code domain.Currency, d decimal.Decimal) string {
	return f.Currency(code, d.InexactFloat64())
}

// FormatPercentage renders a percent-unit value with four decimals, e.g. 5 -> "5.0000%".
func FormatPercentage(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4) + "%"
}

// FormatYears renders a duration in years with four decimals.
func FormatYears(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4) + " años"
}

// FormatRatio renders a unitless figure such as convexity with four decimals.
func FormatRatio(v float64) string {
	return decimal.NewFromFloat(v).StringFixed(4)
}
