package domain

// Currency is a display currency supported by the dashboard.
type Currency string

const (
	CurrencyPEN Currency = "PEN"
	CurrencyUSD Currency = "USD"
)

// Valid reports whether c is a supported display currency.
func (c Currency) Valid() bool {
	return c == CurrencyPEN || c == CurrencyUSD
}

// Settings are the per-user display preferences.
type Settings struct {
	Currency              Currency `json:"currency"`
	DefaultRateType       RateType `json:"defaultRateType"`
	DefaultCapitalization *Period  `json:"defaultCapitalization"`
}

// DefaultSettings are used until the user saves preferences.
func DefaultSettings() Settings {
	return Settings{
		Currency:        CurrencyPEN,
		DefaultRateType: RateEffective,
	}
}

// Normalize clears the default capitalization when the default rate type does not use it.
func (s Settings) Normalize() Settings {
	if s.DefaultRateType != RateNominal {
		s.DefaultCapitalization = nil
	}
	return s
}
