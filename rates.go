package investool

import (
	"sort"

	"github.com/shopspring/decimal"
)

// RateTable converts monetary values into a single reporting currency.
// A rate is the number of reporting-currency units per one unit of the
// foreign currency; the reporting currency itself always converts at 1.
type RateTable struct {
	reporting string
	rates     map[string]decimal.Decimal
}

// NewRateTable returns an empty table converting into the given
// reporting currency.
func NewRateTable(reporting string) *RateTable {
	return &RateTable{
		reporting: reporting,
		rates:     make(map[string]decimal.Decimal),
	}
}

// Reporting returns the reporting currency.
func (t *RateTable) Reporting() string { return t.reporting }

// Set records the rate for a currency.
func (t *RateTable) Set(currency string, rate decimal.Decimal) {
	t.rates[currency] = rate
}

// Rate returns the rate for a currency.
func (t *RateTable) Rate(currency string) (decimal.Decimal, bool) {
	if currency == t.reporting {
		return decimal.NewFromInt(1), true
	}
	r, ok := t.rates[currency]
	return r, ok
}

// Currencies returns the foreign currencies with a rate, sorted.
func (t *RateTable) Currencies() []string {
	out := make([]string, 0, len(t.rates))
	for currency := range t.rates {
		out = append(out, currency)
	}
	sort.Strings(out)
	return out
}

// Convert converts a monetary value into the reporting currency. A
// missing rate is a ConfigurationError.
func (t *RateTable) Convert(m Money) (Money, error) {
	if m.Currency() == t.reporting || m.Currency() == "" {
		return M(m.value, t.reporting), nil
	}
	rate, ok := t.rates[m.Currency()]
	if !ok {
		return Money{}, &ConfigurationError{
			Reason:   "no exchange rate to reporting currency " + t.reporting,
			Currency: m.Currency(),
		}
	}
	return M(m.value.Mul(rate), t.reporting), nil
}

// Validate checks that every currency used by the given assets has a
// rate. It is called before any valuation pass so that a missing rate
// surfaces before partial results.
func (t *RateTable) Validate(assets []Asset) error {
	for _, a := range assets {
		if a.Currency == t.reporting {
			continue
		}
		if _, ok := t.rates[a.Currency]; !ok {
			return &ConfigurationError{
				Reason:   "no exchange rate to reporting currency " + t.reporting,
				Currency: a.Currency,
			}
		}
	}
	return nil
}
