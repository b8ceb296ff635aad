package investool

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ConfigurationError reports an invalid configuration input: target
// percentages that do not sum to 100, or a missing currency rate. It is
// fatal to the computation and is surfaced before any partial result.
type ConfigurationError struct {
	Reason   string
	Type     AssetType // asset type involved, if any
	Currency string    // currency involved, if any
	Got      decimal.Decimal
}

func (e *ConfigurationError) Error() string {
	msg := "configuration error: " + e.Reason
	if e.Type != "" {
		msg += fmt.Sprintf(" (asset type %q)", e.Type)
	}
	if e.Currency != "" {
		msg += fmt.Sprintf(" (currency %q)", e.Currency)
	}
	if gotSet(e.Got) {
		msg += fmt.Sprintf(": got %s", e.Got)
	}
	return msg
}

// gotSet distinguishes an unset Got field (the zero struct) from a
// value that was explicitly recorded: a violating amount of exactly 0
// still renders in the message.
func gotSet(d decimal.Decimal) bool {
	return d != decimal.Decimal{}
}

// DataUnavailableError reports that an asset has neither a usable quote
// nor a manual price. It is recoverable: the asset is excluded from the
// valuation and reported in the skipped list.
type DataUnavailableError struct {
	Ticker string
}

func (e *DataUnavailableError) Error() string {
	return fmt.Sprintf("no quote and no manual price for %q", e.Ticker)
}

// ValidationError reports a rejected input: a negative quantity, a
// duplicate ticker, or a deployment adjustment exceeding the cash to
// deploy. The previous state is left unchanged.
type ValidationError struct {
	Reason string
	Ticker string
	Type   AssetType
	Got    decimal.Decimal
}

func (e *ValidationError) Error() string {
	msg := "validation error: " + e.Reason
	if e.Ticker != "" {
		msg += fmt.Sprintf(" (ticker %q)", e.Ticker)
	}
	if e.Type != "" {
		msg += fmt.Sprintf(" (asset type %q)", e.Type)
	}
	if gotSet(e.Got) {
		msg += fmt.Sprintf(": got %s", e.Got)
	}
	return msg
}
