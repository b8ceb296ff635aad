package investool

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// percentEpsilon is the tolerance used when comparing percentages and
// validating that a set of percentages sums to 100.
var percentEpsilon = decimal.NewFromFloat(0.01)

// Percent is an exact percentage value (60 means 60%).
type Percent struct {
	value decimal.Decimal
}

func P[T float32 | float64 | int | int32 | int64 | uint | uint32 | uint64 | decimal.Decimal](value T) Percent {
	return Percent{value: newDecimal(value)}
}

// Equal reports whether p and q are equal within the percent epsilon.
func (p Percent) Equal(q Percent) bool {
	return p.value.Sub(q.value).Abs().LessThanOrEqual(percentEpsilon)
}

func (p Percent) Add(q Percent) Percent { return Percent{value: p.value.Add(q.value)} }
func (p Percent) Sub(q Percent) Percent { return Percent{value: p.value.Sub(q.value)} }
func (p Percent) Neg() Percent          { return Percent{value: p.value.Neg()} }
func (p Percent) Abs() Percent          { return Percent{value: p.value.Abs()} }
func (p Percent) IsZero() bool          { return p.value.IsZero() }
func (p Percent) IsNegative() bool      { return p.value.IsNegative() }
func (p Percent) IsPositive() bool      { return p.value.IsPositive() }

func (p Percent) LessThan(q Percent) bool    { return p.value.LessThan(q.value) }
func (p Percent) GreaterThan(q Percent) bool { return p.value.GreaterThan(q.value) }

// Of returns p percent of the given money value.
func (p Percent) Of(m Money) Money {
	return Money{value: m.value.Mul(p.value).Div(hundred), cur: m.cur}
}

// Decimal returns the underlying exact value.
func (p Percent) Decimal() decimal.Decimal { return p.value }

func (p Percent) String() string {
	return p.value.StringFixed(2) + "%"
}

// SignedString returns the percentage with an explicit sign. Zero is
// represented as "-".
func (p Percent) SignedString() string {
	if p.value.IsZero() {
		return "-"
	}
	if p.value.IsPositive() {
		return "+" + p.String()
	}
	return p.String()
}

// MarshalJSON implements the json.Marshaler interface.
func (p Percent) MarshalJSON() ([]byte, error) {
	return p.value.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface.
func (p *Percent) UnmarshalJSON(decimalBytes []byte) error {
	return p.value.UnmarshalJSON(decimalBytes)
}
