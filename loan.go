package investool

import (
	"math"

	"github.com/achou/investool/date"
	"github.com/shopspring/decimal"
)

// LoanPayment is one row of an amortization schedule.
type LoanPayment struct {
	Seq       int
	Due       date.Date
	Payment   decimal.Decimal
	Interest  decimal.Decimal
	Principal decimal.Decimal
	Remaining decimal.Decimal
}

// AmortizationSchedule computes a fixed-payment monthly schedule for a
// loan. The annual rate is in percent. A zero rate degenerates to a
// straight-line repayment. The last row closes the remaining balance
// exactly, absorbing the accumulated rounding.
func AmortizationSchedule(principal decimal.Decimal, annualRatePct float64, months int, start date.Date) ([]LoanPayment, error) {
	if !principal.IsPositive() {
		return nil, &ValidationError{Reason: "loan principal must be positive", Got: principal}
	}
	if months <= 0 {
		return nil, &ValidationError{Reason: "loan period must be at least one month", Got: decimal.NewFromInt(int64(months))}
	}
	if annualRatePct < 0 {
		return nil, &ValidationError{Reason: "loan rate cannot be negative", Got: decimal.NewFromFloat(annualRatePct)}
	}

	monthlyRate := decimal.NewFromFloat(annualRatePct / 100 / 12)

	// Fixed monthly payment (the PMT formula), computed in float and
	// rounded to cents; the decimal loop below keeps the books exact.
	var payment decimal.Decimal
	if monthlyRate.IsZero() {
		payment = principal.Div(decimal.NewFromInt(int64(months))).Round(2)
	} else {
		r := annualRatePct / 100 / 12
		p, _ := principal.Float64()
		pmt := p * r / (1 - math.Pow(1+r, -float64(months)))
		payment = decimal.NewFromFloat(pmt).Round(2)
	}

	schedule := make([]LoanPayment, 0, months)
	remaining := principal
	for i := 1; i <= months; i++ {
		interest := remaining.Mul(monthlyRate).Round(2)
		principalPaid := payment.Sub(interest)
		rowPayment := payment

		if i == months {
			// close the balance exactly on the last payment
			principalPaid = remaining
			rowPayment = principalPaid.Add(interest)
			remaining = decimal.Zero
		} else {
			remaining = remaining.Sub(principalPaid)
			if remaining.IsNegative() {
				principalPaid = principalPaid.Add(remaining)
				rowPayment = principalPaid.Add(interest)
				remaining = decimal.Zero
			}
		}

		schedule = append(schedule, LoanPayment{
			Seq:       i,
			Due:       start.AddMonths(i),
			Payment:   rowPayment,
			Interest:  interest,
			Principal: principalPaid,
			Remaining: remaining,
		})
	}
	return schedule, nil
}
