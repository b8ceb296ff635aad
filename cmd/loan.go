package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/achou/investool"
	"github.com/achou/investool/date"
	"github.com/achou/investool/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type loanCmd struct {
	principal string
	rate      float64
	months    int
	start     string
}

func (*loanCmd) Name() string     { return "loan" }
func (*loanCmd) Synopsis() string { return "compute a loan amortization schedule" }
func (*loanCmd) Usage() string {
	return `ivt loan -principal <amount> -rate <annual-pct> -months <n> [-start <date>]

  Computes the fixed monthly payment and the month-by-month schedule of
  interest, principal and remaining balance:

  $ ivt loan -principal 1000000 -rate 2.1 -months 240
`
}

func (c *loanCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.principal, "principal", "", "Borrowed amount (required)")
	f.Float64Var(&c.rate, "rate", 0, "Annual interest rate in percent")
	f.IntVar(&c.months, "months", 0, "Number of monthly payments (required)")
	f.StringVar(&c.start, "start", date.Today().String(), "Date of the loan start")
}

func (c *loanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.principal == "" || c.months <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -principal and a positive -months are required.")
		return subcommands.ExitUsageError
	}
	principal, err := decimal.NewFromString(c.principal)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid principal %q: %v\n", c.principal, err)
		return subcommands.ExitUsageError
	}
	start, err := date.Parse(c.start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	schedule, err := investool.AmortizationSchedule(principal, c.rate, c.months, start)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.LoanMarkdown(schedule))
	return subcommands.ExitSuccess
}
