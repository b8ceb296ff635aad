package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type rateCmd struct {
	currency string
	rate     string
}

func (*rateCmd) Name() string     { return "rate" }
func (*rateCmd) Synopsis() string { return "show or set exchange rates" }
func (*rateCmd) Usage() string {
	return `ivt rate [-currency <code> -rate <rate>]

  Without flags, displays the recorded exchange rates into the
  reporting currency. With both flags, records how many units of the
  reporting currency one unit of the foreign currency is worth:

  $ ivt rate -currency USD -rate 32.5

  The USD rate is also refreshed automatically by 'ivt update'.
`
}

func (c *rateCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.currency, "currency", "", "Foreign currency, 3-letter code")
	f.StringVar(&c.rate, "rate", "", "Units of the reporting currency per unit of the foreign one")
}

func (c *rateCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}

	if (c.currency == "") != (c.rate == "") {
		fmt.Fprintln(os.Stderr, "Error: -currency and -rate go together.")
		return subcommands.ExitUsageError
	}
	if c.currency != "" {
		value, err := decimal.NewFromString(c.rate)
		if err != nil || !value.IsPositive() {
			fmt.Fprintf(os.Stderr, "Error: invalid rate %q.\n", c.rate)
			return subcommands.ExitUsageError
		}
		settings.Rates.Set(c.currency, value)
		if err := SaveSettings(settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	fmt.Printf("Reporting currency: %s\n", settings.Rates.Reporting())
	for _, currency := range settings.Rates.Currencies() {
		rate, _ := settings.Rates.Rate(currency)
		fmt.Printf("1 %s = %s %s\n", currency, rate, settings.Rates.Reporting())
	}
	return subcommands.ExitSuccess
}
