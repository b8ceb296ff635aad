package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/achou/investool"
	"github.com/google/subcommands"
)

type updateCmd struct {
	skipRate bool
}

func (*updateCmd) Name() string     { return "update" }
func (*updateCmd) Synopsis() string { return "fetch fresh market prices for the registry" }
func (*updateCmd) Usage() string {
	return `ivt update [-skip-rate]

  Fetches the latest prices for every quotable asset whose cached quote
  is missing or older than a day, and refreshes the USD exchange rate.
  Fetches run in parallel; a ticker that fails keeps its previous quote
  and is reported, without blocking the others.
`
}

func (c *updateCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.skipRate, "skip-rate", false, "Do not refresh the USD exchange rate")
}

func (c *updateCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, err := LoadRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
		return subcommands.ExitFailure
	}
	book, err := LoadQuotes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading quotes: %v\n", err)
		return subcommands.ExitFailure
	}

	client := investool.NewYahooClient()
	updated, failed := client.RefreshQuotes(ctx, reg.Snapshot(), book, time.Now())
	for _, ticker := range updated {
		q, _ := book.Get(ticker)
		fmt.Printf("%-12s %s (%s)\n", ticker, q.Price, q.DailyChange.SignedString())
	}
	for ticker, err := range failed {
		fmt.Fprintf(os.Stderr, "Warning: could not update %s: %v\n", ticker, err)
	}
	if err := SaveQuotes(book); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving quotes: %v\n", err)
		return subcommands.ExitFailure
	}

	if !c.skipRate {
		settings, err := LoadSettings()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
			return subcommands.ExitFailure
		}
		if settings.Rates.Reporting() == "TWD" {
			rate := client.FetchUSDTWD(ctx)
			settings.Rates.Set("USD", rate)
			if err := SaveSettings(settings); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
				return subcommands.ExitFailure
			}
			fmt.Printf("1 USD = %s TWD\n", rate)
		}
	}

	fmt.Printf("Updated %d quotes, %d failed.\n", len(updated), len(failed))
	if len(failed) > 0 {
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
