package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/achou/investool"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type updateAssetCmd struct {
	ticker      string
	quantity    string
	avgCost     string
	manualPrice string
}

func (*updateAssetCmd) Name() string     { return "update-asset" }
func (*updateAssetCmd) Synopsis() string { return "change the recorded position of an asset" }
func (*updateAssetCmd) Usage() string {
	return `ivt update-asset -ticker <ticker> [-quantity <quantity>] [-avg-cost <price>] [-manual-price <price>]

  Updates an existing asset in place. Only the given flags change; type
  and currency are fixed at add time.
`
}

func (c *updateAssetCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Asset ticker symbol (required)")
	f.StringVar(&c.quantity, "quantity", "", "New number of units held")
	f.StringVar(&c.avgCost, "avg-cost", "", "New average cost per unit")
	f.StringVar(&c.manualPrice, "manual-price", "", "New manual price per unit")
}

func (c *updateAssetCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker flag is required.")
		return subcommands.ExitUsageError
	}
	if c.quantity == "" && c.avgCost == "" && c.manualPrice == "" {
		fmt.Fprintln(os.Stderr, "Error: nothing to update, give at least one of -quantity, -avg-cost, -manual-price.")
		return subcommands.ExitUsageError
	}

	reg, err := LoadRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
		return subcommands.ExitFailure
	}
	asset, ok := reg.Get(c.ticker)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: no asset %q in the registry.\n", c.ticker)
		return subcommands.ExitFailure
	}

	if c.quantity != "" {
		qty, err := decimal.NewFromString(c.quantity)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid quantity %q: %v\n", c.quantity, err)
			return subcommands.ExitUsageError
		}
		asset.Quantity = investool.Q(qty)
	}
	if c.avgCost != "" {
		cost, err := decimal.NewFromString(c.avgCost)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid avg-cost %q: %v\n", c.avgCost, err)
			return subcommands.ExitUsageError
		}
		asset.AvgCost = investool.M(cost, asset.Currency)
	}
	if c.manualPrice != "" {
		price, err := decimal.NewFromString(c.manualPrice)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid manual-price %q: %v\n", c.manualPrice, err)
			return subcommands.ExitUsageError
		}
		asset.ManualPrice = investool.M(price, asset.Currency)
	}
	asset.LastUpdate = time.Now()

	if err := reg.Update(asset); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveRegistry(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving registry: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Updated %s\n", asset.Ticker)
	return subcommands.ExitSuccess
}
