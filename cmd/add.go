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

type addCmd struct {
	ticker      string
	kind        string
	quantity    string
	currency    string
	avgCost     string
	manualPrice string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "add a new asset to the registry" }
func (*addCmd) Usage() string {
	return `ivt add -ticker <ticker> -type <type> -quantity <quantity> -currency <currency> [-avg-cost <price>] [-manual-price <price>]

  Adds a new asset to the registry:
  - ticker: the asset's symbol (e.g. "2330.TW", "BTC-USD"). Must be unique.
  - type: one of stock, crypto, metal, fund, cash, liability.
  - quantity: number of units held.
  - currency: 3-letter code of the asset's own currency.
  - avg-cost: optional average cost per unit, used for gain and ROI.
  - manual-price: optional price override, used when no live quote exists.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Asset ticker symbol (required)")
	f.StringVar(&c.kind, "type", "", "Asset type (required)")
	f.StringVar(&c.quantity, "quantity", "", "Number of units held (required)")
	f.StringVar(&c.currency, "currency", "", "Asset's currency, 3-letter code (required)")
	f.StringVar(&c.avgCost, "avg-cost", "", "Average cost per unit, in the asset's currency")
	f.StringVar(&c.manualPrice, "manual-price", "", "Manual price per unit, in the asset's currency")
}

// parseAsset builds an Asset from the shared add/update flag set.
func parseAsset(ticker, kind, quantity, currency, avgCost, manualPrice string) (investool.Asset, error) {
	qty, err := decimal.NewFromString(quantity)
	if err != nil {
		return investool.Asset{}, fmt.Errorf("invalid quantity %q: %w", quantity, err)
	}
	a := investool.Asset{
		Ticker:     ticker,
		Type:       investool.AssetType(kind),
		Quantity:   investool.Q(qty),
		Currency:   currency,
		LastUpdate: time.Now(),
	}
	if avgCost != "" {
		cost, err := decimal.NewFromString(avgCost)
		if err != nil {
			return investool.Asset{}, fmt.Errorf("invalid avg-cost %q: %w", avgCost, err)
		}
		a.AvgCost = investool.M(cost, currency)
	}
	if manualPrice != "" {
		price, err := decimal.NewFromString(manualPrice)
		if err != nil {
			return investool.Asset{}, fmt.Errorf("invalid manual-price %q: %w", manualPrice, err)
		}
		a.ManualPrice = investool.M(price, currency)
	}
	return a, a.Validate()
}

func (c *addCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.kind == "" || c.quantity == "" || c.currency == "" {
		fmt.Fprintln(os.Stderr, "Error: -ticker, -type, -quantity and -currency flags are required.")
		return subcommands.ExitUsageError
	}
	asset, err := parseAsset(c.ticker, c.kind, c.quantity, c.currency, c.avgCost, c.manualPrice)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	reg, err := LoadRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := reg.Add(asset); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveRegistry(reg); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving registry: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Added %s to %s\n", asset.Ticker, *registryFile)
	return subcommands.ExitSuccess
}
