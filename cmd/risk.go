package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/achou/investool"
	"github.com/achou/investool/renderer"
	"github.com/google/subcommands"
)

type riskCmd struct {
	ticker  string
	maxLoss float64
	entry   float64
	atrMult float64
	rRatio  float64
}

func (*riskCmd) Name() string     { return "risk" }
func (*riskCmd) Synopsis() string { return "suggest stop loss and position size for an entry" }
func (*riskCmd) Usage() string {
	return `ivt risk -ticker <ticker> -max-loss <amount> [-entry <price>] [-atr-mult <n>] [-r-ratio <n>]

  Fetches the ticker's recent daily candles, measures its volatility
  with the average true range, and suggests a stop loss, a take profit
  and the position size that keeps the worst case within the maximum
  acceptable loss. Without -entry the latest market price is used.
`
}

func (c *riskCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.ticker, "ticker", "", "Ticker to analyze (required)")
	f.Float64Var(&c.maxLoss, "max-loss", 0, "Maximum acceptable loss, in the ticker's currency (required)")
	f.Float64Var(&c.entry, "entry", 0, "Planned entry price, defaults to the latest market price")
	f.Float64Var(&c.atrMult, "atr-mult", investool.DefaultATRMultiplier, "Stop loss distance in ATRs")
	f.Float64Var(&c.rRatio, "r-ratio", investool.DefaultRRatio, "Reward-to-risk ratio for the take profit")
}

func (c *riskCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.ticker == "" || c.maxLoss <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -ticker and a positive -max-loss are required.")
		return subcommands.ExitUsageError
	}

	client := investool.NewYahooClient()
	// a margin over the period covers market holidays
	candles, err := client.FetchHistory(ctx, c.ticker, investool.DefaultATRPeriod*3)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	atr, err := investool.ATR(candles, investool.DefaultATRPeriod)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	entry := c.entry
	if entry == 0 {
		quote, err := client.FetchPrice(ctx, c.ticker)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		entry, _ = quote.Price.Decimal().Float64()
	}

	plan, err := investool.SuggestEntry(entry, atr, c.maxLoss, c.atrMult, c.rRatio)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.RiskMarkdown(c.ticker, atr, plan))
	return subcommands.ExitSuccess
}
