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

type holdingsCmd struct{}

func (*holdingsCmd) Name() string     { return "holdings" }
func (*holdingsCmd) Synopsis() string { return "display the valued holdings" }
func (*holdingsCmd) Usage() string {
	return `ivt holdings

  Values every asset with the cached quotes and displays the holdings
  table in the reporting currency. Run 'ivt update' first for fresh
  prices.
`
}

func (*holdingsCmd) SetFlags(_ *flag.FlagSet) {}

func (c *holdingsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	reg, err := LoadRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
		return subcommands.ExitFailure
	}
	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}
	book, err := LoadQuotes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading quotes: %v\n", err)
		return subcommands.ExitFailure
	}
	snapshot, err := investool.Valuate(reg.Snapshot(), book, settings.Rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.HoldingsMarkdown(snapshot))
	return subcommands.ExitSuccess
}

// buildDashboard loads everything and runs the full valuation and
// allocation pipeline. It is shared by the reporting commands.
func buildDashboard() (*investool.DashboardReport, subcommands.ExitStatus) {
	reg, err := LoadRegistry()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading registry: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	book, err := LoadQuotes()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading quotes: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	report, err := investool.NewDashboardReport(reg.Snapshot(), book, settings.Targets, settings.Rates)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil, subcommands.ExitFailure
	}
	return report, subcommands.ExitSuccess
}
