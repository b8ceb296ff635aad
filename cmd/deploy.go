package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/achou/investool"
	"github.com/achou/investool/renderer"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type deployCmd struct {
	amount string
	adjust string
}

func (*deployCmd) Name() string     { return "deploy" }
func (*deployCmd) Synopsis() string { return "plan how to spread new cash across asset types" }
func (*deployCmd) Usage() string {
	return `ivt deploy -amount <cash> [-adjust <type>=<amount>,...]

  Proposes how to split a new cash amount so the portfolio moves toward
  its targets. Under-target types take shares proportional to their
  shortfall; on target everywhere, the split follows the targets.

  $ ivt deploy -amount 50000
  $ ivt deploy -amount 50000 -adjust stock=30000,cash=10000

  Adjustments replace the suggested amount per type; their total must
  not exceed the cash amount. Nothing is traded.
`
}

func (c *deployCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.amount, "amount", "", "Cash amount to deploy, in the reporting currency (required)")
	f.StringVar(&c.adjust, "adjust", "", "Comma-separated type=amount overrides")
}

func (c *deployCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.amount == "" {
		fmt.Fprintln(os.Stderr, "Error: -amount flag is required.")
		return subcommands.ExitUsageError
	}
	value, err := decimal.NewFromString(c.amount)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", c.amount, err)
		return subcommands.ExitUsageError
	}

	report, status := buildDashboard()
	if status != subcommands.ExitSuccess {
		return status
	}
	cash := investool.M(value, report.Snapshot.Reporting)

	plan, err := investool.PlanDeployment(cash, report.Current, report.Targets, report.Snapshot.Total)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.adjust != "" {
		adjustments := make(map[investool.AssetType]investool.Money)
		for _, pair := range strings.Split(c.adjust, ",") {
			name, amount, found := strings.Cut(pair, "=")
			if !found {
				fmt.Fprintf(os.Stderr, "Error: invalid pair %q, want type=amount.\n", pair)
				return subcommands.ExitUsageError
			}
			v, err := decimal.NewFromString(strings.TrimSpace(amount))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid amount %q: %v\n", amount, err)
				return subcommands.ExitUsageError
			}
			adjustments[investool.AssetType(strings.TrimSpace(name))] = investool.M(v, cash.Currency())
		}
		for i := range plan {
			if adjusted, ok := adjustments[plan[i].Type]; ok {
				plan[i].Adjusted = adjusted
			}
		}
		if err := investool.CheckAdjustments(plan, cash); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(renderer.DeploymentMarkdown(plan, cash))
	return subcommands.ExitSuccess
}
