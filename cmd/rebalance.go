package cmd

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"
)

type rebalanceCmd struct{}

func (*rebalanceCmd) Name() string     { return "rebalance" }
func (*rebalanceCmd) Synopsis() string { return "list the suggested rebalancing operations" }
func (*rebalanceCmd) Usage() string {
	return `ivt rebalance

  Lists the buy and sell operations that would bring the portfolio back
  to its target allocation, largest first. Purely informational: nothing
  is traded.
`
}

func (*rebalanceCmd) SetFlags(_ *flag.FlagSet) {}

func (c *rebalanceCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, status := buildDashboard()
	if status != subcommands.ExitSuccess {
		return status
	}
	if len(report.Suggestions) == 0 {
		fmt.Println("The portfolio is on target. Nothing to do.")
		return subcommands.ExitSuccess
	}
	for _, s := range report.Suggestions {
		fmt.Printf("%-4s %-12s %s\n", s.Action, s.Type, s.Amount)
	}
	return subcommands.ExitSuccess
}
