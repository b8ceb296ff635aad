package cmd

import (
	"context"
	"flag"

	"github.com/achou/investool/renderer"
	"github.com/google/subcommands"
)

type dashboardCmd struct{}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "display the full portfolio dashboard" }
func (*dashboardCmd) Usage() string {
	return `ivt dashboard

  Displays the holdings valuation, the current allocation against the
  targets, the drift per asset type and the suggested rebalancing
  operations. The targets must be complete (sum to 100).
`
}

func (*dashboardCmd) SetFlags(_ *flag.FlagSet) {}

func (c *dashboardCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	report, status := buildDashboard()
	if status != subcommands.ExitSuccess {
		return status
	}
	printMarkdown(renderer.DashboardMarkdown(report))
	return subcommands.ExitSuccess
}
