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
)

type searchCmd struct{}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search Yahoo Finance for ticker symbols" }
func (*searchCmd) Usage() string {
	return `ivt search <query>

  Searches Yahoo Finance for tickers matching the query, e.g. to find
  the right symbol before adding an asset:

  $ ivt search taiwan semiconductor
`
}

func (*searchCmd) SetFlags(_ *flag.FlagSet) {}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	query := strings.Join(f.Args(), " ")
	if query == "" {
		fmt.Fprintln(os.Stderr, "Error: a search query is required.")
		return subcommands.ExitUsageError
	}
	results, err := investool.NewYahooClient().SearchTicker(ctx, query)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SearchMarkdown(query, results))
	return subcommands.ExitSuccess
}
