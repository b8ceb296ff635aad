package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/achou/investool"
	"github.com/google/subcommands"
	"github.com/shopspring/decimal"
)

type targetsCmd struct {
	set   string
	clear bool
}

func (*targetsCmd) Name() string     { return "targets" }
func (*targetsCmd) Synopsis() string { return "show or set the target allocation" }
func (*targetsCmd) Usage() string {
	return `ivt targets [-set <type>=<pct>,...] [-clear]

  Without flags, displays the current target allocation and whether it
  is complete. With -set, records targets per asset type:

  $ ivt targets -set stock=50,crypto=30,cash=20

  A partial set is saved as a draft; the reporting commands refuse to
  run until the targets sum to 100.
`
}

func (c *targetsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.set, "set", "", "Comma-separated type=percent pairs to record")
	f.BoolVar(&c.clear, "clear", false, "Drop all targets before applying -set")
}

func (c *targetsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	settings, err := LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		return subcommands.ExitFailure
	}

	if c.clear {
		settings.Targets = investool.NewTargetAllocation()
	}
	if c.set != "" {
		for _, pair := range strings.Split(c.set, ",") {
			name, pct, found := strings.Cut(pair, "=")
			if !found {
				fmt.Fprintf(os.Stderr, "Error: invalid pair %q, want type=percent.\n", pair)
				return subcommands.ExitUsageError
			}
			value, err := decimal.NewFromString(strings.TrimSpace(pct))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: invalid percentage %q: %v\n", pct, err)
				return subcommands.ExitUsageError
			}
			settings.Targets.Set(investool.AssetType(strings.TrimSpace(name)), investool.P(value))
		}
		if err := SaveSettings(settings); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	for _, typ := range settings.Targets.Types() {
		fmt.Printf("%-12s %s\n", typ, settings.Targets.Get(typ))
	}
	if err := settings.Targets.Validate(); err != nil {
		fmt.Printf("Draft: %v\n", err)
	} else {
		fmt.Printf("Total: %s\n", settings.Targets.Total())
	}
	return subcommands.ExitSuccess
}
