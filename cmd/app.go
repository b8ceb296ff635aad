// Package cmd implements the CLI application to manage the investment
// portfolio.
package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/achou/investool"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
)

// Commands lists every subcommand; a main package registers them all.
var Commands = []subcommands.Command{
	&addCmd{},
	&updateAssetCmd{},
	&removeCmd{},
	&holdingsCmd{},
	&targetsCmd{},
	&rateCmd{},
	&updateCmd{},
	&searchCmd{},
	&dashboardCmd{},
	&rebalanceCmd{},
	&deployCmd{},
	&riskCmd{},
	&loanCmd{},
	&loginCmd{},
	&pullCmd{},
	&pushCmd{},
	&assistCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var registryFile = flag.String("registry-file", "assets.jsonl", "Path to the asset registry file (JSONL format)")
var settingsFile = flag.String("settings-file", "settings.json", "Path to the settings file (rates and targets)")
var quotesFile = flag.String("quotes-file", "quotes.jsonl", "Path to the cached quotes file (JSONL format)")

// LoadRegistry reads the asset registry from the app registry file.
func LoadRegistry() (*investool.Registry, error) {
	f, err := os.Open(*registryFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, registry does not exist, starting with an empty one instead")
		return investool.NewRegistry(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return investool.DecodeRegistry(f)
}

// SaveRegistry writes the asset registry back to the app registry file.
func SaveRegistry(r *investool.Registry) error {
	f, err := os.Create(*registryFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return investool.EncodeRegistry(f, r)
}

// LoadSettings reads the settings from the app settings file. A missing
// file yields empty settings with TWD reporting.
func LoadSettings() (*investool.Settings, error) {
	f, err := os.Open(*settingsFile)
	if errors.Is(err, fs.ErrNotExist) {
		log.Println("warning, settings do not exist, using TWD defaults instead")
		return &investool.Settings{
			Rates:   investool.NewRateTable("TWD"),
			Targets: investool.NewTargetAllocation(),
		}, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return investool.DecodeSettings(f)
}

// SaveSettings writes the settings back to the app settings file.
func SaveSettings(s *investool.Settings) error {
	f, err := os.Create(*settingsFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return investool.EncodeSettings(f, s)
}

// LoadQuotes reads the cached quote book. Quotes older than a day come
// back downgraded to stale-fallback.
func LoadQuotes() (*investool.QuoteBook, error) {
	f, err := os.Open(*quotesFile)
	if errors.Is(err, fs.ErrNotExist) {
		return investool.NewQuoteBook(), nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return investool.DecodeQuotes(f, time.Now())
}

// SaveQuotes writes the quote book back to the app quotes file.
func SaveQuotes(book *investool.QuoteBook) error {
	f, err := os.Create(*quotesFile)
	if err != nil {
		return err
	}
	defer f.Close()
	return investool.EncodeQuotes(f, book)
}

// printMarkdown renders markdown for the terminal; on any rendering
// trouble the raw markdown is still printed.
func printMarkdown(markdown string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err != nil {
		fmt.Print(markdown)
		return
	}
	out, err := r.Render(markdown)
	if err != nil {
		fmt.Print(markdown)
		return
	}
	fmt.Print(out)
}
