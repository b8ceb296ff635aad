package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"
)

// syncFiles lists the local files mirrored to the Drive folder.
func syncFiles() []string {
	return []string{*registryFile, *settingsFile, *quotesFile}
}

type pullCmd struct{}

func (*pullCmd) Name() string     { return "pull" }
func (*pullCmd) Synopsis() string { return "download the portfolio files from Google Drive" }
func (*pullCmd) Usage() string {
	return `ivt pull

  Downloads the registry, settings and quotes files from the Drive
  folder, overwriting the local copies. Requires a prior 'ivt login'.
`
}

func (*pullCmd) SetFlags(_ *flag.FlagSet) {}

func (c *pullCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := driveStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	status := subcommands.ExitSuccess
	for _, local := range syncFiles() {
		name := filepath.Base(local)
		if err := store.Pull(name, local); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("Pulled %s\n", local)
	}
	return status
}

type pushCmd struct{}

func (*pushCmd) Name() string     { return "push" }
func (*pushCmd) Synopsis() string { return "upload the portfolio files to Google Drive" }
func (*pushCmd) Usage() string {
	return `ivt push

  Uploads the registry, settings and quotes files into the Drive
  folder, replacing previous versions. Requires a prior 'ivt login'.
`
}

func (*pushCmd) SetFlags(_ *flag.FlagSet) {}

func (c *pushCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	store, err := driveStore(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	status := subcommands.ExitSuccess
	for _, local := range syncFiles() {
		if _, err := os.Stat(local); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", local, err)
			continue
		}
		if err := store.Push(local, filepath.Base(local)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
			status = subcommands.ExitFailure
			continue
		}
		fmt.Printf("Pushed %s\n", local)
	}
	return status
}
