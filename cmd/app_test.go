package cmd

import (
	"context"
	"flag"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

// pointTo redirects a file flag into the test's temp dir.
func pointTo(t *testing.T, target *string, name string) {
	t.Helper()
	old := *target
	*target = filepath.Join(t.TempDir(), name)
	t.Cleanup(func() { *target = old })
}

func TestAddThenRemove(t *testing.T) {
	pointTo(t, registryFile, "assets.jsonl")

	add := &addCmd{
		ticker:   "2330.TW",
		kind:     "stock",
		quantity: "100",
		currency: "TWD",
	}
	if got := add.Execute(context.Background(), flag.NewFlagSet("add", flag.ContinueOnError)); got != subcommands.ExitSuccess {
		t.Fatalf("add Execute() = %v, want success", got)
	}

	reg, err := LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry() failed: %v", err)
	}
	if !reg.Has("2330.TW") {
		t.Fatal("added asset not found in the registry file")
	}

	remove := &removeCmd{ticker: "2330.TW"}
	if got := remove.Execute(context.Background(), flag.NewFlagSet("remove", flag.ContinueOnError)); got != subcommands.ExitSuccess {
		t.Fatalf("remove Execute() = %v, want success", got)
	}
	reg, err = LoadRegistry()
	if err != nil {
		t.Fatalf("LoadRegistry() failed: %v", err)
	}
	if reg.Has("2330.TW") {
		t.Error("removed asset still in the registry file")
	}
}

func TestAdd_RejectsDuplicate(t *testing.T) {
	pointTo(t, registryFile, "assets.jsonl")

	add := &addCmd{ticker: "AAPL", kind: "stock", quantity: "1", currency: "USD"}
	if got := add.Execute(context.Background(), flag.NewFlagSet("add", flag.ContinueOnError)); got != subcommands.ExitSuccess {
		t.Fatalf("first add Execute() = %v, want success", got)
	}
	if got := add.Execute(context.Background(), flag.NewFlagSet("add", flag.ContinueOnError)); got != subcommands.ExitFailure {
		t.Errorf("duplicate add Execute() = %v, want failure", got)
	}
}

func TestTargets_SetAndDraft(t *testing.T) {
	pointTo(t, settingsFile, "settings.json")

	targets := &targetsCmd{set: "stock=50,crypto=30"}
	if got := targets.Execute(context.Background(), flag.NewFlagSet("targets", flag.ContinueOnError)); got != subcommands.ExitSuccess {
		t.Fatalf("targets Execute() = %v, want success", got)
	}

	settings, err := LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	// a draft is persisted even though it does not sum to 100
	if err := settings.Targets.Validate(); err == nil {
		t.Error("Validate() on an incomplete draft expected error, got nil")
	}

	targets = &targetsCmd{set: "cash=20"}
	if got := targets.Execute(context.Background(), flag.NewFlagSet("targets", flag.ContinueOnError)); got != subcommands.ExitSuccess {
		t.Fatalf("targets Execute() = %v, want success", got)
	}
	settings, err = LoadSettings()
	if err != nil {
		t.Fatalf("LoadSettings() failed: %v", err)
	}
	if err := settings.Targets.Validate(); err != nil {
		t.Errorf("Validate() on the completed targets failed: %v", err)
	}
}

func TestParseAsset(t *testing.T) {
	a, err := parseAsset("btc-usd", "crypto", "0.5", "USD", "50000", "")
	if err != nil {
		t.Fatalf("parseAsset() unexpected error: %v", err)
	}
	if a.Ticker != "btc-usd" || a.AvgCost.IsZero() {
		t.Errorf("parseAsset() = %+v, want ticker and avg cost set", a)
	}

	if _, err := parseAsset("X", "stock", "not-a-number", "USD", "", ""); err == nil {
		t.Error("parseAsset() with a bad quantity expected error, got nil")
	}
	if _, err := parseAsset("X", "", "1", "USD", "", ""); err == nil {
		t.Error("parseAsset() without a type expected error, got nil")
	}
}
