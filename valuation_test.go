package investool

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// demoPortfolio builds the small portfolio used across the engine
// tests: 6000 in stock, 3000 in crypto, 1000 in cash, all in TWD.
func demoPortfolio(t *testing.T) ([]Asset, *QuoteBook, *RateTable) {
	t.Helper()
	assets := []Asset{
		{Ticker: "2330.TW", Type: TypeStock, Quantity: Q(10), Currency: "TWD"},
		{Ticker: "BTC-USD", Type: TypeCrypto, Quantity: Q(3), Currency: "TWD"},
		{Ticker: "TWD-CASH", Type: TypeCash, Quantity: Q(1000), Currency: "TWD"},
	}
	book := NewQuoteBook()
	now := time.Now()
	book.Set(Quote{Ticker: "2330.TW", Price: M(600, "TWD"), FetchedAt: now, Source: SourceLive})
	book.Set(Quote{Ticker: "BTC-USD", Price: M(1000, "TWD"), FetchedAt: now, Source: SourceLive})
	return assets, book, NewRateTable("TWD")
}

func TestValuate(t *testing.T) {
	assets, book, rates := demoPortfolio(t)
	s, err := Valuate(assets, book, rates)
	if err != nil {
		t.Fatalf("Valuate() unexpected error: %v", err)
	}
	if len(s.Lines) != 3 {
		t.Fatalf("Valuate() produced %d lines, want 3", len(s.Lines))
	}
	if !s.Total.Equal(M(10000, "TWD")) {
		t.Errorf("Total = %v, want 10000 TWD", s.Total)
	}
	if !s.TypeValue(TypeStock).Equal(M(6000, "TWD")) {
		t.Errorf("stock value = %v, want 6000 TWD", s.TypeValue(TypeStock))
	}
	if !s.TypeValue(TypeCrypto).Equal(M(3000, "TWD")) {
		t.Errorf("crypto value = %v, want 3000 TWD", s.TypeValue(TypeCrypto))
	}
	if !s.TypeValue(TypeCash).Equal(M(1000, "TWD")) {
		t.Errorf("cash value = %v, want 1000 TWD", s.TypeValue(TypeCash))
	}
	if len(s.Skipped) != 0 {
		t.Errorf("Skipped = %v, want none", s.Skipped)
	}
}

func TestValuate_SkipsUnpriceable(t *testing.T) {
	assets, book, rates := demoPortfolio(t)
	assets = append(assets, Asset{Ticker: "NOQUOTE", Type: TypeStock, Quantity: Q(5), Currency: "TWD"})

	s, err := Valuate(assets, book, rates)
	if err != nil {
		t.Fatalf("Valuate() unexpected error: %v", err)
	}
	if len(s.Skipped) != 1 || s.Skipped[0] != "NOQUOTE" {
		t.Errorf("Skipped = %v, want [NOQUOTE]", s.Skipped)
	}
	// the total only covers valued assets
	if !s.Total.Equal(M(10000, "TWD")) {
		t.Errorf("Total = %v, want 10000 TWD", s.Total)
	}
}

func TestValuate_QuoteCurrencyWithoutRateIsFatal(t *testing.T) {
	// the asset is registered in TWD but its live quote is priced in
	// USD, a currency the rate table does not cover
	assets := []Asset{{Ticker: "AAPL", Type: TypeStock, Quantity: Q(1), Currency: "TWD"}}
	book := NewQuoteBook()
	book.Set(Quote{Ticker: "AAPL", Price: M(200, "USD"), FetchedAt: time.Now(), Source: SourceLive})

	_, err := Valuate(assets, book, NewRateTable("TWD"))
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("Valuate() error = %v, want ConfigurationError", err)
	}
	if cerr.Currency != "USD" {
		t.Errorf("ConfigurationError.Currency = %q, want USD", cerr.Currency)
	}
}

func TestValuate_MissingRateIsFatal(t *testing.T) {
	assets, book, rates := demoPortfolio(t)
	assets = append(assets, Asset{Ticker: "AAPL", Type: TypeStock, Quantity: Q(1), Currency: "USD"})

	if _, err := Valuate(assets, book, rates); err == nil {
		t.Fatal("Valuate() with a missing rate expected error, got nil")
	}
}

func TestValuate_NetSubtractsLiabilities(t *testing.T) {
	assets, book, rates := demoPortfolio(t)
	assets = append(assets, Asset{Ticker: "MORTGAGE", Type: TypeLiability, Quantity: Q(2000), Currency: "TWD"})

	s, err := Valuate(assets, book, rates)
	if err != nil {
		t.Fatalf("Valuate() unexpected error: %v", err)
	}
	if !s.Total.Equal(M(12000, "TWD")) {
		t.Errorf("Total = %v, want 12000 TWD", s.Total)
	}
	if !s.Net.Equal(M(8000, "TWD")) {
		t.Errorf("Net = %v, want 8000 TWD", s.Net)
	}
}

func TestValueOf_GainAndROI(t *testing.T) {
	book := NewQuoteBook()
	book.Set(Quote{Ticker: "AAPL", Price: M(120, "USD"), FetchedAt: time.Now(), Source: SourceLive})
	rates := NewRateTable("USD")

	line, err := ValueOf(Asset{
		Ticker:   "AAPL",
		Type:     TypeStock,
		Quantity: Q(10),
		Currency: "USD",
		AvgCost:  M(100, "USD"),
	}, book, rates)
	if err != nil {
		t.Fatalf("ValueOf() unexpected error: %v", err)
	}
	if !line.Gain.Equal(M(200, "USD")) {
		t.Errorf("Gain = %v, want 200 USD", line.Gain)
	}
	if !line.ROI.Equal(P(20)) {
		t.Errorf("ROI = %v, want 20%%", line.ROI)
	}
}

func TestValueOf_LiabilityGainInverts(t *testing.T) {
	rates := NewRateTable("TWD")
	rates.Set("USD", decimal.NewFromFloat(32.5))

	// owing 900 against 1000 borrowed is a 100 gain
	line, err := ValueOf(Asset{
		Ticker:      "LOAN",
		Type:        TypeLiability,
		Quantity:    Q(1),
		Currency:    "TWD",
		ManualPrice: M(900, "TWD"),
		AvgCost:     M(1000, "TWD"),
	}, nil, rates)
	if err != nil {
		t.Fatalf("ValueOf() unexpected error: %v", err)
	}
	if !line.Gain.Equal(M(100, "TWD")) {
		t.Errorf("Gain = %v, want 100 TWD", line.Gain)
	}
}
