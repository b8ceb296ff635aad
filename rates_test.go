package investool

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestRateTable_Convert(t *testing.T) {
	rt := NewRateTable("TWD")
	rt.Set("USD", decimal.NewFromFloat(32.5))

	got, err := rt.Convert(M(100, "USD"))
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	want := M(3250, "TWD")
	if !got.Equal(want) {
		t.Errorf("Convert(100 USD) = %v, want %v", got, want)
	}

	// reporting currency converts to itself
	got, err = rt.Convert(M(500, "TWD"))
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if !got.Equal(M(500, "TWD")) {
		t.Errorf("Convert(500 TWD) = %v, want 500 TWD", got)
	}
}

func TestRateTable_Convert_MissingRate(t *testing.T) {
	rt := NewRateTable("TWD")
	_, err := rt.Convert(M(100, "EUR"))
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Fatalf("Convert(EUR) error = %v, want ConfigurationError", err)
	}
	if cerr.Currency != "EUR" {
		t.Errorf("ConfigurationError.Currency = %q, want EUR", cerr.Currency)
	}
}

func TestRateTable_Validate(t *testing.T) {
	rt := NewRateTable("TWD")
	rt.Set("USD", decimal.NewFromFloat(32.5))

	assets := []Asset{
		{Ticker: "AAPL", Type: TypeStock, Quantity: Q(1), Currency: "USD"},
		{Ticker: "2330.TW", Type: TypeStock, Quantity: Q(1), Currency: "TWD"},
	}
	if err := rt.Validate(assets); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	assets = append(assets, Asset{Ticker: "SAP.DE", Type: TypeStock, Quantity: Q(1), Currency: "EUR"})
	err := rt.Validate(assets)
	var cerr *ConfigurationError
	if !errors.As(err, &cerr) {
		t.Errorf("Validate() error = %v, want ConfigurationError for EUR", err)
	}
}
