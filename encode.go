package investool

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// assetRecord is the persisted form of an Asset, one JSONL line each.
type assetRecord struct {
	Ticker      string          `json:"ticker"`
	Type        AssetType       `json:"type"`
	Quantity    decimal.Decimal `json:"quantity"`
	Currency    string          `json:"currency"`
	AvgCost     decimal.Decimal `json:"avgCost"`
	ManualPrice decimal.Decimal `json:"manualPrice"`
	LastUpdate  string          `json:"lastUpdate"`
}

// EncodeRegistry writes the registry as JSONL, one asset per line, in
// insertion order. Field order is stable so files diff cleanly.
func EncodeRegistry(w io.Writer, r *Registry) error {
	for _, a := range r.Snapshot() {
		var jw jsonObjectWriter
		jw.Append("ticker", a.Ticker)
		jw.Append("type", a.Type)
		jw.Append("quantity", a.Quantity)
		jw.Append("currency", a.Currency)
		if !a.AvgCost.IsZero() {
			jw.Append("avgCost", a.AvgCost.Decimal())
		}
		if !a.ManualPrice.IsZero() {
			jw.Append("manualPrice", a.ManualPrice.Decimal())
		}
		if !a.LastUpdate.IsZero() {
			jw.Append("lastUpdate", a.LastUpdate.UTC().Format(time.RFC3339))
		}
		line, err := jw.MarshalJSON()
		if err != nil {
			return fmt.Errorf("could not encode asset %q: %w", a.Ticker, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// DecodeRegistry reads a JSONL stream of assets back into a registry.
// Every line is validated through Registry.Add.
func DecodeRegistry(r io.Reader) (*Registry, error) {
	reg := NewRegistry()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var rec assetRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("could not decode asset line %q: %w", string(lineBytes), err)
		}
		a := Asset{
			Ticker:   rec.Ticker,
			Type:     rec.Type,
			Quantity: Q(rec.Quantity),
			Currency: rec.Currency,
		}
		if !rec.AvgCost.IsZero() {
			a.AvgCost = M(rec.AvgCost, rec.Currency)
		}
		if !rec.ManualPrice.IsZero() {
			a.ManualPrice = M(rec.ManualPrice, rec.Currency)
		}
		if rec.LastUpdate != "" {
			t, err := time.Parse(time.RFC3339, rec.LastUpdate)
			if err != nil {
				return nil, fmt.Errorf("could not decode asset %q: %w", rec.Ticker, err)
			}
			a.LastUpdate = t
		}
		if err := reg.Add(a); err != nil {
			return nil, err
		}
	}
	return reg, scanner.Err()
}

// quoteRecord is the persisted form of a Quote, one JSONL line each.
type quoteRecord struct {
	Ticker      string          `json:"ticker"`
	Price       decimal.Decimal `json:"price"`
	Currency    string          `json:"currency"`
	FetchedAt   string          `json:"fetchedAt"`
	Source      QuoteSource     `json:"source"`
	DailyChange decimal.Decimal `json:"dailyChange"`
}

// EncodeQuotes writes the quote book as JSONL so the last known prices
// survive across runs.
func EncodeQuotes(w io.Writer, book *QuoteBook) error {
	tickers := book.Tickers()
	// map iteration order is random; persist sorted for stable files
	sort.Strings(tickers)
	for _, ticker := range tickers {
		q, _ := book.Get(ticker)
		var jw jsonObjectWriter
		jw.Append("ticker", q.Ticker)
		jw.Append("price", q.Price.Decimal())
		jw.Append("currency", q.Price.Currency())
		jw.Append("fetchedAt", q.FetchedAt.UTC().Format(time.RFC3339))
		jw.Append("source", q.Source)
		jw.Optional("dailyChange", q.DailyChange.Decimal())
		line, err := jw.MarshalJSON()
		if err != nil {
			return fmt.Errorf("could not encode quote %q: %w", q.Ticker, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", line); err != nil {
			return err
		}
	}
	return nil
}

// DecodeQuotes reads a JSONL stream of quotes. Quotes persisted by an
// earlier run are aged: anything past the staleness threshold comes
// back as stale-fallback, never as live.
func DecodeQuotes(r io.Reader, now time.Time) (*QuoteBook, error) {
	book := NewQuoteBook()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(lineBytes) == 0 {
			continue
		}
		var rec quoteRecord
		if err := json.Unmarshal(lineBytes, &rec); err != nil {
			return nil, fmt.Errorf("could not decode quote line %q: %w", string(lineBytes), err)
		}
		fetched, err := time.Parse(time.RFC3339, rec.FetchedAt)
		if err != nil {
			return nil, fmt.Errorf("could not decode quote %q: %w", rec.Ticker, err)
		}
		book.Set(Quote{
			Ticker:      rec.Ticker,
			Price:       M(rec.Price, rec.Currency),
			FetchedAt:   fetched,
			Source:      rec.Source,
			DailyChange: P(rec.DailyChange),
		})
	}
	book.Age(now)
	return book, scanner.Err()
}

// Settings groups the configuration the engine consumes: the reporting
// currency, the exchange rates and the target allocation.
type Settings struct {
	Rates   *RateTable
	Targets *TargetAllocation
}

type targetRecord struct {
	Type    AssetType       `json:"type"`
	Percent decimal.Decimal `json:"percent"`
}

type settingsRecord struct {
	Reporting string                     `json:"reporting"`
	Rates     map[string]decimal.Decimal `json:"rates"`
	Targets   []targetRecord             `json:"targets"`
}

// EncodeSettings writes the settings as a single JSON document. Targets
// are an array: their order is significant.
func EncodeSettings(w io.Writer, s *Settings) error {
	rec := settingsRecord{
		Reporting: s.Rates.Reporting(),
		Rates:     s.Rates.rates,
	}
	for _, typ := range s.Targets.Types() {
		rec.Targets = append(rec.Targets, targetRecord{
			Type:    typ,
			Percent: s.Targets.Get(typ).Decimal(),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rec)
}

// DecodeSettings reads settings back. The target allocation is NOT
// validated here: an incomplete draft may be saved; validation happens
// before any computation uses it.
func DecodeSettings(r io.Reader) (*Settings, error) {
	var rec settingsRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return nil, fmt.Errorf("could not decode settings: %w", err)
	}
	if rec.Reporting == "" {
		return nil, &ConfigurationError{Reason: "settings must name a reporting currency"}
	}
	rates := NewRateTable(rec.Reporting)
	for currency, rate := range rec.Rates {
		rates.Set(currency, rate)
	}
	targets := NewTargetAllocation()
	for _, t := range rec.Targets {
		targets.Set(t.Type, P(t.Percent))
	}
	return &Settings{Rates: rates, Targets: targets}, nil
}
