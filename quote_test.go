package investool

import (
	"errors"
	"testing"
	"time"
)

func TestEffectivePrice_FallbackOrder(t *testing.T) {
	now := time.Now()
	live := Quote{Ticker: "AAPL", Price: M(200, "USD"), FetchedAt: now, Source: SourceLive}
	stale := Quote{Ticker: "AAPL", Price: M(190, "USD"), FetchedAt: now.Add(-48 * time.Hour), Source: SourceStale}

	testCases := []struct {
		name       string
		asset      Asset
		quote      *Quote
		wantPrice  Money
		wantSource QuoteSource
	}{
		{
			name:       "live quote wins",
			asset:      Asset{Ticker: "AAPL", Type: TypeStock, ManualPrice: M(150, "USD")},
			quote:      &live,
			wantPrice:  M(200, "USD"),
			wantSource: SourceLive,
		},
		{
			name:       "manual beats stale",
			asset:      Asset{Ticker: "AAPL", Type: TypeStock, ManualPrice: M(150, "USD")},
			quote:      &stale,
			wantPrice:  M(150, "USD"),
			wantSource: SourceManual,
		},
		{
			name:       "stale when no manual",
			asset:      Asset{Ticker: "AAPL", Type: TypeStock},
			quote:      &stale,
			wantPrice:  M(190, "USD"),
			wantSource: SourceStale,
		},
		{
			name:       "cash at face value",
			asset:      Asset{Ticker: "TWD-CASH", Type: TypeCash, Currency: "TWD"},
			wantPrice:  M(1, "TWD"),
			wantSource: SourceManual,
		},
		{
			name:       "liability at manual price",
			asset:      Asset{Ticker: "MORTGAGE", Type: TypeLiability, Currency: "TWD", ManualPrice: M(1, "TWD")},
			wantPrice:  M(1, "TWD"),
			wantSource: SourceManual,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			book := NewQuoteBook()
			if tc.quote != nil {
				book.Set(*tc.quote)
			}
			price, source, err := EffectivePrice(tc.asset, book)
			if err != nil {
				t.Fatalf("EffectivePrice() unexpected error: %v", err)
			}
			if !price.Equal(tc.wantPrice) {
				t.Errorf("price = %v, want %v", price, tc.wantPrice)
			}
			if source != tc.wantSource {
				t.Errorf("source = %q, want %q", source, tc.wantSource)
			}
		})
	}
}

func TestEffectivePrice_Unavailable(t *testing.T) {
	asset := Asset{Ticker: "UNKNOWN", Type: TypeStock}
	_, _, err := EffectivePrice(asset, NewQuoteBook())
	var derr *DataUnavailableError
	if !errors.As(err, &derr) {
		t.Fatalf("EffectivePrice() error = %v, want DataUnavailableError", err)
	}
	if derr.Ticker != "UNKNOWN" {
		t.Errorf("DataUnavailableError.Ticker = %q, want UNKNOWN", derr.Ticker)
	}
}

func TestQuoteBook_Age(t *testing.T) {
	now := time.Now()
	book := NewQuoteBook()
	book.Set(Quote{Ticker: "AAPL", Price: M(200, "USD"), FetchedAt: now.Add(-1 * time.Hour), Source: SourceLive})
	book.Set(Quote{Ticker: "BTC-USD", Price: M(60000, "USD"), FetchedAt: now.Add(-72 * time.Hour), Source: SourceLive})

	book.Age(now)

	if q, _ := book.Get("AAPL"); q.Source != SourceLive {
		t.Errorf("fresh quote aged to %q, want live", q.Source)
	}
	if q, _ := book.Get("BTC-USD"); q.Source != SourceStale {
		t.Errorf("old quote source = %q, want stale-fallback", q.Source)
	}
}

func TestQuote_Outdated(t *testing.T) {
	now := time.Now()
	testCases := []struct {
		name    string
		fetched time.Time
		want    bool
	}{
		{name: "fresh", fetched: now.Add(-1 * time.Hour), want: false},
		{name: "over a day old", fetched: now.Add(-25 * time.Hour), want: true},
		{name: "zero time", want: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := Quote{FetchedAt: tc.fetched}
			if got := q.Outdated(now); got != tc.want {
				t.Errorf("Outdated() = %v, want %v", got, tc.want)
			}
		})
	}
}
