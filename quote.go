package investool

import "time"

// QuoteSource tags where an asset's effective price came from.
type QuoteSource string

const (
	SourceLive   QuoteSource = "live"
	SourceManual QuoteSource = "manual"
	SourceStale  QuoteSource = "stale-fallback"
)

// staleAfter is how long a fetched price stays fresh. Quotes older than
// this are refreshed by the update command and downgraded to
// stale-fallback when used.
const staleAfter = 24 * time.Hour

// Quote is the last known market price for a ticker. Quotes are
// supplied by the market data collaborator; the engine treats them as
// read-only input.
type Quote struct {
	Ticker      string
	Price       Money
	FetchedAt   time.Time
	Source      QuoteSource
	DailyChange Percent
}

// Outdated reports whether the quote is older than the staleness
// threshold at the given instant.
func (q Quote) Outdated(now time.Time) bool {
	if q.FetchedAt.IsZero() {
		return true
	}
	return now.Sub(q.FetchedAt) > staleAfter
}

// QuoteBook maps tickers to their last known quote. It is a plain
// snapshot: heterogeneous freshness across tickers is expected and the
// engine never assumes all quotes were refreshed together.
type QuoteBook struct {
	quotes map[string]Quote
}

// NewQuoteBook returns an empty quote book.
func NewQuoteBook() *QuoteBook {
	return &QuoteBook{quotes: make(map[string]Quote)}
}

// Get returns the quote for a ticker.
func (b *QuoteBook) Get(ticker string) (Quote, bool) {
	q, ok := b.quotes[normalizeTicker(ticker)]
	return q, ok
}

// Set records a quote, replacing any previous one for the same ticker.
func (b *QuoteBook) Set(q Quote) {
	q.Ticker = normalizeTicker(q.Ticker)
	b.quotes[q.Ticker] = q
}

// Len returns the number of quotes in the book.
func (b *QuoteBook) Len() int { return len(b.quotes) }

// Tickers returns the tickers present in the book.
func (b *QuoteBook) Tickers() []string {
	out := make([]string, 0, len(b.quotes))
	for t := range b.quotes {
		out = append(out, t)
	}
	return out
}

// Age downgrades every quote older than the staleness threshold to the
// stale-fallback source. Decoded books call it so that prices persisted
// by a previous run are never mistaken for live data.
func (b *QuoteBook) Age(now time.Time) {
	for t, q := range b.quotes {
		if q.Source == SourceLive && q.Outdated(now) {
			q.Source = SourceStale
			b.quotes[t] = q
		}
	}
}

// EffectivePrice resolves the price to value an asset at, following the
// fallback order: live quote, then manual override, then last known
// (stale) quote. When none is available it returns a
// DataUnavailableError for the asset.
//
// Cash and liabilities never have market quotes: they value at their
// manual price if set, at face value 1 otherwise.
func EffectivePrice(a Asset, book *QuoteBook) (Money, QuoteSource, error) {
	if !a.Type.Quotable() {
		if !a.ManualPrice.IsZero() {
			return a.ManualPrice, SourceManual, nil
		}
		return M(1, a.Currency), SourceManual, nil
	}

	quote, ok := Quote{}, false
	if book != nil {
		quote, ok = book.Get(a.Ticker)
	}
	if ok && quote.Source == SourceLive {
		return quote.Price, SourceLive, nil
	}
	if !a.ManualPrice.IsZero() {
		return a.ManualPrice, SourceManual, nil
	}
	if ok {
		return quote.Price, SourceStale, nil
	}
	return Money{}, "", &DataUnavailableError{Ticker: a.Ticker}
}
