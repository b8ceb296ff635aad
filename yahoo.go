package investool

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"sync"
	"time"

	"github.com/PaesslerAG/jsonpath"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

// This file contains the Yahoo Finance adapters: latest price, daily
// history, USD/TWD exchange rate and ticker search. The engine itself
// never fetches; commands call these and hand the resulting QuoteBook
// to the computations.

const (
	fetchUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// maxConcurrentFetch bounds parallel quote refreshes.
	maxConcurrentFetch = 10

	// defaultUSDTWD is used when the exchange rate cannot be fetched.
	defaultUSDTWD = 32.5
)

// YahooClient fetches market data from the Yahoo Finance JSON endpoints.
type YahooClient struct {
	client  *http.Client
	search  *http.Client // day-cached, search results move slowly
	limiter *rate.Limiter
}

// NewYahooClient returns a client rate-limited to stay well under the
// provider's tolerance.
func NewYahooClient() *YahooClient {
	return &YahooClient{
		client:  new(http.Client),
		search:  daily(),
		limiter: rate.NewLimiter(rate.Limit(5), maxConcurrentFetch),
	}
}

// jsonAt extracts a single value from a parsed JSON document using a
// jsonpath expression.
func jsonAt(jobj any, path string) (any, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", path, err)
	}
	// jsonpath is never clear about whether it returns a list of one
	// answer or a single answer; keep the first one if any.
	if jlist, ok := jval.([]any); ok && len(jlist) > 0 {
		jval = jlist[0]
	}
	return jval, nil
}

func jsonFloatAt(jobj any, path string) (float64, error) {
	jval, err := jsonAt(jobj, path)
	if err != nil {
		return 0, err
	}
	val, ok := jval.(float64)
	if !ok {
		return 0, fmt.Errorf("error parsing %q: not a number: %v", path, jval)
	}
	return val, nil
}

func jsonStringAt(jobj any, path string) (string, error) {
	jval, err := jsonAt(jobj, path)
	if err != nil {
		return "", err
	}
	val, ok := jval.(string)
	if !ok {
		return "", fmt.Errorf("error parsing %q: not a string: %v", path, jval)
	}
	return val, nil
}

// FetchPrice returns the latest market price for a ticker as a Quote
// with a live source.
func (c *YahooClient) FetchPrice(ctx context.Context, ticker string) (Quote, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Quote{}, err
	}
	addr := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?range=1d&interval=1d", url.PathEscape(ticker))
	var jobj any
	if err := jwget(c.client, addr, &jobj); err != nil {
		return Quote{}, fmt.Errorf("error fetching price for %q: %w", ticker, err)
	}
	price, err := jsonFloatAt(jobj, "$.chart.result[0].meta.regularMarketPrice")
	if err != nil {
		return Quote{}, fmt.Errorf("no price data for %q: %w", ticker, err)
	}
	currency, err := jsonStringAt(jobj, "$.chart.result[0].meta.currency")
	if err != nil {
		return Quote{}, fmt.Errorf("no currency for %q: %w", ticker, err)
	}

	quote := Quote{
		Ticker:    ticker,
		Price:     M(price, currency),
		FetchedAt: time.Now(),
		Source:    SourceLive,
	}
	// The previous close is informational only; its absence is fine.
	if prev, err := jsonFloatAt(jobj, "$.chart.result[0].meta.chartPreviousClose"); err == nil && prev > 0 {
		quote.DailyChange = P(decimal.NewFromFloat(price).Sub(decimal.NewFromFloat(prev)).
			Div(decimal.NewFromFloat(prev)).Mul(hundred))
	}
	return quote, nil
}

// Candle is one day of price history, used by the risk calculations.
type Candle struct {
	High  float64
	Low   float64
	Close float64
}

// FetchHistory returns up to the last `days` daily candles for a ticker,
// oldest first.
func (c *YahooClient) FetchHistory(ctx context.Context, ticker string, days int) ([]Candle, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	addr := fmt.Sprintf("https://query1.finance.yahoo.com/v8/finance/chart/%s?range=%dd&interval=1d", url.PathEscape(ticker), days)
	var jobj any
	if err := jwget(c.client, addr, &jobj); err != nil {
		return nil, fmt.Errorf("error fetching history for %q: %w", ticker, err)
	}

	series := func(field string) ([]any, error) {
		jval, err := jsonpath.Get("$.chart.result[0].indicators.quote[0]."+field, jobj)
		if err != nil {
			return nil, fmt.Errorf("no %s history for %q: %w", field, ticker, err)
		}
		list, ok := jval.([]any)
		if !ok {
			return nil, fmt.Errorf("unexpected %s history for %q", field, ticker)
		}
		return list, nil
	}

	highs, err := series("high")
	if err != nil {
		return nil, err
	}
	lows, err := series("low")
	if err != nil {
		return nil, err
	}
	closes, err := series("close")
	if err != nil {
		return nil, err
	}

	var candles []Candle
	for i := range closes {
		// Yahoo leaves null holes on non-trading days.
		h, hok := highs[i].(float64)
		l, lok := lows[i].(float64)
		cl, cok := closes[i].(float64)
		if !hok || !lok || !cok {
			continue
		}
		candles = append(candles, Candle{High: h, Low: l, Close: cl})
	}
	return candles, nil
}

// FetchUSDTWD returns the USD to TWD exchange rate, falling back to a
// fixed default when the fetch fails so a network hiccup never blocks
// the dashboard.
func (c *YahooClient) FetchUSDTWD(ctx context.Context) decimal.Decimal {
	quote, err := c.FetchPrice(ctx, "TWD=X")
	if err != nil {
		log.Printf("failed to fetch USD/TWD rate, using default %v: %v", defaultUSDTWD, err)
		return decimal.NewFromFloat(defaultUSDTWD)
	}
	return quote.Price.Decimal()
}

// SearchResult is one ticker search hit.
type SearchResult struct {
	Symbol   string
	Name     string
	Exchange string
	Kind     string // equity, cryptocurrency, etf, ...
}

// SearchTicker searches Yahoo Finance for ticker symbols matching the
// query. Results are cached for the day.
func (c *YahooClient) SearchTicker(ctx context.Context, query string) ([]SearchResult, error) {
	if query == "" {
		return nil, nil
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	addr := fmt.Sprintf("https://query2.finance.yahoo.com/v1/finance/search?q=%s&quotesCount=10&newsCount=0", url.QueryEscape(query))

	var content struct {
		Quotes []struct {
			Symbol    string `json:"symbol"`
			ShortName string `json:"shortname"`
			LongName  string `json:"longname"`
			ExchDisp  string `json:"exchDisp"`
			QuoteType string `json:"quoteType"`
		} `json:"quotes"`
	}
	if err := jwget(c.search, addr, &content); err != nil {
		return nil, fmt.Errorf("ticker search failed for %q: %w", query, err)
	}

	var results []SearchResult
	for _, item := range content.Quotes {
		if item.Symbol == "" {
			continue
		}
		name := item.ShortName
		if name == "" {
			name = item.LongName
		}
		results = append(results, SearchResult{
			Symbol:   item.Symbol,
			Name:     name,
			Exchange: item.ExchDisp,
			Kind:     item.QuoteType,
		})
	}
	return results, nil
}

// RefreshQuotes fetches fresh prices for every quotable asset whose
// quote in the book is missing or outdated. Fetches run in parallel,
// bounded by maxConcurrentFetch; one failing ticker never prevents the
// others from updating. It returns the refreshed tickers and the
// per-ticker fetch errors.
func (c *YahooClient) RefreshQuotes(ctx context.Context, assets []Asset, book *QuoteBook, now time.Time) (updated []string, failed map[string]error) {
	var outdated []string
	for _, a := range assets {
		if !a.Type.Quotable() {
			continue
		}
		if q, ok := book.Get(a.Ticker); ok && q.Source == SourceLive && !q.Outdated(now) {
			continue
		}
		outdated = append(outdated, a.Ticker)
	}
	if len(outdated) == 0 {
		return nil, nil
	}

	type result struct {
		ticker string
		quote  Quote
		err    error
	}

	sem := make(chan struct{}, maxConcurrentFetch)
	results := make(chan result, len(outdated))
	var wg sync.WaitGroup
	for _, ticker := range outdated {
		wg.Add(1)
		go func(ticker string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			quote, err := c.FetchPrice(ctx, ticker)
			results <- result{ticker: ticker, quote: quote, err: err}
		}(ticker)
	}
	wg.Wait()
	close(results)

	failed = make(map[string]error)
	for r := range results {
		if r.err != nil {
			failed[r.ticker] = r.err
			continue
		}
		book.Set(r.quote)
		updated = append(updated, r.ticker)
	}
	sort.Strings(updated)
	return updated, failed
}
