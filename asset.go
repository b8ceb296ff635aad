package investool

import (
	"strings"
	"time"
)

// AssetType is the category an asset belongs to. Allocation targets are
// defined per asset type.
type AssetType string

const (
	TypeStock     AssetType = "stock"
	TypeCrypto    AssetType = "crypto"
	TypeMetal     AssetType = "metal"
	TypeFund      AssetType = "fund"
	TypeCash      AssetType = "cash"
	TypeLiability AssetType = "liability"
)

// Quotable reports whether assets of this type have a market quote.
// Cash and liabilities are valued at face value (or a manual price)
// and are never fetched from the market data provider.
func (t AssetType) Quotable() bool {
	return t != TypeCash && t != TypeLiability
}

// Asset is a single holding in the portfolio. Identity is the ticker,
// unique within a registry.
type Asset struct {
	Ticker      string
	Type        AssetType
	Quantity    Quantity
	Currency    string
	AvgCost     Money     // average cost per unit; zero if unknown
	ManualPrice Money     // manual price override; zero if unset
	LastUpdate  time.Time // when the price was last refreshed
}

// Validate checks the asset invariants.
func (a Asset) Validate() error {
	if strings.TrimSpace(a.Ticker) == "" {
		return &ValidationError{Reason: "ticker cannot be empty"}
	}
	switch a.Type {
	case TypeStock, TypeCrypto, TypeMetal, TypeFund, TypeCash, TypeLiability:
	case "":
		return &ValidationError{Reason: "asset type cannot be empty", Ticker: a.Ticker}
	default:
		return &ValidationError{Reason: "unknown asset type", Ticker: a.Ticker, Type: a.Type}
	}
	if a.Quantity.IsNegative() {
		return &ValidationError{
			Reason: "quantity cannot be negative",
			Ticker: a.Ticker,
			Type:   a.Type,
			Got:    a.Quantity.Decimal(),
		}
	}
	if a.Currency == "" {
		return &ValidationError{Reason: "currency cannot be empty", Ticker: a.Ticker}
	}
	return nil
}

// Registry is the ordered collection of assets. It is the sole owner of
// asset records; every computation works on a Snapshot of it.
type Registry struct {
	assets []Asset
	index  map[string]int
}

// NewRegistry returns a new empty registry.
func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Len returns the number of assets in the registry.
func (r *Registry) Len() int { return len(r.assets) }

// Has reports whether an asset with that ticker exists.
func (r *Registry) Has(ticker string) bool {
	_, ok := r.index[normalizeTicker(ticker)]
	return ok
}

// Get returns the asset with that ticker.
func (r *Registry) Get(ticker string) (Asset, bool) {
	i, ok := r.index[normalizeTicker(ticker)]
	if !ok {
		return Asset{}, false
	}
	return r.assets[i], true
}

// Add appends a new asset. The ticker must not already exist.
func (r *Registry) Add(a Asset) error {
	a.Ticker = normalizeTicker(a.Ticker)
	if err := a.Validate(); err != nil {
		return err
	}
	if _, ok := r.index[a.Ticker]; ok {
		return &ValidationError{Reason: "ticker already in registry", Ticker: a.Ticker}
	}
	r.index[a.Ticker] = len(r.assets)
	r.assets = append(r.assets, a)
	return nil
}

// Update replaces the asset with the same ticker, keeping its position.
func (r *Registry) Update(a Asset) error {
	a.Ticker = normalizeTicker(a.Ticker)
	if err := a.Validate(); err != nil {
		return err
	}
	i, ok := r.index[a.Ticker]
	if !ok {
		return &ValidationError{Reason: "ticker not in registry", Ticker: a.Ticker}
	}
	r.assets[i] = a
	return nil
}

// Remove deletes the asset with that ticker.
func (r *Registry) Remove(ticker string) error {
	ticker = normalizeTicker(ticker)
	i, ok := r.index[ticker]
	if !ok {
		return &ValidationError{Reason: "ticker not in registry", Ticker: ticker}
	}
	r.assets = append(r.assets[:i], r.assets[i+1:]...)
	delete(r.index, ticker)
	for j := i; j < len(r.assets); j++ {
		r.index[r.assets[j].Ticker] = j
	}
	return nil
}

// Snapshot returns a copy of the assets in insertion order. Computations
// take the copy so that a concurrent mutation of the registry cannot be
// observed mid-pass.
func (r *Registry) Snapshot() []Asset {
	out := make([]Asset, len(r.assets))
	copy(out, r.assets)
	return out
}

// Currencies returns the distinct currencies present, in first-seen order.
func (r *Registry) Currencies() []string {
	seen := make(map[string]bool)
	var out []string
	for _, a := range r.assets {
		if !seen[a.Currency] {
			seen[a.Currency] = true
			out = append(out, a.Currency)
		}
	}
	return out
}

func normalizeTicker(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}
