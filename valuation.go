package investool

import "errors"

// Line is the valuation of a single asset in the reporting currency.
type Line struct {
	Ticker   string
	Type     AssetType
	Quantity Quantity
	Price    Money // effective price, in the asset's own currency
	Source   QuoteSource
	Value    Money // market value, in the reporting currency
	Cost     Money // total cost basis, in the reporting currency; zero if unknown
	Gain     Money // unrealized profit or loss
	ROI      Percent
}

// TypeValue is the aggregated market value of one asset type.
type TypeValue struct {
	Type  AssetType
	Value Money
}

// ValuationSnapshot is the valuation of a whole portfolio at a point in
// time. It is a derived view, recomputed on demand and never persisted.
type ValuationSnapshot struct {
	Reporting string
	Lines     []Line
	Skipped   []string // tickers excluded for lack of any usable price
	Total     Money    // sum of the market values of valued assets
	Net       Money    // like Total, but liabilities count negative

	types  []AssetType
	byType map[AssetType]Money
}

// ValueOf values a single asset in the reporting currency. It fails
// with a DataUnavailableError when no usable price exists, and with a
// ConfigurationError when the asset's currency has no rate.
func ValueOf(a Asset, book *QuoteBook, rates *RateTable) (Line, error) {
	price, source, err := EffectivePrice(a, book)
	if err != nil {
		return Line{}, err
	}
	value, err := rates.Convert(price.Mul(a.Quantity))
	if err != nil {
		return Line{}, err
	}

	line := Line{
		Ticker:   a.Ticker,
		Type:     a.Type,
		Quantity: a.Quantity,
		Price:    price,
		Source:   source,
		Value:    value,
	}
	if !a.AvgCost.IsZero() {
		cost, err := rates.Convert(a.AvgCost.Mul(a.Quantity))
		if err != nil {
			return Line{}, err
		}
		line.Cost = cost
		// For a liability the cost is the borrowed principal: owing more
		// than was borrowed is a loss.
		if a.Type == TypeLiability {
			line.Gain = cost.Sub(value)
		} else {
			line.Gain = value.Sub(cost)
		}
		if cost.IsPositive() {
			line.ROI = line.Gain.Share(cost)
		}
	}
	return line, nil
}

// Valuate values every asset and aggregates per asset type. The rate
// table is validated up front: a missing rate aborts the pass before
// any partial result. An asset without any usable price is skipped and
// reported; any other failure, like a quote priced in a currency the
// rate table does not cover, is fatal.
func Valuate(assets []Asset, book *QuoteBook, rates *RateTable) (*ValuationSnapshot, error) {
	if err := rates.Validate(assets); err != nil {
		return nil, err
	}

	s := &ValuationSnapshot{
		Reporting: rates.Reporting(),
		Total:     M(0, rates.Reporting()),
		Net:       M(0, rates.Reporting()),
		byType:    make(map[AssetType]Money),
	}
	for _, a := range assets {
		line, err := ValueOf(a, book, rates)
		var unavailable *DataUnavailableError
		if errors.As(err, &unavailable) {
			s.Skipped = append(s.Skipped, a.Ticker)
			continue
		}
		if err != nil {
			return nil, err
		}
		s.Lines = append(s.Lines, line)
		s.Total = s.Total.Add(line.Value)
		if a.Type == TypeLiability {
			s.Net = s.Net.Sub(line.Value)
		} else {
			s.Net = s.Net.Add(line.Value)
		}
		if _, ok := s.byType[line.Type]; !ok {
			s.types = append(s.types, line.Type)
			s.byType[line.Type] = M(0, rates.Reporting())
		}
		s.byType[line.Type] = s.byType[line.Type].Add(line.Value)
	}
	return s, nil
}

// Types returns the asset types present, in first-seen order.
func (s *ValuationSnapshot) Types() []AssetType { return s.types }

// TypeValue returns the aggregated market value of one asset type.
func (s *ValuationSnapshot) TypeValue(t AssetType) Money {
	if v, ok := s.byType[t]; ok {
		return v
	}
	return M(0, s.Reporting)
}

// ValueByType returns the per-type aggregated values in first-seen order.
func (s *ValuationSnapshot) ValueByType() []TypeValue {
	out := make([]TypeValue, 0, len(s.types))
	for _, t := range s.types {
		out = append(out, TypeValue{Type: t, Value: s.byType[t]})
	}
	return out
}
