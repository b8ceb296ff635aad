package investool

import "sort"

// TargetAllocation holds the user-defined target percentage per asset
// type. Insertion order is preserved: it is the deterministic tie-break
// for every ranking derived from the targets.
type TargetAllocation struct {
	types []AssetType
	pct   map[AssetType]Percent
}

// NewTargetAllocation returns an empty target allocation.
func NewTargetAllocation() *TargetAllocation {
	return &TargetAllocation{pct: make(map[AssetType]Percent)}
}

// Set records the target for an asset type. Setting an existing type
// replaces its percentage and keeps its original position.
func (t *TargetAllocation) Set(typ AssetType, p Percent) {
	if _, ok := t.pct[typ]; !ok {
		t.types = append(t.types, typ)
	}
	t.pct[typ] = p
}

// Get returns the target for an asset type, zero if absent.
func (t *TargetAllocation) Get(typ AssetType) Percent { return t.pct[typ] }

// Has reports whether the asset type has a target.
func (t *TargetAllocation) Has(typ AssetType) bool {
	_, ok := t.pct[typ]
	return ok
}

// Types returns the asset types in insertion order.
func (t *TargetAllocation) Types() []AssetType { return t.types }

// Total returns the sum of all target percentages.
func (t *TargetAllocation) Total() Percent {
	total := P(0)
	for _, typ := range t.types {
		total = total.Add(t.pct[typ])
	}
	return total
}

// Validate checks that every percentage is within [0, 100] and that the
// total is 100 within the percent epsilon. It must pass before any
// allocation computation runs.
func (t *TargetAllocation) Validate() error {
	for _, typ := range t.types {
		p := t.pct[typ]
		if p.IsNegative() || p.GreaterThan(P(100)) {
			return &ConfigurationError{
				Reason: "target percentage out of [0, 100]",
				Type:   typ,
				Got:    p.Decimal(),
			}
		}
	}
	if total := t.Total(); !total.Equal(P(100)) {
		return &ConfigurationError{
			Reason: "target percentages must sum to 100",
			Got:    total.Decimal(),
		}
	}
	return nil
}

// Allocation is an ordered mapping of asset type to a percentage. It
// represents either a current distribution or a signed drift.
type Allocation struct {
	types []AssetType
	pct   map[AssetType]Percent
}

func newAllocation() *Allocation {
	return &Allocation{pct: make(map[AssetType]Percent)}
}

func (a *Allocation) set(typ AssetType, p Percent) {
	if _, ok := a.pct[typ]; !ok {
		a.types = append(a.types, typ)
	}
	a.pct[typ] = p
}

// Get returns the percentage for an asset type, zero if absent.
func (a *Allocation) Get(typ AssetType) Percent { return a.pct[typ] }

// Types returns the asset types in order.
func (a *Allocation) Types() []AssetType { return a.types }

// CurrentAllocation computes the percentage each asset type represents
// of the snapshot total. Only successfully valued assets contribute, so
// the percentages always sum to 100 over the renormalized denominator.
func CurrentAllocation(s *ValuationSnapshot) *Allocation {
	out := newAllocation()
	for _, tv := range s.ValueByType() {
		out.set(tv.Type, tv.Value.Share(s.Total))
	}
	return out
}

// Drift returns the signed difference current minus target per asset
// type. Positive means over-allocated, negative under-allocated. Types
// are ordered by target insertion order, followed by types only present
// in the current allocation.
func Drift(current *Allocation, target *TargetAllocation) *Allocation {
	out := newAllocation()
	for _, typ := range target.Types() {
		out.set(typ, current.Get(typ).Sub(target.Get(typ)))
	}
	for _, typ := range current.Types() {
		if !target.Has(typ) {
			out.set(typ, current.Get(typ))
		}
	}
	return out
}

// Action tells which way a rebalancing trade goes.
type Action string

const (
	ActionBuy  Action = "buy"
	ActionSell Action = "sell"
)

// Suggestion is one proposed rebalancing operation.
type Suggestion struct {
	Type   AssetType
	Action Action
	Amount Money
}

// RebalanceSuggestions turns a drift into an ordered list of proposed
// operations, ranked by absolute drift descending. Ties keep the drift
// order, which follows the target insertion order. Types with zero
// drift are omitted. Amounts are |drift| of the total value.
func RebalanceSuggestions(drift *Allocation, total Money) []Suggestion {
	var out []Suggestion
	for _, typ := range drift.Types() {
		d := drift.Get(typ)
		if d.IsZero() {
			continue
		}
		action := ActionBuy
		if d.IsPositive() {
			action = ActionSell
		}
		out = append(out, Suggestion{
			Type:   typ,
			Action: action,
			Amount: d.Abs().Of(total),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Amount.GreaterThan(out[j].Amount)
	})
	return out
}
