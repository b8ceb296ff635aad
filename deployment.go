package investool

import "sort"

// DeploymentAction is one proposed slice of a new cash deployment. The
// user may adjust the amount or pin a specific ticker before recording
// the plan; nothing is traded.
type DeploymentAction struct {
	Type      AssetType
	Suggested Money
	Adjusted  Money  // user override; zero means not adjusted
	Ticker    string // optional specific asset to buy
}

// Amount returns the adjusted amount when set, the suggestion otherwise.
func (a DeploymentAction) Amount() Money {
	if !a.Adjusted.IsZero() {
		return a.Adjusted
	}
	return a.Suggested
}

// PlanDeployment proposes how to spread a new cash amount across asset
// types so the portfolio moves toward its targets.
//
// Each type's deficit is its shortfall below target. Cash is split in
// proportion to deficits; when the portfolio is at or above target
// everywhere, it falls back to splitting in proportion to the targets
// themselves, so no cash is ever left unallocated. Actions come out
// ordered by suggested amount descending, ties keeping the target
// insertion order.
func PlanDeployment(cash Money, current *Allocation, target *TargetAllocation, total Money) ([]DeploymentAction, error) {
	if !cash.IsPositive() {
		return nil, &ValidationError{
			Reason: "cash amount to deploy must be positive",
			Got:    cash.Decimal(),
		}
	}
	if err := target.Validate(); err != nil {
		return nil, err
	}

	deficits := make(map[AssetType]Percent)
	var sum Percent
	for _, typ := range target.Types() {
		d := target.Get(typ).Sub(current.Get(typ))
		if d.IsPositive() {
			deficits[typ] = d
			sum = sum.Add(d)
		}
	}

	var out []DeploymentAction
	for _, typ := range target.Types() {
		var suggested Money
		if sum.IsZero() {
			// Already at or above target everywhere: spread the cash
			// proportionally to the targets.
			suggested = target.Get(typ).Of(cash)
		} else {
			share := Percent{value: deficits[typ].Decimal().Div(sum.Decimal()).Mul(hundred)}
			suggested = share.Of(cash)
		}
		if suggested.IsZero() {
			continue
		}
		out = append(out, DeploymentAction{Type: typ, Suggested: suggested})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Suggested.GreaterThan(out[j].Suggested)
	})

	// Division residue goes to the largest slice so the suggestions add
	// up to exactly the cash amount.
	allocated := M(0, cash.Currency())
	for _, a := range out {
		allocated = allocated.Add(a.Suggested)
	}
	if len(out) > 0 && !allocated.Equal(cash) {
		out[0].Suggested = out[0].Suggested.Add(cash.Sub(allocated))
	}
	return out, nil
}

// CheckAdjustments re-validates a plan after user overrides: the total
// to deploy must not exceed the cash amount. Deploying less is fine.
// The error names the overshoot amount.
func CheckAdjustments(plan []DeploymentAction, cash Money) error {
	total := M(0, cash.Currency())
	for _, a := range plan {
		total = total.Add(a.Amount())
	}
	if total.GreaterThan(cash) {
		return &ValidationError{
			Reason: "deployment exceeds available cash",
			Got:    total.Sub(cash).Decimal(),
		}
	}
	return nil
}
