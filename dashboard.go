package investool

import "time"

// DashboardReport bundles everything the dashboard shows: the valuation
// snapshot, the current and target allocations, the drift and the
// suggested rebalancing operations. It is plain immutable data for the
// presentation layer.
type DashboardReport struct {
	Date        time.Time
	Snapshot    *ValuationSnapshot
	Current     *Allocation
	Targets     *TargetAllocation
	Drift       *Allocation
	Suggestions []Suggestion
}

// NewDashboardReport runs the whole pipeline over one snapshot of
// assets, quotes and settings. The targets and the rate table are
// validated before any computation; per-asset data failures only end up
// in the snapshot's skipped list.
func NewDashboardReport(assets []Asset, book *QuoteBook, targets *TargetAllocation, rates *RateTable) (*DashboardReport, error) {
	if err := targets.Validate(); err != nil {
		return nil, err
	}
	snapshot, err := Valuate(assets, book, rates)
	if err != nil {
		return nil, err
	}
	current := CurrentAllocation(snapshot)
	drift := Drift(current, targets)
	return &DashboardReport{
		Date:        time.Now(),
		Snapshot:    snapshot,
		Current:     current,
		Targets:     targets,
		Drift:       drift,
		Suggestions: RebalanceSuggestions(drift, snapshot.Total),
	}, nil
}
