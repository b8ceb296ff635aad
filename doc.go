// Package investool implements the core of a personal investment
// dashboard: an in-memory registry of holdings, valuation of those
// holdings in a single reporting currency, comparison of the current
// allocation against user-defined targets, and planning of new cash
// deployments.
//
// All computations are pure: each call takes a snapshot of assets,
// quotes and settings, and returns plain data. Persistence and quote
// fetching live at the edges (the encode functions, the yahoo client
// and the drive subpackage).
package investool
