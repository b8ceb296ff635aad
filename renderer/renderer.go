// Package renderer turns engine results into markdown reports for the
// terminal.
package renderer

import (
	"bytes"
	"fmt"

	"github.com/achou/investool"
	md "github.com/nao1215/markdown"
)

// DashboardMarkdown renders the full dashboard: holdings valuation,
// current versus target allocation, drift and suggested rebalancing
// operations.
func DashboardMarkdown(r *investool.DashboardReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Dashboard on %s", r.Date.Format("2006-01-02")))
	doc.PlainText(fmt.Sprintf("Total Market Value: %s", r.Snapshot.Total))
	if !r.Snapshot.Net.Equal(r.Snapshot.Total) {
		doc.PlainText(fmt.Sprintf("Net Worth: %s", r.Snapshot.Net))
	}

	doc.H2("Holdings")
	doc.Table(holdingsTable(r.Snapshot))
	if len(r.Snapshot.Skipped) > 0 {
		doc.PlainText(fmt.Sprintf("Skipped for lack of price data: %v", r.Snapshot.Skipped))
	}

	doc.H2("Allocation")
	allocation := md.TableSet{
		Header: []string{"Type", "Current", "Target", "Drift"},
	}
	for _, typ := range r.Drift.Types() {
		allocation.Rows = append(allocation.Rows, []string{
			string(typ),
			r.Current.Get(typ).String(),
			r.Targets.Get(typ).String(),
			r.Drift.Get(typ).SignedString(),
		})
	}
	doc.Table(allocation)

	doc.H2("Rebalancing")
	if len(r.Suggestions) == 0 {
		doc.PlainText("The portfolio is on target. Nothing to do.")
	} else {
		suggestions := md.TableSet{
			Header: []string{"Type", "Action", "Amount"},
		}
		for _, s := range r.Suggestions {
			suggestions.Rows = append(suggestions.Rows, []string{
				string(s.Type),
				string(s.Action),
				s.Amount.String(),
			})
		}
		doc.Table(suggestions)
	}

	return doc.String()
}

func holdingsTable(s *investool.ValuationSnapshot) md.TableSet {
	table := md.TableSet{
		Header: []string{"Ticker", "Type", "Quantity", "Price", "Source", "Value", "Gain", "ROI"},
	}
	for _, line := range s.Lines {
		table.Rows = append(table.Rows, []string{
			line.Ticker,
			string(line.Type),
			line.Quantity.String(),
			line.Price.String(),
			string(line.Source),
			line.Value.String(),
			line.Gain.SignedString(),
			line.ROI.SignedString(),
		})
	}
	return table
}

// HoldingsMarkdown renders the valued holdings on their own, without
// the allocation sections.
func HoldingsMarkdown(s *investool.ValuationSnapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Holdings")
	doc.PlainText(fmt.Sprintf("Total Market Value: %s", s.Total))
	if !s.Net.Equal(s.Total) {
		doc.PlainText(fmt.Sprintf("Net Worth: %s", s.Net))
	}
	doc.Table(holdingsTable(s))
	if len(s.Skipped) > 0 {
		doc.PlainText(fmt.Sprintf("Skipped for lack of price data: %v", s.Skipped))
	}
	return doc.String()
}

// DeploymentMarkdown renders a cash deployment plan.
func DeploymentMarkdown(plan []investool.DeploymentAction, cash investool.Money) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Deploying %s", cash))
	if len(plan) == 0 {
		doc.PlainText("No asset type takes a share of this amount.")
		return doc.String()
	}

	table := md.TableSet{
		Header: []string{"Type", "Suggested", "Final"},
	}
	for _, a := range plan {
		target := string(a.Type)
		if a.Ticker != "" {
			target = fmt.Sprintf("%s (%s)", a.Type, a.Ticker)
		}
		table.Rows = append(table.Rows, []string{
			target,
			a.Suggested.String(),
			a.Amount().String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

// RiskMarkdown renders an ATR-based entry plan.
func RiskMarkdown(ticker string, atr float64, plan investool.EntryPlan) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Entry plan for %s", ticker))
	doc.PlainText(fmt.Sprintf("ATR(%d): %.4f", investool.DefaultATRPeriod, atr))
	doc.Table(md.TableSet{
		Header: []string{"Entry", "Stop Loss", "Take Profit", "Risk/Unit", "Max Quantity", "Max Loss"},
		Rows: [][]string{{
			fmt.Sprintf("%.4f", plan.Entry),
			fmt.Sprintf("%.4f", plan.StopLoss),
			fmt.Sprintf("%.4f", plan.TakeProfit),
			fmt.Sprintf("%.4f", plan.RiskPerUnit),
			fmt.Sprintf("%.4f", plan.MaxQuantity),
			fmt.Sprintf("%.2f", plan.MaxLoss),
		}},
	})
	return doc.String()
}

// LoanMarkdown renders an amortization schedule.
func LoanMarkdown(schedule []investool.LoanPayment) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Amortization Schedule")
	table := md.TableSet{
		Header: []string{"#", "Due", "Payment", "Interest", "Principal", "Remaining"},
	}
	for _, row := range schedule {
		table.Rows = append(table.Rows, []string{
			fmt.Sprintf("%d", row.Seq),
			row.Due.String(),
			row.Payment.StringFixed(2),
			row.Interest.StringFixed(2),
			row.Principal.StringFixed(2),
			row.Remaining.StringFixed(2),
		})
	}
	doc.Table(table)
	return doc.String()
}

// SearchMarkdown renders ticker search results.
func SearchMarkdown(query string, results []investool.SearchResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Search results for %q", query))
	if len(results) == 0 {
		doc.PlainText("No match.")
		return doc.String()
	}
	table := md.TableSet{
		Header: []string{"Ticker", "Name", "Exchange", "Type"},
	}
	for _, r := range results {
		table.Rows = append(table.Rows, []string{r.Symbol, r.Name, r.Exchange, r.Kind})
	}
	doc.Table(table)
	return doc.String()
}
