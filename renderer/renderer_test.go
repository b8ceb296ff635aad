package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/achou/investool"
	"github.com/achou/investool/date"
	"github.com/shopspring/decimal"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// headings parses the markdown and returns its heading texts, verifying
// on the way that the document is well formed.
func headings(t *testing.T, source string) []string {
	t.Helper()
	content := []byte(source)
	root := goldmark.DefaultParser().Parse(text.NewReader(content))

	var out []string
	ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if h, ok := n.(*ast.Heading); ok {
			var sb strings.Builder
			for i := 0; i < h.Lines().Len(); i++ {
				line := h.Lines().At(i)
				sb.Write(line.Value(content))
			}
			out = append(out, sb.String())
		}
		return ast.WalkContinue, nil
	})
	return out
}

func demoReport(t *testing.T) *investool.DashboardReport {
	t.Helper()
	assets := []investool.Asset{
		{Ticker: "2330.TW", Type: investool.TypeStock, Quantity: investool.Q(10), Currency: "TWD"},
		{Ticker: "TWD-CASH", Type: investool.TypeCash, Quantity: investool.Q(4000), Currency: "TWD"},
	}
	book := investool.NewQuoteBook()
	book.Set(investool.Quote{Ticker: "2330.TW", Price: investool.M(600, "TWD"), FetchedAt: time.Now(), Source: investool.SourceLive})
	targets := investool.NewTargetAllocation()
	targets.Set(investool.TypeStock, investool.P(50))
	targets.Set(investool.TypeCash, investool.P(50))

	report, err := investool.NewDashboardReport(assets, book, targets, investool.NewRateTable("TWD"))
	if err != nil {
		t.Fatalf("NewDashboardReport() failed: %v", err)
	}
	return report
}

func TestDashboardMarkdown(t *testing.T) {
	got := DashboardMarkdown(demoReport(t))

	wantHeadings := []string{"Holdings", "Allocation", "Rebalancing"}
	gotHeadings := headings(t, got)
	for _, want := range wantHeadings {
		found := false
		for _, h := range gotHeadings {
			if h == want {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing %q section in:\n%s", want, got)
		}
	}

	for _, want := range []string{"2330.TW", "TWD-CASH", "stock", "cash", "sell", "buy"} {
		if !strings.Contains(got, want) {
			t.Errorf("dashboard misses %q in:\n%s", want, got)
		}
	}
}

func TestDashboardMarkdown_OnTarget(t *testing.T) {
	report := demoReport(t)
	report.Suggestions = nil
	got := DashboardMarkdown(report)
	if !strings.Contains(got, "Nothing to do") {
		t.Errorf("on-target dashboard should say there is nothing to do:\n%s", got)
	}
}

func TestDeploymentMarkdown(t *testing.T) {
	plan := []investool.DeploymentAction{
		{Type: investool.TypeStock, Suggested: investool.M(2000, "TWD")},
		{Type: investool.TypeCash, Suggested: investool.M(1000, "TWD"), Adjusted: investool.M(800, "TWD"), Ticker: "TWD-CASH"},
	}
	got := DeploymentMarkdown(plan, investool.M(3000, "TWD"))

	for _, want := range []string{"stock", "cash (TWD-CASH)"} {
		if !strings.Contains(got, want) {
			t.Errorf("deployment misses %q in:\n%s", want, got)
		}
	}
	if len(headings(t, got)) == 0 {
		t.Errorf("deployment has no title:\n%s", got)
	}
}

func TestLoanMarkdown(t *testing.T) {
	schedule, err := investool.AmortizationSchedule(decimal.NewFromInt(120000), 2.0, 3, date.New(2026, 1, 1))
	if err != nil {
		t.Fatalf("AmortizationSchedule() failed: %v", err)
	}
	got := LoanMarkdown(schedule)
	if !strings.Contains(got, "Amortization Schedule") {
		t.Errorf("loan report misses its title:\n%s", got)
	}
	// one row per month plus the header separator
	if rows := strings.Count(got, "\n|"); rows < len(schedule) {
		t.Errorf("loan table has %d rows, want at least %d", rows, len(schedule))
	}
}

func TestSearchMarkdown(t *testing.T) {
	got := SearchMarkdown("tsmc", []investool.SearchResult{
		{Symbol: "2330.TW", Name: "Taiwan Semiconductor", Exchange: "Taiwan", Kind: "EQUITY"},
	})
	if !strings.Contains(got, "2330.TW") {
		t.Errorf("search result table misses the symbol:\n%s", got)
	}

	empty := SearchMarkdown("nope", nil)
	if !strings.Contains(empty, "No match") {
		t.Errorf("empty search should say so:\n%s", empty)
	}
}
