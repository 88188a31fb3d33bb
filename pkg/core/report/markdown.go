package report

import (
	"fmt"
	"strings"
)

// Markdown renders the report as GitHub-flavored Markdown tables:
// key metrics, unit economics, the annual summary and the monthly detail.
func (r *Report) Markdown(f *Formatter) string {
	if f == nil {
		f = NewFormatter("")
	}

	var b strings.Builder
	b.WriteString("# SaaS P&L Projection\n\n")
	fmt.Fprintf(&b, "Run `%s` generated %s\n\n", r.RunID, r.GeneratedAt.Format("2006-01-02 15:04 MST"))

	// -------------------------------------------------------------------------
	// Key Metrics
	// -------------------------------------------------------------------------
	h := r.Headline
	b.WriteString("## Key Metrics\n\n")
	writeRow(&b, "Metric", "Value")
	writeSeparator(&b, 2)
	writeRow(&b, "Year 3 ARR", fmt.Sprintf("%s (%s of %s goal)",
		f.YenMillions(h.Year3ARR, 1), f.Number(h.GoalAttainmentPct, 0)+"%", f.YenMillions(h.ARRGoal, 0)))
	writeRow(&b, "Final MRR", f.YenMillions(h.FinalMRR, 1))
	writeRow(&b, "Active customers (end of year 3)", f.Number(h.FinalActiveCustomers, 0))
	writeRow(&b, "Operating margin (final month)", f.Percent(h.FinalOperatingMargin))
	b.WriteString("\n")

	// -------------------------------------------------------------------------
	// Unit Economics
	// -------------------------------------------------------------------------
	ue := r.UnitEconomics
	b.WriteString("## Unit Economics\n\n")
	writeRow(&b, "Metric", "Value")
	writeSeparator(&b, 2)
	writeRow(&b, "Blended ACV", f.YenMillions(ue.BlendedACV, 2))
	writeRow(&b, "Estimated CAC", f.YenMillions(ue.CAC, 2))
	writeRow(&b, "LTV", f.YenMillions(ue.LTV, 2))
	writeRow(&b, "LTV:CAC", f.Number(ue.LTVToCAC, 1)+"x")
	writeRow(&b, "Average lifetime (months)", f.Number(ue.AvgLifetimeMonths, 1))
	b.WriteString("\n")

	// -------------------------------------------------------------------------
	// Annual Summary (¥M, 1 decimal)
	// -------------------------------------------------------------------------
	b.WriteString("## Annual Summary\n\n")
	writeRow(&b, "Year", "New Customers", "Active Customers (EoP)", "ARR (¥M)",
		"Revenue (¥M)", "Costs (¥M)", "Operating Profit (¥M)", "Team Size", "Operating Margin %")
	writeSeparator(&b, 9)
	for _, y := range r.Annual {
		writeRow(&b,
			fmt.Sprintf("%d", y.Year),
			f.Number(y.NewCustomers, 0),
			f.Number(y.ActiveCustomers, 1),
			f.Millions(y.ARR, 1),
			f.Millions(y.TotalRevenue, 1),
			f.Millions(y.TotalCosts, 1),
			f.Millions(y.OperatingProfit, 1),
			f.Number(y.TeamSize, 0),
			f.Number(y.OperatingMargin, 1),
		)
	}
	b.WriteString("\n")

	// -------------------------------------------------------------------------
	// Monthly Detail (¥M, 2 decimals)
	// -------------------------------------------------------------------------
	b.WriteString("## Monthly Detail\n\n")
	writeRow(&b, "Month", "Quarter", "New Customers", "Active Customers",
		"MRR (¥M)", "ARR (¥M)", "Revenue (¥M)", "Costs (¥M)", "Operating Profit (¥M)", "Operating Margin %")
	writeSeparator(&b, 10)
	for _, m := range r.Months {
		writeRow(&b,
			fmt.Sprintf("%d", m.Month),
			m.Quarter,
			f.Number(m.NewCustomers, 0),
			f.Number(m.ActiveCustomers, 1),
			f.Millions(m.MRR, 2),
			f.Millions(m.ARR, 2),
			f.Millions(m.TotalRevenue, 2),
			f.Millions(m.TotalCosts, 2),
			f.Millions(m.OperatingProfit, 2),
			f.Number(m.OperatingMargin, 1),
		)
	}

	return b.String()
}

func writeRow(b *strings.Builder, cells ...string) {
	b.WriteString("| ")
	b.WriteString(strings.Join(cells, " | "))
	b.WriteString(" |\n")
}

func writeSeparator(b *strings.Builder, n int) {
	b.WriteString("|")
	b.WriteString(strings.Repeat(" --- |", n))
	b.WriteString("\n")
}
