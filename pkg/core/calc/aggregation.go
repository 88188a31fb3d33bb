package calc

import "saas_pnl/pkg/core/projection"

// AnnualRollup groups records by year of operation, in year order.
func AnnualRollup(records []projection.MonthlyRecord) []AnnualSummary {
	var out []AnnualSummary

	for _, r := range records {
		if len(out) == 0 || out[len(out)-1].Year != r.Year {
			out = append(out, AnnualSummary{Year: r.Year})
		}
		s := &out[len(out)-1]

		// 1. Flows
		s.NewCustomers += r.NewCustomers
		s.ImplementationFees += r.ImplementationFees
		s.TotalRevenue += r.TotalRevenue
		s.COGS += r.COGS
		s.PersonnelCosts += r.PersonnelCosts
		s.TotalCosts += r.TotalCosts
		s.GrossProfit += r.GrossProfit
		s.OperatingProfit += r.OperatingProfit

		// 2. Stocks (overwritten until the year's last month)
		s.ActiveCustomers = r.ActiveCustomers
		s.MRR = r.MRR
		s.ARR = r.ARR
		s.TeamSize = r.TeamSize
	}

	for i := range out {
		out[i].OperatingMargin = marginPct(out[i].OperatingProfit, out[i].TotalRevenue)
	}
	return out
}

// QuarterlyRollup sums revenue, costs and operating profit per quarter label, in month order.
func QuarterlyRollup(records []projection.MonthlyRecord) []QuarterlySummary {
	var out []QuarterlySummary

	for _, r := range records {
		if len(out) == 0 || out[len(out)-1].Quarter != r.Quarter {
			out = append(out, QuarterlySummary{Quarter: r.Quarter})
		}
		q := &out[len(out)-1]
		q.TotalRevenue += r.TotalRevenue
		q.TotalCosts += r.TotalCosts
		q.OperatingProfit += r.OperatingProfit
	}
	return out
}

// Headline picks the key metrics from the final year of the run.
func Headline(records []projection.MonthlyRecord, goal float64) HeadlineMetrics {
	h := HeadlineMetrics{ARRGoal: goal}
	if len(records) == 0 {
		return h
	}

	for _, r := range records {
		if r.Year == projection.Years {
			h.Year3ARR = r.ARR
		}
	}
	if goal > 0 {
		h.GoalAttainmentPct = h.Year3ARR / goal * 100
	}

	last := records[len(records)-1]
	h.FinalMRR = last.MRR
	h.FinalActiveCustomers = last.ActiveCustomers
	h.FinalOperatingMargin = last.OperatingMargin
	return h
}

func marginPct(profit, revenue float64) float64 {
	if revenue > 0 {
		return profit / revenue * 100
	}
	return 0
}
