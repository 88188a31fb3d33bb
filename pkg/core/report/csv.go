package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"saas_pnl/pkg/core/projection"
)

var csvHeader = []string{
	"month", "year", "quarter",
	"new_customers", "churned_customers", "active_customers",
	"new_mrr", "churned_mrr", "expansion_mrr",
	"mrr", "arr", "impl_fees", "total_revenue",
	"cogs", "personnel_costs", "overhead", "total_costs",
	"gross_profit", "operating_profit", "gross_margin", "operating_margin",
	"team_size",
}

// WriteCSV writes one row per month with full precision, header first.
func WriteCSV(w io.Writer, records []projection.MonthlyRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for _, r := range records {
		row := []string{
			strconv.Itoa(r.Month), strconv.Itoa(r.Year), r.Quarter,
			num(r.NewCustomers), num(r.ChurnedCustomers), num(r.ActiveCustomers),
			num(r.NewMRR), num(r.ChurnedMRR), num(r.ExpansionMRR),
			num(r.MRR), num(r.ARR), num(r.ImplementationFees), num(r.TotalRevenue),
			num(r.COGS), num(r.PersonnelCosts), num(r.Overhead), num(r.TotalCosts),
			num(r.GrossProfit), num(r.OperatingProfit), num(r.GrossMargin), num(r.OperatingMargin),
			num(r.TeamSize),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv month %d: %w", r.Month, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
