package calc

import "saas_pnl/pkg/core/projection"

// DefaultLifetimeMonths is the assumed customer lifetime when churn is zero.
const DefaultLifetimeMonths = 60

// CalculateUnitEconomics estimates CAC, LTV and their ratio for a run.
//
// Sales cost is a rough allocation: total personnel cost scaled by
// (sales headcount-years + founder-years) / (3 × (all planned headcount + founders)).
// The founders term in the denominator is counted once, not per year.
func CalculateUnitEconomics(a projection.Assumptions, records []projection.MonthlyRecord) UnitEconomics {
	ue := UnitEconomics{BlendedACV: projection.BlendedACV(a)}

	var totalPersonnel float64
	for _, r := range records {
		totalPersonnel += r.PersonnelCosts
		ue.TotalNewCustomers += r.NewCustomers
	}

	founders := float64(a.Founders)
	var salesYears, allHeadcount float64
	for _, plan := range a.Headcount {
		salesYears += plan.Sales
		allHeadcount += plan.Total()
	}
	salesYears += founders * projection.Years

	if denom := projection.Years * (allHeadcount + founders); denom != 0 {
		ue.SalesCost = totalPersonnel * salesYears / denom
	}

	if ue.TotalNewCustomers > 0 {
		ue.CAC = ue.SalesCost / ue.TotalNewCustomers
	}

	ue.AvgLifetimeMonths = DefaultLifetimeMonths
	if churn := a.Retention.MonthlyChurnPct; churn > 0 {
		ue.AvgLifetimeMonths = 1 / (churn / 100)
	}
	ue.LTV = ue.BlendedACV / 12 * ue.AvgLifetimeMonths

	if ue.CAC > 0 {
		ue.LTVToCAC = ue.LTV / ue.CAC
	}
	return ue
}
