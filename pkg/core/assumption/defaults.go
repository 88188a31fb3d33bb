package assumption

import "saas_pnl/pkg/core/projection"

// FounderSalary is the fixed annual compensation of each founder (¥).
const FounderSalary = 1_000_000

// Default returns the baseline scenario: two founders selling alongside a
// small engineering team in year 1, scaling sales and CS in years 2 and 3.
func Default() projection.Assumptions {
	return projection.Assumptions{
		Founders:      2,
		FounderSalary: FounderSalary,
		Pricing: projection.Pricing{
			Small:                1_500_000,
			Mid:                  5_000_000,
			Enterprise:           20_000_000,
			ImplementationFeePct: 30,
		},
		Mix: projection.Mix{
			SmallPct: 50,
			MidPct:   35,
		},
		DealsPerRepPerQuarter: 3,
		Headcount: [projection.Years]projection.TeamPlan{
			{Sales: 0, CustomerSuccess: 0, Engineering: 2, Admin: 0},
			{Sales: 2, CustomerSuccess: 2, Engineering: 4, Admin: 1},
			{Sales: 4, CustomerSuccess: 4, Engineering: 6, Admin: 2},
		},
		Compensation: projection.Compensation{
			Sales:           8_000_000,
			CustomerSuccess: 6_000_000,
			Engineering:     9_000_000,
			Admin:           6_000_000,
		},
		Retention: projection.Retention{
			MonthlyChurnPct:    2,
			AnnualExpansionPct: 10,
		},
		Costs: projection.Costs{
			MonthlyOverhead: 500_000,
			COGSPct:         15,
		},
	}
}
