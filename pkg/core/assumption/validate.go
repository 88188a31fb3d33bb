package assumption

import (
	"fmt"
	"strings"

	"saas_pnl/pkg/core/projection"
)

// Violation is one out-of-range input.
type Violation struct {
	Field string  `json:"field"`
	Value float64 `json:"value"`
	Min   float64 `json:"min"`
	Max   float64 `json:"max"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s=%g outside [%g, %g]", v.Field, v.Value, v.Min, v.Max)
}

// ValidationError aggregates every violation found in one pass.
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return "ASSUMPTION_OUT_OF_RANGE: " + strings.Join(parts, "; ")
}

// Validate checks inputs against the ranges the input surface offers.
// The engine accepts anything; callers opt into this check.
func Validate(a projection.Assumptions) error {
	var vs []Violation
	check := func(field string, value, min, max float64) {
		if value < min || value > max {
			vs = append(vs, Violation{Field: field, Value: value, Min: min, Max: max})
		}
	}

	check("founders", float64(a.Founders), 1, 10)
	check("founder_salary", a.FounderSalary, 0, 20_000_000)

	check("pricing.small", a.Pricing.Small, 500_000, 5_000_000)
	check("pricing.mid", a.Pricing.Mid, 2_000_000, 15_000_000)
	check("pricing.enterprise", a.Pricing.Enterprise, 10_000_000, 50_000_000)
	check("pricing.implementation_fee_pct", a.Pricing.ImplementationFeePct, 0, 100)

	check("mix.small_pct", a.Mix.SmallPct, 0, 100)
	check("mix.mid_pct", a.Mix.MidPct, 0, 100)
	check("mix.enterprise_pct", a.Mix.EnterprisePct(), 0, 100)

	check("deals_per_rep_quarter", a.DealsPerRepPerQuarter, 1, 10)

	for i, plan := range a.Headcount {
		prefix := fmt.Sprintf("headcount.year%d.", i+1)
		check(prefix+"sales", plan.Sales, 0, 50)
		check(prefix+"cs", plan.CustomerSuccess, 0, 50)
		check(prefix+"eng", plan.Engineering, 0, 50)
		check(prefix+"admin", plan.Admin, 0, 20)
	}

	check("compensation.sales", a.Compensation.Sales, 5_000_000, 20_000_000)
	check("compensation.cs", a.Compensation.CustomerSuccess, 4_000_000, 15_000_000)
	check("compensation.eng", a.Compensation.Engineering, 6_000_000, 20_000_000)
	check("compensation.admin", a.Compensation.Admin, 4_000_000, 15_000_000)

	check("retention.monthly_churn_pct", a.Retention.MonthlyChurnPct, 0, 10)
	check("retention.annual_expansion_pct", a.Retention.AnnualExpansionPct, 0, 50)

	check("costs.monthly_overhead", a.Costs.MonthlyOverhead, 0, 5_000_000)
	check("costs.cogs_pct", a.Costs.COGSPct, 0, 50)

	if len(vs) == 0 {
		return nil
	}
	return &ValidationError{Violations: vs}
}
