// Package assumption implements the input side of the P&L calculator:
// defaults, scenario documents (JSON / YAML / HJSON) and optional bounds checks.
// The projection engine never calls into this package.
package assumption

import "saas_pnl/pkg/core/projection"

// =============================================================================
// SCENARIO DOCUMENT (Serializable, Partial Overlay)
// =============================================================================

// Document is the serialized form of projection.Assumptions.
// Every leaf is a pointer so a partial document only overrides what it sets.
type Document struct {
	Founders              *int          `json:"founders,omitempty" yaml:"founders,omitempty"`
	FounderSalary         *float64      `json:"founder_salary,omitempty" yaml:"founder_salary,omitempty"`
	Pricing               *PricingDoc   `json:"pricing,omitempty" yaml:"pricing,omitempty"`
	Mix                   *MixDoc       `json:"mix,omitempty" yaml:"mix,omitempty"`
	DealsPerRepPerQuarter *float64      `json:"deals_per_rep_quarter,omitempty" yaml:"deals_per_rep_quarter,omitempty"`
	Headcount             *HeadcountDoc `json:"headcount,omitempty" yaml:"headcount,omitempty"`
	Compensation          *RolesDoc     `json:"compensation,omitempty" yaml:"compensation,omitempty"`
	Retention             *RetentionDoc `json:"retention,omitempty" yaml:"retention,omitempty"`
	Costs                 *CostsDoc     `json:"costs,omitempty" yaml:"costs,omitempty"`
}

type PricingDoc struct {
	Small                *float64 `json:"small,omitempty" yaml:"small,omitempty"`
	Mid                  *float64 `json:"mid,omitempty" yaml:"mid,omitempty"`
	Enterprise           *float64 `json:"enterprise,omitempty" yaml:"enterprise,omitempty"`
	ImplementationFeePct *float64 `json:"implementation_fee_pct,omitempty" yaml:"implementation_fee_pct,omitempty"`
}

type MixDoc struct {
	SmallPct *float64 `json:"small_pct,omitempty" yaml:"small_pct,omitempty"`
	MidPct   *float64 `json:"mid_pct,omitempty" yaml:"mid_pct,omitempty"`
}

// RolesDoc is used both for a year's headcount plan and for compensation.
type RolesDoc struct {
	Sales           *float64 `json:"sales,omitempty" yaml:"sales,omitempty"`
	CustomerSuccess *float64 `json:"cs,omitempty" yaml:"cs,omitempty"`
	Engineering     *float64 `json:"eng,omitempty" yaml:"eng,omitempty"`
	Admin           *float64 `json:"admin,omitempty" yaml:"admin,omitempty"`
}

type HeadcountDoc struct {
	Year1 *RolesDoc `json:"year1,omitempty" yaml:"year1,omitempty"`
	Year2 *RolesDoc `json:"year2,omitempty" yaml:"year2,omitempty"`
	Year3 *RolesDoc `json:"year3,omitempty" yaml:"year3,omitempty"`
}

type RetentionDoc struct {
	MonthlyChurnPct    *float64 `json:"monthly_churn_pct,omitempty" yaml:"monthly_churn_pct,omitempty"`
	AnnualExpansionPct *float64 `json:"annual_expansion_pct,omitempty" yaml:"annual_expansion_pct,omitempty"`
}

type CostsDoc struct {
	MonthlyOverhead *float64 `json:"monthly_overhead,omitempty" yaml:"monthly_overhead,omitempty"`
	COGSPct         *float64 `json:"cogs_pct,omitempty" yaml:"cogs_pct,omitempty"`
}

// Apply overlays the document on base and returns the result. base is not modified.
func (d Document) Apply(base projection.Assumptions) projection.Assumptions {
	a := base

	setInt(&a.Founders, d.Founders)
	setFloat(&a.FounderSalary, d.FounderSalary)
	setFloat(&a.DealsPerRepPerQuarter, d.DealsPerRepPerQuarter)

	if p := d.Pricing; p != nil {
		setFloat(&a.Pricing.Small, p.Small)
		setFloat(&a.Pricing.Mid, p.Mid)
		setFloat(&a.Pricing.Enterprise, p.Enterprise)
		setFloat(&a.Pricing.ImplementationFeePct, p.ImplementationFeePct)
	}
	if m := d.Mix; m != nil {
		setFloat(&a.Mix.SmallPct, m.SmallPct)
		setFloat(&a.Mix.MidPct, m.MidPct)
	}
	if h := d.Headcount; h != nil {
		for i, year := range []*RolesDoc{h.Year1, h.Year2, h.Year3} {
			if year == nil {
				continue
			}
			plan := &a.Headcount[i]
			setFloat(&plan.Sales, year.Sales)
			setFloat(&plan.CustomerSuccess, year.CustomerSuccess)
			setFloat(&plan.Engineering, year.Engineering)
			setFloat(&plan.Admin, year.Admin)
		}
	}
	if c := d.Compensation; c != nil {
		setFloat(&a.Compensation.Sales, c.Sales)
		setFloat(&a.Compensation.CustomerSuccess, c.CustomerSuccess)
		setFloat(&a.Compensation.Engineering, c.Engineering)
		setFloat(&a.Compensation.Admin, c.Admin)
	}
	if r := d.Retention; r != nil {
		setFloat(&a.Retention.MonthlyChurnPct, r.MonthlyChurnPct)
		setFloat(&a.Retention.AnnualExpansionPct, r.AnnualExpansionPct)
	}
	if c := d.Costs; c != nil {
		setFloat(&a.Costs.MonthlyOverhead, c.MonthlyOverhead)
		setFloat(&a.Costs.COGSPct, c.COGSPct)
	}

	return a
}

// FromAssumptions builds a fully populated document.
func FromAssumptions(a projection.Assumptions) Document {
	roles := func(t projection.TeamPlan) *RolesDoc {
		return &RolesDoc{
			Sales:           ptr(t.Sales),
			CustomerSuccess: ptr(t.CustomerSuccess),
			Engineering:     ptr(t.Engineering),
			Admin:           ptr(t.Admin),
		}
	}

	return Document{
		Founders:      ptr(a.Founders),
		FounderSalary: ptr(a.FounderSalary),
		Pricing: &PricingDoc{
			Small:                ptr(a.Pricing.Small),
			Mid:                  ptr(a.Pricing.Mid),
			Enterprise:           ptr(a.Pricing.Enterprise),
			ImplementationFeePct: ptr(a.Pricing.ImplementationFeePct),
		},
		Mix: &MixDoc{
			SmallPct: ptr(a.Mix.SmallPct),
			MidPct:   ptr(a.Mix.MidPct),
		},
		DealsPerRepPerQuarter: ptr(a.DealsPerRepPerQuarter),
		Headcount: &HeadcountDoc{
			Year1: roles(a.Headcount[0]),
			Year2: roles(a.Headcount[1]),
			Year3: roles(a.Headcount[2]),
		},
		Compensation: roles(projection.TeamPlan(a.Compensation)),
		Retention: &RetentionDoc{
			MonthlyChurnPct:    ptr(a.Retention.MonthlyChurnPct),
			AnnualExpansionPct: ptr(a.Retention.AnnualExpansionPct),
		},
		Costs: &CostsDoc{
			MonthlyOverhead: ptr(a.Costs.MonthlyOverhead),
			COGSPct:         ptr(a.Costs.COGSPct),
		},
	}
}

func ptr[T any](v T) *T { return &v }

func setFloat(dst *float64, src *float64) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}
