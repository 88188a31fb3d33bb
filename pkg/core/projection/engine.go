package projection

import "math"

// ProjectionEngine runs the monthly P&L recurrence.
// It holds no state between runs; every run starts from zero customers and zero MRR.
type ProjectionEngine struct {
	months int
}

// NewProjectionEngine creates an engine for the standard 36-month horizon
func NewProjectionEngine() *ProjectionEngine {
	return &ProjectionEngine{months: Months}
}

// Run projects the assumptions over 36 months with a fresh engine.
func Run(a Assumptions) []MonthlyRecord {
	return NewProjectionEngine().Run(a)
}

// runState is the only state carried from one month to the next.
type runState struct {
	activeCustomers float64
	mrr             float64
}

// Run produces one MonthlyRecord per month, in month order starting at 1.
// Inputs are not validated: out-of-range values propagate arithmetically.
func (e *ProjectionEngine) Run(a Assumptions) []MonthlyRecord {
	blendedACV := BlendedACV(a)
	monthlyACV := blendedACV / 12
	founders := float64(a.Founders)

	records := make([]MonthlyRecord, 0, e.months)
	state := runState{}

	for month := 1; month <= e.months; month++ {
		year := YearOf(month)
		team := a.TeamFor(year)

		// -------------------------------------------------------------------------
		// Customers: deals close only in the last month of each quarter
		// -------------------------------------------------------------------------
		newCustomers := 0.0
		if IsQuarterClose(month) {
			salesCapacity := team.Sales + founders
			newCustomers = salesCapacity * a.DealsPerRepPerQuarter
		}

		churned := state.activeCustomers * (a.Retention.MonthlyChurnPct / 100)
		active := state.activeCustomers - churned + newCustomers

		// -------------------------------------------------------------------------
		// MRR: churn and acquisition at blended ACV, expansion on last month's MRR
		// -------------------------------------------------------------------------
		newMRR := newCustomers * monthlyACV
		churnedMRR := churned * monthlyACV
		expansionMRR := 0.0
		if month > 1 {
			expansionMRR = state.mrr * (a.Retention.AnnualExpansionPct / 100 / 12)
		}

		mrr := math.Max(0, state.mrr-churnedMRR+newMRR+expansionMRR)
		arr := mrr * 12

		// -------------------------------------------------------------------------
		// Revenue & Costs
		// -------------------------------------------------------------------------
		implFees := newCustomers * blendedACV * (a.Pricing.ImplementationFeePct / 100)
		totalRevenue := mrr + implFees

		cogs := mrr * (a.Costs.COGSPct / 100)
		personnel := personnelCost(a, team)
		totalCosts := personnel + cogs + a.Costs.MonthlyOverhead

		grossProfit := totalRevenue - cogs
		operatingProfit := totalRevenue - totalCosts

		records = append(records, MonthlyRecord{
			Month:              month,
			Year:               year,
			Quarter:            QuarterLabel(month),
			NewCustomers:       newCustomers,
			ChurnedCustomers:   churned,
			ActiveCustomers:    active,
			NewMRR:             newMRR,
			ChurnedMRR:         churnedMRR,
			ExpansionMRR:       expansionMRR,
			MRR:                mrr,
			ARR:                arr,
			ImplementationFees: implFees,
			TotalRevenue:       totalRevenue,
			COGS:               cogs,
			PersonnelCosts:     personnel,
			Overhead:           a.Costs.MonthlyOverhead,
			TotalCosts:         totalCosts,
			GrossProfit:        grossProfit,
			OperatingProfit:    operatingProfit,
			GrossMargin:        safePercent(grossProfit, totalRevenue),
			OperatingMargin:    safePercent(operatingProfit, totalRevenue),
			TeamSize:           team.Total() + founders,
		})

		state = runState{activeCustomers: active, mrr: mrr}
	}

	return records
}

// personnelCost is the monthly payroll of the planned team plus founders.
func personnelCost(a Assumptions, team TeamPlan) float64 {
	c := a.Compensation
	return team.Sales*c.Sales/12 +
		team.CustomerSuccess*c.CustomerSuccess/12 +
		team.Engineering*c.Engineering/12 +
		team.Admin*c.Admin/12 +
		float64(a.Founders)*a.FounderSalary/12
}
