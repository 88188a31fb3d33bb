// Package projection implements the monthly SaaS P&L projection engine.
// A run folds one immutable Assumptions value into 36 MonthlyRecords,
// carrying active customers and MRR from month to month.
package projection

const (
	Months           = 36
	MonthsPerYear    = 12
	MonthsPerQuarter = 3
	Years            = Months / MonthsPerYear
)

// Pricing holds the annual contract value (ACV) of each customer tier.
type Pricing struct {
	Small      float64 // ¥ per year
	Mid        float64 // ¥ per year
	Enterprise float64 // ¥ per year

	ImplementationFeePct float64 // % of ACV, billed once per new customer
}

// Mix is the customer tier split. Enterprise is the remainder.
type Mix struct {
	SmallPct float64
	MidPct   float64
}

// EnterprisePct returns 100 - small - mid. It is not clamped, so inputs
// above 100 yield a negative share.
func (m Mix) EnterprisePct() float64 {
	return 100 - m.SmallPct - m.MidPct
}

// TeamPlan is the planned headcount per role for one year of operation,
// excluding founders.
type TeamPlan struct {
	Sales           float64
	CustomerSuccess float64
	Engineering     float64
	Admin           float64
}

// Total returns the planned headcount across all roles.
func (t TeamPlan) Total() float64 {
	return t.Sales + t.CustomerSuccess + t.Engineering + t.Admin
}

// Compensation is the fixed annual salary per role.
type Compensation struct {
	Sales           float64
	CustomerSuccess float64
	Engineering     float64
	Admin           float64
}

// Retention drivers.
type Retention struct {
	MonthlyChurnPct    float64 // % of active customers lost per month
	AnnualExpansionPct float64 // % of MRR, applied pro-rata monthly
}

// Costs holds the non-personnel cost structure.
type Costs struct {
	MonthlyOverhead float64 // ¥ per month
	COGSPct         float64 // % of MRR
}

// Assumptions is the complete input of one projection run.
// Founders always count as additional sales capacity.
type Assumptions struct {
	Founders      int
	FounderSalary float64 // ¥ per year per founder

	Pricing Pricing
	Mix     Mix

	DealsPerRepPerQuarter float64

	// Headcount[0] is year 1, Headcount[2] is year 3.
	Headcount    [Years]TeamPlan
	Compensation Compensation

	Retention Retention
	Costs     Costs
}

// TeamFor returns the headcount plan of a 1-based year of operation.
// Years past the plan reuse the last planned year.
func (a Assumptions) TeamFor(year int) TeamPlan {
	switch {
	case year <= 1:
		return a.Headcount[0]
	case year >= Years:
		return a.Headcount[Years-1]
	default:
		return a.Headcount[year-1]
	}
}

// MonthlyRecord is one simulated month of the projection.
type MonthlyRecord struct {
	Month   int    `json:"month"`
	Year    int    `json:"year"`
	Quarter string `json:"quarter"`

	NewCustomers     float64 `json:"new_customers"`
	ChurnedCustomers float64 `json:"churned_customers"`
	ActiveCustomers  float64 `json:"active_customers"`

	// MRR movement for the month. MRR = max(0, prev - ChurnedMRR + NewMRR + ExpansionMRR).
	NewMRR       float64 `json:"new_mrr"`
	ChurnedMRR   float64 `json:"churned_mrr"`
	ExpansionMRR float64 `json:"expansion_mrr"`

	MRR                float64 `json:"mrr"`
	ARR                float64 `json:"arr"`
	ImplementationFees float64 `json:"impl_fees"`
	TotalRevenue       float64 `json:"total_revenue"`

	COGS           float64 `json:"cogs"`
	PersonnelCosts float64 `json:"personnel_costs"`
	Overhead       float64 `json:"overhead"`
	TotalCosts     float64 `json:"total_costs"`

	GrossProfit     float64 `json:"gross_profit"`
	OperatingProfit float64 `json:"operating_profit"`
	GrossMargin     float64 `json:"gross_margin"`     // %
	OperatingMargin float64 `json:"operating_margin"` // %

	TeamSize float64 `json:"team_size"`
}
