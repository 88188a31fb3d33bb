// Package calc derives aggregates from a finished projection run.
// Every function here is a pure read over the monthly records; none of them
// recompute carried state (active customers, MRR).
package calc

// =============================================================================
// AGGREGATE STRUCTURES
// =============================================================================

// AnnualSummary is one row of the yearly rollup.
// Flow lines are summed over the year; stock lines take the last month.
type AnnualSummary struct {
	Year int `json:"year"`

	// Flows (Sum)
	NewCustomers       float64 `json:"new_customers"`
	ImplementationFees float64 `json:"impl_fees"`
	TotalRevenue       float64 `json:"total_revenue"`
	COGS               float64 `json:"cogs"`
	PersonnelCosts     float64 `json:"personnel_costs"`
	TotalCosts         float64 `json:"total_costs"`
	GrossProfit        float64 `json:"gross_profit"`
	OperatingProfit    float64 `json:"operating_profit"`

	// Stocks (Last Month)
	ActiveCustomers float64 `json:"active_customers"`
	MRR             float64 `json:"mrr"`
	ARR             float64 `json:"arr"`
	TeamSize        float64 `json:"team_size"`

	OperatingMargin float64 `json:"operating_margin"` // %, 0 when revenue is 0
}

// QuarterlySummary is one bar group of the quarterly P&L chart.
type QuarterlySummary struct {
	Quarter         string  `json:"quarter"`
	TotalRevenue    float64 `json:"total_revenue"`
	TotalCosts      float64 `json:"total_costs"`
	OperatingProfit float64 `json:"operating_profit"`
}

// UnitEconomics summarizes per-customer value against acquisition cost.
type UnitEconomics struct {
	BlendedACV        float64 `json:"blended_acv"`
	SalesCost         float64 `json:"sales_cost"`          // personnel cost attributed to selling
	TotalNewCustomers float64 `json:"total_new_customers"` // acquired over the run
	CAC               float64 `json:"cac"`
	AvgLifetimeMonths float64 `json:"avg_lifetime_months"`
	LTV               float64 `json:"ltv"`
	LTVToCAC          float64 `json:"ltv_to_cac"`
}

// HeadlineMetrics are the key figures shown above the charts.
type HeadlineMetrics struct {
	ARRGoal              float64 `json:"arr_goal"`
	Year3ARR             float64 `json:"year3_arr"`
	GoalAttainmentPct    float64 `json:"goal_attainment_pct"`
	FinalMRR             float64 `json:"final_mrr"`
	FinalActiveCustomers float64 `json:"final_active_customers"`
	FinalOperatingMargin float64 `json:"final_operating_margin"`
}

// DefaultARRGoal is the year-3 ARR target (¥100M).
const DefaultARRGoal = 100_000_000
