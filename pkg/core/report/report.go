package report

import (
	"time"

	"github.com/google/uuid"

	"saas_pnl/pkg/core/assumption"
	"saas_pnl/pkg/core/calc"
	"saas_pnl/pkg/core/projection"
)

// Report bundles one engine run with its derived aggregates.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`

	Assumptions assumption.Document `json:"assumptions"`
	BlendedACV  float64             `json:"blended_acv"`

	Months        []projection.MonthlyRecord `json:"months"`
	Annual        []calc.AnnualSummary       `json:"annual"`
	Quarterly     []calc.QuarterlySummary    `json:"quarterly"`
	UnitEconomics calc.UnitEconomics         `json:"unit_economics"`
	Headline      calc.HeadlineMetrics       `json:"headline"`
}

// Build runs the engine once and derives every aggregate from that single run.
func Build(a projection.Assumptions, goal float64) *Report {
	records := projection.Run(a)
	return FromRecords(a, records, goal)
}

// FromRecords wraps an existing run. records must come from projection.Run(a).
func FromRecords(a projection.Assumptions, records []projection.MonthlyRecord, goal float64) *Report {
	return &Report{
		RunID:         uuid.New().String(),
		GeneratedAt:   time.Now().UTC(),
		Assumptions:   assumption.FromAssumptions(a),
		BlendedACV:    projection.BlendedACV(a),
		Months:        records,
		Annual:        calc.AnnualRollup(records),
		Quarterly:     calc.QuarterlyRollup(records),
		UnitEconomics: calc.CalculateUnitEconomics(a, records),
		Headline:      calc.Headline(records, goal),
	}
}
