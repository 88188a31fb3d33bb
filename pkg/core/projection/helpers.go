package projection

import "fmt"

// BlendedACV is the mix-weighted average annual contract value.
func BlendedACV(a Assumptions) float64 {
	return a.Pricing.Small*(a.Mix.SmallPct/100) +
		a.Pricing.Mid*(a.Mix.MidPct/100) +
		a.Pricing.Enterprise*(a.Mix.EnterprisePct()/100)
}

// YearOf returns the 1-based year of operation of a 1-based month.
func YearOf(month int) int {
	return (month-1)/MonthsPerYear + 1
}

// QuarterLabel formats a 1-based month as "Y{year}Q{quarter}".
func QuarterLabel(month int) string {
	idx := month - 1
	return fmt.Sprintf("Y%dQ%d", idx/MonthsPerYear+1, idx%MonthsPerYear/MonthsPerQuarter+1)
}

// IsQuarterClose reports whether deals close in the given 1-based month.
func IsQuarterClose(month int) bool {
	return (month-1)%MonthsPerQuarter == MonthsPerQuarter-1
}

// safePercent returns part/whole*100, or 0 when whole is not positive.
func safePercent(part, whole float64) float64 {
	if whole > 0 {
		return part / whole * 100
	}
	return 0
}
