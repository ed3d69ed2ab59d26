package model

// Risk levels for a simulated runway.
const (
	RiskHigh   = "high"
	RiskMedium = "medium"
	RiskLow    = "low"
)

// RiskLevel classifies a runway:
// - high: less than 2 months
// - medium: 2 to 6 months
// - low: 6 months or more
//
// monthlyExpenses is part of the call contract for future expense-aware
// thresholds but is not used by the current rule.
func RiskLevel(runwayMonths float64, monthlyExpenses float64) string {
	switch {
	case runwayMonths < 2:
		return RiskHigh
	case runwayMonths < 6:
		return RiskMedium
	default:
		return RiskLow
	}
}
