package model

// SimulationResult captures the outcome of one scenario run.
// BalanceSeries has length HorizonMonths+1; index 0 is the starting balance.
// BreachMonth is nil when the balance never goes negative within the horizon.
type SimulationResult struct {
	RunwayMonths  float64
	BreachMonth   *int
	BalanceSeries []float64
	MinBalance    float64
	EndingBalance float64
}

// ImpactCategory classifies what a lever changes about the household's
// position. Keep these values stable; they are part of the API output.
type ImpactCategory string

const (
	ImpactExpenseReduction ImpactCategory = "expense_reduction"
	ImpactIncomeIncrease   ImpactCategory = "income_increase"
	ImpactEmergencyFund    ImpactCategory = "emergency_fund"
)

// Lever is a recommended intervention: a concrete change to the household's
// finances and the runway improvement it buys under the active scenario.
type Lever struct {
	Label           string
	Description     string
	NewRunwayMonths float64
	DeltaMonths     float64
	ImpactCategory  ImpactCategory
}
