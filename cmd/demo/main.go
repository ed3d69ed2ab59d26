package main

import (
	"fmt"

	"finance-stress/internal/lever"
	"finance-stress/internal/model"
	"finance-stress/internal/scenario"
	"finance-stress/internal/simulate"
)

// Demo:
// - Build a sample household
// - Run every default scenario against it
// - Print runway, risk, and top levers to show how the pieces fit together
func main() {
	state := model.FinancialState{
		MonthlyIncome:         5000,
		EmergencyFundBalance:  10000,
		EssentialExpenses:     2500,
		DiscretionaryExpenses: 1000,
		HorizonMonths:         12,
	}

	fmt.Println("Household:")
	fmt.Printf("  income: $%.0f/month, fund: $%.0f\n", state.MonthlyIncome, state.EmergencyFundBalance)
	fmt.Printf("  essential: $%.0f/month, discretionary: $%.0f/month, horizon: %d months\n\n",
		state.EssentialExpenses, state.DiscretionaryExpenses, state.HorizonMonths)

	engine := simulate.New()
	for _, def := range scenario.Definitions() {
		resolved, err := scenario.Resolve(def.Kind, nil)
		if err != nil {
			panic(err)
		}

		result := engine.Run(state, resolved)
		risk := model.RiskLevel(result.RunwayMonths, state.TotalMonthlyExpenses())

		fmt.Printf("%s: runway %.2f months, risk %s", def.Name, result.RunwayMonths, risk)
		if result.BreachMonth != nil {
			fmt.Printf(", breach in month %d", *result.BreachMonth)
		}
		fmt.Println()

		for i, lv := range lever.Recommend(state, resolved, result.RunwayMonths) {
			fmt.Printf("  lever %d: %s (+%.2f months)\n", i+1, lv.Label, lv.DeltaMonths)
		}
	}
}
