package simulate

import (
	"math"

	"finance-stress/internal/model"
	"finance-stress/internal/scenario"
)

type Engine struct{}

func New() *Engine { return &Engine{} }

// Run simulates the household's balance month by month under the resolved
// scenario. Pure: identical inputs produce identical output to full numeric
// precision, so callers are free to run scenarios or lever candidates in
// parallel.
func (e *Engine) Run(state model.FinancialState, sc scenario.Resolved) model.SimulationResult {
	balance := state.EmergencyFundBalance
	series := make([]float64, 0, state.HorizonMonths+1)
	series = append(series, balance)

	var breach *int
	for m := 1; m <= state.HorizonMonths; m++ {
		income := monthIncome(state, sc, m)
		expenses := monthExpenses(state, sc, m)
		shock := oneTimeShock(sc, m)

		balance = balance + income - expenses - shock
		series = append(series, balance)

		// Only the first breach is recorded.
		if breach == nil && balance < 0 {
			month := m
			breach = &month
		}
	}

	minBalance := series[0]
	for _, b := range series[1:] {
		if b < minBalance {
			minBalance = b
		}
	}

	return model.SimulationResult{
		RunwayMonths:  runwayMonths(series, state.HorizonMonths),
		BreachMonth:   breach,
		BalanceSeries: series,
		MinBalance:    minBalance,
		EndingBalance: series[len(series)-1],
	}
}

// monthIncome returns the household's income for month m. Income-shock
// scenarios scale income by their multiplier once the shock has started.
func monthIncome(state model.FinancialState, sc scenario.Resolved, m int) float64 {
	if p, ok := sc.Params.(scenario.IncomeShock); ok && m >= p.StartMonth {
		return state.MonthlyIncome * p.IncomeMultiplier
	}
	return state.MonthlyIncome
}

// monthExpenses returns total expenses for month m. Only essential expenses
// are ever perturbed; discretionary spending passes through unchanged.
func monthExpenses(state model.FinancialState, sc scenario.Resolved, m int) float64 {
	essential := state.EssentialExpenses

	switch p := sc.Params.(type) {
	case scenario.RentIncrease:
		if m >= p.StartMonth {
			// Housing is modeled as a fixed 35% of essential expenses.
			housingPortion := essential * 0.35
			essential += housingPortion * p.IncreasePercent
		}
	case scenario.InflationSpike:
		// Compounding is recomputed from the unadjusted base each month
		// rather than chaining the previous month's inflated value.
		// Downstream consumers depend on this exact series; see the
		// engine tests before changing it.
		essential = essential * math.Pow(1+p.MonthlyIncreaseRate, float64(m))
	}

	return essential + state.DiscretionaryExpenses
}

// oneTimeShock returns the one-off expense for month m, nonzero only for the
// emergency scenario in its exact month.
func oneTimeShock(sc scenario.Resolved, m int) float64 {
	if p, ok := sc.Params.(scenario.OneTimeEmergency); ok && m == p.Month {
		return p.Amount
	}
	return 0
}

// runwayMonths finds the first zero crossing of the balance series and
// interpolates linearly between the two samples around it. A trajectory that
// never crosses runs the full horizon; one that starts negative has no
// runway at all. Later recoveries and re-crossings do not extend the runway.
func runwayMonths(series []float64, horizon int) float64 {
	for i := 0; i+1 < len(series); i++ {
		if series[i] >= 0 && series[i+1] < 0 {
			decline := series[i] - series[i+1]
			if decline > 0 {
				return float64(i) + series[i]/decline
			}
		}
	}
	if series[len(series)-1] >= 0 {
		return float64(horizon)
	}
	return 0.0
}
