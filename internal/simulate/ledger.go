package simulate

import (
	"finance-stress/internal/model"
	"finance-stress/internal/scenario"
)

// MonthRow is one month of simulated cash flow. This is the primary artifact
// for "what happened" in a run, used by the CLI's CSV output.
type MonthRow struct {
	Month    int
	Income   float64
	Expenses float64
	Shock    float64
	Net      float64
	Balance  float64
}

// Ledger produces the per-month breakdown behind Run's balance series.
// Row m corresponds to BalanceSeries[m].
func (e *Engine) Ledger(state model.FinancialState, sc scenario.Resolved) []MonthRow {
	rows := make([]MonthRow, 0, state.HorizonMonths)
	balance := state.EmergencyFundBalance

	for m := 1; m <= state.HorizonMonths; m++ {
		income := monthIncome(state, sc, m)
		expenses := monthExpenses(state, sc, m)
		shock := oneTimeShock(sc, m)
		net := income - expenses - shock
		balance += net

		rows = append(rows, MonthRow{
			Month:    m,
			Income:   income,
			Expenses: expenses,
			Shock:    shock,
			Net:      net,
			Balance:  balance,
		})
	}
	return rows
}
