package simulate

import (
	"math"
	"testing"

	"finance-stress/internal/model"
	"finance-stress/internal/scenario"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testState() model.FinancialState {
	return model.FinancialState{
		MonthlyIncome:         5000,
		EmergencyFundBalance:  10000,
		EssentialExpenses:     2000,
		DiscretionaryExpenses: 1000,
		HorizonMonths:         12,
	}
}

func baseline() scenario.Resolved {
	return scenario.Resolved{Kind: scenario.KindBaseline, Params: scenario.Baseline{}}
}

func mustResolve(t *testing.T, kind scenario.Kind, overrides map[string]float64) scenario.Resolved {
	t.Helper()
	resolved, err := scenario.Resolve(kind, overrides)
	require.NoError(t, err)
	return resolved
}

func TestRunDeterministic(t *testing.T) {
	engine := New()
	sc := mustResolve(t, scenario.KindInflationSpike, nil)

	first := engine.Run(testState(), sc)
	second := engine.Run(testState(), sc)

	// Bit-identical, not merely approximately equal.
	require.Equal(t, first, second)
}

func TestBaselineNoShockGrowth(t *testing.T) {
	engine := New()
	result := engine.Run(testState(), baseline())

	assert.Equal(t, 12.0, result.RunwayMonths)
	assert.Nil(t, result.BreachMonth)
	require.Len(t, result.BalanceSeries, 13)
	assert.Equal(t, 10000.0, result.BalanceSeries[0])
	assert.Greater(t, result.EndingBalance, result.BalanceSeries[0])
}

func TestJobLossRunway(t *testing.T) {
	engine := New()
	result := engine.Run(testState(), mustResolve(t, scenario.KindJobLoss, nil))

	// Monthly burn is 3000 against a 10000 fund.
	assert.InDelta(t, 10000.0/3000.0, result.RunwayMonths, 1e-9)
	require.NotNil(t, result.BreachMonth)
	assert.Equal(t, 4, *result.BreachMonth)
}

func TestRunwayExactInterpolation(t *testing.T) {
	state := model.FinancialState{
		MonthlyIncome:        0,
		EmergencyFundBalance: 3500,
		EssentialExpenses:    1000,
		HorizonMonths:        12,
	}
	engine := New()
	result := engine.Run(state, mustResolve(t, scenario.KindJobLoss, nil))

	// 3500 at month 3, -500 at month 4: crossing at exactly 3.5.
	assert.Equal(t, 3.5, result.RunwayMonths)
	require.NotNil(t, result.BreachMonth)
	assert.Equal(t, 4, *result.BreachMonth)
}

func TestOneTimeEmergencyIsolation(t *testing.T) {
	const amount = 1500.0
	const month = 3

	engine := New()
	shocked := engine.Run(testState(), mustResolve(t, scenario.KindOneTimeEmergency,
		map[string]float64{"month": month, "amount": amount}))
	unshocked := engine.Run(testState(), baseline())

	for i := range shocked.BalanceSeries {
		if i < month {
			assert.Equal(t, unshocked.BalanceSeries[i], shocked.BalanceSeries[i], "month %d", i)
		} else {
			// The shock shifts every later balance by exactly its amount;
			// no month is affected twice.
			assert.Equal(t, unshocked.BalanceSeries[i]-amount, shocked.BalanceSeries[i], "month %d", i)
		}
	}
}

// Inflation recomputes (1+rate)^m from the unadjusted base every month. True
// month-over-month chaining of the already-inflated value would give
// base*(1+rate)^(m(m+1)/2) instead; this pins down the intended series.
func TestInflationCompoundsFromBaseEachMonth(t *testing.T) {
	const rate = 0.01
	state := testState()
	engine := New()
	result := engine.Run(state, mustResolve(t, scenario.KindInflationSpike,
		map[string]float64{"monthly_increase_rate": rate}))

	balance := state.EmergencyFundBalance
	for m := 1; m <= state.HorizonMonths; m++ {
		expenses := state.EssentialExpenses*math.Pow(1+rate, float64(m)) + state.DiscretionaryExpenses
		balance = balance + state.MonthlyIncome - expenses
		assert.InDelta(t, balance, result.BalanceSeries[m], 1e-9, "month %d", m)
	}
}

func TestRentIncreaseOnHousingPortion(t *testing.T) {
	state := testState()
	engine := New()
	result := engine.Run(state, mustResolve(t, scenario.KindRentIncrease, nil))

	// Housing is 35% of essential; a 15% increase on it costs
	// 2000 * 0.35 * 0.15 = 105 extra per month.
	monthlyNet := state.MonthlyIncome - (state.EssentialExpenses + 105 + state.DiscretionaryExpenses)
	assert.InDelta(t, state.EmergencyFundBalance+monthlyNet, result.BalanceSeries[1], 1e-9)
}

func TestIncomeShockStartMonth(t *testing.T) {
	state := testState()
	engine := New()
	result := engine.Run(state, mustResolve(t, scenario.KindJobLoss,
		map[string]float64{"start_month": 4}))

	// Months 1-3 keep full income (+2000 net); the shock starts in month 4.
	assert.InDelta(t, 12000.0, result.BalanceSeries[1], 1e-9)
	assert.InDelta(t, 16000.0, result.BalanceSeries[3], 1e-9)
	assert.InDelta(t, 13000.0, result.BalanceSeries[4], 1e-9)
}

func TestFirstCrossingOnlyEvenAfterRecovery(t *testing.T) {
	// A large early shock breaches the fund; positive cash flow then
	// recovers it. Runway still measures the first crossing.
	state := model.FinancialState{
		MonthlyIncome:        3000,
		EmergencyFundBalance: 1000,
		EssentialExpenses:    2000,
		HorizonMonths:        12,
	}
	engine := New()
	result := engine.Run(state, mustResolve(t, scenario.KindOneTimeEmergency,
		map[string]float64{"month": 1, "amount": 5000}))

	require.NotNil(t, result.BreachMonth)
	assert.Equal(t, 1, *result.BreachMonth)
	assert.InDelta(t, 0.25, result.RunwayMonths, 1e-9)
	assert.Greater(t, result.EndingBalance, 0.0)
}

func TestMinBalanceAndEndingBalance(t *testing.T) {
	engine := New()
	result := engine.Run(testState(), mustResolve(t, scenario.KindJobLoss, nil))

	minBalance := result.BalanceSeries[0]
	for _, b := range result.BalanceSeries {
		if b < minBalance {
			minBalance = b
		}
	}
	assert.Equal(t, minBalance, result.MinBalance)
	assert.Equal(t, result.BalanceSeries[len(result.BalanceSeries)-1], result.EndingBalance)
}

func TestLedgerMatchesBalanceSeries(t *testing.T) {
	engine := New()
	sc := mustResolve(t, scenario.KindIncomeCut40, nil)

	result := engine.Run(testState(), sc)
	rows := engine.Ledger(testState(), sc)

	require.Len(t, rows, 12)
	for i, row := range rows {
		assert.Equal(t, i+1, row.Month)
		assert.Equal(t, result.BalanceSeries[i+1], row.Balance, "month %d", i+1)
		assert.InDelta(t, row.Income-row.Expenses-row.Shock, row.Net, 1e-12)
	}
}

func TestRiskLevels(t *testing.T) {
	assert.Equal(t, model.RiskHigh, model.RiskLevel(1.5, 3000))
	assert.Equal(t, model.RiskMedium, model.RiskLevel(2.0, 3000))
	assert.Equal(t, model.RiskMedium, model.RiskLevel(5.999, 3000))
	assert.Equal(t, model.RiskLow, model.RiskLevel(6.0, 3000))
}
