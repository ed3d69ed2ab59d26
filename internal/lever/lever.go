package lever

import (
	"fmt"
	"math"
	"sort"

	"finance-stress/internal/model"
	"finance-stress/internal/scenario"
	"finance-stress/internal/simulate"
)

// materialityThreshold drops levers whose runway improvement is too small to
// be worth recommending.
const materialityThreshold = 0.1

// maxLevers caps the recommendation list.
const maxLevers = 3

// A generator evaluates one candidate intervention against the baseline
// runway. It returns false when the candidate does not apply to this
// household/scenario or its improvement is immaterial.
type generator func(state model.FinancialState, sc scenario.Resolved, baseline float64, eng *simulate.Engine) (model.Lever, bool)

// Recommend evaluates the fixed candidate set against the baseline runway
// and returns up to three levers, best improvement first. Candidates are
// independent: each re-runs the simulation on its own modified copy of the
// state, and no interaction between candidates is modeled. Ties keep
// generation order.
func Recommend(state model.FinancialState, sc scenario.Resolved, baselineRunway float64) []model.Lever {
	eng := simulate.New()
	generators := []generator{
		cutDiscretionary30,
		cutDiscretionary50,
		reduceHousing,
		addSideIncome,
		buildEmergencyFund,
	}

	levers := make([]model.Lever, 0, len(generators))
	for _, gen := range generators {
		if lv, ok := gen(state, sc, baselineRunway, eng); ok {
			levers = append(levers, lv)
		}
	}

	sort.SliceStable(levers, func(i, j int) bool {
		return levers[i].DeltaMonths > levers[j].DeltaMonths
	})
	if len(levers) > maxLevers {
		levers = levers[:maxLevers]
	}
	return levers
}

func cutDiscretionary30(state model.FinancialState, sc scenario.Resolved, baseline float64, eng *simulate.Engine) (model.Lever, bool) {
	return cutDiscretionary(state, sc, baseline, eng, 0.30)
}

func cutDiscretionary50(state model.FinancialState, sc scenario.Resolved, baseline float64, eng *simulate.Engine) (model.Lever, bool) {
	return cutDiscretionary(state, sc, baseline, eng, 0.50)
}

func cutDiscretionary(state model.FinancialState, sc scenario.Resolved, baseline float64, eng *simulate.Engine, cut float64) (model.Lever, bool) {
	if state.DiscretionaryExpenses <= 0 {
		return model.Lever{}, false
	}

	modified := state
	modified.DiscretionaryExpenses = state.DiscretionaryExpenses * (1 - cut)
	result := eng.Run(modified, sc)

	delta := result.RunwayMonths - baseline
	if delta <= materialityThreshold {
		return model.Lever{}, false
	}
	return model.Lever{
		Label: fmt.Sprintf("Cut discretionary spending by %.0f%%", cut*100),
		Description: fmt.Sprintf("Reduce discretionary expenses from $%.0f to $%.0f/month",
			state.DiscretionaryExpenses, modified.DiscretionaryExpenses),
		NewRunwayMonths: result.RunwayMonths,
		DeltaMonths:     delta,
		ImpactCategory:  model.ImpactExpenseReduction,
	}, true
}

func reduceHousing(state model.FinancialState, sc scenario.Resolved, baseline float64, eng *simulate.Engine) (model.Lever, bool) {
	// Cap the saving at 15% of essential expenses, and skip the lever
	// entirely when the saving would be trivial.
	savings := math.Min(300, state.EssentialExpenses*0.15)
	if savings <= 100 {
		return model.Lever{}, false
	}

	modified := state
	modified.EssentialExpenses = state.EssentialExpenses - savings
	result := eng.Run(modified, sc)

	delta := result.RunwayMonths - baseline
	if delta <= materialityThreshold {
		return model.Lever{}, false
	}
	return model.Lever{
		Label:           fmt.Sprintf("Reduce housing costs by $%.0f/month", savings),
		Description:     "Get a roommate or move to cheaper housing",
		NewRunwayMonths: result.RunwayMonths,
		DeltaMonths:     delta,
		ImpactCategory:  model.ImpactExpenseReduction,
	}, true
}

func addSideIncome(state model.FinancialState, sc scenario.Resolved, baseline float64, eng *simulate.Engine) (model.Lever, bool) {
	// Side income only moves the needle when the scenario cuts income.
	if _, ok := sc.Params.(scenario.IncomeShock); !ok {
		return model.Lever{}, false
	}

	const sideIncome = 400.0
	modified := state
	modified.MonthlyIncome = state.MonthlyIncome + sideIncome
	result := eng.Run(modified, sc)

	delta := result.RunwayMonths - baseline
	if delta <= materialityThreshold {
		return model.Lever{}, false
	}
	return model.Lever{
		Label:           fmt.Sprintf("Add side income (+$%.0f/month)", sideIncome),
		Description:     "Freelance work, gig economy, or part-time job",
		NewRunwayMonths: result.RunwayMonths,
		DeltaMonths:     delta,
		ImpactCategory:  model.ImpactIncomeIncrease,
	}, true
}

func buildEmergencyFund(state model.FinancialState, sc scenario.Resolved, baseline float64, eng *simulate.Engine) (model.Lever, bool) {
	total := state.TotalMonthlyExpenses()
	if total <= 0 {
		return model.Lever{}, false
	}
	if state.EmergencyFundBalance/total >= 3 {
		return model.Lever{}, false
	}

	target := total * 3
	increase := target - state.EmergencyFundBalance

	modified := state
	modified.EmergencyFundBalance = target
	result := eng.Run(modified, sc)

	delta := result.RunwayMonths - baseline
	if delta <= materialityThreshold {
		return model.Lever{}, false
	}
	return model.Lever{
		Label: "Build emergency fund to 3 months expenses",
		Description: fmt.Sprintf("Increase emergency fund by $%.0f (to $%.0f total)",
			increase, target),
		NewRunwayMonths: result.RunwayMonths,
		DeltaMonths:     delta,
		ImpactCategory:  model.ImpactEmergencyFund,
	}, true
}
