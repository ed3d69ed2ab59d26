package scenario

import "fmt"

// Definition describes one catalog entry: a scenario kind with its display
// name and default parameters.
type Definition struct {
	Kind        Kind
	Name        string
	Description string
	Defaults    Params
}

// UnknownScenarioError is returned when a kind outside the catalog is
// resolved. It is the registry's only error condition.
type UnknownScenarioError struct {
	Kind Kind
}

func (e *UnknownScenarioError) Error() string {
	return fmt.Sprintf("unknown scenario kind: %q", e.Kind)
}

// Definitions returns the default scenario catalog in its stable order.
// Callers get a fresh slice each call; the defaults are value types, so a
// resolution can never mutate the catalog.
func Definitions() []Definition {
	return []Definition{
		{
			Kind:        KindJobLoss,
			Name:        "Job Loss",
			Description: "Complete loss of income starting immediately",
			Defaults:    IncomeShock{StartMonth: 1, IncomeMultiplier: 0.0},
		},
		{
			Kind:        KindIncomeCut20,
			Name:        "20% Income Reduction",
			Description: "Income reduced by 20% (pay cut, reduced hours)",
			Defaults:    IncomeShock{StartMonth: 1, IncomeMultiplier: 0.8},
		},
		{
			Kind:        KindIncomeCut40,
			Name:        "40% Income Reduction",
			Description: "Income reduced by 40% (major pay cut)",
			Defaults:    IncomeShock{StartMonth: 1, IncomeMultiplier: 0.6},
		},
		{
			Kind:        KindRentIncrease,
			Name:        "Rent/Housing Increase",
			Description: "Housing costs increase by 15%",
			Defaults:    RentIncrease{StartMonth: 1, IncreasePercent: 0.15},
		},
		{
			Kind:        KindOneTimeEmergency,
			Name:        "Emergency Expense",
			Description: "Unexpected $1,500 expense (medical, car repair, etc.)",
			Defaults:    OneTimeEmergency{Month: 1, Amount: 1500},
		},
		{
			Kind:        KindInflationSpike,
			Name:        "Inflation Spike",
			Description: "Essential expenses increase by 5% per year",
			Defaults:    InflationSpike{MonthlyIncreaseRate: 0.05 / 12},
		},
	}
}

// Lookup finds a catalog definition by kind.
func Lookup(kind Kind) (Definition, error) {
	for _, def := range Definitions() {
		if def.Kind == kind {
			return def, nil
		}
	}
	return Definition{}, &UnknownScenarioError{Kind: kind}
}

// Resolve merges caller overrides over the catalog defaults for kind.
// Override keys the kind defines replace the default value; keys it does not
// define are passed through in Resolved.Extra. The catalog defaults are
// never mutated.
func Resolve(kind Kind, overrides map[string]float64) (Resolved, error) {
	def, err := Lookup(kind)
	if err != nil {
		return Resolved{}, err
	}

	resolved := Resolved{Kind: kind, Params: def.Defaults}
	for key, val := range overrides {
		if !resolved.apply(key, val) {
			if resolved.Extra == nil {
				resolved.Extra = map[string]float64{}
			}
			resolved.Extra[key] = val
		}
	}
	return resolved, nil
}

// apply sets one override key on the typed params. Returns false when the
// kind does not define the key.
func (r *Resolved) apply(key string, val float64) bool {
	switch p := r.Params.(type) {
	case IncomeShock:
		switch key {
		case "start_month":
			p.StartMonth = int(val)
		case "income_multiplier":
			p.IncomeMultiplier = val
		default:
			return false
		}
		r.Params = p
	case RentIncrease:
		switch key {
		case "start_month":
			p.StartMonth = int(val)
		case "increase_percent":
			p.IncreasePercent = val
		default:
			return false
		}
		r.Params = p
	case OneTimeEmergency:
		switch key {
		case "month":
			p.Month = int(val)
		case "amount":
			p.Amount = val
		default:
			return false
		}
		r.Params = p
	case InflationSpike:
		switch key {
		case "monthly_increase_rate":
			p.MonthlyIncreaseRate = val
		default:
			return false
		}
		r.Params = p
	default:
		return false
	}
	return true
}
