package scenario

// Kind identifies a stress scenario. Keep these values stable; they are
// used in API payloads and persisted run history.
type Kind string

const (
	// KindBaseline is the implicit no-shock scenario. It is not part of the
	// default catalog and cannot be resolved; it exists for baseline
	// trajectories and tests.
	KindBaseline Kind = "baseline"

	KindJobLoss          Kind = "job_loss"
	KindIncomeCut20      Kind = "income_cut_20"
	KindIncomeCut40      Kind = "income_cut_40"
	KindRentIncrease     Kind = "rent_increase"
	KindOneTimeEmergency Kind = "one_time_emergency"
	KindInflationSpike   Kind = "inflation_spike"
)

// Params is the per-kind parameter set. It is a closed union: the simulation
// engine dispatches on the concrete type, so an unsupported parameter name is
// a compile error rather than a silent misspelled map key.
type Params interface {
	isParams()
}

// Baseline has no parameters; income and expenses run unperturbed.
type Baseline struct{}

// IncomeShock scales income by IncomeMultiplier from StartMonth onward.
// Shared by job_loss (multiplier 0.0) and the income_cut kinds.
type IncomeShock struct {
	StartMonth       int
	IncomeMultiplier float64
}

// RentIncrease raises the housing portion of essential expenses by
// IncreasePercent from StartMonth onward.
type RentIncrease struct {
	StartMonth      int
	IncreasePercent float64
}

// OneTimeEmergency applies a single shock of Amount in exactly Month.
type OneTimeEmergency struct {
	Month  int
	Amount float64
}

// InflationSpike compounds essential expenses by MonthlyIncreaseRate.
type InflationSpike struct {
	MonthlyIncreaseRate float64
}

func (Baseline) isParams()         {}
func (IncomeShock) isParams()      {}
func (RentIncrease) isParams()     {}
func (OneTimeEmergency) isParams() {}
func (InflationSpike) isParams()   {}

// Resolved is a fully-resolved scenario: defaults merged with caller
// overrides. Extra carries override keys the kind does not define; they are
// kept verbatim for round-tripping and ignored by the simulation engine.
type Resolved struct {
	Kind   Kind
	Params Params
	Extra  map[string]float64
}

// ParamsMap flattens the resolved parameters (including Extra) into the
// key/value shape used in API responses and persisted run history.
func (r Resolved) ParamsMap() map[string]float64 {
	out := map[string]float64{}
	switch p := r.Params.(type) {
	case IncomeShock:
		out["start_month"] = float64(p.StartMonth)
		out["income_multiplier"] = p.IncomeMultiplier
	case RentIncrease:
		out["start_month"] = float64(p.StartMonth)
		out["increase_percent"] = p.IncreasePercent
	case OneTimeEmergency:
		out["month"] = float64(p.Month)
		out["amount"] = p.Amount
	case InflationSpike:
		out["monthly_increase_rate"] = p.MonthlyIncreaseRate
	}
	for k, v := range r.Extra {
		out[k] = v
	}
	return out
}
