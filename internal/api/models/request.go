package models

// SnapshotCreateRequest represents the request body for creating a snapshot.
// EssentialTotal may be omitted when UseCOLBaseline is set; the cost-of-living
// profile for the city then supplies it.
type SnapshotCreateRequest struct {
	City                  string   `json:"city" binding:"required"`
	MonthlyIncomeTakehome float64  `json:"monthly_income_takehome"`
	EmergencyFundBalance  float64  `json:"emergency_fund_balance"`
	EssentialTotal        *float64 `json:"essential_total,omitempty"`
	DiscretionaryTotal    float64  `json:"discretionary_total"`
	UseCOLBaseline        bool     `json:"use_col_baseline,omitempty"`
}

// SimulateRequest represents the request body for running simulations.
// An empty scenario list runs the full default catalog.
type SimulateRequest struct {
	SnapshotID    string              `json:"snapshot_id" binding:"required"`
	Scenarios     []ScenarioSelection `json:"scenarios,omitempty"`
	HorizonMonths int                 `json:"horizon_months,omitempty"` // 0 = server default
}

// ScenarioSelection picks one scenario kind with optional parameter
// overrides. Override keys the kind does not define are echoed back in the
// resolved parameters and otherwise ignored.
type ScenarioSelection struct {
	Kind   string             `json:"kind" binding:"required"`
	Params map[string]float64 `json:"params,omitempty"`
}
