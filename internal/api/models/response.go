package models

import (
	"encoding/json"
	"time"
)

// SnapshotResponse represents a persisted snapshot.
type SnapshotResponse struct {
	ID                    string          `json:"id"`
	CreatedAt             time.Time       `json:"created_at"`
	City                  string          `json:"city"`
	MonthlyIncomeTakehome float64         `json:"monthly_income_takehome"`
	EmergencyFundBalance  float64         `json:"emergency_fund_balance"`
	EssentialTotal        float64         `json:"essential_total"`
	DiscretionaryTotal    float64         `json:"discretionary_total"`
	COLProfile            json.RawMessage `json:"col_profile,omitempty"`
}

// SimulateResponse represents the response from a simulation request.
type SimulateResponse struct {
	SnapshotID string           `json:"snapshot_id"`
	Results    []ScenarioResult `json:"results"`
}

// ScenarioResult contains the outcome of one scenario, with monetary values
// rounded to 2 decimals for display.
type ScenarioResult struct {
	ScenarioKind   string             `json:"scenario_kind"`
	ScenarioParams map[string]float64 `json:"scenario_params"`
	RunwayMonths   float64            `json:"runway_months"`
	BreachMonth    *int               `json:"breach_month,omitempty"`
	BalanceSeries  []float64          `json:"balance_series"`
	RiskLevel      string             `json:"risk_level"`
	MinBalance     float64            `json:"min_balance"`
	EndingBalance  float64            `json:"ending_balance"`
	TopLevers      []LeverView        `json:"top_levers"`
}

// LeverView represents one recommended intervention.
type LeverView struct {
	Label           string  `json:"label"`
	Description     string  `json:"description"`
	NewRunwayMonths float64 `json:"new_runway_months"`
	DeltaMonths     float64 `json:"delta_months"`
	ImpactCategory  string  `json:"impact_category"`
}

// ScenarioInfo describes one catalog entry for listing.
type ScenarioInfo struct {
	Kind          string             `json:"kind"`
	Name          string             `json:"name"`
	Description   string             `json:"description"`
	DefaultParams map[string]float64 `json:"default_params"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
