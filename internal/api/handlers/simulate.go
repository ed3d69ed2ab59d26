package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"math"
	"net/http"

	"finance-stress/internal/api/models"
	"finance-stress/internal/lever"
	"finance-stress/internal/model"
	"finance-stress/internal/scenario"
	"finance-stress/internal/simulate"
	"finance-stress/internal/store"

	"github.com/gin-gonic/gin"
)

// SimulateHandler handles simulation requests
type SimulateHandler struct {
	Store *store.Store
	// HorizonMonths is the default simulation horizon when a request does
	// not specify one.
	HorizonMonths int
}

// NewSimulateHandler creates a new simulate handler
func NewSimulateHandler(st *store.Store, horizonMonths int) *SimulateHandler {
	return &SimulateHandler{Store: st, HorizonMonths: horizonMonths}
}

// Run handles POST /api/v1/simulate
func (h *SimulateHandler) Run(c *gin.Context) {
	var req models.SimulateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	snap, err := h.Store.GetSnapshot(req.SnapshotID)
	if errors.Is(err, store.ErrSnapshotNotFound) {
		writeError(c, http.StatusNotFound, "SNAPSHOT_NOT_FOUND", "Snapshot not found")
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		return
	}

	horizon := h.HorizonMonths
	if req.HorizonMonths > 0 {
		horizon = req.HorizonMonths
	}
	state := model.FinancialState{
		MonthlyIncome:         snap.MonthlyIncomeTakehome,
		EmergencyFundBalance:  snap.EmergencyFundBalance,
		EssentialExpenses:     snap.EssentialTotal,
		DiscretionaryExpenses: snap.DiscretionaryTotal,
		HorizonMonths:         horizon,
	}
	if err := state.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_SNAPSHOT", err.Error())
		return
	}

	selections := req.Scenarios
	if len(selections) == 0 {
		for _, def := range scenario.Definitions() {
			selections = append(selections, models.ScenarioSelection{Kind: string(def.Kind)})
		}
	}

	// Resolve every selection before running anything, so a bad kind
	// anywhere in the list rejects the whole request without persisting
	// runs for the selections that preceded it.
	resolvedScenarios := make([]scenario.Resolved, 0, len(selections))
	for _, sel := range selections {
		resolved, err := scenario.Resolve(scenario.Kind(sel.Kind), sel.Params)
		var unknown *scenario.UnknownScenarioError
		if errors.As(err, &unknown) {
			writeError(c, http.StatusBadRequest, "UNKNOWN_SCENARIO", unknown.Error())
			return
		}
		if err != nil {
			writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
			return
		}
		resolvedScenarios = append(resolvedScenarios, resolved)
	}

	engine := simulate.New()
	results := make([]models.ScenarioResult, 0, len(resolvedScenarios))
	for _, resolved := range resolvedScenarios {
		simResult := engine.Run(state, resolved)
		risk := model.RiskLevel(simResult.RunwayMonths, state.TotalMonthlyExpenses())
		levers := lever.Recommend(state, resolved, simResult.RunwayMonths)
		results = append(results, scenarioResult(resolved, simResult, risk, levers))
	}

	for i, resolved := range resolvedScenarios {
		if err := h.saveRun(snap.ID, resolved, results[i]); err != nil {
			log.Printf("[Simulate] Persisting run failed: %v", err)
			writeError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error())
			return
		}
	}

	c.JSON(http.StatusOK, models.SimulateResponse{
		SnapshotID: snap.ID,
		Results:    results,
	})
}

// Results handles GET /api/v1/snapshots/:id/results
func (h *SimulateHandler) Results(c *gin.Context) {
	snapshotID := c.Param("id")
	if _, err := h.Store.GetSnapshot(snapshotID); err != nil {
		if errors.Is(err, store.ErrSnapshotNotFound) {
			writeError(c, http.StatusNotFound, "SNAPSHOT_NOT_FOUND", "Snapshot not found")
			return
		}
		writeError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		return
	}

	runs, err := h.Store.ListRuns(snapshotID)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		return
	}

	results := make([]models.ScenarioResult, 0, len(runs))
	for _, run := range runs {
		var result models.ScenarioResult
		if err := json.Unmarshal([]byte(run.ResultsJSON), &result); err != nil {
			writeError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error())
			return
		}
		results = append(results, result)
	}

	c.JSON(http.StatusOK, models.SimulateResponse{
		SnapshotID: snapshotID,
		Results:    results,
	})
}

func (h *SimulateHandler) saveRun(snapshotID string, resolved scenario.Resolved, result models.ScenarioResult) error {
	paramsJSON, err := json.Marshal(resolved.ParamsMap())
	if err != nil {
		return err
	}
	resultsJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return h.Store.SaveRun(&store.SimulationRun{
		SnapshotID:   snapshotID,
		ScenarioKind: string(resolved.Kind),
		ParamsJSON:   string(paramsJSON),
		ResultsJSON:  string(resultsJSON),
	})
}

// scenarioResult converts a core result into its API shape. Monetary values
// and runways are rounded to 2 decimals here; the core keeps full precision.
func scenarioResult(resolved scenario.Resolved, simResult model.SimulationResult, risk string, levers []model.Lever) models.ScenarioResult {
	series := make([]float64, len(simResult.BalanceSeries))
	for i, b := range simResult.BalanceSeries {
		series[i] = round2(b)
	}

	top := make([]models.LeverView, 0, len(levers))
	for _, lv := range levers {
		top = append(top, models.LeverView{
			Label:           lv.Label,
			Description:     lv.Description,
			NewRunwayMonths: round2(lv.NewRunwayMonths),
			DeltaMonths:     round2(lv.DeltaMonths),
			ImpactCategory:  string(lv.ImpactCategory),
		})
	}

	return models.ScenarioResult{
		ScenarioKind:   string(resolved.Kind),
		ScenarioParams: resolved.ParamsMap(),
		RunwayMonths:   round2(simResult.RunwayMonths),
		BreachMonth:    simResult.BreachMonth,
		BalanceSeries:  series,
		RiskLevel:      risk,
		MinBalance:     round2(simResult.MinBalance),
		EndingBalance:  round2(simResult.EndingBalance),
		TopLevers:      top,
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
