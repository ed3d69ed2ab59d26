package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"finance-stress/internal/api/models"
	"finance-stress/internal/col"
	"finance-stress/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter wires the handlers against a temp database and a
// cost-of-living client whose upstream is unreachable, so city lookups use
// the generic profile.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	colClient := col.NewClient("http://127.0.0.1:1", "", 1*time.Second)

	snapshotHandler := NewSnapshotHandler(st, colClient)
	simulateHandler := NewSimulateHandler(st, 12)
	scenarioHandler := NewScenarioHandler()

	router := gin.New()
	api := router.Group("/api/v1")
	api.POST("/snapshots", snapshotHandler.Create)
	api.GET("/snapshots", snapshotHandler.List)
	api.GET("/snapshots/:id", snapshotHandler.Get)
	api.GET("/snapshots/:id/results", simulateHandler.Results)
	api.POST("/simulate", simulateHandler.Run)
	api.GET("/scenarios", scenarioHandler.List)
	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func createSnapshot(t *testing.T, router *gin.Engine) models.SnapshotResponse {
	t.Helper()
	essential := 2000.0
	rec := doJSON(t, router, http.MethodPost, "/api/v1/snapshots", models.SnapshotCreateRequest{
		City:                  "Testville, TS",
		MonthlyIncomeTakehome: 5000,
		EmergencyFundBalance:  10000,
		EssentialTotal:        &essential,
		DiscretionaryTotal:    1000,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var snap models.SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	require.NotEmpty(t, snap.ID)
	return snap
}

func TestCreateAndGetSnapshot(t *testing.T) {
	router := newTestRouter(t)
	snap := createSnapshot(t, router)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/snapshots/"+snap.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got models.SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, snap.ID, got.ID)
	assert.Equal(t, 2000.0, got.EssentialTotal)
	assert.NotEmpty(t, got.COLProfile)
}

func TestCreateSnapshotRequiresEssential(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/snapshots", models.SnapshotCreateRequest{
		City:                  "Testville, TS",
		MonthlyIncomeTakehome: 5000,
		DiscretionaryTotal:    500,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSnapshotCOLBaseline(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/snapshots", models.SnapshotCreateRequest{
		City:                  "Testville, TS",
		MonthlyIncomeTakehome: 5000,
		EmergencyFundBalance:  8000,
		DiscretionaryTotal:    500,
		UseCOLBaseline:        true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var snap models.SnapshotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &snap))
	// The generic profile's monthly total backfills essential expenses.
	assert.Equal(t, 2380.0, snap.EssentialTotal)
}

func TestSnapshotNotFound(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/snapshots/no-such-id", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSimulateDefaultCatalog(t *testing.T) {
	router := newTestRouter(t)
	snap := createSnapshot(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/simulate", models.SimulateRequest{
		SnapshotID: snap.ID,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 6)

	jobLoss := resp.Results[0]
	assert.Equal(t, "job_loss", jobLoss.ScenarioKind)
	assert.Equal(t, 3.33, jobLoss.RunwayMonths)
	require.NotNil(t, jobLoss.BreachMonth)
	assert.Equal(t, 4, *jobLoss.BreachMonth)
	assert.Equal(t, "medium", jobLoss.RiskLevel)
	assert.Len(t, jobLoss.BalanceSeries, 13)
	assert.LessOrEqual(t, len(jobLoss.TopLevers), 3)

	// Every run is persisted.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/snapshots/"+snap.ID+"/results", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history models.SimulateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Len(t, history.Results, 6)
}

func TestSimulateWithOverrides(t *testing.T) {
	router := newTestRouter(t)
	snap := createSnapshot(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/simulate", models.SimulateRequest{
		SnapshotID: snap.ID,
		Scenarios: []models.ScenarioSelection{
			{Kind: "one_time_emergency", Params: map[string]float64{"amount": 2500, "month": 2}},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp models.SimulateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, 2500.0, resp.Results[0].ScenarioParams["amount"])
	assert.Equal(t, 2.0, resp.Results[0].ScenarioParams["month"])
}

func TestSimulateUnknownScenario(t *testing.T) {
	router := newTestRouter(t)
	snap := createSnapshot(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/simulate", models.SimulateRequest{
		SnapshotID: snap.ID,
		Scenarios:  []models.ScenarioSelection{{Kind: "meteor_strike"}},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var errResp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "UNKNOWN_SCENARIO", errResp.Error.Code)
}

func TestSimulateUnknownScenarioPersistsNothing(t *testing.T) {
	router := newTestRouter(t)
	snap := createSnapshot(t, router)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/simulate", models.SimulateRequest{
		SnapshotID: snap.ID,
		Scenarios: []models.ScenarioSelection{
			{Kind: "job_loss"},
			{Kind: "meteor_strike"},
		},
	})
	require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

	// The valid selection that preceded the bad one must not leave a run
	// behind.
	rec = doJSON(t, router, http.MethodGet, "/api/v1/snapshots/"+snap.ID+"/results", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var history models.SimulateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	assert.Empty(t, history.Results)
}

func TestSimulateMissingSnapshot(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/simulate", models.SimulateRequest{
		SnapshotID: "no-such-id",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListScenarios(t *testing.T) {
	router := newTestRouter(t)
	rec := doJSON(t, router, http.MethodGet, "/api/v1/scenarios", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Scenarios []models.ScenarioInfo `json:"scenarios"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Scenarios, 6)
	assert.Equal(t, "job_loss", resp.Scenarios[0].Kind)
	assert.Equal(t, 0.0, resp.Scenarios[0].DefaultParams["income_multiplier"])
}
