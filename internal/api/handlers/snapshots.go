package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"finance-stress/internal/api/models"
	"finance-stress/internal/col"
	"finance-stress/internal/model"
	"finance-stress/internal/store"

	"github.com/gin-gonic/gin"
)

// SnapshotHandler handles snapshot-related requests
type SnapshotHandler struct {
	Store *store.Store
	COL   *col.Client
}

// NewSnapshotHandler creates a new snapshot handler
func NewSnapshotHandler(st *store.Store, colClient *col.Client) *SnapshotHandler {
	return &SnapshotHandler{Store: st, COL: colClient}
}

// Create handles POST /api/v1/snapshots
func (h *SnapshotHandler) Create(c *gin.Context) {
	var req models.SnapshotCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
		return
	}

	profile := h.COL.Profile(req.City)

	var essential float64
	switch {
	case req.EssentialTotal != nil:
		essential = *req.EssentialTotal
	case req.UseCOLBaseline:
		essential = profile.Total
	default:
		writeError(c, http.StatusBadRequest, "INVALID_REQUEST",
			"essential_total must be provided or use_col_baseline must be true")
		return
	}

	// Reject malformed amounts up front; the simulation core trusts its
	// input and does not re-validate.
	state := model.FinancialState{
		MonthlyIncome:         req.MonthlyIncomeTakehome,
		EmergencyFundBalance:  req.EmergencyFundBalance,
		EssentialExpenses:     essential,
		DiscretionaryExpenses: req.DiscretionaryTotal,
		HorizonMonths:         1,
	}
	if err := state.Validate(); err != nil {
		writeError(c, http.StatusBadRequest, "INVALID_SNAPSHOT", err.Error())
		return
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "INTERNAL_ERROR", err.Error())
		return
	}

	snap := store.Snapshot{
		City:                  req.City,
		MonthlyIncomeTakehome: req.MonthlyIncomeTakehome,
		EmergencyFundBalance:  req.EmergencyFundBalance,
		EssentialTotal:        essential,
		DiscretionaryTotal:    req.DiscretionaryTotal,
		COLProfileJSON:        string(profileJSON),
	}
	if err := h.Store.CreateSnapshot(&snap); err != nil {
		log.Printf("[Snapshots] Create failed: %v", err)
		writeError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		return
	}

	c.JSON(http.StatusCreated, snapshotResponse(snap))
}

// Get handles GET /api/v1/snapshots/:id
func (h *SnapshotHandler) Get(c *gin.Context) {
	snap, err := h.Store.GetSnapshot(c.Param("id"))
	if errors.Is(err, store.ErrSnapshotNotFound) {
		writeError(c, http.StatusNotFound, "SNAPSHOT_NOT_FOUND", "Snapshot not found")
		return
	}
	if err != nil {
		writeError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		return
	}
	c.JSON(http.StatusOK, snapshotResponse(snap))
}

// List handles GET /api/v1/snapshots
func (h *SnapshotHandler) List(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeError(c, http.StatusBadRequest, "INVALID_REQUEST", "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	snaps, err := h.Store.ListSnapshots(limit)
	if err != nil {
		writeError(c, http.StatusInternalServerError, "STORAGE_ERROR", err.Error())
		return
	}

	out := make([]models.SnapshotResponse, 0, len(snaps))
	for _, snap := range snaps {
		out = append(out, snapshotResponse(snap))
	}
	c.JSON(http.StatusOK, out)
}

func snapshotResponse(snap store.Snapshot) models.SnapshotResponse {
	resp := models.SnapshotResponse{
		ID:                    snap.ID,
		CreatedAt:             snap.CreatedAt,
		City:                  snap.City,
		MonthlyIncomeTakehome: snap.MonthlyIncomeTakehome,
		EmergencyFundBalance:  snap.EmergencyFundBalance,
		EssentialTotal:        snap.EssentialTotal,
		DiscretionaryTotal:    snap.DiscretionaryTotal,
	}
	if snap.COLProfileJSON != "" {
		resp.COLProfile = json.RawMessage(snap.COLProfileJSON)
	}
	return resp
}

func writeError(c *gin.Context, status int, code, message string) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
