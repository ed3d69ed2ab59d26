package handlers

import (
	"net/http"

	"finance-stress/internal/api/models"
	"finance-stress/internal/scenario"

	"github.com/gin-gonic/gin"
)

// ScenarioHandler handles scenario catalog requests
type ScenarioHandler struct{}

// NewScenarioHandler creates a new scenario handler
func NewScenarioHandler() *ScenarioHandler {
	return &ScenarioHandler{}
}

// List handles GET /api/v1/scenarios
func (h *ScenarioHandler) List(c *gin.Context) {
	defs := scenario.Definitions()
	out := make([]models.ScenarioInfo, 0, len(defs))
	for _, def := range defs {
		resolved := scenario.Resolved{Kind: def.Kind, Params: def.Defaults}
		out = append(out, models.ScenarioInfo{
			Kind:          string(def.Kind),
			Name:          def.Name,
			Description:   def.Description,
			DefaultParams: resolved.ParamsMap(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"scenarios": out})
}
