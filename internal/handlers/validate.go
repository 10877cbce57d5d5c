package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/terminal-bench/truckconfig/internal/engine"
	"github.com/terminal-bench/truckconfig/internal/models"
)

// ValidateHandler exposes the configuration engine: compatibility
// validation with fix planning, selection summaries, and toggle semantics.
type ValidateHandler struct {
	engine     *engine.Engine
	modelStore ModelStore
	catalog    engine.CatalogStore
}

// NewValidateHandler creates a new validation handler
func NewValidateHandler(eng *engine.Engine, modelStore ModelStore, catalog engine.CatalogStore) *ValidateHandler {
	return &ValidateHandler{engine: eng, modelStore: modelStore, catalog: catalog}
}

type selectionRequest struct {
	ModelID         string   `json:"modelId" binding:"required"`
	SelectedOptions []string `json:"selectedOptions"`
}

// Validate checks a selection against all applicable rules and returns the
// issues together with a fix plan. A store failure is reported as 502, never
// as an empty issue list.
func (h *ValidateHandler) Validate(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "modelId is required"})
		return
	}
	ctx := c.Request.Context()

	result, err := h.engine.Validate(ctx, req.SelectedOptions)
	if err != nil {
		if engine.IsStoreUnavailable(err) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "validation stores unavailable"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "validation failed"})
		return
	}

	plan, planWarnings, err := h.engine.PlanFix(ctx, result, req.ModelID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "fix planning failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"issues":   result.Issues,
		"valid":    result.Valid(),
		"warnings": append(result.Warnings, planWarnings...),
		"fixPlan":  plan,
	})
}

// Summary aggregates a selection into cost, weight, and per-category
// performance averages.
func (h *ValidateHandler) Summary(c *gin.Context) {
	var req selectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "modelId is required"})
		return
	}
	model, catalog, ok := h.loadModelCatalog(c, req.ModelID)
	if !ok {
		return
	}

	sel := engine.NewSelection(catalog, req.SelectedOptions)
	c.JSON(http.StatusOK, engine.Aggregate(sel, model))
}

type toggleRequest struct {
	ModelID         string   `json:"modelId" binding:"required"`
	SelectedOptions []string `json:"selectedOptions"`
	OptionID        string   `json:"optionId" binding:"required"`
}

// Toggle applies the configurator click semantics to a selection and returns
// the resulting option id list.
func (h *ValidateHandler) Toggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "modelId and optionId are required"})
		return
	}

	_, catalog, ok := h.loadModelCatalog(c, req.ModelID)
	if !ok {
		return
	}

	sel := engine.NewSelection(catalog, req.SelectedOptions)
	if err := sel.Toggle(req.OptionID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "option not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"selectedOptions": sel.OptionIDs()})
}

// loadModelCatalog resolves a model and its indexed catalog, writing the
// error response itself when either lookup fails.
func (h *ValidateHandler) loadModelCatalog(c *gin.Context, modelID string) (*models.Model, *engine.Catalog, bool) {
	ctx := c.Request.Context()

	model, err := h.modelStore.GetModel(ctx, modelID)
	if err != nil {
		if engine.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "model not found"})
		} else {
			c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch model"})
		}
		return nil, nil, false
	}

	options, err := h.catalog.ListOptionsForModel(ctx, modelID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch options"})
		return nil, nil, false
	}

	return model, engine.NewCatalog(options), true
}
