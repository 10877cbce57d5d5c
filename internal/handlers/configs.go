package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/terminal-bench/truckconfig/internal/engine"
	"github.com/terminal-bench/truckconfig/internal/models"
)

// ConfigStore persists named configuration snapshots.
type ConfigStore interface {
	Save(ctx context.Context, cfg *models.SavedConfiguration) error
	List(ctx context.Context) ([]models.SavedConfiguration, error)
	Get(ctx context.Context, configID string) (*models.SavedConfiguration, error)
	Rename(ctx context.Context, configID, name, notes string) error
	Delete(ctx context.Context, configID string) error
}

// ConfigHandler serves saved configurations. Totals are recomputed from the
// option list at save time; the client never supplies them.
type ConfigHandler struct {
	store      ConfigStore
	modelStore ModelStore
	catalog    engine.CatalogStore
}

// NewConfigHandler creates a new configuration handler
func NewConfigHandler(store ConfigStore, modelStore ModelStore, catalog engine.CatalogStore) *ConfigHandler {
	return &ConfigHandler{store: store, modelStore: modelStore, catalog: catalog}
}

// List returns all saved configurations, newest first.
func (h *ConfigHandler) List(c *gin.Context) {
	configs, err := h.store.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch configurations"})
		return
	}
	if configs == nil {
		configs = []models.SavedConfiguration{}
	}
	c.JSON(http.StatusOK, configs)
}

// Get returns one saved configuration.
func (h *ConfigHandler) Get(c *gin.Context) {
	cfg, err := h.store.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		if engine.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "configuration not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch configuration"})
		return
	}
	c.JSON(http.StatusOK, cfg)
}

type createConfigRequest struct {
	Name            string   `json:"name" binding:"required"`
	ModelID         string   `json:"modelId" binding:"required"`
	SelectedOptions []string `json:"selectedOptions"`
	Notes           string   `json:"notes"`
	CreatedBy       string   `json:"createdBy"`
	IsValidated     bool     `json:"isValidated"`
}

// Create saves a snapshot of a selection with freshly computed totals.
func (h *ConfigHandler) Create(c *gin.Context) {
	var req createConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and modelId are required"})
		return
	}
	ctx := c.Request.Context()

	model, err := h.modelStore.GetModel(ctx, req.ModelID)
	if err != nil {
		if engine.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "model not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch model"})
		return
	}

	options, err := h.catalog.ListOptionsForModel(ctx, req.ModelID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch options"})
		return
	}

	sel := engine.NewSelection(engine.NewCatalog(options), req.SelectedOptions)
	summary := engine.Aggregate(sel, model)

	createdBy := req.CreatedBy
	if createdBy == "" {
		createdBy = "User"
	}
	cfg := &models.SavedConfiguration{
		Name:               req.Name,
		ModelID:            req.ModelID,
		CreatedBy:          createdBy,
		TotalCost:          summary.TotalCost,
		TotalWeight:        summary.TotalWeight,
		PerformanceSummary: summary.PerformanceScores,
		OptionIDs:          sel.OptionIDs(),
		Notes:              req.Notes,
		IsValidated:        req.IsValidated,
	}
	if err := h.store.Save(ctx, cfg); err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to save configuration"})
		return
	}

	c.JSON(http.StatusCreated, cfg)
}

type renameConfigRequest struct {
	Name  string `json:"name" binding:"required"`
	Notes string `json:"notes"`
}

// Rename updates a configuration's name and notes.
func (h *ConfigHandler) Rename(c *gin.Context) {
	var req renameConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if err := h.store.Rename(c.Request.Context(), c.Param("id"), req.Name, req.Notes); err != nil {
		if engine.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "configuration not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to update configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "configuration updated"})
}

// Delete removes a saved configuration.
func (h *ConfigHandler) Delete(c *gin.Context) {
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if engine.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "configuration not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to delete configuration"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "configuration deleted"})
}
