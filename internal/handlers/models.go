package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/terminal-bench/truckconfig/internal/engine"
	"github.com/terminal-bench/truckconfig/internal/models"
)

// ModelStore provides the model records handlers need beyond the engine's
// catalog view.
type ModelStore interface {
	ListModels(ctx context.Context) ([]models.Model, error)
	GetModel(ctx context.Context, modelID string) (*models.Model, error)
}

// ModelHandler serves truck models and their option catalogs.
type ModelHandler struct {
	modelStore ModelStore
	catalog    engine.CatalogStore
}

// NewModelHandler creates a new model handler
func NewModelHandler(modelStore ModelStore, catalog engine.CatalogStore) *ModelHandler {
	return &ModelHandler{modelStore: modelStore, catalog: catalog}
}

// List returns all models, cheapest first.
func (h *ModelHandler) List(c *gin.Context) {
	result, err := h.modelStore.ListModels(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch models"})
		return
	}
	if result == nil {
		result = []models.Model{}
	}
	c.JSON(http.StatusOK, result)
}

// Options returns a model's full catalog: the flat option list, the default
// option ids, and the System -> Subsystem -> ComponentGroup hierarchy.
func (h *ModelHandler) Options(c *gin.Context) {
	modelID := c.Param("id")
	ctx := c.Request.Context()

	if _, err := h.modelStore.GetModel(ctx, modelID); err != nil {
		if engine.IsNotFound(err) {
			c.JSON(http.StatusNotFound, gin.H{"error": "model not found"})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch model"})
		return
	}

	options, err := h.catalog.ListOptionsForModel(ctx, modelID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch options"})
		return
	}
	defaults, err := h.catalog.ListDefaultOptionIDs(ctx, modelID)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "failed to fetch default options"})
		return
	}
	if options == nil {
		options = []models.Option{}
	}
	if defaults == nil {
		defaults = []string{}
	}

	c.JSON(http.StatusOK, gin.H{
		"options":          options,
		"defaultOptionIds": defaults,
		"hierarchy":        engine.BuildHierarchy(options),
	})
}
