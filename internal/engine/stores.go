package engine

import (
	"context"

	"github.com/terminal-bench/truckconfig/internal/models"
)

// CatalogStore is the read-only view of the BOM catalog the engine needs.
// Implementations must return FindCheapestOptionsByGroup candidates in
// ascending cost order with a stable tie-break.
type CatalogStore interface {
	ListOptionsForModel(ctx context.Context, modelID string) ([]models.Option, error)
	ListDefaultOptionIDs(ctx context.Context, modelID string) ([]string, error)
	GetOptionsByIDs(ctx context.Context, ids []string) ([]models.Option, error)
	FindCheapestOptionsByGroup(ctx context.Context, componentGroup, modelID string) ([]models.Option, error)
}

// RuleStore is the read-only view of extracted compatibility rules.
type RuleStore interface {
	GetRulesForLinkedOptions(ctx context.Context, optionIDs []string) ([]models.Rule, error)
}
