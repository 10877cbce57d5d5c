package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/lib/pq"

	"github.com/terminal-bench/truckconfig/internal/engine"
	"github.com/terminal-bench/truckconfig/internal/models"
)

const optionColumns = `b.option_id, b.system_nm, b.subsystem_nm, b.component_group, b.option_nm,
	 b.description, b.cost_usd, b.weight_lbs, b.performance_category, b.performance_score,
	 b.source_country, b.specs`

// CatalogRepository reads models and BOM options from Postgres. It is the
// engine's CatalogStore; the engine never sees SQL.
type CatalogRepository struct {
	db *sql.DB
}

// NewCatalogRepository creates a catalog repository over the shared pool.
func NewCatalogRepository(db *sql.DB) *CatalogRepository {
	return &CatalogRepository{db: db}
}

// ListModels returns all truck models, cheapest first.
func (r *CatalogRepository) ListModels(ctx context.Context) ([]models.Model, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT model_id, model_nm, truck_description, base_msrp, base_weight_lbs,
		        max_payload_lbs, max_towing_lbs, sleeper_available
		 FROM truck_models ORDER BY base_msrp`)
	if err != nil {
		return nil, fmt.Errorf("failed to query models: %w", err)
	}
	defer rows.Close()

	var result []models.Model
	for rows.Next() {
		var m models.Model
		if err := rows.Scan(&m.ID, &m.Name, &m.Description, &m.BaseCost, &m.BaseWeight,
			&m.MaxPayload, &m.MaxTowing, &m.SleeperAvailable); err != nil {
			return nil, fmt.Errorf("failed to scan model: %w", err)
		}
		result = append(result, m)
	}
	return result, rows.Err()
}

// GetModel retrieves a model by id.
func (r *CatalogRepository) GetModel(ctx context.Context, modelID string) (*models.Model, error) {
	var m models.Model
	err := r.db.QueryRowContext(ctx,
		`SELECT model_id, model_nm, truck_description, base_msrp, base_weight_lbs,
		        max_payload_lbs, max_towing_lbs, sleeper_available
		 FROM truck_models WHERE model_id = $1`,
		modelID,
	).Scan(&m.ID, &m.Name, &m.Description, &m.BaseCost, &m.BaseWeight,
		&m.MaxPayload, &m.MaxTowing, &m.SleeperAvailable)

	if err == sql.ErrNoRows {
		return nil, &engine.NotFoundError{Kind: "model", ID: modelID}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get model: %w", err)
	}
	return &m, nil
}

// ListOptionsForModel returns every option applicable to a model, ordered by
// classification and then ascending cost so hierarchy groups come pre-sorted.
func (r *CatalogRepository) ListOptionsForModel(ctx context.Context, modelID string) ([]models.Option, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+optionColumns+`
		 FROM bom_options b
		 INNER JOIN model_options t ON b.option_id = t.option_id
		 WHERE t.model_id = $1
		 ORDER BY b.system_nm, b.subsystem_nm, b.component_group, b.cost_usd, b.option_id`,
		modelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query options: %w", err)
	}
	defer rows.Close()

	return scanOptions(rows)
}

// ListDefaultOptionIDs returns the factory default option per component group.
func (r *CatalogRepository) ListDefaultOptionIDs(ctx context.Context, modelID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT option_id FROM model_options WHERE model_id = $1 AND is_default ORDER BY option_id`,
		modelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query default options: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan option id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// GetOptionsByIDs resolves full option records for a set of ids.
func (r *CatalogRepository) GetOptionsByIDs(ctx context.Context, ids []string) ([]models.Option, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+optionColumns+` FROM bom_options b WHERE b.option_id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query options by id: %w", err)
	}
	defer rows.Close()

	return scanOptions(rows)
}

// FindCheapestOptionsByGroup returns a model's options for one component
// group in ascending cost order, lowest id first on ties.
func (r *CatalogRepository) FindCheapestOptionsByGroup(ctx context.Context, componentGroup, modelID string) ([]models.Option, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+optionColumns+`
		 FROM bom_options b
		 INNER JOIN model_options t ON b.option_id = t.option_id
		 WHERE b.component_group = $1 AND t.model_id = $2
		 ORDER BY b.cost_usd ASC, b.option_id ASC`,
		componentGroup, modelID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query group candidates: %w", err)
	}
	defer rows.Close()

	return scanOptions(rows)
}

func scanOptions(rows *sql.Rows) ([]models.Option, error) {
	var result []models.Option
	for rows.Next() {
		var opt models.Option
		var specs []byte
		if err := rows.Scan(&opt.ID, &opt.System, &opt.Subsystem, &opt.ComponentGroup,
			&opt.Name, &opt.Description, &opt.Cost, &opt.Weight,
			&opt.PerformanceCategory, &opt.PerformanceScore, &opt.SourceCountry,
			&specs); err != nil {
			return nil, fmt.Errorf("failed to scan option: %w", err)
		}
		if len(specs) > 0 {
			if err := json.Unmarshal(specs, &opt.Specs); err != nil {
				return nil, fmt.Errorf("failed to decode specs for %s: %w", opt.ID, err)
			}
		}
		result = append(result, opt)
	}
	return result, rows.Err()
}
