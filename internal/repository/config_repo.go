package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/terminal-bench/truckconfig/internal/engine"
	"github.com/terminal-bench/truckconfig/internal/models"
)

// ConfigRepository persists named configuration snapshots. Totals and
// performance summaries are stored for list views only; the option id list
// is the source of truth and everything else is regenerated from the catalog.
type ConfigRepository struct {
	db *sql.DB
}

// NewConfigRepository creates a configuration repository over the shared pool.
func NewConfigRepository(db *sql.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

// Save inserts a snapshot and assigns it an id.
func (r *ConfigRepository) Save(ctx context.Context, cfg *models.SavedConfiguration) error {
	if cfg.ID == "" {
		cfg.ID = "CFG-" + uuid.New().String()
	}
	now := time.Now()
	cfg.CreatedAt = now
	cfg.UpdatedAt = now

	perfJSON, err := json.Marshal(cfg.PerformanceSummary)
	if err != nil {
		return fmt.Errorf("failed to encode performance summary: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO saved_configs (config_id, config_name, model_id, created_by, total_cost_usd,
		   total_weight_lbs, performance_summary, config_options, notes, is_validated, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		cfg.ID, cfg.Name, cfg.ModelID, cfg.CreatedBy, cfg.TotalCost, cfg.TotalWeight,
		perfJSON, pq.Array(cfg.OptionIDs), cfg.Notes, cfg.IsValidated, cfg.CreatedAt, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// List returns all snapshots, newest first.
func (r *ConfigRepository) List(ctx context.Context) ([]models.SavedConfiguration, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT config_id, config_name, model_id, created_by, total_cost_usd, total_weight_lbs,
		        performance_summary, config_options, notes, is_validated, created_at, updated_at
		 FROM saved_configs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query configurations: %w", err)
	}
	defer rows.Close()

	var result []models.SavedConfiguration
	for rows.Next() {
		cfg, err := scanConfig(rows.Scan)
		if err != nil {
			return nil, err
		}
		result = append(result, *cfg)
	}
	return result, rows.Err()
}

// Get retrieves one snapshot by id.
func (r *ConfigRepository) Get(ctx context.Context, configID string) (*models.SavedConfiguration, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT config_id, config_name, model_id, created_by, total_cost_usd, total_weight_lbs,
		        performance_summary, config_options, notes, is_validated, created_at, updated_at
		 FROM saved_configs WHERE config_id = $1`,
		configID)

	cfg, err := scanConfig(row.Scan)
	if err == sql.ErrNoRows {
		return nil, &engine.NotFoundError{Kind: "configuration", ID: configID}
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Rename updates a snapshot's name and notes.
func (r *ConfigRepository) Rename(ctx context.Context, configID, name, notes string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE saved_configs SET config_name = $1, notes = $2, updated_at = $3 WHERE config_id = $4`,
		name, notes, time.Now(), configID)
	if err != nil {
		return fmt.Errorf("failed to update configuration: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &engine.NotFoundError{Kind: "configuration", ID: configID}
	}
	return nil
}

// Delete removes a snapshot.
func (r *ConfigRepository) Delete(ctx context.Context, configID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM saved_configs WHERE config_id = $1`, configID)
	if err != nil {
		return fmt.Errorf("failed to delete configuration: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return &engine.NotFoundError{Kind: "configuration", ID: configID}
	}
	return nil
}

func scanConfig(scan func(dest ...any) error) (*models.SavedConfiguration, error) {
	var cfg models.SavedConfiguration
	var perfJSON []byte
	err := scan(&cfg.ID, &cfg.Name, &cfg.ModelID, &cfg.CreatedBy, &cfg.TotalCost,
		&cfg.TotalWeight, &perfJSON, pq.Array(&cfg.OptionIDs), &cfg.Notes,
		&cfg.IsValidated, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan configuration: %w", err)
	}
	if len(perfJSON) > 0 {
		if err := json.Unmarshal(perfJSON, &cfg.PerformanceSummary); err != nil {
			return nil, fmt.Errorf("failed to decode performance summary for %s: %w", cfg.ID, err)
		}
	}
	return &cfg, nil
}
