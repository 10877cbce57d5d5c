package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/terminal-bench/truckconfig/internal/models"
)

// RuleRepository reads extracted compatibility rules from Postgres. Rule
// records are written out-of-band by the document extraction pipeline; the
// engine only ever reads them.
type RuleRepository struct {
	db *sql.DB
}

// NewRuleRepository creates a rule repository over the shared pool.
func NewRuleRepository(db *sql.DB) *RuleRepository {
	return &RuleRepository{db: db}
}

// GetRulesForLinkedOptions returns every rule whose linked option is among
// the given ids.
func (r *RuleRepository) GetRulesForLinkedOptions(ctx context.Context, optionIDs []string) ([]models.Rule, error) {
	if len(optionIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT rule_id, doc_id, doc_title, linked_option_id, component_group,
		        spec_name, min_value, max_value, unit, raw_requirement
		 FROM validation_rules
		 WHERE linked_option_id = ANY($1)
		 ORDER BY rule_id`,
		pq.Array(optionIDs),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query rules: %w", err)
	}
	defer rows.Close()

	var result []models.Rule
	for rows.Next() {
		var rule models.Rule
		var minVal, maxVal sql.NullFloat64
		if err := rows.Scan(&rule.ID, &rule.DocID, &rule.DocTitle, &rule.LinkedOptionID,
			&rule.ComponentGroup, &rule.SpecName, &minVal, &maxVal,
			&rule.Unit, &rule.RawRequirement); err != nil {
			return nil, fmt.Errorf("failed to scan rule: %w", err)
		}
		if minVal.Valid {
			rule.MinValue = &minVal.Float64
		}
		if maxVal.Valid {
			rule.MaxValue = &maxVal.Float64
		}
		result = append(result, rule)
	}
	return result, rows.Err()
}
