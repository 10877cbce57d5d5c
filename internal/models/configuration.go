package models

import "time"

// SavedConfiguration is a named snapshot of a selection. The persisted
// totals are caches for list views; the option id list plus the catalog is
// enough to regenerate every derived value.
type SavedConfiguration struct {
	ID                 string             `json:"configId" db:"config_id"`
	Name               string             `json:"name" db:"config_name"`
	ModelID            string             `json:"modelId" db:"model_id"`
	CreatedBy          string             `json:"createdBy" db:"created_by"`
	TotalCost          float64            `json:"totalCost" db:"total_cost_usd"`
	TotalWeight        float64            `json:"totalWeight" db:"total_weight_lbs"`
	PerformanceSummary map[string]float64 `json:"performanceSummary" db:"performance_summary"`
	OptionIDs          []string           `json:"optionIds" db:"config_options"`
	Notes              string             `json:"notes" db:"notes"`
	IsValidated        bool               `json:"isValidated" db:"is_validated"`
	CreatedAt          time.Time          `json:"createdAt" db:"created_at"`
	UpdatedAt          time.Time          `json:"updatedAt" db:"updated_at"`
}
