package models

// PerformanceCategory classifies what an option improves.
type PerformanceCategory string

const (
	PerformanceSafety     PerformanceCategory = "Safety"
	PerformanceComfort    PerformanceCategory = "Comfort"
	PerformancePower      PerformanceCategory = "Power"
	PerformanceEconomy    PerformanceCategory = "Economy"
	PerformanceDurability PerformanceCategory = "Durability"
	PerformanceHauling    PerformanceCategory = "Hauling"
	PerformanceEmissions  PerformanceCategory = "Emissions"
	PerformanceCooling    PerformanceCategory = "Cooling"
)

// Option is a single BOM entry: one selectable part within a component group.
// Specs holds the numeric engineering attributes (e.g. boost_psi) that
// compatibility rules are checked against. Options are immutable once loaded.
type Option struct {
	ID                  string              `json:"optionId" db:"option_id"`
	System              string              `json:"system" db:"system_nm"`
	Subsystem           string              `json:"subsystem" db:"subsystem_nm"`
	ComponentGroup      string              `json:"componentGroup" db:"component_group"`
	Name                string              `json:"name" db:"option_nm"`
	Description         string              `json:"description" db:"description"`
	Cost                float64             `json:"cost" db:"cost_usd"`
	Weight              float64             `json:"weight" db:"weight_lbs"`
	PerformanceCategory PerformanceCategory `json:"performanceCategory" db:"performance_category"`
	PerformanceScore    float64             `json:"performanceScore" db:"performance_score"`
	SourceCountry       string              `json:"sourceCountry" db:"source_country"`
	Specs               map[string]float64  `json:"specs,omitempty" db:"specs"`
}

// GroupKey returns the triple that identifies the option's selection slot.
func (o *Option) GroupKey() GroupKey {
	return GroupKey{System: o.System, Subsystem: o.Subsystem, ComponentGroup: o.ComponentGroup}
}

// GroupKey identifies a component group. The same group name recurs under
// different subsystems (an engine brake and a front brake are both "Brake
// Type"), so selection membership is always keyed by the full triple, never
// by the bare group name.
type GroupKey struct {
	System         string `json:"system"`
	Subsystem      string `json:"subsystem"`
	ComponentGroup string `json:"componentGroup"`
}

// Model is a truck model: the base vehicle that options are applied to.
type Model struct {
	ID               string  `json:"modelId" db:"model_id"`
	Name             string  `json:"name" db:"model_nm"`
	Description      string  `json:"description" db:"truck_description"`
	BaseCost         float64 `json:"baseCost" db:"base_msrp"`
	BaseWeight       float64 `json:"baseWeight" db:"base_weight_lbs"`
	MaxPayload       float64 `json:"maxPayload" db:"max_payload_lbs"`
	MaxTowing        float64 `json:"maxTowing" db:"max_towing_lbs"`
	SleeperAvailable bool    `json:"sleeperAvailable" db:"sleeper_available"`
}

// ModelOption associates an option with a model and flags the factory
// default choice for the option's component group.
type ModelOption struct {
	ModelID   string `json:"modelId" db:"model_id"`
	OptionID  string `json:"optionId" db:"option_id"`
	IsDefault bool   `json:"isDefault" db:"is_default"`
}
