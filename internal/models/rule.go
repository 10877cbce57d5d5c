package models

// Rule is a compatibility requirement extracted from an engineering document.
// It becomes applicable when LinkedOptionID is present in a selection and
// constrains the option currently chosen for ComponentGroup: that option's
// Specs[SpecName] must fall within [MinValue, MaxValue] where a bound is set.
type Rule struct {
	ID             string   `json:"ruleId" db:"rule_id"`
	DocID          string   `json:"docId" db:"doc_id"`
	DocTitle       string   `json:"docTitle" db:"doc_title"`
	LinkedOptionID string   `json:"linkedOptionId" db:"linked_option_id"`
	ComponentGroup string   `json:"componentGroup" db:"component_group"`
	SpecName       string   `json:"specName" db:"spec_name"`
	MinValue       *float64 `json:"minValue" db:"min_value"`
	MaxValue       *float64 `json:"maxValue" db:"max_value"`
	Unit           string   `json:"unit" db:"unit"`
	RawRequirement string   `json:"rawRequirement" db:"raw_requirement"`
}

// SpecMismatch is one failed bound check within a ValidationIssue.
type SpecMismatch struct {
	SpecName      string   `json:"specName"`
	CurrentValue  *float64 `json:"currentValue"`
	RequiredValue *float64 `json:"requiredValue"`
	Reason        string   `json:"reason"`
}

// ValidationIssue reports that the option selected for a component group
// violates the rules triggered by another selected option.
type ValidationIssue struct {
	ComponentGroup string         `json:"componentGroup"`
	OptionID       string         `json:"optionId"`
	OptionName     string         `json:"optionName"`
	Title          string         `json:"title"`
	Message        string         `json:"message"`
	SourceDoc      string         `json:"sourceDoc,omitempty"`
	LinkedOptionID string         `json:"linkedOptionId"`
	LinkedOption   string         `json:"linkedOption"`
	Mismatches     []SpecMismatch `json:"specMismatches"`
}

// FixPlan is a set of option swaps that resolves the issues it was computed
// from. Applying it can trigger rules linked to the added options, so callers
// re-validate after applying rather than assuming single-pass convergence.
type FixPlan struct {
	Remove      []string `json:"remove"`
	Add         []string `json:"add"`
	Explanation string   `json:"explanation"`
}

// Empty reports whether the plan proposes no swaps.
func (p *FixPlan) Empty() bool {
	return len(p.Remove) == 0 && len(p.Add) == 0
}
