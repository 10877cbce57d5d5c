package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/terminal-bench/truckconfig/internal/models"
)

// Engine runs compatibility validation and fix planning over injected
// read-only stores. It holds no mutable state: every call works on a fresh
// snapshot of catalog and rules, so concurrent calls for different
// configurations are independent.
type Engine struct {
	catalog CatalogStore
	rules   RuleStore
	schema  *SpecSchema
}

// New creates an engine over the given stores. schema may be nil, which
// leaves every spec name unchecked.
func New(catalog CatalogStore, rules RuleStore, schema *SpecSchema) *Engine {
	return &Engine{catalog: catalog, rules: rules, schema: schema}
}

// ValidationResult is the outcome of one validation pass. An empty Issues
// list means the configuration is valid; the verdict is derived, not stored,
// and any selection change invalidates it. Warnings carry non-blocking
// findings: selected ids missing from the catalog, rules skipped for unknown
// spec names, and specs absent from the selected part.
type ValidationResult struct {
	Issues   []models.ValidationIssue `json:"issues"`
	Warnings []string                 `json:"warnings"`

	// rulesByGroup keeps the applicable rules for PlanFix, which must
	// evaluate candidates against every rule that applied to a group,
	// not just the ones that failed.
	rulesByGroup map[string][]models.Rule
	groupOrder   []string
}

// Valid reports whether the pass found no blocking issues.
func (r *ValidationResult) Valid() bool {
	return len(r.Issues) == 0
}

// Validate checks the selected options against every rule triggered by the
// selection. A rule applies when its linked option id is selected; it
// constrains whatever option is currently chosen for its component group.
// Store failures return a StoreUnavailableError, never an empty result.
func (e *Engine) Validate(ctx context.Context, optionIDs []string) (*ValidationResult, error) {
	result := &ValidationResult{
		Issues:       []models.ValidationIssue{},
		Warnings:     []string{},
		rulesByGroup: make(map[string][]models.Rule),
	}
	if len(optionIDs) == 0 {
		return result, nil
	}

	selected, err := e.catalog.GetOptionsByIDs(ctx, optionIDs)
	if err != nil {
		return nil, &StoreUnavailableError{Op: "resolve selected options", Err: err}
	}

	// Index by component group. The triple-key selection invariant should
	// prevent duplicates per group name within a subsystem; if the input
	// violates it anyway, the last one wins.
	byGroup := make(map[string]models.Option, len(selected))
	byID := make(map[string]models.Option, len(selected))
	for _, opt := range selected {
		byGroup[opt.ComponentGroup] = opt
		byID[opt.ID] = opt
	}

	// A selected id the catalog no longer carries (removed option, stale
	// saved config) cannot be validated; it is surfaced, never dropped
	// silently.
	if len(byID) < len(optionIDs) {
		reported := make(map[string]bool)
		for _, id := range optionIDs {
			if _, ok := byID[id]; ok || reported[id] {
				continue
			}
			reported[id] = true
			nf := &NotFoundError{Kind: "option", ID: id}
			zap.S().Warnw("selected option missing from catalog", "option", id)
			result.Warnings = append(result.Warnings, nf.Error()+"; excluded from validation")
		}
	}

	rules, err := e.rules.GetRulesForLinkedOptions(ctx, optionIDs)
	if err != nil {
		return nil, &StoreUnavailableError{Op: "fetch rules", Err: err}
	}

	// Rules naming a spec the group's schema does not know are dropped here,
	// before grouping, so fix planning never holds candidates to a rule that
	// validation skipped.
	for _, rule := range rules {
		if !e.schema.Knows(rule.ComponentGroup, rule.SpecName) {
			malformed := &MalformedDataError{Kind: "rule", ID: rule.ID,
				Reason: fmt.Sprintf("spec %q is not in the %s schema", rule.SpecName, rule.ComponentGroup)}
			zap.S().Warnw("skipping rule", "rule", rule.ID, "error", malformed)
			result.Warnings = append(result.Warnings, malformed.Error()+"; rule skipped")
			continue
		}
		if _, ok := result.rulesByGroup[rule.ComponentGroup]; !ok {
			result.groupOrder = append(result.groupOrder, rule.ComponentGroup)
		}
		result.rulesByGroup[rule.ComponentGroup] = append(result.rulesByGroup[rule.ComponentGroup], rule)
	}

	for _, group := range result.groupOrder {
		groupRules := result.rulesByGroup[group]
		current, ok := byGroup[group]
		if !ok {
			// Cannot validate an absent part.
			continue
		}

		var mismatches []models.SpecMismatch
		for _, rule := range groupRules {
			value, hasSpec := current.Specs[rule.SpecName]
			if !hasSpec {
				// A spec the part does not carry cannot be checked; it is
				// surfaced to the caller but never treated as a failure.
				result.Warnings = append(result.Warnings, fmt.Sprintf(
					"%s has no %s spec; rule %s not enforced", current.Name, rule.SpecName, rule.ID))
				continue
			}

			if rule.MinValue != nil && value < *rule.MinValue {
				v := value
				mismatches = append(mismatches, models.SpecMismatch{
					SpecName:      rule.SpecName,
					CurrentValue:  &v,
					RequiredValue: rule.MinValue,
					Reason: fmt.Sprintf("has %s %s but needs %s %s",
						formatValue(value), rule.Unit, formatValue(*rule.MinValue), rule.Unit),
				})
			}
			if rule.MaxValue != nil && value > *rule.MaxValue {
				v := value
				mismatches = append(mismatches, models.SpecMismatch{
					SpecName:      rule.SpecName,
					CurrentValue:  &v,
					RequiredValue: rule.MaxValue,
					Reason: fmt.Sprintf("has %s %s but must not exceed %s %s",
						formatValue(value), rule.Unit, formatValue(*rule.MaxValue), rule.Unit),
				})
			}
		}

		if len(mismatches) == 0 {
			continue
		}

		linkedID := groupRules[0].LinkedOptionID
		linkedName := linkedID
		if linked, ok := byID[linkedID]; ok {
			linkedName = linked.Name
		}
		reasons := make([]string, len(mismatches))
		for i, m := range mismatches {
			reasons[i] = m.Reason
		}
		result.Issues = append(result.Issues, models.ValidationIssue{
			ComponentGroup: group,
			OptionID:       current.ID,
			OptionName:     current.Name,
			Title:          current.Name + " Incompatible",
			Message:        fmt.Sprintf("Per %s spec: %s", linkedName, strings.Join(reasons, "; ")),
			SourceDoc:      groupRules[0].DocTitle,
			LinkedOptionID: linkedID,
			LinkedOption:   linkedName,
			Mismatches:     mismatches,
		})
	}

	return result, nil
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
