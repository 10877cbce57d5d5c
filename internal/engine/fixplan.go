package engine

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/terminal-bench/truckconfig/internal/models"
)

// PlanFix searches the catalog for the cheapest replacement per violated
// component group that satisfies every rule applicable to that group. The
// search is greedy and per-group, not a global optimum across groups; a
// replacement can itself trigger new rules, so callers re-validate after
// applying the plan.
//
// A group with no compliant candidate is left unresolved: nothing is added
// for it and its current option is not removed. A group whose candidates
// cannot be fetched is likewise skipped, with a warning, so the remaining
// groups still get replacements.
func (e *Engine) PlanFix(ctx context.Context, result *ValidationResult, modelID string) (*models.FixPlan, []string, error) {
	plan := &models.FixPlan{Remove: []string{}, Add: []string{}}
	if result == nil || len(result.Issues) == 0 {
		return plan, nil, nil
	}

	var warnings []string
	var explanations []string
	removed := make(map[string]bool)
	added := make(map[string]bool)

	for _, issue := range result.Issues {
		groupRules := result.rulesByGroup[issue.ComponentGroup]

		candidates, err := e.catalog.FindCheapestOptionsByGroup(ctx, issue.ComponentGroup, modelID)
		if err != nil {
			su := &StoreUnavailableError{Op: "fetch replacement candidates", Err: err}
			zap.S().Warnw("skipping fix for group", "componentGroup", issue.ComponentGroup, "error", su)
			warnings = append(warnings, fmt.Sprintf("%s: %v", issue.ComponentGroup, su))
			continue
		}

		replacement, found := cheapestCompliant(candidates, groupRules)
		if !found {
			warnings = append(warnings, fmt.Sprintf(
				"no %s option satisfies all requirements", issue.ComponentGroup))
			continue
		}

		if !removed[issue.OptionID] {
			plan.Remove = append(plan.Remove, issue.OptionID)
			removed[issue.OptionID] = true
		}
		if !added[replacement.ID] {
			plan.Add = append(plan.Add, replacement.ID)
			added[replacement.ID] = true
		}
		explanations = append(explanations, fmt.Sprintf(
			"Replace %s with %s ($%s)", issue.OptionName, replacement.Name, formatValue(replacement.Cost)))
	}

	if len(explanations) > 0 {
		plan.Explanation = "Per engineering specifications:\n• " + strings.Join(explanations, "\n• ")
	}
	return plan, warnings, nil
}

// cheapestCompliant scans cost-ascending candidates and returns the first
// one whose specs satisfy every rule. A spec the candidate does not carry
// counts as zero, so an absent spec fails any minimum bound.
func cheapestCompliant(candidates []models.Option, rules []models.Rule) (models.Option, bool) {
	for _, candidate := range candidates {
		if satisfiesAll(candidate, rules) {
			return candidate, true
		}
	}
	return models.Option{}, false
}

func satisfiesAll(candidate models.Option, rules []models.Rule) bool {
	for _, rule := range rules {
		value := candidate.Specs[rule.SpecName]
		if rule.MinValue != nil && value < *rule.MinValue {
			return false
		}
		if rule.MaxValue != nil && value > *rule.MaxValue {
			return false
		}
	}
	return true
}

