package engine

import "github.com/terminal-bench/truckconfig/internal/models"

// Summary holds the cost, weight, and performance roll-up for a selection.
// PerformanceScores maps each category to the average score of the selected
// options in it; a category with nothing selected is absent, not zero.
type Summary struct {
	TotalCost         float64            `json:"totalCost"`
	TotalWeight       float64            `json:"totalWeight"`
	OptionsCost       float64            `json:"optionsCost"`
	PerformanceScores map[string]float64 `json:"performanceScores"`
}

// Aggregate folds a selection into totals against a model's base values.
// Pure function of its inputs; iteration order of the selection does not
// affect the result.
func Aggregate(sel *Selection, model *models.Model) Summary {
	sum := Summary{
		TotalCost:         model.BaseCost,
		TotalWeight:       model.BaseWeight,
		PerformanceScores: make(map[string]float64),
	}

	counts := make(map[string]int)
	for _, id := range sel.OptionIDs() {
		opt, ok := sel.catalog.Option(id)
		if !ok {
			continue
		}
		sum.TotalCost += opt.Cost
		sum.TotalWeight += opt.Weight
		sum.OptionsCost += opt.Cost

		// Uncategorized options still count toward cost and weight but
		// contribute no score; an empty-string category never appears.
		if cat := string(opt.PerformanceCategory); cat != "" {
			sum.PerformanceScores[cat] += opt.PerformanceScore
			counts[cat]++
		}
	}

	for cat, n := range counts {
		sum.PerformanceScores[cat] /= float64(n)
	}
	return sum
}
