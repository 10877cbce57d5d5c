package engine

import (
	"context"
	"sort"

	"github.com/terminal-bench/truckconfig/internal/models"
)

// In-memory store fakes. The engine only ever sees these interfaces, so the
// tests exercise the full validation and fix-plan paths without a database.

type fakeCatalog struct {
	options  []models.Option
	defaults []string

	err      error // returned from every lookup when set
	groupErr error // returned only from FindCheapestOptionsByGroup
}

func (f *fakeCatalog) ListOptionsForModel(_ context.Context, _ string) ([]models.Option, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.options, nil
}

func (f *fakeCatalog) ListDefaultOptionIDs(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.defaults, nil
}

func (f *fakeCatalog) GetOptionsByIDs(_ context.Context, ids []string) ([]models.Option, error) {
	if f.err != nil {
		return nil, f.err
	}
	want := make(map[string]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	var result []models.Option
	for _, opt := range f.options {
		if want[opt.ID] {
			result = append(result, opt)
		}
	}
	return result, nil
}

func (f *fakeCatalog) FindCheapestOptionsByGroup(_ context.Context, componentGroup, _ string) ([]models.Option, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.groupErr != nil {
		return nil, f.groupErr
	}
	var result []models.Option
	for _, opt := range f.options {
		if opt.ComponentGroup == componentGroup {
			result = append(result, opt)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Cost != result[j].Cost {
			return result[i].Cost < result[j].Cost
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

type fakeRules struct {
	rules []models.Rule
	err   error
}

func (f *fakeRules) GetRulesForLinkedOptions(_ context.Context, optionIDs []string) ([]models.Rule, error) {
	if f.err != nil {
		return nil, f.err
	}
	selected := make(map[string]bool, len(optionIDs))
	for _, id := range optionIDs {
		selected[id] = true
	}
	var result []models.Rule
	for _, rule := range f.rules {
		if selected[rule.LinkedOptionID] {
			result = append(result, rule)
		}
	}
	return result, nil
}

func fptr(v float64) *float64 { return &v }

// turboFixture is the high-horsepower engine scenario: ENGINE-HI requires a
// turbocharger with boost_psi >= 50; T1 is too weak, T2 complies.
func turboFixture() (*fakeCatalog, *fakeRules) {
	catalog := &fakeCatalog{
		options: []models.Option{
			{
				ID: "ENGINE-HI", System: "Powertrain", Subsystem: "Engine",
				ComponentGroup: "Engine Model", Name: "600HP Diesel", Cost: 12000, Weight: 2900,
				PerformanceCategory: models.PerformancePower, PerformanceScore: 4.8,
				Specs: map[string]float64{"horsepower": 600},
			},
			{
				ID: "T1", System: "Powertrain", Subsystem: "Engine",
				ComponentGroup: "Turbocharger", Name: "Standard Turbo", Cost: 500, Weight: 45,
				PerformanceCategory: models.PerformancePower, PerformanceScore: 3.0,
				Specs: map[string]float64{"boost_psi": 40},
			},
			{
				ID: "T2", System: "Powertrain", Subsystem: "Engine",
				ComponentGroup: "Turbocharger", Name: "Heavy Duty Turbo", Cost: 900, Weight: 52,
				PerformanceCategory: models.PerformancePower, PerformanceScore: 4.2,
				Specs: map[string]float64{"boost_psi": 60},
			},
		},
	}
	rules := &fakeRules{
		rules: []models.Rule{
			{
				ID: "R-1", DocID: "DOC-7", DocTitle: "600HP Engine Installation Guide",
				LinkedOptionID: "ENGINE-HI", ComponentGroup: "Turbocharger",
				SpecName: "boost_psi", MinValue: fptr(50), Unit: "psi",
				RawRequirement: "Turbocharger must provide at least 50 psi of boost.",
			},
		},
	}
	return catalog, rules
}
