package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/terminal-bench/truckconfig/internal/engine"
	"github.com/terminal-bench/truckconfig/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// fakeStore backs every handler dependency in-memory.
type fakeStore struct {
	models  []models.Model
	options []models.Option
	rules   []models.Rule
	configs map[string]*models.SavedConfiguration

	err error
}

func (f *fakeStore) ListModels(_ context.Context) ([]models.Model, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.models, nil
}

func (f *fakeStore) GetModel(_ context.Context, modelID string) (*models.Model, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, m := range f.models {
		if m.ID == modelID {
			return &m, nil
		}
	}
	return nil, &engine.NotFoundError{Kind: "model", ID: modelID}
}

func (f *fakeStore) ListOptionsForModel(_ context.Context, _ string) ([]models.Option, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.options, nil
}

func (f *fakeStore) ListDefaultOptionIDs(_ context.Context, _ string) ([]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	var ids []string
	for _, opt := range f.options {
		if opt.Cost == 0 {
			ids = append(ids, opt.ID)
		}
	}
	return ids, nil
}

func (f *fakeStore) GetOptionsByIDs(_ context.Context, ids []string) ([]models.Option, error) {
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

func (f *fakeStore) FindCheapestOptionsByGroup(_ context.Context, componentGroup, _ string) ([]models.Option, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []models.Option
	for _, opt := range f.options {
		if opt.ComponentGroup == componentGroup {
			result = append(result, opt)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Cost < result[j].Cost })
	return result, nil
}

func (f *fakeStore) GetRulesForLinkedOptions(_ context.Context, optionIDs []string) ([]models.Rule, error) {
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

func (f *fakeStore) Save(_ context.Context, cfg *models.SavedConfiguration) error {
	if f.err != nil {
		return f.err
	}
	if cfg.ID == "" {
		cfg.ID = "CFG-test"
	}
	f.configs[cfg.ID] = cfg
	return nil
}

func (f *fakeStore) List(_ context.Context) ([]models.SavedConfiguration, error) {
	if f.err != nil {
		return nil, f.err
	}
	var result []models.SavedConfiguration
	for _, cfg := range f.configs {
		result = append(result, *cfg)
	}
	return result, nil
}

func (f *fakeStore) Get(_ context.Context, configID string) (*models.SavedConfiguration, error) {
	if f.err != nil {
		return nil, f.err
	}
	cfg, ok := f.configs[configID]
	if !ok {
		return nil, &engine.NotFoundError{Kind: "configuration", ID: configID}
	}
	return cfg, nil
}

func (f *fakeStore) Rename(_ context.Context, configID, name, notes string) error {
	cfg, ok := f.configs[configID]
	if !ok {
		return &engine.NotFoundError{Kind: "configuration", ID: configID}
	}
	cfg.Name = name
	cfg.Notes = notes
	return nil
}

func (f *fakeStore) Delete(_ context.Context, configID string) error {
	if _, ok := f.configs[configID]; !ok {
		return &engine.NotFoundError{Kind: "configuration", ID: configID}
	}
	delete(f.configs, configID)
	return nil
}

func fptr(v float64) *float64 { return &v }

// newTestStore builds the ENGINE-HI / Turbocharger fixture behind a router.
func newTestStore() *fakeStore {
	return &fakeStore{
		models: []models.Model{
			{ID: "M-1", Name: "Hauler 600", BaseCost: 90000, BaseWeight: 17000},
		},
		options: []models.Option{
			{ID: "ENGINE-HI", System: "Powertrain", Subsystem: "Engine", ComponentGroup: "Engine Model",
				Name: "600HP Diesel", Cost: 12000, Weight: 2900,
				PerformanceCategory: models.PerformancePower, PerformanceScore: 4.8},
			{ID: "T1", System: "Powertrain", Subsystem: "Engine", ComponentGroup: "Turbocharger",
				Name: "Standard Turbo", Cost: 0, Weight: 45,
				PerformanceCategory: models.PerformancePower, PerformanceScore: 3.0,
				Specs: map[string]float64{"boost_psi": 40}},
			{ID: "T2", System: "Powertrain", Subsystem: "Engine", ComponentGroup: "Turbocharger",
				Name: "Heavy Duty Turbo", Cost: 900, Weight: 52,
				PerformanceCategory: models.PerformancePower, PerformanceScore: 4.2,
				Specs: map[string]float64{"boost_psi": 60}},
		},
		rules: []models.Rule{
			{ID: "R-1", DocTitle: "600HP Engine Installation Guide",
				LinkedOptionID: "ENGINE-HI", ComponentGroup: "Turbocharger",
				SpecName: "boost_psi", MinValue: fptr(50), Unit: "psi"},
		},
		configs: make(map[string]*models.SavedConfiguration),
	}
}

func newTestRouter(store *fakeStore) *gin.Engine {
	eng := engine.New(store, store, nil)
	router := gin.New()
	api := router.Group("/api/v1")

	modelHandler := NewModelHandler(store, store)
	api.GET("/models", modelHandler.List)
	api.GET("/models/:id/options", modelHandler.Options)

	validateHandler := NewValidateHandler(eng, store, store)
	api.POST("/validate", validateHandler.Validate)
	api.POST("/summary", validateHandler.Summary)
	api.POST("/selections/toggle", validateHandler.Toggle)

	configHandler := NewConfigHandler(store, store, store)
	api.GET("/configs", configHandler.List)
	api.GET("/configs/:id", configHandler.Get)
	api.POST("/configs", configHandler.Create)
	api.PUT("/configs/:id", configHandler.Rename)
	api.DELETE("/configs/:id", configHandler.Delete)

	return router
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder, out any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func get(t *testing.T, router *gin.Engine, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
