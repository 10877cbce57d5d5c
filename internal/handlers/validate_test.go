package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terminal-bench/truckconfig/internal/models"
)

func TestValidateEndpoint(t *testing.T) {
	t.Run("reports issue and fix plan for undersized turbo", func(t *testing.T) {
		router := newTestRouter(newTestStore())

		w := doJSON(t, router, http.MethodPost, "/api/v1/validate", map[string]any{
			"modelId":         "M-1",
			"selectedOptions": []string{"ENGINE-HI", "T1"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Issues  []models.ValidationIssue `json:"issues"`
			Valid   bool                     `json:"valid"`
			FixPlan models.FixPlan           `json:"fixPlan"`
		}
		decode(t, w, &resp)
		require.Len(t, resp.Issues, 1)
		assert.False(t, resp.Valid)
		assert.Equal(t, []string{"T1"}, resp.FixPlan.Remove)
		assert.Equal(t, []string{"T2"}, resp.FixPlan.Add)
	})

	t.Run("compliant selection is valid", func(t *testing.T) {
		router := newTestRouter(newTestStore())

		w := doJSON(t, router, http.MethodPost, "/api/v1/validate", map[string]any{
			"modelId":         "M-1",
			"selectedOptions": []string{"ENGINE-HI", "T2"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Issues []models.ValidationIssue `json:"issues"`
			Valid  bool                     `json:"valid"`
		}
		decode(t, w, &resp)
		assert.Empty(t, resp.Issues)
		assert.True(t, resp.Valid)
	})

	t.Run("empty selection is trivially valid", func(t *testing.T) {
		router := newTestRouter(newTestStore())

		w := doJSON(t, router, http.MethodPost, "/api/v1/validate", map[string]any{
			"modelId":         "M-1",
			"selectedOptions": []string{},
		})
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("store failure is 502, never an empty valid response", func(t *testing.T) {
		store := newTestStore()
		store.err = errors.New("connection refused")
		router := newTestRouter(store)

		w := doJSON(t, router, http.MethodPost, "/api/v1/validate", map[string]any{
			"modelId":         "M-1",
			"selectedOptions": []string{"ENGINE-HI", "T1"},
		})
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("missing modelId is 400", func(t *testing.T) {
		router := newTestRouter(newTestStore())
		w := doJSON(t, router, http.MethodPost, "/api/v1/validate", map[string]any{
			"selectedOptions": []string{"T1"},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestSummaryEndpoint(t *testing.T) {
	t.Run("returns totals and performance averages", func(t *testing.T) {
		router := newTestRouter(newTestStore())

		w := doJSON(t, router, http.MethodPost, "/api/v1/summary", map[string]any{
			"modelId":         "M-1",
			"selectedOptions": []string{"ENGINE-HI", "T2"},
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			TotalCost         float64            `json:"totalCost"`
			TotalWeight       float64            `json:"totalWeight"`
			PerformanceScores map[string]float64 `json:"performanceScores"`
		}
		decode(t, w, &resp)
		assert.Equal(t, 90000+12000+900.0, resp.TotalCost)
		assert.Equal(t, 17000+2900+52.0, resp.TotalWeight)
		assert.InDelta(t, 4.5, resp.PerformanceScores["Power"], 1e-9)
	})

	t.Run("unknown model is 404", func(t *testing.T) {
		router := newTestRouter(newTestStore())
		w := doJSON(t, router, http.MethodPost, "/api/v1/summary", map[string]any{
			"modelId": "M-404",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestToggleEndpoint(t *testing.T) {
	t.Run("deselecting a paid option reverts to the base option", func(t *testing.T) {
		router := newTestRouter(newTestStore())

		w := doJSON(t, router, http.MethodPost, "/api/v1/selections/toggle", map[string]any{
			"modelId":         "M-1",
			"selectedOptions": []string{"ENGINE-HI", "T2"},
			"optionId":        "T2",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			SelectedOptions []string `json:"selectedOptions"`
		}
		decode(t, w, &resp)
		assert.Equal(t, []string{"ENGINE-HI", "T1"}, resp.SelectedOptions)
	})

	t.Run("selecting an inactive option replaces the group choice", func(t *testing.T) {
		router := newTestRouter(newTestStore())

		w := doJSON(t, router, http.MethodPost, "/api/v1/selections/toggle", map[string]any{
			"modelId":         "M-1",
			"selectedOptions": []string{"ENGINE-HI", "T1"},
			"optionId":        "T2",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			SelectedOptions []string `json:"selectedOptions"`
		}
		decode(t, w, &resp)
		assert.Equal(t, []string{"ENGINE-HI", "T2"}, resp.SelectedOptions)
	})

	t.Run("unknown option is 404", func(t *testing.T) {
		router := newTestRouter(newTestStore())
		w := doJSON(t, router, http.MethodPost, "/api/v1/selections/toggle", map[string]any{
			"modelId":  "M-1",
			"optionId": "NOPE",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestModelEndpoints(t *testing.T) {
	t.Run("lists models", func(t *testing.T) {
		router := newTestRouter(newTestStore())
		w := get(t, router, "/api/v1/models")
		require.Equal(t, http.StatusOK, w.Code)

		var resp []models.Model
		decode(t, w, &resp)
		require.Len(t, resp, 1)
		assert.Equal(t, "M-1", resp[0].ID)
	})

	t.Run("returns options with hierarchy and defaults", func(t *testing.T) {
		router := newTestRouter(newTestStore())
		w := get(t, router, "/api/v1/models/M-1/options")
		require.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			Options          []models.Option `json:"options"`
			DefaultOptionIDs []string        `json:"defaultOptionIds"`
			Hierarchy        map[string]struct {
				Subsystems map[string]struct {
					ComponentGroups map[string][]models.Option `json:"componentGroups"`
				} `json:"subsystems"`
			} `json:"hierarchy"`
		}
		decode(t, w, &resp)
		assert.Len(t, resp.Options, 3)
		assert.Equal(t, []string{"T1"}, resp.DefaultOptionIDs)
		groups := resp.Hierarchy["Powertrain"].Subsystems["Engine"].ComponentGroups
		assert.Len(t, groups["Turbocharger"], 2)
	})

	t.Run("unknown model is 404", func(t *testing.T) {
		router := newTestRouter(newTestStore())
		w := get(t, router, "/api/v1/models/M-404/options")
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
