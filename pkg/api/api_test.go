package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/korjavin/smartpantry/pkg/catalog"
	"github.com/korjavin/smartpantry/pkg/messages"
	"github.com/korjavin/smartpantry/pkg/profile"
	"github.com/korjavin/smartpantry/pkg/storage"
	"github.com/korjavin/smartpantry/pkg/suggest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	profiles := profile.New(store)
	_, err = profiles.Seed(profile.Sample())
	require.NoError(t, err)

	c, err := catalog.New(catalog.Sample())
	require.NoError(t, err)

	h := NewHandler(suggest.New(c, nil, nil, 3), profiles, messages.New(nil))
	return NewRouter(h)
}

func do(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.EqualValues(t, 5, body["recipes"])
}

func TestRequestIDIsPropagated(t *testing.T) {
	router := setupRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRecipes(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/recipes", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Recipes []map[string]interface{} `json:"recipes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list.Recipes, 5)

	w = do(t, router, http.MethodGet, "/api/v1/recipes/103", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Cheese Omelette")

	w = do(t, router, http.MethodGet, "/api/v1/recipes/999", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, router, http.MethodGet, "/api/v1/recipes/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRecipeSteps(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/recipes/101/steps", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp StepsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(101), resp.RecipeID)
	assert.Equal(t, "Spicy Chicken Rice", resp.Title)
	assert.NotEmpty(t, resp.Steps)
}

func TestProfiles(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/profiles", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Priya")

	w = do(t, router, http.MethodGet, "/api/v1/profiles/kavya", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "mushroom")

	w = do(t, router, http.MethodGet, "/api/v1/profiles/nobody", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuggestions(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/suggestions", SuggestionRequest{
		Ingredients: []string{"Egg", " cheese ", "butter"},
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp SuggestionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "Cheese Omelette", resp.Results[0].Title)
	assert.InDelta(t, 0.6, resp.Results[0].Score, 1e-9)
	assert.Equal(t, []string{"butter", "cheese", "egg"}, resp.Results[0].HaveIngredients)
	assert.Contains(t, resp.Assistant, "Cheese Omelette")
	assert.NotEmpty(t, resp.Tip)
}

func TestSuggestionsFromProfile(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/suggestions", SuggestionRequest{Profile: "priya"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp SuggestionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Results)
	assert.Equal(t, "Spicy Chicken Rice", resp.Results[0].Title)
	assert.LessOrEqual(t, len(resp.Results), 3)
}

func TestSuggestionsTopNAndTags(t *testing.T) {
	router := setupRouter(t)

	topN := 0
	w := do(t, router, http.MethodPost, "/api/v1/suggestions", SuggestionRequest{
		Ingredients: []string{"onion"},
		TopN:        &topN,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var resp SuggestionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotNil(t, resp.Results)
	assert.Empty(t, resp.Results)
	assert.Contains(t, w.Body.String(), `"results":[]`)

	topN = 5
	w = do(t, router, http.MethodPost, "/api/v1/suggestions", SuggestionRequest{
		Ingredients: []string{"onion"},
		TopN:        &topN,
		Tags:        []string{"breakfast"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	resp = SuggestionResponse{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 1)
	assert.Equal(t, int64(103), resp.Results[0].RecipeID)
}

func TestSuggestionsErrors(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/suggestions", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(t, router, http.MethodPost, "/api/v1/suggestions", SuggestionRequest{Profile: "nobody"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuggestionsNoMatches(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodPost, "/api/v1/suggestions", SuggestionRequest{
		Ingredients: []string{"chocolate"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"results":[]`)
	assert.NotContains(t, w.Body.String(), `"assistant"`)
}

func TestStatsAndMetrics(t *testing.T) {
	router := setupRouter(t)

	w := do(t, router, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]float64
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, 5.0, stats["total_recipes"])
	assert.Equal(t, 29.0, stats["average_cooking_time"])

	w = do(t, router, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "smartpantry_catalog_recipes")
}
