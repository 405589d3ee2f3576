package catalogapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/decorvista/ar-backend/internal/catalog"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRouter() *mux.Router {
	logger := zap.NewNop()
	router := mux.NewRouter()
	RegisterRoutes(router, &Handler{
		Catalog: catalog.New(catalog.DefaultSeed(), logger),
		Logger:  logger,
	})
	return router
}

func get(t *testing.T, router *mux.Router, path string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec, body
}

func TestListModels(t *testing.T) {
	router := newTestRouter()

	rec, body := get(t, router, "/api/v1/ar/models")
	require.Equal(t, http.StatusOK, rec.Code)

	entries := body["models"].([]any)
	assert.Len(t, entries, len(catalog.DefaultSeed()))
	assert.Equal(t, "modern_sofa_01", entries[0].(map[string]any)["model_id"])
	assert.NotEmpty(t, body["categories"])
}

func TestListModelsByCategory(t *testing.T) {
	router := newTestRouter()

	rec, body := get(t, router, "/api/v1/ar/models?category=lighting")
	require.Equal(t, http.StatusOK, rec.Code)

	for _, raw := range body["models"].([]any) {
		assert.Equal(t, "lighting", raw.(map[string]any)["category"])
	}
	assert.NotEmpty(t, body["models"])
}

func TestSearchModels(t *testing.T) {
	router := newTestRouter()

	rec, body := get(t, router, "/api/v1/ar/models/search?q=sofa")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(1), body["count"])
	assert.Equal(t, "modern_sofa_01",
		body["models"].([]any)[0].(map[string]any)["model_id"])
}

func TestSearchModelsEmptyQuery(t *testing.T) {
	router := newTestRouter()

	rec, body := get(t, router, "/api/v1/ar/models/search")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, body["success"])
}

func TestWebXRConfig(t *testing.T) {
	router := newTestRouter()

	rec, body := get(t, router, "/api/v1/ar/webxr-config")
	require.Equal(t, http.StatusOK, rec.Code)

	cfg := body["webxr_config"].(map[string]any)
	assert.Equal(t, "immersive-ar", cfg["session_mode"])
	assert.Contains(t, cfg["required_features"], "hit-test")
}
