package catalogapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/decorvista/ar-backend/internal/catalog"
	"github.com/decorvista/ar-backend/internal/models"

	"go.uber.org/zap"
)

// Handler serves the read-only model catalog and the static WebXR
// capability descriptor.
type Handler struct {
	Catalog *catalog.Catalog
	Logger  *zap.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// ListModels handles GET /models, optionally filtered by ?category=.
func (h *Handler) ListModels(w http.ResponseWriter, r *http.Request) {
	entries := h.Catalog.List(r.URL.Query().Get("category"))
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"models":     entries,
		"categories": h.Catalog.Categories(),
	})
}

// SearchModels handles GET /models/search?q=. An empty query is a client
// error, not an empty result.
func (h *Handler) SearchModels(w http.ResponseWriter, r *http.Request) {
	entries, err := h.Catalog.Search(r.URL.Query().Get("q"))
	if err != nil {
		if errors.Is(err, catalog.ErrEmptyQuery) {
			writeJSON(w, http.StatusBadRequest, map[string]any{
				"success": false,
				"error":   "Search query required",
			})
			return
		}
		h.Logger.Error("catalog search failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"error":   "Search failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"models":  entries,
		"count":   len(entries),
	})
}

// WebXRConfig handles GET /webxr-config, returning the static capability
// descriptor verbatim.
func (h *Handler) WebXRConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"success":      true,
		"webxr_config": models.DefaultWebXRConfig(),
	})
}
