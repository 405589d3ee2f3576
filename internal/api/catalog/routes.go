package catalogapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes attaches the catalog routes to the router. /models/search
// precedes any parameterized model routes a later version might add.
func RegisterRoutes(r *mux.Router, h *Handler) {
	api := r.PathPrefix("/api/v1/ar").Subrouter()

	api.HandleFunc("/models", h.ListModels).Methods(http.MethodGet)
	api.HandleFunc("/models/search", h.SearchModels).Methods(http.MethodGet)
	api.HandleFunc("/webxr-config", h.WebXRConfig).Methods(http.MethodGet)
}
