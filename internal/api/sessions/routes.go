package sessions

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes attaches the session routes to the router. The static
// /sessions/load route is registered ahead of /sessions/{id} so "load" is
// never taken for a scene id.
func RegisterRoutes(r *mux.Router, h *Handler) {
	api := r.PathPrefix("/api/v1/ar").Subrouter()

	api.HandleFunc("/sessions", h.CreateSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions", h.ListSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions/load", h.LoadSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}", h.GetSession).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}", h.DeleteSession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/save", h.SaveSession).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/models", h.AddModel).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/models/{instanceID}", h.GetPlacedModel).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/models/{instanceID}", h.RemoveModel).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/models/{instanceID}", h.UpdateTransform).Methods(http.MethodPatch)

	r.HandleFunc("/ws/scenes", h.ServeWS)
}
