package sessions

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/decorvista/ar-backend/internal/catalog"
	"github.com/decorvista/ar-backend/internal/middleware"
	"github.com/decorvista/ar-backend/internal/models"
	"github.com/decorvista/ar-backend/internal/scene"
	"github.com/decorvista/ar-backend/internal/storage"
	"github.com/decorvista/ar-backend/internal/ws"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handler serves the AR session lifecycle: create/get/delete, placed-model
// mutations, save/load and the watch feed.
type Handler struct {
	Registry  *scene.Registry
	Catalog   *catalog.Catalog
	Snapshots storage.Chain
	Hub       *ws.Hub
	Logger    *zap.Logger
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "error": msg})
}

func (h *Handler) notify(ev ws.Event) {
	if h.Hub != nil {
		h.Hub.Notify(ev)
	}
}

// CreateSession handles POST /sessions. The optional design payload seeds the
// scene through the assembler; the response carries everything the AR viewer
// needs to start rendering.
func (h *Handler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomType string                `json:"room_type"`
		Design   *models.DesignPayload `json:"design,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	s, err := h.Registry.Create(req.RoomType, middleware.OwnerID(r.Context()), req.Design)
	if err != nil {
		if errors.Is(err, scene.ErrEmptyRoomType) {
			writeError(w, http.StatusBadRequest, "Room type cannot be empty")
			return
		}
		h.Logger.Error("failed to create session", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"success":       true,
		"session_id":    s.ID(),
		"scene_data":    s.Snapshot(),
		"webxr_config":  models.DefaultWebXRConfig(),
		"model_library": h.Catalog.List(""),
	})
}

// GetSession handles GET /sessions/{id}.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.Registry.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"scene_data": s.Snapshot(),
	})
}

// ListSessions handles GET /sessions, scoped to the caller's owner identity.
func (h *Handler) ListSessions(w http.ResponseWriter, r *http.Request) {
	owner := middleware.OwnerID(r.Context())
	if owner == "" {
		writeError(w, http.StatusBadRequest, "Owner identity required to list sessions")
		return
	}

	scenes := h.Registry.ListByOwner(owner)
	snaps := make([]models.SceneSnapshot, 0, len(scenes))
	for _, s := range scenes {
		snaps = append(snaps, s.Snapshot())
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"sessions": snaps,
		"count":    len(snaps),
	})
}

// DeleteSession handles DELETE /sessions/{id}. Stored snapshots are removed
// best-effort; the live scene is the authority.
func (h *Handler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	sceneID := mux.Vars(r)["id"]
	deleted := h.Registry.Delete(sceneID)
	if deleted {
		if _, err := h.Snapshots.Delete(r.Context(), sceneID); err != nil {
			h.Logger.Warn("failed to delete stored snapshot",
				zap.String("scene_id", sceneID), zap.Error(err))
		}
		h.notify(ws.Event{SceneID: sceneID, Type: ws.EventSceneDeleted})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"deleted": deleted,
	})
}

// SaveSession handles POST /sessions/{id}/save, persisting the current
// snapshot through the configured stores.
func (h *Handler) SaveSession(w http.ResponseWriter, r *http.Request) {
	s, err := h.Registry.Get(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}
	if len(h.Snapshots) == 0 {
		writeError(w, http.StatusServiceUnavailable, "Session persistence is not configured")
		return
	}

	snap := s.Snapshot()
	if err := h.Snapshots.Persist(r.Context(), snap); err != nil {
		h.Logger.Error("failed to persist snapshot",
			zap.String("scene_id", snap.SceneID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Failed to save session")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"session_id": snap.SceneID,
		"message":    "Session saved",
	})
}

// LoadSession handles POST /sessions/load. The body names either a stored
// session id or carries a raw snapshot to restore directly.
func (h *Handler) LoadSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SessionID   string                `json:"session_id"`
		SessionData *models.SceneSnapshot `json:"session_data,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var snap models.SceneSnapshot
	switch {
	case req.SessionID != "":
		var err error
		snap, err = h.Snapshots.Retrieve(r.Context(), req.SessionID)
		if errors.Is(err, storage.ErrSnapshotNotFound) {
			writeError(w, http.StatusNotFound, "Saved session not found")
			return
		}
		if err != nil {
			h.Logger.Error("failed to retrieve snapshot",
				zap.String("scene_id", req.SessionID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to load session")
			return
		}
	case req.SessionData != nil:
		snap = *req.SessionData
	default:
		writeError(w, http.StatusBadRequest, "Session ID or session data required")
		return
	}

	s := h.Registry.Load(snap)
	writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"session_id": s.ID(),
		"scene_data": s.Snapshot(),
	})
}

// AddModel handles POST /sessions/{id}/models.
func (h *Handler) AddModel(w http.ResponseWriter, r *http.Request) {
	sceneID := mux.Vars(r)["id"]

	var req struct {
		ModelID string `json:"model_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ModelID == "" {
		writeError(w, http.StatusBadRequest, "Model ID required")
		return
	}

	instanceID, err := h.Registry.AddModelToScene(sceneID, req.ModelID)
	if err != nil {
		switch {
		case errors.Is(err, scene.ErrNotFound):
			writeError(w, http.StatusNotFound, "Session not found")
		case errors.Is(err, catalog.ErrNotFound):
			writeError(w, http.StatusNotFound, "Model not found in catalog")
		default:
			h.Logger.Error("failed to add model", zap.Error(err))
			writeError(w, http.StatusInternalServerError, "Failed to add model")
		}
		return
	}

	h.notify(ws.Event{SceneID: sceneID, Type: ws.EventModelAdded, InstanceID: instanceID})
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"instance_id": instanceID,
		"message":     "Model added to scene",
	})
}

// GetPlacedModel handles GET /sessions/{id}/models/{instanceID}.
func (h *Handler) GetPlacedModel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	s, err := h.Registry.Get(vars["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	m, err := s.GetModel(vars["instanceID"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Model instance not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"model":   m,
	})
}

// RemoveModel handles DELETE /sessions/{id}/models/{instanceID}. Removing an
// absent instance is not an error.
func (h *Handler) RemoveModel(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	s, err := h.Registry.Get(vars["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	removed := s.RemoveModel(vars["instanceID"])
	if removed {
		h.notify(ws.Event{SceneID: s.ID(), Type: ws.EventModelRemoved, InstanceID: vars["instanceID"]})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"removed": removed,
	})
}

// UpdateTransform handles PATCH /sessions/{id}/models/{instanceID}. Only the
// transform components present in the body change; each is merged field by
// field.
func (h *Handler) UpdateTransform(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	s, err := h.Registry.Get(vars["id"])
	if err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	var patch models.TransformPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if !s.UpdateTransform(vars["instanceID"], patch) {
		writeError(w, http.StatusNotFound, "Model instance not found")
		return
	}

	h.notify(ws.Event{SceneID: s.ID(), Type: ws.EventModelUpdated, InstanceID: vars["instanceID"]})
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Model updated",
	})
}

var upgrader = websocket.Upgrader{}

// ServeWS upgrades a watcher connection for a scene's event feed. The feed
// is notification-only; watchers re-fetch the snapshot when told.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	sceneID := r.URL.Query().Get("scene_id")
	if sceneID == "" {
		writeError(w, http.StatusBadRequest, "Scene ID required for watch connection")
		return
	}
	if _, err := h.Registry.Get(sceneID); err != nil {
		writeError(w, http.StatusNotFound, "Session not found")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.Logger.Warn("websocket upgrade failed",
			zap.String("scene_id", sceneID), zap.Error(err))
		return
	}

	client := &ws.Client{
		SceneID: sceneID,
		Send:    make(chan []byte, 256),
		Conn:    conn,
	}
	h.Hub.Register <- client

	// Read pump: discard inbound frames, detect disconnects.
	go func() {
		defer func() {
			h.Hub.Unregister <- client
			conn.Close()
		}()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// Write pump: deliver hub events until the client is unregistered.
	go func() {
		defer conn.Close()
		for message := range client.Send {
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		}
	}()
}
