package sessions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/decorvista/ar-backend/internal/catalog"
	"github.com/decorvista/ar-backend/internal/middleware"
	"github.com/decorvista/ar-backend/internal/models"
	"github.com/decorvista/ar-backend/internal/scene"
	"github.com/decorvista/ar-backend/internal/storage"
	"github.com/decorvista/ar-backend/internal/ws"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSnapshotStore struct {
	snaps map[string]models.SceneSnapshot
}

func newFakeSnapshotStore() *fakeSnapshotStore {
	return &fakeSnapshotStore{snaps: make(map[string]models.SceneSnapshot)}
}

func (f *fakeSnapshotStore) Persist(_ context.Context, snap models.SceneSnapshot) error {
	f.snaps[snap.SceneID] = snap
	return nil
}

func (f *fakeSnapshotStore) Retrieve(_ context.Context, sceneID string) (models.SceneSnapshot, error) {
	snap, ok := f.snaps[sceneID]
	if !ok {
		return models.SceneSnapshot{}, storage.ErrSnapshotNotFound
	}
	return snap, nil
}

func (f *fakeSnapshotStore) Delete(_ context.Context, sceneID string) (bool, error) {
	if _, ok := f.snaps[sceneID]; !ok {
		return false, nil
	}
	delete(f.snaps, sceneID)
	return true, nil
}

type testEnv struct {
	router *mux.Router
	store  *fakeSnapshotStore
	reg    *scene.Registry
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop()
	cat := catalog.New(catalog.DefaultSeed(), logger)
	reg := scene.NewRegistry(cat, logger)
	store := newFakeSnapshotStore()

	hub := ws.NewHub()
	go hub.Run()

	router := mux.NewRouter()
	router.Use(middleware.Identity("", logger))
	RegisterRoutes(router, &Handler{
		Registry:  reg,
		Catalog:   cat,
		Snapshots: storage.Chain{store},
		Hub:       hub,
		Logger:    logger,
	})
	return &testEnv{router: router, store: store, reg: reg}
}

func (e *testEnv) do(t *testing.T, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func (e *testEnv) createSession(t *testing.T, roomType string) string {
	t.Helper()
	rec := e.do(t, http.MethodPost, "/api/v1/ar/sessions",
		map[string]any{"room_type": roomType}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)
	return decodeBody(t, rec)["session_id"].(string)
}

func TestCreateSession(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions",
		map[string]any{"room_type": "Living Room"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeBody(t, rec)
	assert.NotEmpty(t, body["session_id"])
	assert.NotNil(t, body["webxr_config"])
	assert.NotNil(t, body["model_library"])

	sceneData := body["scene_data"].(map[string]any)
	assert.Equal(t, "Living Room", sceneData["room_type"])
	assert.Empty(t, sceneData["models"])
	assert.Equal(t, sceneData["created_at"], sceneData["updated_at"])
}

func TestCreateSessionEmptyRoomType(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions",
		map[string]any{"room_type": ""}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateSessionWithDesign(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions", map[string]any{
		"room_type": "Living Room",
		"design":    map[string]any{"key_elements": []string{"Modern Sofa", "Floor Lamp", "Unknown Gadget"}},
	}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	sceneData := decodeBody(t, rec)["scene_data"].(map[string]any)
	assert.Len(t, sceneData["models"], 2)
}

func TestAddModelAndGetSession(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.createSession(t, "Living Room")

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions/"+sessionID+"/models",
		map[string]any{"model_id": "floor_lamp_01"}, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	instanceID := decodeBody(t, rec)["instance_id"].(string)
	assert.True(t, strings.HasPrefix(instanceID, "floor_lamp_01_"))

	rec = env.do(t, http.MethodGet, "/api/v1/ar/sessions/"+sessionID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	sceneData := decodeBody(t, rec)["scene_data"].(map[string]any)
	placed := sceneData["models"].([]any)
	require.Len(t, placed, 1)
	scale := placed[0].(map[string]any)["transform"].(map[string]any)["scale"].(map[string]any)
	assert.Equal(t, map[string]any{"x": 1.0, "y": 1.0, "z": 1.0}, scale)
}

func TestAddModelUnknownCatalogID(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.createSession(t, "Living Room")

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions/"+sessionID+"/models",
		map[string]any{"model_id": "no_such_model"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetSessionNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/ar/sessions/missing", nil, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRemoveModel(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.createSession(t, "Living Room")

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions/"+sessionID+"/models",
		map[string]any{"model_id": "floor_lamp_01"}, nil)
	instanceID := decodeBody(t, rec)["instance_id"].(string)

	rec = env.do(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/ar/sessions/%s/models/%s", sessionID, instanceID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["removed"])

	// Second removal is idempotent, not an error.
	rec = env.do(t, http.MethodDelete,
		fmt.Sprintf("/api/v1/ar/sessions/%s/models/%s", sessionID, instanceID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["removed"])
}

func TestUpdateTransformPartial(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.createSession(t, "Living Room")

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions/"+sessionID+"/models",
		map[string]any{"model_id": "floor_lamp_01"}, nil)
	instanceID := decodeBody(t, rec)["instance_id"].(string)

	rec = env.do(t, http.MethodPatch,
		fmt.Sprintf("/api/v1/ar/sessions/%s/models/%s", sessionID, instanceID),
		map[string]any{"position": map[string]any{"x": 5}}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.do(t, http.MethodGet,
		fmt.Sprintf("/api/v1/ar/sessions/%s/models/%s", sessionID, instanceID), nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	transform := decodeBody(t, rec)["model"].(map[string]any)["transform"].(map[string]any)
	assert.Equal(t, map[string]any{"x": 5.0, "y": 0.0, "z": 0.0}, transform["position"])
	assert.Equal(t, map[string]any{"x": 0.0, "y": 0.0, "z": 0.0}, transform["rotation"])
	assert.Equal(t, map[string]any{"x": 1.0, "y": 1.0, "z": 1.0}, transform["scale"])
}

func TestUpdateTransformUnknownInstance(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.createSession(t, "Living Room")

	rec := env.do(t, http.MethodPatch,
		"/api/v1/ar/sessions/"+sessionID+"/models/missing",
		map[string]any{"position": map[string]any{"x": 1}}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteSession(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.createSession(t, "Living Room")

	rec := env.do(t, http.MethodDelete, "/api/v1/ar/sessions/"+sessionID, nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeBody(t, rec)["deleted"])

	rec = env.do(t, http.MethodDelete, "/api/v1/ar/sessions/"+sessionID, nil, nil)
	assert.Equal(t, false, decodeBody(t, rec)["deleted"])
}

func TestSaveAndLoadSession(t *testing.T) {
	env := newTestEnv(t)
	sessionID := env.createSession(t, "Living Room")

	env.do(t, http.MethodPost, "/api/v1/ar/sessions/"+sessionID+"/models",
		map[string]any{"model_id": "modern_sofa_01"}, nil)

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions/"+sessionID+"/save", nil, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, env.store.snaps, sessionID)

	// Drop the live scene, then restore it from the store.
	env.do(t, http.MethodDelete, "/api/v1/ar/sessions/"+sessionID, nil, nil)

	// Deleting a session removes its stored snapshot too, so re-seed the
	// store as an out-of-band saved session.
	saved := env.reg.Load(models.SceneSnapshot{SceneID: sessionID, RoomType: "Living Room"}).Snapshot()
	env.reg.Delete(sessionID)
	env.store.snaps[sessionID] = saved

	rec = env.do(t, http.MethodPost, "/api/v1/ar/sessions/load",
		map[string]any{"session_id": sessionID}, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, sessionID, decodeBody(t, rec)["session_id"])

	rec = env.do(t, http.MethodGet, "/api/v1/ar/sessions/"+sessionID, nil, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLoadSessionFromRawSnapshot(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions/load", map[string]any{
		"session_data": map[string]any{
			"scene_id":  "imported-1",
			"room_type": "Office",
			"models": []map[string]any{{
				"instance_id": "antique_desk_01_abcd1234",
				"model_id":    "antique_desk_01",
				"name":        "Antique Wooden Desk",
				"category":    "tables",
				"transform": map[string]any{
					"position": map[string]any{"x": 1.5},
					"scale":    map[string]any{"x": 1, "y": 1, "z": 1},
				},
			}},
		},
	}, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	sceneData := decodeBody(t, rec)["scene_data"].(map[string]any)
	assert.Equal(t, "imported-1", sceneData["scene_id"])
	assert.Len(t, sceneData["models"], 1)
}

func TestLoadSessionNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions/load",
		map[string]any{"session_id": "missing"}, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLoadSessionEmptyBody(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions/load", map[string]any{}, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListSessionsByOwner(t *testing.T) {
	env := newTestEnv(t)
	owner := map[string]string{"X-Owner-ID": "user-1"}

	rec := env.do(t, http.MethodPost, "/api/v1/ar/sessions",
		map[string]any{"room_type": "Living Room"}, owner)
	require.Equal(t, http.StatusCreated, rec.Code)
	rec = env.do(t, http.MethodPost, "/api/v1/ar/sessions",
		map[string]any{"room_type": "Bedroom"}, owner)
	require.Equal(t, http.StatusCreated, rec.Code)

	// Another owner's session must not leak into the listing.
	env.do(t, http.MethodPost, "/api/v1/ar/sessions",
		map[string]any{"room_type": "Office"}, map[string]string{"X-Owner-ID": "user-2"})

	rec = env.do(t, http.MethodGet, "/api/v1/ar/sessions", nil, owner)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(2), decodeBody(t, rec)["count"])
}

func TestListSessionsRequiresOwner(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/api/v1/ar/sessions", nil, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
