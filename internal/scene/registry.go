package scene

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"github.com/decorvista/ar-backend/internal/catalog"
	"github.com/decorvista/ar-backend/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNotFound is returned when no scene is registered under the given id.
var ErrNotFound = errors.New("scene not found")

// ErrEmptyRoomType is returned by Create for a blank room type.
var ErrEmptyRoomType = errors.New("room type must not be empty")

// Registry maps scene ids to live scenes. It is the process-wide mutable
// state container: scenes stay registered until explicitly deleted. The
// registry mutex only guards the map itself; each scene serializes its own
// mutations, so traffic to different scenes proceeds in parallel.
type Registry struct {
	mu        sync.RWMutex
	scenes    map[string]*Scene
	catalog   *catalog.Catalog
	assembler *Assembler
	logger    *zap.Logger
}

// NewRegistry builds an empty registry over the given catalog.
func NewRegistry(cat *catalog.Catalog, logger *zap.Logger) *Registry {
	return &Registry{
		scenes:    make(map[string]*Scene),
		catalog:   cat,
		assembler: NewAssembler(cat, logger),
		logger:    logger,
	}
}

// Create registers a new scene for roomType. When a design payload is given,
// the assembler seeds the scene from its key elements; the result may still
// be empty, which is not an error.
func (r *Registry) Create(roomType, ownerID string, design *models.DesignPayload) (*Scene, error) {
	if strings.TrimSpace(roomType) == "" {
		return nil, ErrEmptyRoomType
	}

	s := newScene(uuid.NewString(), roomType, ownerID)
	if design != nil {
		r.assembler.Populate(s, design.KeyElements)
	}

	r.mu.Lock()
	r.scenes[s.id] = s
	r.mu.Unlock()

	r.logger.Info("scene created",
		zap.String("scene_id", s.id),
		zap.String("room_type", roomType),
		zap.Int("models", s.ModelCount()),
	)
	return s, nil
}

// Get returns the live scene for sceneID.
func (r *Registry) Get(sceneID string) (*Scene, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scenes[sceneID]
	if !ok {
		return nil, ErrNotFound
	}
	return s, nil
}

// Delete removes the scene and reports whether one existed.
func (r *Registry) Delete(sceneID string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scenes[sceneID]; !ok {
		return false
	}
	delete(r.scenes, sceneID)
	r.logger.Info("scene deleted", zap.String("scene_id", sceneID))
	return true
}

// ListByOwner returns the owner's scenes ordered by last update, newest
// first. Anonymous scenes (empty owner) are only reachable by id.
func (r *Registry) ListByOwner(ownerID string) []*Scene {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*Scene
	if ownerID == "" {
		return result
	}
	for _, s := range r.scenes {
		if s.OwnerID() == ownerID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].UpdatedAt().After(result[j].UpdatedAt())
	})
	return result
}

// Load reconstructs a scene from a snapshot and registers it, replacing any
// live scene with the same id. Snapshots without an id get a fresh one.
func (r *Registry) Load(snap models.SceneSnapshot) *Scene {
	if snap.SceneID == "" {
		snap.SceneID = uuid.NewString()
	}
	s := fromSnapshot(snap)

	r.mu.Lock()
	r.scenes[s.id] = s
	r.mu.Unlock()

	r.logger.Info("scene loaded from snapshot",
		zap.String("scene_id", s.id),
		zap.Int("models", s.ModelCount()),
	)
	return s
}

// AddModelToScene places a catalog model into the scene and bumps the
// model's usage counter. It returns the new instance id.
func (r *Registry) AddModelToScene(sceneID, modelID string) (string, error) {
	s, err := r.Get(sceneID)
	if err != nil {
		return "", err
	}
	entry, err := r.catalog.Get(modelID)
	if err != nil {
		return "", err
	}

	instanceID := s.AddModel(entry)
	r.catalog.IncrementUsage(modelID)
	return instanceID, nil
}

// Count returns the number of registered scenes.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scenes)
}
