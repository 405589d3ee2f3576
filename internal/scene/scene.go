package scene

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/decorvista/ar-backend/internal/models"

	"github.com/google/uuid"
)

// ErrModelNotFound is returned when a scene holds no instance with the
// requested id.
var ErrModelNotFound = errors.New("placed model not found")

// Scene is one AR working session: an ordered list of placed models plus
// lighting and environment configuration. All mutations on a scene are
// serialized by its own mutex, so operations against different scenes never
// block each other.
type Scene struct {
	mu          sync.Mutex
	id          string
	roomType    string
	ownerID     string
	models      []models.PlacedModel // insertion order, significant for snapshots
	lighting    models.Lighting
	environment models.Environment
	createdAt   time.Time
	updatedAt   time.Time
}

func newScene(id, roomType, ownerID string) *Scene {
	now := time.Now().UTC()
	return &Scene{
		id:          id,
		roomType:    roomType,
		ownerID:     ownerID,
		models:      []models.PlacedModel{},
		lighting:    models.DefaultLighting(),
		environment: models.DefaultEnvironment(),
		createdAt:   now,
		updatedAt:   now,
	}
}

// fromSnapshot reconstructs a live scene from a stored snapshot, restoring
// placed models, transforms, lighting and environment.
func fromSnapshot(snap models.SceneSnapshot) *Scene {
	s := newScene(snap.SceneID, snap.RoomType, snap.OwnerID)
	s.models = append(s.models, snap.Models...)
	if snap.Lighting != (models.Lighting{}) {
		s.lighting = snap.Lighting
	}
	if snap.Environment != (models.Environment{}) {
		s.environment = snap.Environment
	}
	if !snap.CreatedAt.IsZero() {
		s.createdAt = snap.CreatedAt
		s.updatedAt = snap.CreatedAt
	}
	if !snap.UpdatedAt.IsZero() {
		s.updatedAt = snap.UpdatedAt
	}
	return s
}

// ID returns the scene's identifier.
func (s *Scene) ID() string { return s.id }

// RoomType returns the free-form room type the scene was created with.
func (s *Scene) RoomType() string { return s.roomType }

// OwnerID returns the owning user id, or "" for anonymous scenes.
func (s *Scene) OwnerID() string { return s.ownerID }

// UpdatedAt returns the time of the last mutation.
func (s *Scene) UpdatedAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updatedAt
}

// AddModel places a copy of the catalog entry into the scene with a default
// transform and returns the generated instance id. The id keeps the catalog
// model id as a prefix so clients can read provenance off it.
func (s *Scene) AddModel(entry models.CatalogEntry) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	instanceID := fmt.Sprintf("%s_%s", entry.ModelID, uuid.NewString()[:8])
	s.models = append(s.models, models.PlacedModel{
		InstanceID: instanceID,
		ModelID:    entry.ModelID,
		Name:       entry.Name,
		Category:   entry.Category,
		AssetURL:   entry.AssetURL,
		Dimensions: entry.Dimensions,
		Transform:  models.DefaultTransform(),
	})
	s.updatedAt = time.Now().UTC()
	return instanceID
}

// RemoveModel removes the instance if present. Removing an absent instance
// is idempotent: it returns false and leaves updatedAt untouched.
func (s *Scene) RemoveModel(instanceID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.models {
		if m.InstanceID == instanceID {
			s.models = append(s.models[:i], s.models[i+1:]...)
			s.updatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// GetModel returns a copy of the placed instance.
func (s *Scene) GetModel(instanceID string) (models.PlacedModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.models {
		if m.InstanceID == instanceID {
			return m, nil
		}
	}
	return models.PlacedModel{}, ErrModelNotFound
}

// UpdateTransform merges the patch into the instance's transform. It returns
// false when the instance does not exist.
func (s *Scene) UpdateTransform(instanceID string, patch models.TransformPatch) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.models {
		if s.models[i].InstanceID == instanceID {
			s.models[i].Transform.Apply(patch)
			s.updatedAt = time.Now().UTC()
			return true
		}
	}
	return false
}

// ModelCount returns the number of placed instances.
func (s *Scene) ModelCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.models)
}

// Snapshot returns a deep copy of the scene state. The snapshot is built
// entirely from value types, so callers cannot reach scene internals
// through it.
func (s *Scene) Snapshot() models.SceneSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	modelsCopy := make([]models.PlacedModel, len(s.models))
	copy(modelsCopy, s.models)

	return models.SceneSnapshot{
		SceneID:     s.id,
		RoomType:    s.roomType,
		OwnerID:     s.ownerID,
		Models:      modelsCopy,
		Lighting:    s.lighting,
		Environment: s.environment,
		CreatedAt:   s.createdAt,
		UpdatedAt:   s.updatedAt,
	}
}
