// Package storage defines the durable snapshot collaborators the scene core
// delegates persistence to.
package storage

import (
	"context"
	"errors"

	"github.com/decorvista/ar-backend/internal/models"
)

// ErrSnapshotNotFound is returned when no snapshot is stored for a scene id.
var ErrSnapshotNotFound = errors.New("scene snapshot not found")

// SnapshotStore persists scene snapshots keyed by scene id.
type SnapshotStore interface {
	Persist(ctx context.Context, snap models.SceneSnapshot) error
	Retrieve(ctx context.Context, sceneID string) (models.SceneSnapshot, error)
	Delete(ctx context.Context, sceneID string) (bool, error)
}

// Chain fans writes out to every configured store and reads from the first
// store that has the snapshot. An empty chain means persistence is disabled.
type Chain []SnapshotStore

// Persist writes the snapshot to every store; the first error wins but all
// stores are attempted.
func (c Chain) Persist(ctx context.Context, snap models.SceneSnapshot) error {
	var firstErr error
	for _, store := range c {
		if err := store.Persist(ctx, snap); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Retrieve returns the snapshot from the first store holding it. Stores that
// fail with anything other than ErrSnapshotNotFound abort the lookup.
func (c Chain) Retrieve(ctx context.Context, sceneID string) (models.SceneSnapshot, error) {
	for _, store := range c {
		snap, err := store.Retrieve(ctx, sceneID)
		if err == nil {
			return snap, nil
		}
		if !errors.Is(err, ErrSnapshotNotFound) {
			return models.SceneSnapshot{}, err
		}
	}
	return models.SceneSnapshot{}, ErrSnapshotNotFound
}

// Delete removes the snapshot from every store, reporting whether any store
// held it.
func (c Chain) Delete(ctx context.Context, sceneID string) (bool, error) {
	deleted := false
	var firstErr error
	for _, store := range c {
		ok, err := store.Delete(ctx, sceneID)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		deleted = deleted || ok
	}
	return deleted, firstErr
}
