package valkeystore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/decorvista/ar-backend/internal/models"
	"github.com/decorvista/ar-backend/internal/storage"

	"github.com/valkey-io/valkey-go"
	"go.uber.org/zap"
)

const keyPrefix = "ar:scene:"

// SnapshotStore implements storage.SnapshotStore on Valkey. Snapshots are
// stored as JSON strings under ar:scene:{scene_id}, optionally with a TTL so
// saved sessions age out of the cache tier.
type SnapshotStore struct {
	client valkey.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewSnapshotStore connects to the Valkey instance at addr. A zero ttl keeps
// snapshots until they are deleted.
func NewSnapshotStore(addr, password string, ttl time.Duration, logger *zap.Logger) (*SnapshotStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
		Password:    password,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to valkey: %w", err)
	}

	logger.Info("connected to Valkey snapshot store", zap.String("addr", addr))
	return &SnapshotStore{client: client, ttl: ttl, logger: logger}, nil
}

// Persist stores the snapshot under its scene id.
func (s *SnapshotStore) Persist(ctx context.Context, snap models.SceneSnapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", snap.SceneID, err)
	}

	builder := s.client.B().Set().Key(keyPrefix + snap.SceneID).Value(string(doc))
	var cmd valkey.Completed
	if s.ttl > 0 {
		cmd = builder.Ex(s.ttl).Build()
	} else {
		cmd = builder.Build()
	}
	if err := s.client.Do(ctx, cmd).Error(); err != nil {
		return fmt.Errorf("persist snapshot %s: %w", snap.SceneID, err)
	}
	return nil
}

// Retrieve loads the snapshot stored for sceneID.
func (s *SnapshotStore) Retrieve(ctx context.Context, sceneID string) (models.SceneSnapshot, error) {
	doc, err := s.client.Do(ctx, s.client.B().Get().Key(keyPrefix+sceneID).Build()).ToString()
	if err != nil {
		if valkey.IsValkeyNil(err) {
			return models.SceneSnapshot{}, storage.ErrSnapshotNotFound
		}
		return models.SceneSnapshot{}, fmt.Errorf("retrieve snapshot %s: %w", sceneID, err)
	}

	var snap models.SceneSnapshot
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		return models.SceneSnapshot{}, fmt.Errorf("decode snapshot %s: %w", sceneID, err)
	}
	return snap, nil
}

// Delete removes the snapshot and reports whether one existed.
func (s *SnapshotStore) Delete(ctx context.Context, sceneID string) (bool, error) {
	removed, err := s.client.Do(ctx, s.client.B().Del().Key(keyPrefix+sceneID).Build()).AsInt64()
	if err != nil {
		return false, fmt.Errorf("delete snapshot %s: %w", sceneID, err)
	}
	return removed > 0, nil
}

// Close shuts the client down.
func (s *SnapshotStore) Close() {
	s.client.Close()
}
