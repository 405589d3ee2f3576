package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/decorvista/ar-backend/internal/models"
	"github.com/decorvista/ar-backend/internal/storage"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"
)

// SnapshotStore implements storage.SnapshotStore on PostgreSQL. The whole
// snapshot is stored as a JSONB document; owner and room type are lifted
// into columns for listing queries.
type SnapshotStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSnapshotStore opens a connection pool for the given DSN and verifies it.
func NewSnapshotStore(dataSourceName string, logger *zap.Logger) (*SnapshotStore, error) {
	db, err := sql.Open("postgres", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open database connection: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	logger.Info("connected to PostgreSQL snapshot store")
	return &SnapshotStore{db: db, logger: logger}, nil
}

// EnsureSchema creates the snapshot table when it does not exist yet.
func (s *SnapshotStore) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS ar_scene_snapshots (
			scene_id   TEXT PRIMARY KEY,
			owner_id   TEXT NOT NULL DEFAULT '',
			room_type  TEXT NOT NULL,
			snapshot   JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return fmt.Errorf("ensure snapshot schema: %w", err)
	}
	return nil
}

// Persist upserts the snapshot under its scene id.
func (s *SnapshotStore) Persist(ctx context.Context, snap models.SceneSnapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", snap.SceneID, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO ar_scene_snapshots (scene_id, owner_id, room_type, snapshot, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (scene_id)
		DO UPDATE SET owner_id = EXCLUDED.owner_id,
		              room_type = EXCLUDED.room_type,
		              snapshot = EXCLUDED.snapshot,
		              updated_at = EXCLUDED.updated_at`,
		snap.SceneID, snap.OwnerID, snap.RoomType, doc, snap.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("persist snapshot %s: %w", snap.SceneID, err)
	}

	s.logger.Debug("snapshot persisted",
		zap.String("scene_id", snap.SceneID),
		zap.Int("models", len(snap.Models)),
	)
	return nil
}

// Retrieve loads the snapshot stored for sceneID.
func (s *SnapshotStore) Retrieve(ctx context.Context, sceneID string) (models.SceneSnapshot, error) {
	var doc []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT snapshot FROM ar_scene_snapshots WHERE scene_id = $1`, sceneID,
	).Scan(&doc)
	if err == sql.ErrNoRows {
		return models.SceneSnapshot{}, storage.ErrSnapshotNotFound
	}
	if err != nil {
		return models.SceneSnapshot{}, fmt.Errorf("retrieve snapshot %s: %w", sceneID, err)
	}

	var snap models.SceneSnapshot
	if err := json.Unmarshal(doc, &snap); err != nil {
		return models.SceneSnapshot{}, fmt.Errorf("decode snapshot %s: %w", sceneID, err)
	}
	return snap, nil
}

// ListByOwner returns all snapshots persisted for an owner, newest first.
func (s *SnapshotStore) ListByOwner(ctx context.Context, ownerID string) ([]models.SceneSnapshot, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT snapshot FROM ar_scene_snapshots WHERE owner_id = $1 ORDER BY updated_at DESC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list snapshots for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	var snaps []models.SceneSnapshot
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan snapshot row: %w", err)
		}
		var snap models.SceneSnapshot
		if err := json.Unmarshal(doc, &snap); err != nil {
			s.logger.Warn("skipping undecodable snapshot row", zap.Error(err))
			continue
		}
		snaps = append(snaps, snap)
	}
	return snaps, rows.Err()
}

// Delete removes the snapshot and reports whether one existed.
func (s *SnapshotStore) Delete(ctx context.Context, sceneID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM ar_scene_snapshots WHERE scene_id = $1`, sceneID)
	if err != nil {
		return false, fmt.Errorf("delete snapshot %s: %w", sceneID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// Close releases the connection pool.
func (s *SnapshotStore) Close() error {
	return s.db.Close()
}
