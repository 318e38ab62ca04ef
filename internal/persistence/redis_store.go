package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/tutorhub/scheduling-service/internal/models"
)

// ErrNoSnapshot is returned when the backing store holds no saved state.
var ErrNoSnapshot = errors.New("persistence: no snapshot found")

// SnapshotStore persists the full engine state as a single document.
// The in-memory store stays authoritative; this is a write-behind copy
// used only to survive restarts.
type SnapshotStore interface {
	Save(ctx context.Context, snap *models.Snapshot) error
	Load(ctx context.Context) (*models.Snapshot, error)
	Close() error
}

const defaultSnapshotKey = "scheduling:snapshot"

// RedisStore keeps the snapshot as one JSON value under a fixed key.
type RedisStore struct {
	client *redis.Client
	key    string
}

var _ SnapshotStore = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, key string) *RedisStore {
	if key == "" {
		key = defaultSnapshotKey
	}
	return &RedisStore{client: client, key: key}
}

func (s *RedisStore) Save(ctx context.Context, snap *models.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, 0).Err(); err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) (*models.Snapshot, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("load snapshot: %w", err)
	}
	var snap models.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	snap.Normalize()
	return &snap, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
