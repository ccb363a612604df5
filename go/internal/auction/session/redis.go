package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kpatel744/auctioneer/go/internal/models"
)

// DefaultSessionTTL keeps abandoned device bindings from accumulating. Any
// read or write refreshes it.
const DefaultSessionTTL = 24 * time.Hour

// RedisStorage keeps device sessions in Redis so any node can resume a
// reconnecting device.
type RedisStorage struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisStorage(rdb *redis.Client, ttl time.Duration) *RedisStorage {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &RedisStorage{rdb: rdb, ttl: ttl}
}

func sessionKey(deviceID string) string {
	return fmt.Sprintf("auction:session:%s", deviceID)
}

func (s *RedisStorage) Get(ctx context.Context, deviceID string) (*models.DeviceSession, error) {
	data, err := s.rdb.GetEx(ctx, sessionKey(deviceID), s.ttl).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("device %q: %w", deviceID, ErrNoSession)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	var sess models.DeviceSession
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &sess, nil
}

func (s *RedisStorage) Put(ctx context.Context, sess *models.DeviceSession) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := s.rdb.Set(ctx, sessionKey(sess.DeviceID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *RedisStorage) Delete(ctx context.Context, deviceID string) error {
	if err := s.rdb.Del(ctx, sessionKey(deviceID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
