// File: services/conversation/redis_session.go
package conversation

import (
	"context"
	"encoding/json"
	"time"

	"bobbystable/models"

	"github.com/go-redis/redis/v8"
)

const sessionKeyPrefix = "call:session:"

// RedisSessionStore keeps call sessions in Redis so multiple workers can
// serve turns for the same call. Enabled with SESSION_STORE=redis.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (*models.CallSession, error) {
	data, err := s.client.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session models.CallSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, session *models.CallSession) error {
	b, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, sessionKeyPrefix+session.SessionID, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	return s.client.Del(ctx, sessionKeyPrefix+sessionID).Err()
}
