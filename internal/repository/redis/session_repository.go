package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"workOracle/business/engine"

	"github.com/redis/go-redis/v9"
)

type SessionRepository struct {
	client *redis.Client
}

var _ engine.SessionRepository = (*SessionRepository)(nil)

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{
		client: client,
	}
}

// GetSession retrieves session state by ID. A missing or expired session
// returns (nil, nil).
func (r *SessionRepository) GetSession(ctx context.Context, id string) (*engine.SessionState, error) {
	key := fmt.Sprintf("session:%s", id)

	val, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session from Redis: %w", err)
	}

	var state engine.SessionState
	if err := json.Unmarshal([]byte(val), &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session state: %w", err)
	}

	return &state, nil
}

func (r *SessionRepository) SaveSession(ctx context.Context, s *engine.SessionState, ttl time.Duration) error {
	key := fmt.Sprintf("session:%s", s.ID)

	jsonData, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal session state: %w", err)
	}

	if err := r.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session in Redis: %w", err)
	}

	return nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, id string) error {
	key := fmt.Sprintf("session:%s", id)

	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to delete session from Redis: %w", err)
	}

	return nil
}
