package attempts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/quizcraft/backend/internal/models"
)

// RedisStore keeps active attempts in Redis with a TTL, so abandoned
// attempts expire on their own.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(addr, password string, db int) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}
	return &RedisStore{client: client}, nil
}

func attemptKey(attemptID string) string {
	return "attempt:" + attemptID
}

func (s *RedisStore) Save(ctx context.Context, attempt *models.Attempt) error {
	payload, err := json.Marshal(attempt)
	if err != nil {
		return fmt.Errorf("marshal attempt: %w", err)
	}
	if err := s.client.Set(ctx, attemptKey(attempt.ID), payload, AttemptTTL).Err(); err != nil {
		return fmt.Errorf("save attempt: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, attemptID string) (*models.Attempt, error) {
	payload, err := s.client.Get(ctx, attemptKey(attemptID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get attempt: %w", err)
	}

	var attempt models.Attempt
	if err := json.Unmarshal(payload, &attempt); err != nil {
		return nil, fmt.Errorf("unmarshal attempt: %w", err)
	}
	return &attempt, nil
}

func (s *RedisStore) Delete(ctx context.Context, attemptID string) error {
	if err := s.client.Del(ctx, attemptKey(attemptID)).Err(); err != nil {
		return fmt.Errorf("delete attempt: %w", err)
	}
	return nil
}
