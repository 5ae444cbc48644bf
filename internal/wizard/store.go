package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// sessionTTL is how long an abandoned wizard session survives
	sessionTTL = 24 * time.Hour

	// storeCallTimeout bounds each Redis round trip
	storeCallTimeout = 2 * time.Second
)

// SessionStore persists wizard sessions between requests. One active session
// per user; starting a new wizard replaces the old session.
type SessionStore interface {
	Load(ctx context.Context, userID uuid.UUID) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

// RedisSessionStore keeps sessions as JSON in Redis
type RedisSessionStore struct {
	redis *redis.Client
}

func NewRedisSessionStore(client *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{redis: client}
}

func (s *RedisSessionStore) Load(ctx context.Context, userID uuid.UUID) (*Session, error) {
	ctx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	defer cancel()

	raw, err := s.redis.Get(ctx, sessionKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading wizard session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decoding wizard session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding wizard session: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	defer cancel()
	if err := s.redis.Set(ctx, sessionKey(session.UserID), raw, sessionTTL).Err(); err != nil {
		return fmt.Errorf("saving wizard session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	ctx, cancel := context.WithTimeout(ctx, storeCallTimeout)
	defer cancel()
	if err := s.redis.Del(ctx, sessionKey(userID)).Err(); err != nil {
		return fmt.Errorf("deleting wizard session: %w", err)
	}
	return nil
}

func sessionKey(userID uuid.UUID) string {
	return fmt.Sprintf("wizard:%s", userID)
}
