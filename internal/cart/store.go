package cart

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/angelmondragon/bulkmart-backend/pkg/redis"
)

// SessionStore persists cart sessions keyed by shopper.
type SessionStore interface {
	// Load returns nil when the shopper has no session.
	Load(ctx context.Context, userID uuid.UUID) (*Session, error)
	Save(ctx context.Context, session *Session) error
	Delete(ctx context.Context, userID uuid.UUID) error
}

type kvStore interface {
	GetAndTouch(ctx context.Context, key string, ttl time.Duration) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartKey(userID string) string
}

type redisSessionStore struct {
	kv  kvStore
	ttl time.Duration
}

// NewRedisSessionStore stores sessions as JSON with a TTL refreshed on every read and write.
func NewRedisSessionStore(kv kvStore, ttl time.Duration) (SessionStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart session ttl must be positive")
	}
	return &redisSessionStore{kv: kv, ttl: ttl}, nil
}

func (s *redisSessionStore) Load(ctx context.Context, userID uuid.UUID) (*Session, error) {
	key := s.kv.CartKey(userID.String())
	raw, err := s.kv.GetAndTouch(ctx, key, s.ttl)
	if err != nil {
		if redis.IsMissing(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get cart session: %w", err)
	}

	var session Session
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		return nil, fmt.Errorf("decode cart session: %w", err)
	}
	return &session, nil
}

func (s *redisSessionStore) Save(ctx context.Context, session *Session) error {
	if session == nil || session.UserID == uuid.Nil {
		return fmt.Errorf("cart session requires a user id")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode cart session: %w", err)
	}
	if err := s.kv.Set(ctx, s.kv.CartKey(session.UserID.String()), string(payload), s.ttl); err != nil {
		return fmt.Errorf("set cart session: %w", err)
	}
	return nil
}

func (s *redisSessionStore) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.kv.Del(ctx, s.kv.CartKey(userID.String())); err != nil {
		return fmt.Errorf("delete cart session: %w", err)
	}
	return nil
}
