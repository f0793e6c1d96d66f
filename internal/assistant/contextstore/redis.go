package contextstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"carbon-assistant/internal/common/database"
	"carbon-assistant/internal/common/logger"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "assistant:session:"

var (
	ErrStoreUnavailable = errors.New("CONTEXT_STORE_UNAVAILABLE")
	ErrContextEncoding  = errors.New("CONTEXT_ENCODING_FAILED")
)

// RedisStore persists session contexts as JSON values with the idle TTL as
// key expiry, so sessions survive process restarts. Updates are per-key
// read-modify-write; racing same-session updates accept last-write
// truncation just like the memory backend.
type RedisStore struct {
	client *database.RedisClient
	ttl    time.Duration
	logger logger.Logger
}

// NewRedisStore wraps an established Redis connection. A non-positive TTL
// falls back to DefaultTTL.
func NewRedisStore(client *database.RedisClient, ttl time.Duration, log logger.Logger) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: log.With(map[string]interface{}{
			"component": "redis-context-store",
		}),
	}
}

func redisKey(sessionID string) string {
	return redisKeyPrefix + sessionID
}

// Update appends to the session's history and writes it back with a fresh
// TTL. The session is created on first update.
func (r *RedisStore) Update(ctx context.Context, sessionID string, intent IntentRecord, entities []EntityRecord) error {
	current, err := r.load(ctx, sessionID)
	if err != nil {
		return err
	}

	current.Intents = append(current.Intents, intent)
	current.Entities = append(current.Entities, entities...)
	current.LastAction = intent.Name
	current.UpdatedAt = time.Now()
	trimContext(&current)

	payload, err := json.Marshal(current)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrContextEncoding, err)
	}

	if err := r.client.Set(ctx, redisKey(sessionID), payload, r.ttl); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// Context returns the stored snapshot, or the zero value for an unknown or
// expired session.
func (r *RedisStore) Context(ctx context.Context, sessionID string) (Context, error) {
	return r.load(ctx, sessionID)
}

func (r *RedisStore) load(ctx context.Context, sessionID string) (Context, error) {
	raw, err := r.client.Get(ctx, redisKey(sessionID))
	if errors.Is(err, redis.Nil) {
		return Context{}, nil
	}
	if err != nil {
		return Context{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	var c Context
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		// A corrupt value reads as a fresh session; the next update
		// overwrites it.
		r.logger.Warn("dropping undecodable session context", map[string]interface{}{
			"sessionId": sessionID,
		})
		return Context{}, nil
	}
	return c, nil
}
