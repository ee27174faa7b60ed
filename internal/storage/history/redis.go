package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Key prefixes.
const (
	turnKeyPrefix = "conv:hist:"
	prefKeyPrefix = "user:prefs:"
)

// RedisStore implements Store on Redis. Turns live in a list per
// conversation; preferences in a JSON string per user. Redis processes
// commands for one key sequentially, which gives the per-conversation write
// ordering the contract requires.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore. A zero ttl keeps entries forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

// AppendTurn implements Store.
func (s *RedisStore) AppendTurn(ctx context.Context, conversationID string, turn Turn) error {
	data, err := json.Marshal(turn)
	if err != nil {
		return fmt.Errorf("marshal turn: %w", err)
	}

	key := turnKeyPrefix + conversationID
	if err := s.client.RPush(ctx, key, data).Err(); err != nil {
		return fmt.Errorf("append turn: %w", err)
	}
	if s.ttl > 0 {
		s.client.Expire(ctx, key, s.ttl)
	}
	return nil
}

// Turns implements Store.
func (s *RedisStore) Turns(ctx context.Context, conversationID string, limit int) ([]Turn, error) {
	key := turnKeyPrefix + conversationID

	start := int64(0)
	if limit > 0 {
		start = int64(-limit)
	}
	entries, err := s.client.LRange(ctx, key, start, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read turns: %w", err)
	}

	turns := make([]Turn, 0, len(entries))
	for _, entry := range entries {
		var turn Turn
		if err := json.Unmarshal([]byte(entry), &turn); err != nil {
			return nil, fmt.Errorf("unmarshal turn: %w", err)
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

// SavePreferences implements Store.
func (s *RedisStore) SavePreferences(ctx context.Context, userID string, prefs Preferences) error {
	data, err := json.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := s.client.Set(ctx, prefKeyPrefix+userID, data, 0).Err(); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Preferences implements Store.
func (s *RedisStore) Preferences(ctx context.Context, userID string) (*Preferences, error) {
	data, err := s.client.Get(ctx, prefKeyPrefix+userID).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read preferences: %w", err)
	}

	var prefs Preferences
	if err := json.Unmarshal([]byte(data), &prefs); err != nil {
		return nil, fmt.Errorf("unmarshal preferences: %w", err)
	}
	return &prefs, nil
}

// Ensure RedisStore implements the port at compile time.
var _ Store = (*RedisStore)(nil)
