package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Agricultural-portal/Frontend-sub001/internal/identity"
)

const (
	redisTokenSuffix    = ":token"
	redisIdentitySuffix = ":identity"
)

// RedisStore persists sessions in Redis. Keys carry a TTL derived from the
// identity expiry, with a defensive expiry check on read in case the clock
// and the TTL disagree.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore builds a Redis-backed credential store.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "session:"}
}

func (s *RedisStore) Write(ctx context.Context, sid string, id identity.Identity) error {
	ttl := time.Until(id.ExpiresAt)
	if ttl <= 0 {
		return s.Clear(ctx, sid)
	}
	data, err := json.Marshal(id)
	if err != nil {
		return err
	}
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, s.prefix+sid+redisTokenSuffix, id.Token, ttl)
	pipe.Set(ctx, s.prefix+sid+redisIdentitySuffix, data, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Read(ctx context.Context, sid string) (*identity.Identity, error) {
	tok, err := s.client.Get(ctx, s.prefix+sid+redisTokenSuffix).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	data, err := s.client.Get(ctx, s.prefix+sid+redisIdentitySuffix).Result()
	if err == redis.Nil || tok == "" {
		// Half-written state counts as fully absent.
		return nil, s.Clear(ctx, sid)
	}
	if err != nil {
		return nil, err
	}

	var id identity.Identity
	if err := json.Unmarshal([]byte(data), &id); err != nil {
		return nil, s.Clear(ctx, sid)
	}
	if !id.ExpiresAt.After(time.Now()) {
		return nil, s.Clear(ctx, sid)
	}
	return &id, nil
}

func (s *RedisStore) Clear(ctx context.Context, sid string) error {
	return s.client.Del(ctx, s.prefix+sid+redisTokenSuffix, s.prefix+sid+redisIdentitySuffix).Err()
}
