package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"smartbartender/internal/domain"
)

// DefaultRedisKey is the hash that holds the mapping when no key is configured.
const DefaultRedisKey = "smartbartender:users"

// RedisStore keeps the mapping in one Redis hash (field = username,
// value = digest). Save swaps the whole hash inside MULTI/EXEC.
type RedisStore struct {
	rdb redis.Cmdable
	key string
}

// NewRedisStore returns a RedisStore using key on rdb. The caller owns rdb.
func NewRedisStore(rdb redis.Cmdable, key string) *RedisStore {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisStore{rdb: rdb, key: key}
}

// Key returns the Redis key of the hash.
func (s *RedisStore) Key() string { return s.key }

// Load reads the whole hash. A missing key is an empty mapping; a key of the
// wrong Redis type is reported as corrupt storage.
func (s *RedisStore) Load(ctx context.Context) (domain.Credentials, error) {
	fields, err := s.rdb.HGetAll(ctx, s.key).Result()
	if err != nil {
		if isWrongType(err) {
			return nil, fmt.Errorf("%w: redis key %s: %v", domain.ErrStorageCorrupt, s.key, err)
		}
		return nil, fmt.Errorf("redis hgetall %s: %w", s.key, err)
	}
	creds := make(domain.Credentials, len(fields))
	for u, d := range fields {
		creds[domain.Username(u)] = domain.Digest(d)
	}
	return creds, nil
}

// Save replaces the hash with creds.
func (s *RedisStore) Save(ctx context.Context, creds domain.Credentials) error {
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(creds) == 0 {
			return nil
		}
		values := make(map[string]any, len(creds))
		for u, d := range creds {
			values[u.String()] = d.String()
		}
		pipe.HSet(ctx, s.key, values)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis save %s: %w", s.key, err)
	}
	return nil
}

func isWrongType(err error) bool {
	return strings.HasPrefix(err.Error(), "WRONGTYPE")
}

// Compile-time assertion that RedisStore implements domain.CredentialStore.
var _ domain.CredentialStore = (*RedisStore)(nil)
