package credential

import (
	"context"
	"errors"
	"time"

	"github.com/kbukum/labauth/redis"
)

// redisRecord is the JSON value stored per identity.
type redisRecord struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// RedisStore keeps one key per identity and relies on SETNX for the
// check-and-set.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store over a connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

var _ Store = (*RedisStore)(nil)

func (s *RedisStore) key(username string) string {
	return s.client.Key("identity", username)
}

func (s *RedisStore) Insert(ctx context.Context, id Identity) error {
	rec := redisRecord{Username: id.Username, PasswordHash: id.PasswordHash, CreatedAt: id.CreatedAt}
	created, err := s.client.SetNXJSON(ctx, s.key(id.Username), rec, 0)
	if err != nil {
		return unavailable("insert", err)
	}
	if !created {
		return ErrAlreadyExists
	}
	return nil
}

func (s *RedisStore) Lookup(ctx context.Context, username string) (Identity, error) {
	var rec redisRecord
	err := s.client.GetJSON(ctx, s.key(username), &rec)
	switch {
	case err == nil:
		return Identity{Username: rec.Username, PasswordHash: rec.PasswordHash, CreatedAt: rec.CreatedAt}, nil
	case errors.Is(err, redis.ErrNotFound):
		return Identity{}, ErrNotFound
	default:
		return Identity{}, unavailable("lookup", err)
	}
}
