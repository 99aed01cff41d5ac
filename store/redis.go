package store

import (
	"context"
	"path"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
)

// The redis store implements the ContextStore interface using Redis as the
// backend, so that session context survives tool-server restarts when the
// agent is deployed with an external tool provider.
// The keys namespace is organized as follows:
// - `/<prefix>/sessionctx/<sessionID>` is a hash of context entries

type redisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore returns a redis-backed ContextStore.
func NewRedisStore(client *redis.Client, prefix string) ContextStore {
	return &redisStore{
		client: client,
		prefix: prefix,
	}
}

func (m *redisStore) getSessionKey(sessionID string) string {
	return path.Join(m.prefix, "sessionctx", sessionID)
}

func (m *redisStore) Get(ctx context.Context, sessionID, key string) (string, error) {
	val, err := m.client.HGet(ctx, m.getSessionKey(sessionID), key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", errors.WithMessage(err, "failed to get session context value")
	}
	return val, nil
}

func (m *redisStore) Set(ctx context.Context, sessionID, key, value string) error {
	err := m.client.HSet(ctx, m.getSessionKey(sessionID), key, value).Err()
	if err != nil {
		return errors.WithMessage(err, "failed to set session context value")
	}
	return nil
}

func (m *redisStore) All(ctx context.Context, sessionID string) (map[string]string, error) {
	vals, err := m.client.HGetAll(ctx, m.getSessionKey(sessionID)).Result()
	if err != nil {
		return nil, errors.WithMessage(err, "failed to list session context")
	}
	return vals, nil
}

func (m *redisStore) Reset(ctx context.Context, sessionID string) error {
	err := m.client.Del(ctx, m.getSessionKey(sessionID)).Err()
	if err != nil {
		return errors.WithMessage(err, "failed to reset session context")
	}
	return nil
}
