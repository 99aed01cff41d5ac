package store_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/omniagent-io/omniagent/store"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("OMNIAGENT_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("OMNIAGENT_TEST_REDIS_ADDR is not set")
	}

	ctx := context.Background()
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })

	s := store.NewRedisStore(client, "/test")
	sessionID := uuid.NewString()

	all, err := s.All(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, all)

	require.NoError(t, s.Set(ctx, sessionID, "member_id", "MEM-1001"))
	require.NoError(t, s.Set(ctx, sessionID, "member_tier", "Gold"))

	val, err := s.Get(ctx, sessionID, "member_id")
	require.NoError(t, err)
	assert.Equal(t, "MEM-1001", val)

	val, err = s.Get(ctx, sessionID, "missing")
	require.NoError(t, err)
	assert.Equal(t, "", val)

	all, err = s.All(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"member_id":   "MEM-1001",
		"member_tier": "Gold",
	}, all)

	require.NoError(t, s.Reset(ctx, sessionID))
	all, err = s.All(ctx, sessionID)
	require.NoError(t, err)
	assert.Empty(t, all)
}
