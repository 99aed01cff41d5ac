package store_test

import (
	"context"
	"testing"

	"github.com/omniagent-io/omniagent/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()

	// empty before any tool call recorded anything
	all, err := s.All(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, all)

	val, err := s.Get(ctx, "sess-1", "member_id")
	require.NoError(t, err)
	assert.Equal(t, "", val)

	require.NoError(t, s.Set(ctx, "sess-1", "member_id", "MEM-1001"))
	require.NoError(t, s.Set(ctx, "sess-1", "member_name", "Alice Johnson"))
	require.NoError(t, s.Set(ctx, "sess-2", "member_id", "MEM-1002"))

	val, err = s.Get(ctx, "sess-1", "member_id")
	require.NoError(t, err)
	assert.Equal(t, "MEM-1001", val)

	all, err = s.All(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"member_id":   "MEM-1001",
		"member_name": "Alice Johnson",
	}, all)

	// sessions are isolated
	all2, err := s.All(ctx, "sess-2")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"member_id": "MEM-1002"}, all2)

	require.NoError(t, s.Reset(ctx, "sess-1"))
	all, err = s.All(ctx, "sess-1")
	require.NoError(t, err)
	assert.Empty(t, all)

	// overwriting is allowed
	require.NoError(t, s.Set(ctx, "sess-2", "member_id", "MEM-1003"))
	val, err = s.Get(ctx, "sess-2", "member_id")
	require.NoError(t, err)
	assert.Equal(t, "MEM-1003", val)
}
