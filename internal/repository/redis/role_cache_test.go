package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupCache(t *testing.T) access.RoleCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := goredis.NewClient(&goredis.Options{Addr: addr})
	t.Cleanup(func() { client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())
	return NewRoleCache(client)
}

func TestRoleCache_RoundTrip(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()

	table := access.RoleTable{{Name: "Manager", Modules: map[string]access.ModulePermission{
		"leave_approvals": {View: true, Approve: true},
	}}}
	require.NoError(t, cache.Set(ctx, "sess-redis", table, time.Minute))

	got, ok, err := cache.Get(ctx, "sess-redis")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, table, got)

	require.NoError(t, cache.Delete(ctx, "sess-redis"))
	_, ok, err = cache.Get(ctx, "sess-redis")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRoleCache_EmptyTableIsLoaded(t *testing.T) {
	cache := setupCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, "sess-empty", nil, time.Minute))
	got, ok, err := cache.Get(ctx, "sess-empty")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
