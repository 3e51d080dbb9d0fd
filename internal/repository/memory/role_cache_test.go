package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoleCache_SetGetDelete(t *testing.T) {
	c := NewRoleCache()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	table := access.RoleTable{{Name: "Employee"}}
	require.NoError(t, c.Set(ctx, "s1", table, time.Hour))
	got, ok, err := c.Get(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, table, got)

	require.NoError(t, c.Delete(ctx, "s1"))
	_, ok, _ = c.Get(ctx, "s1")
	assert.False(t, ok)
}

func TestRoleCache_Expiry(t *testing.T) {
	c := NewRoleCache()
	now := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "s1", access.RoleTable{}, time.Minute))
	require.NoError(t, c.Set(ctx, "s2", access.RoleTable{}, time.Hour))

	now = now.Add(2 * time.Minute)
	_, ok, _ := c.Get(ctx, "s1")
	assert.False(t, ok)
	_, ok, _ = c.Get(ctx, "s2")
	assert.True(t, ok)

	now = now.Add(2 * time.Hour)
	assert.Equal(t, 1, c.Prune())
}

func TestRoleCache_NilTableStoredAsLoaded(t *testing.T) {
	c := NewRoleCache()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "s1", nil, 0))
	got, ok, _ := c.Get(ctx, "s1")
	assert.True(t, ok)
	assert.NotNil(t, got)
}

func TestRoleCache_Concurrent(t *testing.T) {
	c := NewRoleCache()
	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Set(ctx, "shared", access.RoleTable{{Name: "Employee"}}, time.Minute)
			_, _, _ = c.Get(ctx, "shared")
		}()
	}
	wg.Wait()
	_, ok, _ := c.Get(ctx, "shared")
	assert.True(t, ok)
}
