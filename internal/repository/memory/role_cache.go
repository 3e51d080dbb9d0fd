package memory

import (
	"context"
	"sync"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
)

type entry struct {
	table     access.RoleTable
	expiresAt time.Time
}

// RoleCache keeps role tables in process. It serves single-instance setups
// without Redis.
type RoleCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	now     func() time.Time
}

func NewRoleCache() *RoleCache {
	return &RoleCache{entries: make(map[string]entry), now: time.Now}
}

func (c *RoleCache) Get(ctx context.Context, sessionID string) (access.RoleTable, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[sessionID]
	c.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && !c.now().Before(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, sessionID)
		c.mu.Unlock()
		return nil, false, nil
	}
	return e.table, true, nil
}

func (c *RoleCache) Set(ctx context.Context, sessionID string, table access.RoleTable, ttl time.Duration) error {
	if table == nil {
		table = access.RoleTable{}
	}
	e := entry{table: table}
	if ttl > 0 {
		e.expiresAt = c.now().Add(ttl)
	}
	c.mu.Lock()
	c.entries[sessionID] = e
	c.mu.Unlock()
	return nil
}

func (c *RoleCache) Delete(ctx context.Context, sessionID string) error {
	c.mu.Lock()
	delete(c.entries, sessionID)
	c.mu.Unlock()
	return nil
}

// Prune drops expired entries.
func (c *RoleCache) Prune() int {
	now := c.now()
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for id, e := range c.entries {
		if !e.expiresAt.IsZero() && !now.Before(e.expiresAt) {
			delete(c.entries, id)
			n++
		}
	}
	return n
}
