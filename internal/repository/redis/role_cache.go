package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	goredis "github.com/redis/go-redis/v9"
)

const keyPrefix = "portal:roles:"

type roleCacheImpl struct {
	client goredis.UniversalClient
}

// NewRoleCache stores role tables as JSON under portal:roles:<session id>.
func NewRoleCache(client goredis.UniversalClient) access.RoleCache {
	return &roleCacheImpl{client: client}
}

func (c *roleCacheImpl) Get(ctx context.Context, sessionID string) (access.RoleTable, bool, error) {
	data, err := c.client.Get(ctx, keyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read role cache: %w", err)
	}

	table := access.RoleTable{}
	if err := json.Unmarshal(data, &table); err != nil {
		return nil, false, fmt.Errorf("failed to decode cached roles: %w", err)
	}
	return table, true, nil
}

func (c *roleCacheImpl) Set(ctx context.Context, sessionID string, table access.RoleTable, ttl time.Duration) error {
	if table == nil {
		table = access.RoleTable{}
	}
	data, err := json.Marshal(table)
	if err != nil {
		return fmt.Errorf("failed to encode roles: %w", err)
	}
	if err := c.client.Set(ctx, keyPrefix+sessionID, data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to write role cache: %w", err)
	}
	return nil
}

func (c *roleCacheImpl) Delete(ctx context.Context, sessionID string) error {
	if err := c.client.Del(ctx, keyPrefix+sessionID).Err(); err != nil {
		return fmt.Errorf("failed to delete role cache: %w", err)
	}
	return nil
}
