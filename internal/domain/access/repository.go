package access

import (
	"context"
	"time"
)

// RoleRepository fetches the role table from the HRMS API.
type RoleRepository interface {
	List(ctx context.Context, token string) (RoleTable, error)
}

// RoleCache holds one role table per portal session.
type RoleCache interface {
	Get(ctx context.Context, sessionID string) (RoleTable, bool, error)
	Set(ctx context.Context, sessionID string, table RoleTable, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
}
