package session

import (
	"context"
	"time"
)

type SessionRepository interface {
	// Create stores s and returns the IDs of the user's older sessions that
	// were dropped to stay within the per-user limit.
	Create(ctx context.Context, s Session) ([]string, error)
	GetByID(ctx context.Context, id string) (Session, error)
	UpdateLastRole(ctx context.Context, id, role string) error
	Delete(ctx context.Context, id string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
