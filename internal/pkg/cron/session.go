package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

const sessionCleanupInterval = 10 * time.Minute

// Pruner drops expired entries from an in-process cache.
type Pruner interface {
	Prune() int
}

// SessionJobs removes expired portal sessions and their cached role tables.
type SessionJobs struct {
	sessionRepo session.SessionRepository
	roleCache   Pruner
	now         func() time.Time
}

// NewSessionJobs builds the session jobs. roleCache may be nil when the role
// cache expires entries on its own.
func NewSessionJobs(sessionRepo session.SessionRepository, roleCache Pruner) *SessionJobs {
	return &SessionJobs{sessionRepo: sessionRepo, roleCache: roleCache, now: time.Now}
}

func (j *SessionJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("delete_expired_sessions", sessionCleanupInterval, j.DeleteExpiredSessions)
	if j.roleCache != nil {
		scheduler.AddJob("prune_role_cache", sessionCleanupInterval, j.PruneRoleCache)
	}
}

func (j *SessionJobs) DeleteExpiredSessions(ctx context.Context) error {
	n, err := j.sessionRepo.DeleteExpired(ctx, j.now())
	if err != nil {
		return fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	if n > 0 {
		slog.Info("Expired sessions removed", "count", n)
	}
	return nil
}

func (j *SessionJobs) PruneRoleCache(ctx context.Context) error {
	if n := j.roleCache.Prune(); n > 0 {
		slog.Debug("Role cache pruned", "count", n)
	}
	return nil
}
