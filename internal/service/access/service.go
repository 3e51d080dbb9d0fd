package access

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

type AccessServiceImpl struct {
	access.RoleRepository
	cache      access.RoleCache
	navigation []access.NavSection
	now        func() time.Time
}

func NewAccessService(roleRepository access.RoleRepository, cache access.RoleCache, navigation []access.NavSection) access.AccessService {
	if navigation == nil {
		navigation = access.DefaultNavigation
	}
	return &AccessServiceImpl{
		RoleRepository: roleRepository,
		cache:          cache,
		navigation:     navigation,
		now:            time.Now,
	}
}

// Roles returns the session's role table, fetching it from upstream only when
// the cache has none. The cached copy lives as long as the session.
func (s *AccessServiceImpl) Roles(ctx context.Context, sess *session.Session) (access.RoleTable, error) {
	if sess == nil {
		return nil, session.ErrNoSession
	}

	table, ok, err := s.cache.Get(ctx, sess.ID)
	if err != nil {
		slog.Warn("role cache read failed", "session_id", sess.ID, "error", err)
	} else if ok {
		return table, nil
	}

	table, err = s.RoleRepository.List(ctx, sess.AccessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to load role table: %w", err)
	}
	if table == nil {
		table = access.RoleTable{}
	}

	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl > 0 {
		if err := s.cache.Set(ctx, sess.ID, table, ttl); err != nil {
			slog.Warn("role cache write failed", "session_id", sess.ID, "error", err)
		}
	}
	return table, nil
}

// Evaluator never fails: a role table that cannot be loaded yields an
// evaluator that denies everything.
func (s *AccessServiceImpl) Evaluator(ctx context.Context, sess *session.Session) *access.Evaluator {
	if sess == nil {
		return access.NewEvaluator(nil, nil)
	}
	table, err := s.Roles(ctx, sess)
	if err != nil {
		slog.Error("role table unavailable, denying module access", "session_id", sess.ID, "error", err)
		table = nil
	}
	return access.NewEvaluator(sess.User.Roles, table)
}

func (s *AccessServiceImpl) Describe(ctx context.Context, sess *session.Session) access.AccessResponse {
	e := s.Evaluator(ctx, sess)

	resp := access.AccessResponse{
		Roles:      []string{},
		Loaded:     e.Loaded(),
		Modules:    e.Snapshot(),
		Navigation: access.FilterNavigation(e, s.navigation),
	}
	if sess != nil {
		resp.Roles = append(resp.Roles, sess.User.Roles...)
		resp.ActiveRole = ActiveRole(sess)
	}
	return resp
}

func (s *AccessServiceImpl) SelectTab(ctx context.Context, sess *session.Session, route string) (access.Selection, error) {
	nav := access.FilterNavigation(s.Evaluator(ctx, sess), s.navigation)
	sel, ok := access.SelectTab(nav, route)
	if !ok {
		return access.Selection{}, access.ErrAccessDenied
	}
	return sel, nil
}

func (s *AccessServiceImpl) Forget(ctx context.Context, sessionID string) error {
	return s.cache.Delete(ctx, sessionID)
}

// ActiveRole is the session's last-known role when it is still assigned,
// otherwise the user's first role.
func ActiveRole(sess *session.Session) string {
	if sess.LastRole != "" {
		if r, ok := sess.User.HasRole(sess.LastRole); ok {
			return r
		}
	}
	if len(sess.User.Roles) > 0 {
		return sess.User.Roles[0]
	}
	return ""
}
