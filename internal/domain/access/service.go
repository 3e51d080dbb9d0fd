package access

import (
	"context"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

type AccessResponse struct {
	Roles      []string                    `json:"roles"`
	ActiveRole string                      `json:"activeRole"`
	Loaded     bool                        `json:"loaded"`
	Modules    map[string]ModulePermission `json:"modules"`
	Navigation []NavSection                `json:"navigation"`
}

type AccessService interface {
	// Evaluator builds an evaluator for the session, loading the role table
	// once and caching it for the session's lifetime.
	Evaluator(ctx context.Context, sess *session.Session) *Evaluator
	Roles(ctx context.Context, sess *session.Session) (RoleTable, error)
	Describe(ctx context.Context, sess *session.Session) AccessResponse
	SelectTab(ctx context.Context, sess *session.Session, route string) (Selection, error)
	// Forget drops the cached role table of a session.
	Forget(ctx context.Context, sessionID string) error
}
