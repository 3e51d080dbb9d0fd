package auth

import (
	"context"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)
	// Logout never fails: upstream errors are logged and the portal session
	// is removed regardless.
	Logout(ctx context.Context, sess *session.Session) LogoutResponse
	Me(ctx context.Context, sess *session.Session) MeResponse
	SwitchRole(ctx context.Context, sess *session.Session, req SwitchRoleRequest) (MeResponse, error)
	// Authenticate resolves a portal session from its id.
	Authenticate(ctx context.Context, sessionID string) (*session.Session, error)
	// Expire removes a session whose upstream token was rejected.
	Expire(ctx context.Context, sessionID string)
}
