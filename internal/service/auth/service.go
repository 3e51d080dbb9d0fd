package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/jwt"
	accessService "github.com/cmlabs-hris/hrms-portal/internal/service/access"
	"github.com/google/uuid"
)

// LoginRedirect is where the browser goes after logout.
const LoginRedirect = "/login"

type AuthServiceImpl struct {
	auth.Gateway
	session.SessionRepository
	access.AccessService
	jwt.Service
	sessionTTL time.Duration
	now        func() time.Time
}

func NewAuthService(gateway auth.Gateway, sessionRepository session.SessionRepository, accessSvc access.AccessService, jwtService jwt.Service, sessionTTL time.Duration) auth.AuthService {
	return &AuthServiceImpl{
		Gateway:           gateway,
		SessionRepository: sessionRepository,
		AccessService:     accessSvc,
		Service:           jwtService,
		sessionTTL:        sessionTTL,
		now:               time.Now,
	}
}

// Login implements auth.AuthService.
func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.LoginResponse{}, err
	}

	result, err := a.Gateway.Login(ctx, req)
	if err != nil {
		return auth.LoginResponse{}, err
	}

	now := a.now().UTC()
	sess := session.Session{
		ID:          uuid.NewString(),
		UserID:      result.User.ID,
		User:        result.User,
		AccessToken: result.AccessToken,
		CreatedAt:   now,
		ExpiresAt:   now.Add(a.sessionTTL),
	}
	if sess.UserID == "" {
		sess.UserID = result.User.Email
	}
	if len(sess.User.Roles) > 0 {
		sess.LastRole = sess.User.Roles[0]
	}

	pruned, err := a.SessionRepository.Create(ctx, sess)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to create session: %w", err)
	}
	for _, id := range pruned {
		if err := a.AccessService.Forget(ctx, id); err != nil {
			slog.Error("failed to clear role cache", "session_id", id, "error", err)
		}
	}

	token, err := a.Service.GenerateSessionToken(sess.ID, sess.UserID, sess.ExpiresAt)
	if err != nil {
		return auth.LoginResponse{}, fmt.Errorf("failed to generate session token: %w", err)
	}

	return auth.LoginResponse{
		Token:      token,
		ExpiresAt:  sess.ExpiresAt.Unix(),
		User:       sess.User,
		ActiveRole: accessService.ActiveRole(&sess),
		Access:     a.AccessService.Describe(ctx, &sess),
	}, nil
}

// Logout implements auth.AuthService.
func (a *AuthServiceImpl) Logout(ctx context.Context, sess *session.Session) auth.LogoutResponse {
	resp := auth.LogoutResponse{RedirectTo: LoginRedirect}
	if sess == nil {
		return resp
	}

	if err := a.Gateway.Logout(ctx, sess.AccessToken); err != nil {
		slog.Warn("upstream logout failed, clearing session anyway", "session_id", sess.ID, "error", err)
	}
	a.Expire(ctx, sess.ID)
	return resp
}

// Me implements auth.AuthService.
func (a *AuthServiceImpl) Me(ctx context.Context, sess *session.Session) auth.MeResponse {
	return auth.MeResponse{
		User:       sess.User,
		ActiveRole: accessService.ActiveRole(sess),
		ExpiresAt:  sess.ExpiresAt.Unix(),
		Access:     a.AccessService.Describe(ctx, sess),
	}
}

// SwitchRole implements auth.AuthService.
func (a *AuthServiceImpl) SwitchRole(ctx context.Context, sess *session.Session, req auth.SwitchRoleRequest) (auth.MeResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.MeResponse{}, err
	}

	role, ok := sess.User.HasRole(req.Role)
	if !ok {
		return auth.MeResponse{}, access.ErrRoleNotAssigned
	}
	if err := a.SessionRepository.UpdateLastRole(ctx, sess.ID, role); err != nil {
		return auth.MeResponse{}, fmt.Errorf("failed to update role: %w", err)
	}
	sess.LastRole = role
	return a.Me(ctx, sess), nil
}

// Authenticate implements auth.AuthService.
func (a *AuthServiceImpl) Authenticate(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, err := a.SessionRepository.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.Expired(a.now()) {
		a.Expire(ctx, sess.ID)
		return nil, session.ErrSessionExpired
	}
	return &sess, nil
}

// Expire implements auth.AuthService.
func (a *AuthServiceImpl) Expire(ctx context.Context, sessionID string) {
	if err := a.SessionRepository.Delete(ctx, sessionID); err != nil {
		slog.Error("failed to delete session", "session_id", sessionID, "error", err)
	}
	if err := a.AccessService.Forget(ctx, sessionID); err != nil {
		slog.Error("failed to clear role cache", "session_id", sessionID, "error", err)
	}
}
