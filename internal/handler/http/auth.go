package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/handler/http/response"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/jwt"
)

type AuthHandler interface {
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
	Me(w http.ResponseWriter, r *http.Request)
	SwitchRole(w http.ResponseWriter, r *http.Request)
}

type AuthHandlerImpl struct {
	jwtService  jwt.Service
	authService auth.AuthService
}

func NewAuthHandler(jwtService jwt.Service, authService auth.AuthService) AuthHandler {
	return &AuthHandlerImpl{
		jwtService:  jwtService,
		authService: authService,
	}
}

// Login implements AuthHandler.
func (a *AuthHandlerImpl) Login(w http.ResponseWriter, r *http.Request) {
	var loginReq auth.LoginRequest

	// 1. Decode JSON
	if err := json.NewDecoder(r.Body).Decode(&loginReq); err != nil {
		slog.Error("Login decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	// Validation and upstream call happen in the service
	loginResp, err := a.authService.Login(r.Context(), loginReq)
	if err != nil {
		slog.Error("Login service error", "error", err)
		response.HandleError(w, err)
		return
	}

	http.SetCookie(w, a.jwtService.SessionCookie(loginResp.Token, time.Unix(loginResp.ExpiresAt, 0)))

	slog.Info("User logged in", "user_id", loginResp.User.ID)
	response.SuccessWithMessage(w, "Login successful", loginResp)
}

// Logout implements AuthHandler. It always succeeds and sends the browser
// back to the login page.
func (a *AuthHandlerImpl) Logout(w http.ResponseWriter, r *http.Request) {
	sess, _ := session.FromContext(r.Context())

	logoutResp := a.authService.Logout(r.Context(), sess)
	http.SetCookie(w, a.jwtService.ClearSessionCookie())

	response.SuccessWithMessage(w, "Logout successful", logoutResp)
}

// Me implements AuthHandler.
func (a *AuthHandlerImpl) Me(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, a.authService.Me(r.Context(), sess))
}

// SwitchRole implements AuthHandler.
func (a *AuthHandlerImpl) SwitchRole(w http.ResponseWriter, r *http.Request) {
	sess, err := session.FromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req auth.SwitchRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("SwitchRole decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	meResp, err := a.authService.SwitchRole(r.Context(), sess, req)
	if err != nil {
		slog.Error("SwitchRole service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role switched successfully", meResp)
}
