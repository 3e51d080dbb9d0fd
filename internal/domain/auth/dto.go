package auth

import (
	"github.com/cmlabs-hris/hrms-portal/internal/domain/access"
	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/validator"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	var errs validator.ValidationErrors

	// Email
	if validator.IsEmpty(r.Email) {
		errs.Add("email", "email is required")
	} else if !validator.IsValidEmail(r.Email) {
		errs.Add("email", "email must be a valid email address")
	}

	// Password
	if validator.IsEmpty(r.Password) {
		errs.Add("password", "password is required")
	}

	return errs.Err()
}

type SwitchRoleRequest struct {
	Role string `json:"role"`
}

func (r *SwitchRoleRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.Role) {
		errs.Add("role", "role is required")
	}
	return errs.Err()
}

type LoginResponse struct {
	Token      string                `json:"token"`
	ExpiresAt  int64                 `json:"expiresAt"`
	User       session.User          `json:"user"`
	ActiveRole string                `json:"activeRole"`
	Access     access.AccessResponse `json:"access"`
}

type MeResponse struct {
	User       session.User          `json:"user"`
	ActiveRole string                `json:"activeRole"`
	ExpiresAt  int64                 `json:"expiresAt"`
	Access     access.AccessResponse `json:"access"`
}

type LogoutResponse struct {
	RedirectTo string `json:"redirect_to"`
}
