package auth

import "context"

// Gateway is the upstream authentication API.
type Gateway interface {
	Login(ctx context.Context, req LoginRequest) (LoginResult, error)
	Logout(ctx context.Context, token string) error
}
