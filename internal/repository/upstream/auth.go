package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/auth"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/apiclient"
)

type authGateway struct {
	client *apiclient.Client
}

func NewAuthGateway(client *apiclient.Client) auth.Gateway {
	return &authGateway{client: client}
}

func (g *authGateway) Login(ctx context.Context, req auth.LoginRequest) (auth.LoginResult, error) {
	body, err := g.client.Post(ctx, "", "/auth/login", req)
	if err != nil {
		var apiErr *apiclient.APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusBadRequest) {
			return auth.LoginResult{}, fmt.Errorf("%w: %s", auth.ErrInvalidCredentials, apiErr.Message)
		}
		return auth.LoginResult{}, err
	}
	if body == nil {
		return auth.LoginResult{}, emptyResponse("login")
	}
	return auth.MapLoginResult(body)
}

func (g *authGateway) Logout(ctx context.Context, token string) error {
	_, err := g.client.Post(ctx, token, "/auth/logout", nil)
	return err
}
