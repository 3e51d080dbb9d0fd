package auth

import (
	"encoding/json"
	"strings"

	"github.com/cmlabs-hris/hrms-portal/internal/domain/session"
	"github.com/cmlabs-hris/hrms-portal/internal/pkg/payload"
)

// LoginResult is the upstream answer to /auth/login.
type LoginResult struct {
	AccessToken string
	User        session.User
}

// MapLoginResult accepts {token, user} with the token under any of
// access_token, accessToken, token.
func MapLoginResult(data []byte) (LoginResult, error) {
	o, err := payload.Decode("login", data)
	if err != nil {
		return LoginResult{}, err
	}
	o.Ignore("refresh_token", "refreshToken", "token_type", "tokenType", "expires_in", "expiresIn")

	res := LoginResult{
		AccessToken: o.RequiredString("accessToken", "access_token", "token"),
	}
	raw, ok := o.Raw("user", "profile", "employee")
	o.Check(ok, "user", "is required")
	if err := o.Err(); err != nil {
		return LoginResult{}, err
	}

	user, err := MapUser(raw)
	if err != nil {
		return LoginResult{}, err
	}
	res.User = user
	return res, nil
}

// MapUser maps an upstream user. Roles may be a single string, a list of
// strings or a list of {name} objects.
func MapUser(data []byte) (session.User, error) {
	o, err := payload.Decode("user", data)
	if err != nil {
		return session.User{}, err
	}
	o.Ignore("avatar", "avatar_url", "phone", "created_at", "updated_at", "createdAt", "updatedAt", "is_active", "__v")

	u := session.User{
		ID:         o.ID("id", "_id", "user_id"),
		EmployeeID: o.Ref([]string{"id", "_id"}, "employeeId", "employee_id", "employee"),
		Email:      o.RequiredString("email"),
	}

	name := o.String("name", "full_name", "fullName", "username")
	first := o.String("first_name", "firstName")
	last := o.String("last_name", "lastName")
	if name == "" {
		name = strings.TrimSpace(first + " " + last)
	}
	u.Name = name

	if raw, ok := o.Raw("roles", "role", "role_names"); ok {
		roles, err := mapRoleNames(raw)
		o.Check(err == nil, "roles", "must be a role name or a list of roles")
		u.Roles = roles
	}
	if u.Roles == nil {
		u.Roles = []string{}
	}
	return u, o.Err()
}

func mapRoleNames(raw json.RawMessage) ([]string, error) {
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		if strings.TrimSpace(single) == "" {
			return []string{}, nil
		}
		return []string{strings.TrimSpace(single)}, nil
	}

	items, err := payload.DecodeList("role", raw)
	if err != nil {
		return nil, err
	}
	roles := make([]string, 0, len(items))
	for _, item := range items {
		var s string
		if err := json.Unmarshal(item, &s); err == nil {
			if s = strings.TrimSpace(s); s != "" {
				roles = append(roles, s)
			}
			continue
		}
		o, err := payload.Decode("role", item)
		if err != nil {
			return nil, err
		}
		o.Ignore("id", "_id", "description", "modules", "permissions")
		name := o.RequiredString("name", "role_name")
		if err := o.Err(); err != nil {
			return nil, err
		}
		roles = append(roles, name)
	}
	return roles, nil
}
