package session

import (
	"strings"
	"time"
)

// User is the authenticated upstream user as kept in the session.
type User struct {
	ID         string   `json:"id"`
	EmployeeID string   `json:"employeeId"`
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Roles      []string `json:"roles"`
}

// HasRole matches name against the user's roles, ignoring case.
func (u User) HasRole(name string) (string, bool) {
	for _, r := range u.Roles {
		if strings.EqualFold(strings.TrimSpace(r), strings.TrimSpace(name)) {
			return r, true
		}
	}
	return "", false
}

// Session replaces the browser's local storage: the upstream access token,
// the serialized user and the last-known role.
type Session struct {
	ID          string
	UserID      string
	User        User
	AccessToken string
	LastRole    string
	CreatedAt   time.Time
	ExpiresAt   time.Time
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
