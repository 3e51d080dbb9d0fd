package session

import "errors"

var (
	ErrSessionNotFound = errors.New("Session not found")
	ErrSessionExpired  = errors.New("Session expired")
	ErrNoSession       = errors.New("No active session")
)
