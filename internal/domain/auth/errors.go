package auth

import "errors"

var (
	ErrInvalidCredentials = errors.New("Invalid email or password")
	ErrInvalidToken       = errors.New("Invalid or missing session token")
	ErrTokenExpired       = errors.New("Session token expired")
	ErrUpstreamRejected   = errors.New("HRMS API rejected the session")
)
