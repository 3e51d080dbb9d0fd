package access

import "errors"

var (
	ErrAccessDenied    = errors.New("You do not have access to this module")
	ErrInvalidAction   = errors.New("Invalid module action")
	ErrRoleNotFound    = errors.New("Role not found")
	ErrRoleNotAssigned = errors.New("Role is not assigned to the current user")
)
