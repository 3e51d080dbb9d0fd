package leave

import "errors"

var (
	ErrLeaveApplicationNotFound = errors.New("Leave application not found")
	ErrAlreadyProcessed         = errors.New("Leave application already processed")
)
