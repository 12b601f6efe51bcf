package leave

import "errors"

var (
	ErrLeaveTypeNotFound = errors.New("leave type not found")
)
