package device

import "errors"

// Errors reported by the device. None of them is recoverable by retrying the call.
var (
	ErrConfig     = errors.New("device: invalid config")
	ErrAllocation = errors.New("device: allocation failed")
	ErrTransfer   = errors.New("device: transfer failed")
	ErrLaunch     = errors.New("device: launch failed")
)
