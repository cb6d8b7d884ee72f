package app

import "errors"

var (
	// ErrAlreadyActive is returned by Activate on an active controller.
	ErrAlreadyActive = errors.New("app: controller already active")

	// ErrNotActive is returned by Deactivate on an inactive controller.
	ErrNotActive = errors.New("app: controller not active")

	// ErrLoopStopped is returned by Flush once the loop has stopped.
	ErrLoopStopped = errors.New("app: event loop stopped")
)
