package action

import "errors"

var (
	// ErrUnknownAction is returned when Invoke references an unregistered action name.
	ErrUnknownAction = errors.New("unknown action")

	// ErrDuplicateAction is used in the panic message when an action name is registered twice.
	ErrDuplicateAction = errors.New("action already registered")
)
