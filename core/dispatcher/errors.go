package dispatcher

import "errors"

var (
	// ErrNotDispatching is returned when WaitFor is called outside an open broadcast.
	ErrNotDispatching = errors.New("waitFor called while not dispatching")

	// ErrUnknownToken is returned when WaitFor references a token with no registered callback.
	ErrUnknownToken = errors.New("unknown callback token")

	// ErrCircularDependency is returned when WaitFor references a token that is
	// already executing in the current broadcast, directly or transitively.
	ErrCircularDependency = errors.New("circular dependency detected")

	// ErrAwaitTimeout is returned when Result.AwaitWithTimeout exceeds its duration.
	ErrAwaitTimeout = errors.New("await timed out")
)
