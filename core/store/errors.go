package store

import "errors"

var (
	// ErrAlreadyBound is returned when BindTo is called on a store that is
	// already bound to a dispatcher.
	ErrAlreadyBound = errors.New("store already bound to a dispatcher")

	// ErrNotBound is returned when an operation requires the store to be
	// bound to a dispatcher and it is not.
	ErrNotBound = errors.New("store not bound to a dispatcher")
)
