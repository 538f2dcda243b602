package config

import "errors"

var (
	// ErrNilConfig is returned when Load receives a nil pointer.
	ErrNilConfig = errors.New("config pointer cannot be nil")

	// ErrParseFailed is returned when environment variables cannot be parsed
	// into the config struct.
	ErrParseFailed = errors.New("failed to parse environment variables")
)
