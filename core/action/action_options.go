package action

import "log/slog"

// SetOption configures a Set.
type SetOption func(*Set)

// WithBeforeHook runs fn before every action invocation.
func WithBeforeHook(fn BeforeHook) SetOption {
	return func(s *Set) {
		s.before = fn
	}
}

// WithAfterHook runs fn after every successfully broadcast invocation.
func WithAfterHook(fn AfterHook) SetOption {
	return func(s *Set) {
		s.after = fn
	}
}

// WithLogger configures structured logging for invocation failures.
// By default all logging is discarded.
func WithLogger(logger *slog.Logger) SetOption {
	return func(s *Set) {
		if logger != nil {
			s.logger = logger
		}
	}
}
