package dispatcher

import "log/slog"

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger configures structured logging for dispatcher operations.
// By default all logging is discarded.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Dispatcher) {
		if logger != nil {
			d.logger = logger
		}
	}
}

// WithTokenPrefix overrides the prefix of registration tokens.
// Useful when several dispatchers share a log stream and tokens must be
// distinguishable. Empty values are ignored.
func WithTokenPrefix(prefix string) Option {
	return func(d *Dispatcher) {
		if prefix != "" {
			d.prefix = prefix
		}
	}
}

// WithQueueWarnThreshold configures the deferred-broadcast queue depth above
// which a warning is logged. Zero or negative values are ignored.
func WithQueueWarnThreshold(threshold int) Option {
	return func(d *Dispatcher) {
		if threshold > 0 {
			d.queueWarnAbove = threshold
		}
	}
}
