package dispatcher

const (
	defaultTokenPrefix        = "ID_"
	defaultQueueWarnThreshold = 64
)

// Config holds dispatcher configuration.
// Designed for environment-based configuration using popular env parsing libraries.
type Config struct {
	// TokenPrefix is prepended to the numeric part of every registration token.
	TokenPrefix string `env:"DISPATCHER_TOKEN_PREFIX" envDefault:"ID_"`

	// QueueWarnThreshold is the deferred-broadcast queue depth above which a
	// warning is logged. The queue itself is unbounded.
	QueueWarnThreshold int `env:"DISPATCHER_QUEUE_WARN_THRESHOLD" envDefault:"64"`
}

// DefaultConfig returns sensible defaults for production use.
func DefaultConfig() Config {
	return Config{
		TokenPrefix:        defaultTokenPrefix,
		QueueWarnThreshold: defaultQueueWarnThreshold,
	}
}

// NewFromConfig creates a dispatcher from a Config. Options are applied after
// the config and override it.
//
// Example:
//
//	var cfg dispatcher.Config
//	config.MustLoad(&cfg)
//	d := dispatcher.NewFromConfig(cfg, dispatcher.WithLogger(logger))
func NewFromConfig(cfg Config, opts ...Option) *Dispatcher {
	base := []Option{
		WithTokenPrefix(cfg.TokenPrefix),
		WithQueueWarnThreshold(cfg.QueueWarnThreshold),
	}
	return New(append(base, opts...)...)
}
