// Package config provides type-safe environment variable loading with caching
// using Go generics. Each configuration type is loaded once and cached for
// subsequent calls.
//
// The package automatically loads .env files on first use and uses the
// caarlos0/env library for parsing environment variables into struct fields.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/fluxkit/core/config"
//
//	type DispatcherConfig struct {
//		TokenPrefix        string `env:"DISPATCHER_TOKEN_PREFIX" envDefault:"ID_"`
//		QueueWarnThreshold int    `env:"DISPATCHER_QUEUE_WARN_THRESHOLD" envDefault:"64"`
//	}
//
//	func main() {
//		var cfg DispatcherConfig
//
//		// Load with error handling
//		if err := config.Load(&cfg); err != nil {
//			log.Fatal(err)
//		}
//
//		// Or panic on failure (useful for startup)
//		config.MustLoad(&cfg)
//	}
//
// # Caching Behavior
//
// Each configuration type is loaded only once per application lifetime:
//
//	var cfg1 DispatcherConfig
//	config.Load(&cfg1) // Loads from environment
//
//	var cfg2 DispatcherConfig
//	config.Load(&cfg2) // Returns cached value, cfg1 == cfg2
//
// Different types are cached independently:
//
//	type LoggerConfig struct {
//		Level string `env:"LOG_LEVEL" envDefault:"info"`
//	}
//
//	// Each type has its own cache entry
//	config.MustLoad(&DispatcherConfig{})
//	config.MustLoad(&LoggerConfig{})
package config
