package config

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

var (
	cache sync.Map // reflect.Type -> parsed config value

	// .env is optional; a missing file is not an error.
	dotenvOnce sync.Once
)

// Load parses environment variables into cfg. The first call for a concrete
// type parses the environment; subsequent calls for the same type return the
// cached value, so every caller observes identical configuration.
func Load[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}

	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	typ := reflect.TypeOf(*cfg)
	if cached, ok := cache.Load(typ); ok {
		*cfg = cached.(T)
		return nil
	}

	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("%w: %v", ErrParseFailed, err)
	}

	// LoadOrStore keeps the winner if two goroutines raced on the first load.
	actual, _ := cache.LoadOrStore(typ, *cfg)
	*cfg = actual.(T)

	return nil
}

// MustLoad is like Load but panics on failure. Useful during application
// startup where missing required configuration should abort the process.
func MustLoad[T any](cfg *T) {
	if err := Load(cfg); err != nil {
		panic(err)
	}
}
