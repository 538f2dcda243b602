package store

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/dmitrymomot/fluxkit/core/dispatcher"
)

// Handler processes a payload the store is bound to.
type Handler func(ctx context.Context, payload any) error

// Store maps payload type names to handlers and participates in broadcasts
// through a single dispatcher callback.
type Store struct {
	mu        sync.RWMutex
	bindings  map[string]Handler
	listeners map[int]func()
	nextSub   int

	d     *dispatcher.Dispatcher
	token string
}

// New creates an empty store. Declare bindings with On or Handle, then attach
// it to a dispatcher with BindTo.
func New() *Store {
	return &Store{
		bindings:  make(map[string]Handler),
		listeners: make(map[int]func()),
	}
}

// On declares a type-safe binding: fn runs for every dispatched payload of
// type T. The binding name is derived from T's type name, unwrapping
// pointers. Dispatch the exact type T, not a pointer to it, unless T itself
// is a pointer type.
func On[T any](s *Store, fn func(ctx context.Context, payload T) error) {
	var zero T
	name := payloadName(zero)

	s.Handle(name, func(ctx context.Context, payload any) error {
		typed, ok := payload.(T)
		if !ok {
			// Same type name from a different package; nothing we can do with it.
			return fmt.Errorf("unexpected payload type %T for binding %s", payload, name)
		}
		return fn(ctx, typed)
	})
}

// Handle declares a binding under an explicit name. The last handler
// registered for a name wins.
func (s *Store) Handle(name string, h Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bindings[name] = h
}

// BindTo registers the store with a dispatcher and returns the registration
// token. A store can be bound to at most one dispatcher at a time.
func (s *Store) BindTo(d *dispatcher.Dispatcher) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.d != nil {
		return "", ErrAlreadyBound
	}

	s.d = d
	s.token = d.Register(s.dispatch)
	return s.token, nil
}

// Unbind removes the store's callback from the dispatcher.
func (s *Store) Unbind() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.d == nil {
		return ErrNotBound
	}

	s.d.Unregister(s.token)
	s.d = nil
	s.token = ""
	return nil
}

// Token returns the dispatcher registration token, or empty if unbound.
// Other components use it with the dispatcher's WaitFor directly.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// WaitFor blocks until each dependency store has processed the current
// broadcast. Callable only from inside a handler. Every dependency must be
// bound to the same dispatcher as s.
func (s *Store) WaitFor(ctx context.Context, deps ...*Store) error {
	s.mu.RLock()
	d := s.d
	s.mu.RUnlock()

	if d == nil {
		return ErrNotBound
	}

	tokens := make([]string, 0, len(deps))
	for _, dep := range deps {
		token := dep.Token()
		if token == "" {
			return fmt.Errorf("%w: dependency store", ErrNotBound)
		}
		tokens = append(tokens, token)
	}

	return d.WaitFor(ctx, tokens...)
}

// Subscribe registers a listener fired after every successful state change.
// The returned function removes the listener; calling it twice is harmless.
func (s *Store) Subscribe(fn func()) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

// dispatch is the store's dispatcher callback. Payloads with no matching
// binding are ignored; handler errors propagate to the dispatcher untouched.
func (s *Store) dispatch(ctx context.Context, payload any) error {
	name := payloadName(payload)
	if name == "" {
		return nil
	}

	s.mu.RLock()
	h := s.bindings[name]
	s.mu.RUnlock()

	if h == nil {
		return nil
	}

	if err := h(ctx, payload); err != nil {
		return err
	}

	s.notify()
	return nil
}

func (s *Store) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

// payloadName extracts the type name from a payload value, unwrapping any
// pointer types.
func payloadName(v any) string {
	t := reflect.TypeOf(v)
	if t == nil {
		return ""
	}

	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	return t.Name()
}
