package action

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/dmitrymomot/fluxkit/core/dispatcher"
)

// Func performs an action and returns the payload to broadcast. Returning a
// nil payload skips the broadcast; the action then exists for its side
// effects only.
type Func func(ctx context.Context, args any) (any, error)

// Origin identifies where a Failure originated.
type Origin string

const (
	// OriginAction marks an error returned by the action function itself.
	OriginAction Origin = "action"

	// OriginStore marks an error returned by a callback handling the
	// action's broadcast payload.
	OriginStore Origin = "store"

	// OriginBeforeHook marks an error returned by the before hook.
	OriginBeforeHook Origin = "before_hook"

	// OriginAfterHook marks an error returned by the after hook.
	OriginAfterHook Origin = "after_hook"

	// OriginFailureHook marks an error raised while the Failure broadcast
	// itself was being handled. These are logged, never re-dispatched.
	OriginFailureHook Origin = "failure_hook"
)

// Failure is the payload broadcast whenever an invocation fails. Stores
// subscribe to it like to any other payload type.
type Failure struct {
	Origin Origin
	Action string
	Err    error
}

// Set is a named collection of actions bound to one dispatcher.
//
// Example:
//
//	set := action.NewSet(d, action.WithLogger(logger))
//	set.Register("refresh", refreshAction)
//	err := set.Invoke(ctx, "refresh", nil)
type Set struct {
	mu      sync.RWMutex
	d       *dispatcher.Dispatcher
	actions map[string]Func

	before BeforeHook
	after  AfterHook
	logger *slog.Logger
}

// BeforeHook runs before every action. A non-nil error aborts the invocation.
type BeforeHook func(ctx context.Context, name string, args any) error

// AfterHook runs after the action's payload has been broadcast successfully.
type AfterHook func(ctx context.Context, name string, payload any) error

// NewSet creates an action set bound to the given dispatcher.
func NewSet(d *dispatcher.Dispatcher, opts ...SetOption) *Set {
	if d == nil {
		panic("action: dispatcher cannot be nil")
	}

	s := &Set{
		d:       d,
		actions: make(map[string]Func),
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register adds an action under a name.
// Panics if the name is already taken.
func (s *Set) Register(name string, fn Func) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.actions[name]; exists {
		panic(fmt.Sprintf("%s: %s", ErrDuplicateAction, name))
	}

	s.actions[name] = fn
}

// Invoke runs a named action: before hook, the action function, broadcast of
// the produced payload, after hook. The first error stops the sequence, is
// broadcast as a Failure tagged with its origin, and is returned to the
// caller.
func (s *Set) Invoke(ctx context.Context, name string, args any) error {
	s.mu.RLock()
	fn, ok := s.actions[name]
	before, after := s.before, s.after
	s.mu.RUnlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownAction, name)
	}

	if before != nil {
		if err := before(ctx, name, args); err != nil {
			return s.fail(ctx, OriginBeforeHook, name, err)
		}
	}

	payload, err := fn(ctx, args)
	if err != nil {
		return s.fail(ctx, OriginAction, name, err)
	}

	if payload != nil {
		if err := s.d.Dispatch(ctx, payload).Await(); err != nil {
			return s.fail(ctx, OriginStore, name, err)
		}
	}

	if after != nil {
		if err := after(ctx, name, payload); err != nil {
			return s.fail(ctx, OriginAfterHook, name, err)
		}
	}

	return nil
}

// fail broadcasts the Failure and returns the original error. A rejection of
// the Failure broadcast itself is logged with OriginFailureHook and dropped.
func (s *Set) fail(ctx context.Context, origin Origin, name string, err error) error {
	s.logger.ErrorContext(ctx, "action invocation failed",
		slog.String("action", name),
		slog.String("origin", string(origin)),
		slog.String("error", err.Error()))

	failure := Failure{Origin: origin, Action: name, Err: err}
	if derr := s.d.Dispatch(ctx, failure).Await(); derr != nil {
		s.logger.ErrorContext(ctx, "failure broadcast rejected",
			slog.String("action", name),
			slog.String("origin", string(OriginFailureHook)),
			slog.String("error", derr.Error()))
	}

	return err
}
