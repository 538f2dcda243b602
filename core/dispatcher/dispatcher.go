package dispatcher

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Callback receives every dispatched payload. The payload is passed through
// unchanged; interpreting it is the callback's business. A non-nil error (or
// a panic, which is recovered) rejects the broadcast it ran in.
type Callback func(ctx context.Context, payload any) error

// Dispatcher broadcasts payloads to registered callbacks, one broadcast at a
// time. The zero value is not usable; create instances with New or
// NewFromConfig.
//
// Example:
//
//	d := dispatcher.New(dispatcher.WithLogger(logger))
//	token := d.Register(callback)
//	err := d.Dispatch(ctx, payload).Await()
type Dispatcher struct {
	mu sync.Mutex

	// Registry. Insertion order of tokens is broadcast execution order.
	callbacks map[string]Callback
	order     []string
	lastID    int
	prefix    string

	// Per-broadcast bookkeeping, valid only while dispatching is true.
	dispatching bool
	payload     any
	cycleOrder  []string            // registration snapshot taken at broadcast open
	pending     map[string]struct{} // tokens not yet executed in this broadcast
	open        map[string]struct{} // tokens currently mid-execution, for cycle detection
	current     string              // token whose callback is being invoked right now

	queue          []*queued
	queueWarnAbove int
	logger         *slog.Logger
}

type queued struct {
	ctx     context.Context
	payload any
	result  *Result
}

// New creates a dispatcher with the given options.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		callbacks:      make(map[string]Callback),
		prefix:         defaultTokenPrefix,
		queueWarnAbove: defaultQueueWarnThreshold,
		logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

// Register stores a callback and returns its token. Tokens are unique,
// monotonically assigned, and stable for the lifetime of the registration;
// they are usable with Unregister and WaitFor. Callbacks execute in
// registration order.
func (d *Dispatcher) Register(cb Callback) string {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.lastID++
	token := d.prefix + strconv.Itoa(d.lastID)
	d.callbacks[token] = cb
	d.order = append(d.order, token)

	return token
}

// Unregister removes a callback. It is idempotent: unknown or already removed
// tokens are a no-op. Safe to call mid-broadcast: an in-flight invocation of
// the callback runs to completion, and a pending entry whose callback is gone
// by the time its turn comes is treated as already satisfied.
func (d *Dispatcher) Unregister(token string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.callbacks[token]; !ok {
		return
	}
	delete(d.callbacks, token)

	for i, t := range d.order {
		if t == token {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
}

// IsDispatching reports whether a broadcast is currently open.
func (d *Dispatcher) IsDispatching() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.dispatching
}

// Dispatch broadcasts payload to every registered callback.
//
// If no broadcast is open, the broadcast runs in the caller's goroutine and
// the returned Result is settled before Dispatch returns. If a broadcast is
// already open the call is queued FIFO and the Result settles once the queued
// broadcast has fully completed. The Result rejects if any callback of the
// broadcast rejects; sibling callbacks are still attempted.
func (d *Dispatcher) Dispatch(ctx context.Context, payload any) *Result {
	res := newResult()

	d.mu.Lock()
	if d.dispatching {
		d.queue = append(d.queue, &queued{ctx: ctx, payload: payload, result: res})
		depth := len(d.queue)
		d.mu.Unlock()

		d.logger.DebugContext(ctx, "dispatch deferred, broadcast in progress",
			slog.Int("queue_depth", depth))
		if depth > d.queueWarnAbove {
			d.logger.WarnContext(ctx, "dispatch queue is growing",
				slog.Int("queue_depth", depth),
				slog.Int("threshold", d.queueWarnAbove))
		}
		return res
	}

	tokens := d.openBroadcastLocked(payload)
	d.mu.Unlock()

	res.settle(d.runBroadcast(ctx, tokens))
	return res
}

// WaitFor blocks until every referenced callback has completed within the
// current broadcast, executing the still-pending ones as a nested batch in
// registration order. It may only be called from inside a callback while a
// broadcast is open.
//
// It fails fast with ErrNotDispatching outside a broadcast, ErrUnknownToken
// for an unregistered token, and ErrCircularDependency when a referenced
// token is already executing on the current call stack. Tokens that already
// ran in this broadcast are treated as satisfied.
func (d *Dispatcher) WaitFor(ctx context.Context, tokens ...string) error {
	d.mu.Lock()
	if !d.dispatching {
		d.mu.Unlock()
		return ErrNotDispatching
	}

	requested := make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		if _, ok := d.callbacks[token]; !ok {
			d.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrUnknownToken, token)
		}
		if _, executing := d.open[token]; executing {
			d.mu.Unlock()
			return fmt.Errorf("%w: %s", ErrCircularDependency, token)
		}
		if _, waiting := d.pending[token]; waiting {
			requested[token] = struct{}{}
		}
	}

	// Sub-batch preserves registration order regardless of argument order.
	var sub []string
	for _, token := range d.cycleOrder {
		if _, ok := requested[token]; ok {
			sub = append(sub, token)
		}
	}
	d.mu.Unlock()

	if len(sub) == 0 {
		return nil
	}
	return d.dispatchBatch(ctx, sub)
}

// openBroadcastLocked marks the broadcast open and snapshots the registry.
// Caller must hold d.mu.
func (d *Dispatcher) openBroadcastLocked(payload any) []string {
	d.dispatching = true
	d.payload = payload
	d.current = ""
	d.open = make(map[string]struct{})

	tokens := make([]string, len(d.order))
	copy(tokens, d.order)
	d.cycleOrder = tokens

	d.pending = make(map[string]struct{}, len(tokens))
	for _, token := range tokens {
		d.pending[token] = struct{}{}
	}

	return tokens
}

// runBroadcast executes one broadcast to completion, then drains the queue
// until it is empty. Each drained entry settles its own Result; runBroadcast
// returns only the first broadcast's outcome.
func (d *Dispatcher) runBroadcast(ctx context.Context, tokens []string) error {
	cctx := withCycleMeta(ctx)
	d.logger.DebugContext(cctx, "broadcast opened",
		slog.String("cycle_id", CycleID(cctx)),
		slog.Int("callbacks", len(tokens)))

	err := d.dispatchBatch(cctx, tokens)

	for {
		d.mu.Lock()
		d.dispatching = false
		d.payload = nil
		d.current = ""
		if len(d.queue) == 0 {
			d.mu.Unlock()
			break
		}
		next := d.queue[0]
		d.queue = d.queue[1:]
		nextTokens := d.openBroadcastLocked(next.payload)
		d.mu.Unlock()

		nctx := withCycleMeta(next.ctx)
		d.logger.DebugContext(nctx, "draining deferred broadcast",
			slog.String("cycle_id", CycleID(nctx)),
			slog.Int("callbacks", len(nextTokens)))
		next.result.settle(d.dispatchBatch(nctx, nextTokens))
	}

	return err
}

// withCycleMeta stamps the context with a fresh cycle ID and the dispatch
// start time. Always overwrites: a dispatch issued from inside a callback
// carries the previous broadcast's metadata on its context.
func withCycleMeta(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = WithCycleID(ctx, uuid.New().String())
	return WithDispatchTime(ctx, time.Now())
}
