package dispatcher

import (
	"context"
	"fmt"
	"log/slog"
)

// dispatchBatch runs the given tokens strictly in order, one at a time. It is
// shared by top-level broadcasts and nested WaitFor sub-batches: both operate
// on the same pending map and open set, so a token consumed by a nested batch
// is skipped when the outer loop reaches it.
//
// The batch never short-circuits. Every token is attempted and the first
// error encountered becomes the batch outcome.
func (d *Dispatcher) dispatchBatch(ctx context.Context, tokens []string) error {
	var firstErr error

	for _, token := range tokens {
		if err := d.step(ctx, token); err != nil {
			d.logger.ErrorContext(ctx, "callback rejected broadcast",
				slog.String("cycle_id", CycleID(ctx)),
				slog.String("token", token),
				slog.String("error", err.Error()))
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	return firstErr
}

// step executes a single token's callback. Cleanup (removing the token from
// the pending map and open set) is deferred so it runs on every exit path:
// normal return, callback error, or panic.
func (d *Dispatcher) step(ctx context.Context, token string) (err error) {
	d.mu.Lock()
	if _, waiting := d.pending[token]; !waiting {
		// Already consumed by an earlier WaitFor within this broadcast.
		d.postDispatchLocked(token)
		d.mu.Unlock()
		return nil
	}
	d.current = token
	d.open[token] = struct{}{}
	cb := d.callbacks[token]
	payload := d.payload
	d.mu.Unlock()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("callback %s panicked: %v", token, r)
		}
		d.mu.Lock()
		d.postDispatchLocked(token)
		d.mu.Unlock()
	}()

	// Unregistered (or nil) since the broadcast opened: treated as satisfied.
	if cb == nil {
		return nil
	}

	return cb(ctx, payload)
}

// postDispatchLocked clears a token's per-broadcast state. An empty token is
// a guarded no-op so cleanup is safe to invoke idempotently on every exit
// path. Caller must hold d.mu.
func (d *Dispatcher) postDispatchLocked(token string) {
	if token == "" {
		return
	}
	delete(d.pending, token)
	delete(d.open, token)
	if d.current == token {
		d.current = ""
	}
}
