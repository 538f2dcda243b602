package dispatcher

import (
	"sync"
	"time"
)

// Result represents the outcome of a dispatched broadcast. A Result settles
// exactly once: with nil when every callback of the broadcast completed, or
// with the first callback error otherwise.
type Result struct {
	err  error
	once sync.Once
	done chan struct{}
}

func newResult() *Result {
	return &Result{done: make(chan struct{})}
}

// settle completes the result. Subsequent calls are no-ops.
func (r *Result) settle(err error) {
	r.once.Do(func() {
		r.err = err
		close(r.done)
	})
}

// Await blocks until the broadcast has completed and returns its outcome.
//
// Do not call Await from inside a dispatcher callback for a Result obtained
// during that same broadcast: the queued broadcast cannot start until the
// current one finishes, so the wait would never end.
func (r *Result) Await() error {
	<-r.done
	return r.err
}

// AwaitWithTimeout waits for the broadcast to complete with a timeout.
// Returns ErrAwaitTimeout if the timeout elapses first; the broadcast itself
// keeps running.
func (r *Result) AwaitWithTimeout(timeout time.Duration) error {
	select {
	case <-r.done:
		return r.err
	case <-time.After(timeout):
		return ErrAwaitTimeout
	}
}

// IsComplete reports whether the broadcast has completed, without blocking.
func (r *Result) IsComplete() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}
