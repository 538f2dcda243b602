// Package dispatcher provides a single-flight broadcast dispatcher: every
// dispatched payload is delivered to all registered callbacks in registration
// order, with at most one broadcast in flight at any time.
//
// # Core Guarantees
//
// At most one broadcast is open at any instant. Dispatch calls that arrive
// while a broadcast is running are queued and executed strictly FIFO, one
// fully completing before the next starts, so no two payloads' callback
// executions ever interleave.
//
// Within a broadcast, callbacks run sequentially in registration order. A
// callback may call WaitFor to force other callbacks of the same broadcast to
// run first, which is how dependency ordering between callbacks is expressed.
// Circular waits are detected and rejected instead of deadlocking.
//
// # Basic Usage
//
//	d := dispatcher.New()
//
//	token := d.Register(func(ctx context.Context, payload any) error {
//		fmt.Printf("got %v\n", payload)
//		return nil
//	})
//	defer d.Unregister(token)
//
//	if err := d.Dispatch(context.Background(), "hello").Await(); err != nil {
//		log.Fatal(err)
//	}
//
// # Dependency Ordering
//
// WaitFor pulls dependencies earlier within the current broadcast. It never
// reorders independent callbacks and it never carries over to other
// broadcasts:
//
//	var price float64
//
//	flightToken := d.Register(func(ctx context.Context, payload any) error {
//		price = lookupPrice(payload)
//		return nil
//	})
//
//	d.Register(func(ctx context.Context, payload any) error {
//		// Runs only after the flight callback has completed.
//		if err := d.WaitFor(ctx, flightToken); err != nil {
//			return err
//		}
//		return bookSeat(payload, price)
//	})
//
// # Queueing
//
// Dispatch returns a Result future. When no broadcast is open the broadcast
// runs in the caller's goroutine and the Result is already settled on return.
// When a broadcast is open the call is queued and the Result settles once the
// queued broadcast has run to completion:
//
//	res := d.Dispatch(ctx, payload) // queued if a broadcast is open
//	// ... later
//	if err := res.Await(); err != nil {
//		log.Printf("broadcast failed: %v", err)
//	}
//
// A callback may therefore call Dispatch, but it must not Await the returned
// Result from inside the broadcast: the queued broadcast cannot start until
// the current one finishes.
//
// # Error Semantics
//
// A callback error (or recovered panic) becomes the broadcast's rejection,
// observable through the Result returned by Dispatch. Sibling callbacks in
// the same broadcast are still attempted; the first error wins. WaitFor
// surfaces the nested batch's first error to its caller the same way.
//
// Programmer errors fail fast: WaitFor outside a broadcast returns
// ErrNotDispatching, an unregistered token returns ErrUnknownToken, and a
// token already on the current call stack returns ErrCircularDependency.
//
// # Limitations
//
// There is no cancellation or timeout of a running callback: a callback that
// never returns stalls its broadcast and the whole queue. Context
// cancellation is the callback's own responsibility.
//
// # Thread Safety
//
// All methods are safe for concurrent use. Callbacks themselves run one at a
// time, so state touched only from callbacks needs no extra locking.
package dispatcher
