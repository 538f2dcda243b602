// Package store provides the binding layer between payload types and state
// holders. A Store declares which payload types it reacts to, binds to a
// dispatcher with a single registered callback, and notifies subscribed
// listeners after every state change.
//
// # Basic Usage
//
//	type UserCreated struct{ ID string }
//
//	users := store.New()
//	store.On(users, func(ctx context.Context, evt UserCreated) error {
//		byID[evt.ID] = evt
//		return nil
//	})
//
//	token, err := users.BindTo(d)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer users.Unbind()
//
// Payload type names are derived via reflection the same way handlers are
// matched, so `UserCreated` above reacts to any dispatched value of type
// UserCreated (pointers are unwrapped). Payloads with no matching binding are
// ignored by the store.
//
// # Dependencies Between Stores
//
// Inside a handler, WaitFor forces other stores bound to the same dispatcher
// to process the current broadcast first:
//
//	store.On(bookings, func(ctx context.Context, evt FlightQuoted) error {
//		if err := bookings.WaitFor(ctx, flights); err != nil {
//			return err
//		}
//		return book(flights.CurrentPrice())
//	})
//
// # Listeners
//
// Subscribe registers a listener fired after a handler completes without
// error; the returned function removes it:
//
//	unsubscribe := users.Subscribe(func() { render() })
//	defer unsubscribe()
//
// Handler errors are not swallowed: they propagate to the dispatcher and
// become the broadcast's rejection, and listeners are not notified for the
// failed change.
package store
