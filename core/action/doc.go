// Package action provides the invocation layer on top of the dispatcher: a
// named action produces a payload, the payload is broadcast, and any failure
// along the way is re-broadcast as a structured Failure event through the
// same dispatcher.
//
// # Basic Usage
//
//	d := dispatcher.New()
//	set := action.NewSet(d)
//
//	set.Register("create-user", func(ctx context.Context, args any) (any, error) {
//		req := args.(CreateUserRequest)
//		user, err := svc.Create(ctx, req)
//		if err != nil {
//			return nil, err
//		}
//		return UserCreated{ID: user.ID}, nil
//	})
//
//	if err := set.Invoke(ctx, "create-user", req); err != nil {
//		// err is the original failure; a Failure payload was already
//		// broadcast so stores could react to it.
//	}
//
// # Failure Convention
//
// Every error, whether from the action itself, from a callback handling the
// dispatched payload, or from a hook, is wrapped into a Failure payload
// tagged with its origin and dispatched through the same dispatcher. Stores
// subscribe to Failure like any other payload. An error raised while
// broadcasting the Failure itself is logged, never re-dispatched, so failure
// handling cannot recurse.
//
// # Hooks
//
// Optional before/after hooks run around every invocation:
//
//	set := action.NewSet(d,
//		action.WithBeforeHook(func(ctx context.Context, name string, args any) error {
//			logger.Info("invoking", "action", name)
//			return nil
//		}),
//		action.WithAfterHook(func(ctx context.Context, name string, payload any) error {
//			metrics.Count(name)
//			return nil
//		}),
//	)
//
// A before-hook error aborts the invocation (the action never runs); an
// after-hook error surfaces after the broadcast has completed. Both are
// reported through the Failure convention with their own origins.
//
// # Re-entrancy
//
// Invoke awaits each broadcast it starts, so it must be called from
// application entry points, not from inside a dispatcher callback: a
// broadcast started inside a broadcast is queued, and awaiting it there
// would wait forever.
package action
