package dispatcher

import (
	"context"
	"time"
)

type cycleIDCtx struct{}

// WithCycleID attaches a broadcast cycle ID to the context.
// Dispatch stamps callback contexts automatically; this is exported for tests
// and for propagating the ID across process-internal boundaries.
func WithCycleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cycleIDCtx{}, id)
}

// CycleID extracts the broadcast cycle ID from the context.
// Returns empty string if not present.
func CycleID(ctx context.Context) string {
	if id, ok := ctx.Value(cycleIDCtx{}).(string); ok {
		return id
	}
	return ""
}

type dispatchTimeCtx struct{}

// WithDispatchTime attaches the broadcast start time to the context.
func WithDispatchTime(ctx context.Context, t time.Time) context.Context {
	return context.WithValue(ctx, dispatchTimeCtx{}, t)
}

// DispatchTime extracts the broadcast start time from the context.
// Returns zero time if not present.
func DispatchTime(ctx context.Context) time.Time {
	if t, ok := ctx.Value(dispatchTimeCtx{}).(time.Time); ok {
		return t
	}
	return time.Time{}
}
