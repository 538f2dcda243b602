package action_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluxkit/core/action"
	"github.com/dmitrymomot/fluxkit/core/dispatcher"
)

type userCreated struct {
	ID string
}

func TestInvoke_BroadcastsPayload(t *testing.T) {
	t.Parallel()

	d := dispatcher.New()
	set := action.NewSet(d)

	var got []any
	d.Register(func(ctx context.Context, payload any) error {
		got = append(got, payload)
		return nil
	})

	set.Register("create-user", func(ctx context.Context, args any) (any, error) {
		return userCreated{ID: args.(string)}, nil
	})

	require.NoError(t, set.Invoke(context.Background(), "create-user", "u-1"))

	require.Len(t, got, 1)
	assert.Equal(t, userCreated{ID: "u-1"}, got[0])
}

func TestInvoke_NilPayloadSkipsBroadcast(t *testing.T) {
	t.Parallel()

	d := dispatcher.New()
	set := action.NewSet(d)

	var broadcasts int
	d.Register(func(ctx context.Context, payload any) error {
		broadcasts++
		return nil
	})

	var ran bool
	set.Register("side-effect", func(ctx context.Context, args any) (any, error) {
		ran = true
		return nil, nil
	})

	require.NoError(t, set.Invoke(context.Background(), "side-effect", nil))
	assert.True(t, ran)
	assert.Zero(t, broadcasts, "nil payload must not be broadcast")
}

func TestInvoke_UnknownAction(t *testing.T) {
	t.Parallel()

	d := dispatcher.New()
	set := action.NewSet(d)

	err := set.Invoke(context.Background(), "missing", nil)

	require.ErrorIs(t, err, action.ErrUnknownAction)
	assert.Contains(t, err.Error(), "missing")
}

func TestRegister_DuplicatePanics(t *testing.T) {
	t.Parallel()

	d := dispatcher.New()
	set := action.NewSet(d)

	noop := func(ctx context.Context, args any) (any, error) { return nil, nil }
	set.Register("dup", noop)

	assert.Panics(t, func() {
		set.Register("dup", noop)
	})
}

func TestInvoke_ActionErrorBecomesFailure(t *testing.T) {
	t.Parallel()

	d := dispatcher.New()
	set := action.NewSet(d)

	var failures []action.Failure
	d.Register(func(ctx context.Context, payload any) error {
		if f, ok := payload.(action.Failure); ok {
			failures = append(failures, f)
		}
		return nil
	})

	boom := errors.New("boom")
	set.Register("explode", func(ctx context.Context, args any) (any, error) {
		return nil, boom
	})

	err := set.Invoke(context.Background(), "explode", nil)

	require.ErrorIs(t, err, boom, "Invoke should return the original error")
	require.Len(t, failures, 1)
	assert.Equal(t, action.OriginAction, failures[0].Origin)
	assert.Equal(t, "explode", failures[0].Action)
	assert.Equal(t, boom, failures[0].Err)
}

func TestInvoke_StoreErrorBecomesFailure(t *testing.T) {
	t.Parallel()

	d := dispatcher.New()
	set := action.NewSet(d)

	rejected := errors.New("store rejected")
	var failures []action.Failure
	d.Register(func(ctx context.Context, payload any) error {
		switch p := payload.(type) {
		case action.Failure:
			failures = append(failures, p)
			return nil
		default:
			return rejected
		}
	})

	set.Register("noop", func(ctx context.Context, args any) (any, error) {
		return userCreated{ID: "u-2"}, nil
	})

	err := set.Invoke(context.Background(), "noop", nil)

	require.ErrorIs(t, err, rejected)
	require.Len(t, failures, 1)
	assert.Equal(t, action.OriginStore, failures[0].Origin)
	assert.Equal(t, rejected, failures[0].Err)
}

func TestInvoke_BeforeHookAborts(t *testing.T) {
	t.Parallel()

	denied := errors.New("denied")
	d := dispatcher.New()
	set := action.NewSet(d,
		action.WithBeforeHook(func(ctx context.Context, name string, args any) error {
			return denied
		}),
	)

	var failures []action.Failure
	d.Register(func(ctx context.Context, payload any) error {
		if f, ok := payload.(action.Failure); ok {
			failures = append(failures, f)
		}
		return nil
	})

	var ran bool
	set.Register("guarded", func(ctx context.Context, args any) (any, error) {
		ran = true
		return nil, nil
	})

	err := set.Invoke(context.Background(), "guarded", nil)

	require.ErrorIs(t, err, denied)
	assert.False(t, ran, "before-hook failure must prevent the action from running")
	require.Len(t, failures, 1)
	assert.Equal(t, action.OriginBeforeHook, failures[0].Origin)
}

func TestInvoke_AfterHookRunsAfterBroadcast(t *testing.T) {
	t.Parallel()

	var order []string
	d := dispatcher.New()
	set := action.NewSet(d,
		action.WithAfterHook(func(ctx context.Context, name string, payload any) error {
			order = append(order, "after")
			return nil
		}),
	)

	d.Register(func(ctx context.Context, payload any) error {
		order = append(order, "store")
		return nil
	})

	set.Register("ordered", func(ctx context.Context, args any) (any, error) {
		order = append(order, "action")
		return userCreated{ID: "u-3"}, nil
	})

	require.NoError(t, set.Invoke(context.Background(), "ordered", nil))
	assert.Equal(t, []string{"action", "store", "after"}, order)
}

func TestInvoke_AfterHookErrorBecomesFailure(t *testing.T) {
	t.Parallel()

	hookErr := errors.New("after failed")
	d := dispatcher.New()
	set := action.NewSet(d,
		action.WithAfterHook(func(ctx context.Context, name string, payload any) error {
			return hookErr
		}),
	)

	var failures []action.Failure
	d.Register(func(ctx context.Context, payload any) error {
		if f, ok := payload.(action.Failure); ok {
			failures = append(failures, f)
		}
		return nil
	})

	set.Register("noop", func(ctx context.Context, args any) (any, error) {
		return userCreated{ID: "u-4"}, nil
	})

	err := set.Invoke(context.Background(), "noop", nil)

	require.ErrorIs(t, err, hookErr)
	require.Len(t, failures, 1)
	assert.Equal(t, action.OriginAfterHook, failures[0].Origin)
}

func TestInvoke_FailureBroadcastRejectionNotRedispatched(t *testing.T) {
	t.Parallel()

	d := dispatcher.New()
	set := action.NewSet(d)

	var failureBroadcasts int
	d.Register(func(ctx context.Context, payload any) error {
		if _, ok := payload.(action.Failure); ok {
			failureBroadcasts++
			return errors.New("failure handler is itself broken")
		}
		return nil
	})

	boom := errors.New("boom")
	set.Register("explode", func(ctx context.Context, args any) (any, error) {
		return nil, boom
	})

	err := set.Invoke(context.Background(), "explode", nil)

	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, failureBroadcasts,
		"a failing failure handler must not trigger another Failure broadcast")
}

func TestNewSet_NilDispatcherPanics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() {
		action.NewSet(nil)
	})
}
