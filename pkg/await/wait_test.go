package await

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// doneHandle is a completed handle whose Get must never be called.
type doneHandle[T any] struct {
	v         T
	err       error
	cancelled bool
	gets      atomic.Int32
}

func (h *doneHandle[T]) IsDone() bool      { return true }
func (h *doneHandle[T]) IsCancelled() bool { return h.cancelled }
func (h *doneHandle[T]) ResultNow() (T, error) {
	return h.v, h.err
}
func (h *doneHandle[T]) Get(ctx context.Context) (T, error) {
	h.gets.Add(1)
	return h.v, h.err
}

func TestWait_ShortCircuitsCompletedValue(t *testing.T) {
	t.Parallel()
	b, spawns := newTestBridge(t)

	got, err := Wait[string](context.Background(), b, Completed("OK"))

	require.NoError(t, err)
	assert.Equal(t, "OK", got)
	assert.Equal(t, 0, spawns.count())
}

func TestWait_ShortCircuitReturnsSameValue(t *testing.T) {
	t.Parallel()
	b, spawns := newTestBridge(t)
	want := &payload{n: 5}
	h := &doneHandle[*payload]{v: want}

	got, err := Wait(context.Background(), b, Handle[*payload](h))

	require.NoError(t, err)
	assert.Same(t, want, got)
	assert.Zero(t, h.gets.Load())
	assert.Equal(t, 0, spawns.count())
}

func TestWait_ShortCircuitsFailure(t *testing.T) {
	t.Parallel()
	b, spawns := newTestBridge(t)
	boom := errors.New("boom")

	_, err := Wait[int](context.Background(), b, Failed[int](boom))

	assert.Same(t, boom, err)
	assert.Equal(t, 0, spawns.count())
}

func TestWait_ShortCircuitsCancelled(t *testing.T) {
	t.Parallel()
	b, spawns := newTestBridge(t)
	f := NewFuture[int]()
	f.Cancel()

	_, err := Wait[int](context.Background(), b, f)
	assert.ErrorIs(t, err, Cancelled)

	_, err = Wait(context.Background(), b, Handle[int](&doneHandle[int]{cancelled: true}))
	assert.ErrorIs(t, err, Cancelled)

	assert.Equal(t, 0, spawns.count())
}

func TestWait_ShortCircuitsFatal(t *testing.T) {
	t.Parallel()
	b, spawns := newTestBridge(t)
	fatal := &fatalCondition{msg: "oom"}

	assert.PanicsWithValue(t, fatal, func() {
		_, _ = Wait[int](context.Background(), b, Failed[int](&PanicError{Value: fatal}))
	})
	assert.Equal(t, 0, spawns.count())
}

func TestWait_ShortCircuitTranslatesInterruption(t *testing.T) {
	t.Parallel()
	b, _ := newTestBridge(t)

	_, err := Wait[int](context.Background(), b, Failed[int](context.Canceled))

	assert.ErrorIs(t, err, Interrupted)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWait_PendingHandleIsAwaited(t *testing.T) {
	t.Parallel()
	b, spawns := newTestBridge(t)
	f := NewFuture[string]()
	time.AfterFunc(10*time.Millisecond, func() { f.Complete("later") })

	got, err := Wait[string](context.Background(), b, f)

	require.NoError(t, err)
	assert.Equal(t, "later", got)
	assert.Equal(t, 1, spawns.count())
}

func TestWait_PendingHandleCancelledLater(t *testing.T) {
	t.Parallel()
	b, _ := newTestBridge(t)
	f := NewFuture[string]()
	time.AfterFunc(10*time.Millisecond, func() { f.Cancel() })

	_, err := Wait[string](context.Background(), b, f)

	assert.ErrorIs(t, err, Cancelled)
}

func TestWaitTimeout_PendingHandle(t *testing.T) {
	t.Parallel()
	metrics := NewMetrics(prometheus.NewRegistry())
	b, _ := newTestBridge(t, WithMetrics(metrics))
	f := NewFuture[string]()

	_, err := WaitTimeout[string](context.Background(), b, f, 10*time.Millisecond)

	assert.ErrorIs(t, err, Timeout)
	assert.False(t, f.IsDone())
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.GoroutinesInFlight) == 0
	}, time.Second, 5*time.Millisecond, "goroutine blocked on an abandoned handle must exit")
}

func TestWait_InterruptedReleasesPendingHandle(t *testing.T) {
	t.Parallel()
	metrics := NewMetrics(prometheus.NewRegistry())
	b, _ := newTestBridge(t, WithMetrics(metrics))
	f := NewFuture[string]()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	time.AfterFunc(10*time.Millisecond, cancel)

	_, err := Wait[string](ctx, b, f)

	assert.ErrorIs(t, err, WaitInterrupted)
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.GoroutinesSpawned))
	assert.Eventually(t, func() bool {
		return testutil.ToFloat64(metrics.GoroutinesInFlight) == 0
	}, time.Second, 5*time.Millisecond, "goroutine blocked on an abandoned handle must exit")

	f.Complete("late")
	v, err := f.ResultNow()
	require.NoError(t, err)
	assert.Equal(t, "late", v)
}

func TestWait_NilHandle(t *testing.T) {
	t.Parallel()
	b, spawns := newTestBridge(t)

	_, err := Wait[int](context.Background(), b, nil)
	assert.ErrorIs(t, err, InvalidArgument)

	var f *Future[int]
	_, err = Wait[int](context.Background(), b, f)
	assert.ErrorIs(t, err, InvalidArgument)

	assert.Equal(t, 0, spawns.count())
}

func TestGo(t *testing.T) {
	t.Parallel()
	b, _ := newTestBridge(t)

	t.Run("completes with value", func(t *testing.T) {
		t.Parallel()
		f := Go(context.Background(), b, func(ctx context.Context) (int, error) {
			time.Sleep(5 * time.Millisecond)
			return 11, nil
		})

		got, err := Wait[int](context.Background(), b, f)
		require.NoError(t, err)
		assert.Equal(t, 11, got)
	})

	t.Run("fails with work error", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("boom")
		f := Go(context.Background(), b, func(ctx context.Context) (int, error) { return 0, boom })

		<-f.Done()
		_, err := Wait[int](context.Background(), b, f)
		assert.Same(t, boom, err)
	})

	t.Run("cancelled context does not settle the future", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		release := make(chan struct{})
		started := make(chan struct{})
		f := Go(ctx, b, func(ctx context.Context) (int, error) {
			close(started)
			<-release
			return 7, nil
		})

		<-started
		cancel()
		time.Sleep(10 * time.Millisecond)
		assert.False(t, f.IsDone())

		close(release)
		got, err := Wait[int](context.Background(), b, f)
		require.NoError(t, err)
		assert.Equal(t, 7, got)
	})

	t.Run("fatal panic reaches the waiter", func(t *testing.T) {
		t.Parallel()
		fatal := &fatalCondition{msg: "oom"}
		f := Go(context.Background(), b, func(ctx context.Context) (int, error) { panic(fatal) })

		<-f.Done()
		assert.PanicsWithValue(t, fatal, func() {
			_, _ = Wait[int](context.Background(), b, f)
		})
	})
}
