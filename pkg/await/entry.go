package await

import (
	"context"
	"time"
)

// Run executes work on a new goroutine using the default bridge and waits for
// it.
func Run(ctx context.Context, work Runnable) error {
	return std.Run(ctx, work)
}

// Run executes work on a new goroutine and waits for it to finish. Errors
// returned by work come back unchanged; fatal panics are re-panicked on the
// calling goroutine.
func (b *Bridge) Run(ctx context.Context, work Runnable) error {
	return b.RunTimeout(ctx, work, 0)
}

// RunTimeout is Run with the wait bounded by timeout. When the bound elapses
// the returned error matches Timeout and work keeps running in the background.
func (b *Bridge) RunTimeout(ctx context.Context, work Runnable, timeout time.Duration) error {
	var c Callable[struct{}]
	if work != nil {
		c = func(ctx context.Context) (struct{}, error) {
			return struct{}{}, work(ctx)
		}
	}
	_, err := resolve(invoke(ctx, b, "run", c, timeout))
	return err
}

// Call executes work on a new goroutine and returns its value. A nil b uses
// the default bridge.
func Call[T any](ctx context.Context, b *Bridge, work Callable[T]) (T, error) {
	return CallTimeout(ctx, b, work, 0)
}

func CallTimeout[T any](ctx context.Context, b *Bridge, work Callable[T], timeout time.Duration) (T, error) {
	return resolve(invoke(ctx, b, "call", work, timeout))
}

// Capture is Call returning the classified Outcome instead of an error.
// Fatal panics are still re-panicked.
func Capture[T any](ctx context.Context, b *Bridge, work Callable[T]) Outcome[T] {
	return CaptureTimeout(ctx, b, work, 0)
}

func CaptureTimeout[T any](ctx context.Context, b *Bridge, work Callable[T], timeout time.Duration) Outcome[T] {
	out := invoke(ctx, b, "capture", work, timeout)
	if p, ok := fatalPanic(out.Err()); ok {
		p.rethrow()
	}
	return out
}

// Wait returns the value of h. An already completed handle is settled on the
// calling goroutine; a pending one is awaited on a spawned goroutine.
func Wait[T any](ctx context.Context, b *Bridge, h Handle[T]) (T, error) {
	return WaitTimeout(ctx, b, h, 0)
}

func WaitTimeout[T any](ctx context.Context, b *Bridge, h Handle[T], timeout time.Duration) (T, error) {
	return resolve(wait(ctx, b, h, timeout))
}

func wait[T any](ctx context.Context, b *Bridge, h Handle[T], timeout time.Duration) Outcome[T] {
	const op = "wait"
	b = b.orDefault()
	if IsNil(h) {
		return reject[T](b, op, errNilHandle)
	}
	if h.IsDone() {
		return shortCircuit(ctx, b, op, h)
	}

	// Blocking on h is the bridge's own work: it ends when the caller stops
	// waiting, so an abandoned handle does not pin the goroutine.
	abandoned, stopWaiting := context.WithCancel(context.Background())
	defer stopWaiting()
	return invoke(ctx, b, op, func(ctx context.Context) (T, error) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		stop := context.AfterFunc(abandoned, cancel)
		defer stop()
		return h.Get(ctx)
	}, timeout)
}
