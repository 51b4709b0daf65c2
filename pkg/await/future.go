package await

import (
	"context"
	"errors"
	"sync"
)

type futureState uint8

const (
	pending futureState = iota
	completed
	failed
	cancelled
)

var errNotDone = errors.New("future is not done")

// Future is a write-once Handle. The first Complete, Fail or Cancel wins and
// the state never changes afterwards.
type Future[T any] struct {
	mu     sync.Mutex
	done   chan struct{}
	state  futureState
	result T
	err    error
}

func NewFuture[T any]() *Future[T] {
	return &Future[T]{done: make(chan struct{})}
}

// Completed returns a future that is already done with v.
func Completed[T any](v T) *Future[T] {
	f := NewFuture[T]()
	f.Complete(v)
	return f
}

// Failed returns a future that is already done with err.
func Failed[T any](err error) *Future[T] {
	f := NewFuture[T]()
	f.Fail(err)
	return f
}

// Go runs work through b in the background and returns a future for its
// outcome. Cancelling ctx does not settle the future; a wait bound carried by
// ctx or set as the bridge default still fails it with Timeout. Fatal panics
// are stored in the future and re-panicked by whoever waits on it.
func Go[T any](ctx context.Context, b *Bridge, work Callable[T]) *Future[T] {
	f := NewFuture[T]()
	ctx = context.WithoutCancel(ctx)
	go func() {
		out := invoke(ctx, b, "go", work, 0)
		if out.IsSuccess() {
			f.Complete(out.Result())
			return
		}
		f.Fail(out.Err())
	}()
	return f
}

func (f *Future[T]) settle(state futureState, v T, err error) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != pending {
		return false
	}
	f.state = state
	f.result = v
	f.err = err
	close(f.done)
	return true
}

// Complete reports false if the future is already done.
func (f *Future[T]) Complete(v T) bool {
	return f.settle(completed, v, nil)
}

// Fail reports false if the future is already done. A nil err is recorded as
// InvalidArgument.
func (f *Future[T]) Fail(err error) bool {
	if err == nil {
		err = &Error{Kind: InvalidArgument, Op: "fail", Err: errors.New("nil failure cause")}
	}
	var zero T
	return f.settle(failed, zero, err)
}

func (f *Future[T]) Cancel() bool {
	var zero T
	return f.settle(cancelled, zero, &Error{Kind: Cancelled, Op: "future"})
}

func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

func (f *Future[T]) IsDone() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

func (f *Future[T]) IsCancelled() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == cancelled
}

func (f *Future[T]) Get(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.ResultNow()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

func (f *Future[T]) ResultNow() (T, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == pending {
		var zero T
		return zero, &Error{Kind: InvalidState, Op: "result now", Err: errNotDone}
	}
	return f.result, f.err
}
