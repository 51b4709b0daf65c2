package await

import (
	"context"
	"time"
)

type ResultProvider[T any] interface {
	// Result returns the successful result value
	Result() T
	// CreatedAt time creation (UTC)
	CreatedAt() time.Time
}

// WithError defines an interface for types that can return a result or an error
type WithError[T any] interface {
	ResultProvider[T]
	// Err returns the error if operation failed
	Err() error
	// IsSuccess returns true if the operation was successful
	IsSuccess() bool
	// Get returns the value or fails with InvalidState
	Get() (T, error)
	// ResultOr returns the value or the given default
	ResultOr(d T) T
}

// Runnable is a unit of work that produces no value.
type Runnable func(ctx context.Context) error

// Callable is a unit of work that produces a value of type T.
type Callable[T any] func(ctx context.Context) (T, error)

// Handle is an asynchronous computation the bridge can wait on. Once IsDone
// reports true the handle's state must not change.
type Handle[T any] interface {
	IsDone() bool
	IsCancelled() bool
	// Get blocks until the handle is done or ctx ends
	Get(ctx context.Context) (T, error)
	// ResultNow returns the completed value or failure without blocking. It is
	// only meaningful once IsDone is true.
	ResultNow() (T, error)
}

var (
	_ WithError[int] = Outcome[int]{}
	_ Handle[int]    = (*Future[int])(nil)
)
