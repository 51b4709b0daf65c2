package await

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Outcome holds the result of one bridged invocation: either a value or the
// failure cause. Outcomes are values; every operation returns a new one.
type Outcome[T any] struct {
	id        uuid.UUID
	createdAt time.Time
	result    T
	err       error
	isSuccess bool
}

func Success[T any](r T) Outcome[T] {
	return Outcome[T]{
		result:    r,
		isSuccess: true,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

// Failure wraps a non-nil cause. A nil cause produces an outcome the bridge
// reports as InvalidState.
func Failure[T any](err error) Outcome[T] {
	return Outcome[T]{
		err:       err,
		isSuccess: false,
		createdAt: time.Now().UTC(),
		id:        uuid.New(),
	}
}

func (o Outcome[T]) IsSuccess() bool {
	return o.isSuccess
}

func (o Outcome[T]) IsFailure() bool {
	return !o.isSuccess
}

// IsEmpty reports an outcome that is neither a value nor a cause, such as the
// zero Outcome.
func (o Outcome[T]) IsEmpty() bool {
	return !o.isSuccess && o.err == nil
}

// Result returns the value, or the zero T for a failure.
func (o Outcome[T]) Result() T {
	if !o.isSuccess {
		var zero T
		return zero
	}
	return o.result
}

func (o Outcome[T]) Value() (T, bool) {
	return o.Result(), o.isSuccess
}

// ResultOr returns the value, or d for a failure.
func (o Outcome[T]) ResultOr(d T) T {
	if o.isSuccess {
		return o.result
	}
	return d
}

// Get returns the value, or an InvalidState error carrying the cause.
func (o Outcome[T]) Get() (T, error) {
	if o.isSuccess {
		return o.result, nil
	}
	var zero T
	return zero, &Error{Kind: InvalidState, Op: "get", Err: o.err}
}

func (o Outcome[T]) Err() error {
	return o.err
}

// MapFailure transforms the cause of a failure. Calling it on a success is a
// logic error and yields InvalidState.
func (o Outcome[T]) MapFailure(f func(error) error) (Outcome[T], error) {
	if o.isSuccess {
		return o, &Error{Kind: InvalidState, Op: "map failure", Err: errMapSuccess}
	}
	return Failure[T](f(o.err)), nil
}

// MapValue transforms the value of a success. Calling it on a failure is a
// logic error and yields InvalidState.
func MapValue[T, R any](o Outcome[T], f func(T) R) (Outcome[R], error) {
	if !o.isSuccess {
		return Outcome[R]{}, &Error{Kind: InvalidState, Op: "map value", Err: o.err}
	}
	return Success(f(o.result)), nil
}

func (o Outcome[T]) CreatedAt() time.Time {
	return o.createdAt
}

func (o Outcome[T]) Id() uuid.UUID {
	return o.id
}

func (o Outcome[T]) String() string {
	if o.isSuccess {
		return fmt.Sprintf("Outcome{%v}", o.result)
	}
	return fmt.Sprintf("Outcome{err=%v}", o.err)
}
