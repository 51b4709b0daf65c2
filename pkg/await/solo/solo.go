package solo

import (
	"context"
	"errors"

	"github.com/ib-77/await/pkg/await"
)

func Succeed[T any](input T) await.Outcome[T] {
	return await.Success(input)
}

func Fail[T any](err error) await.Outcome[T] {
	return await.Failure[T](err)
}

// FromCall turns a (value, error) pair into an outcome.
func FromCall[T any](v T, err error) await.Outcome[T] {
	if err != nil {
		return await.Failure[T](err)
	}
	return await.Success(v)
}

func Validate[T any](ctx context.Context, input T,
	validate func(ctx context.Context, in T) (isValid bool, errMsg string)) await.Outcome[T] {
	return AndValidate(ctx, Succeed(input), validate)
}

func AndValidate[T any](ctx context.Context, input await.Outcome[T],
	validate func(ctx context.Context, in T) (valid bool, errMsg string)) await.Outcome[T] {

	if input.IsSuccess() {
		if isValid, errMsg := validate(ctx, input.Result()); !isValid {
			return await.Failure[T](errors.New(errMsg))
		}
	}
	return input
}

func Switch[In any, Out any](ctx context.Context,
	input await.Outcome[In],
	onSuccess func(ctx context.Context, r In) await.Outcome[Out]) await.Outcome[Out] {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Result())
	}
	return await.Failure[Out](input.Err())
}

func Map[In any, Out any](ctx context.Context,
	input await.Outcome[In],
	onSuccess func(ctx context.Context, r In) Out) await.Outcome[Out] {

	if input.IsSuccess() {
		return await.Success(onSuccess(ctx, input.Result()))
	}
	return await.Failure[Out](input.Err())
}

// DoubleMap maps the value of a success and the cause of a failure.
func DoubleMap[In any, Out any](ctx context.Context, input await.Outcome[In],
	onSuccess func(ctx context.Context, r In) Out,
	onError func(ctx context.Context, err error) error) await.Outcome[Out] {

	if input.IsSuccess() {
		return await.Success(onSuccess(ctx, input.Result()))
	}
	return await.Failure[Out](onError(ctx, input.Err()))
}

func Try[In any, Out any](ctx context.Context, input await.Outcome[In],
	onTryExecute func(ctx context.Context, r In) (Out, error)) await.Outcome[Out] {

	if input.IsSuccess() {
		out, err := onTryExecute(ctx, input.Result())
		return FromCall(out, err)
	}
	return await.Failure[Out](input.Err())
}

// Await is Try with the step executed on a goroutine spawned by b. Fatal
// panics in the step are re-panicked.
func Await[In any, Out any](ctx context.Context, b *await.Bridge, input await.Outcome[In],
	onSuccess func(ctx context.Context, r In) (Out, error)) await.Outcome[Out] {

	if input.IsFailure() {
		return await.Failure[Out](input.Err())
	}
	v := input.Result()
	return await.Capture(ctx, b, func(ctx context.Context) (Out, error) {
		return onSuccess(ctx, v)
	})
}

func FailOnError[T any](ctx context.Context, input await.Outcome[T],
	maybeErr func(ctx context.Context, in T) error) await.Outcome[T] {
	if input.IsSuccess() {
		if err := maybeErr(ctx, input.Result()); err != nil {
			return await.Failure[T](err)
		}
	}
	return input
}

func Tee[T any](ctx context.Context,
	input await.Outcome[T],
	onSuccess func(ctx context.Context, r await.Outcome[T])) await.Outcome[T] {

	if input.IsSuccess() {
		onSuccess(ctx, input)
	}

	return input
}

func DoubleTee[T any](ctx context.Context, input await.Outcome[T],
	onSuccess func(ctx context.Context, r T),
	onError func(ctx context.Context, err error)) await.Outcome[T] {

	if input.IsSuccess() {
		onSuccess(ctx, input.Result())
	} else {
		onError(ctx, input.Err())
	}

	return input
}

func Finally[In, Out any](ctx context.Context, input await.Outcome[In],
	onSuccess func(ctx context.Context, r In) Out,
	onError func(ctx context.Context, err error) Out) Out {

	if input.IsSuccess() {
		return onSuccess(ctx, input.Result())
	}
	return onError(ctx, input.Err())
}
