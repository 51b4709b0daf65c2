package await

import "errors"

// classify maps an error returned by a unit of work or reported by a
// completed handle onto a Kind and the error that is handed to the caller.
func classify(op, name string, err error) (Kind, error) {
	if p, ok := fatalPanic(err); ok {
		return Fatal, p
	}
	if IsCancellationError(err) {
		return Interrupted, &Error{Kind: Interrupted, Op: op, Name: name, Err: err}
	}
	if e, ok := err.(*Error); ok && e.Kind == ExecutionFailed && e.Err != nil {
		var p *PanicError
		if errors.As(e.Err, &p) {
			return ExecutionFailed, &Error{Kind: ExecutionFailed, Op: op, Name: name, Err: e.Err}
		}
		return Recoverable, e.Err
	}
	return Recoverable, err
}

func classifyPanic(op, name string, p *PanicError) (Kind, error) {
	if p.Fatal() {
		return Fatal, p
	}
	return ExecutionFailed, &Error{Kind: ExecutionFailed, Op: op, Name: name, Err: p}
}

// resolve re-raises a classified outcome on the caller: the value, the
// failure as an error, or a re-panic for fatal failures.
func resolve[T any](out Outcome[T]) (T, error) {
	var zero T
	if out.IsSuccess() {
		return out.Result(), nil
	}
	err := out.Err()
	if err == nil {
		return zero, &Error{Kind: InvalidState, Err: errEmptyCell}
	}

	switch kind := KindOf(err); kind {
	case Fatal:
		p, _ := fatalPanic(err)
		p.rethrow()
		return zero, err
	case Recoverable, WaitInterrupted, Interrupted, ExecutionFailed,
		InvalidArgument, InvalidState, Timeout, Cancelled:
		return zero, err
	default:
		return zero, &Error{Kind: InvalidState, Err: err}
	}
}
