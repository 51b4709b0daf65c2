package await

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"runtime/debug"
)

// PanicError carries a value recovered from a panicking unit of work, or
// records that the unit of work called runtime.Goexit.
type PanicError struct {
	Value  any
	Stack  []byte
	Goexit bool
}

func (p *PanicError) Error() string {
	if p.Goexit {
		return "runtime.Goexit called in unit of work"
	}
	if err, ok := p.Value.(error); ok {
		return err.Error()
	}
	return fmt.Sprint(p.Value)
}

func (p *PanicError) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

// Fatal reports whether the panic must keep unwinding on the caller.
// runtime errors, runtime.Goexit and values that report Fatal() == true are
// fatal; every other panic becomes an ExecutionFailed error.
func (p *PanicError) Fatal() bool {
	if p.Goexit {
		return true
	}
	switch v := p.Value.(type) {
	case runtime.Error:
		return true
	case interface{ Fatal() bool }:
		return v.Fatal()
	}
	return false
}

func (p *PanicError) rethrow() {
	if p.Goexit {
		runtime.Goexit()
	}
	panic(p.Value)
}

func fatalPanic(err error) (*PanicError, bool) {
	var p *PanicError
	if errors.As(err, &p) && p.Fatal() {
		return p, true
	}
	return nil, false
}

// call invokes work and recovers a panic. On runtime.Goexit it never returns.
func call[T any](ctx context.Context, work Callable[T]) (v T, p *PanicError, err error) {
	defer func() {
		if r := recover(); r != nil {
			p = &PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	v, err = work(ctx)
	return v, nil, err
}
