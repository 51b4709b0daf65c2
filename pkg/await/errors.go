package await

import (
	"errors"
	"strings"
)

// Kind classifies a condition raised through the bridge. Kind implements
// error so callers can match with errors.Is(err, await.Timeout).
type Kind uint8

const (
	// Recoverable is an ordinary error returned by a unit of work. Such errors
	// are passed through unchanged and never wrapped in *Error.
	Recoverable Kind = iota
	// Fatal is a panic that must keep unwinding on the caller.
	Fatal
	// WaitInterrupted means the caller's context ended while it was waiting.
	WaitInterrupted
	// Interrupted means the unit of work itself observed a cancellation.
	Interrupted
	// ExecutionFailed wraps a non-fatal panic raised by a unit of work.
	ExecutionFailed
	InvalidArgument
	InvalidState
	// Timeout means the bound elapsed before the unit of work finished.
	Timeout
	// Cancelled means the awaited handle was cancelled.
	Cancelled
)

var kindText = [...]string{
	Recoverable:     "recoverable failure",
	Fatal:           "fatal failure",
	WaitInterrupted: "interrupted while waiting",
	Interrupted:     "interrupted during execution",
	ExecutionFailed: "execution failed",
	InvalidArgument: "invalid argument",
	InvalidState:    "invalid internal state",
	Timeout:         "timed out",
	Cancelled:       "execution is cancelled",
}

func (k Kind) Error() string {
	if int(k) < len(kindText) {
		return kindText[k]
	}
	return "unknown kind"
}

func (k Kind) String() string {
	return k.Error()
}

// Error is the canonical failure raised by the bridge for every kind except
// Recoverable and Fatal.
type Error struct {
	Kind Kind
	// Op is the entry point that raised the error: run, call, wait, get...
	Op string
	// Name is the spawned goroutine name, empty when nothing was spawned.
	Name string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString("await: ")
	if e.Op != "" {
		b.WriteString(e.Op)
		b.WriteString(": ")
	}
	b.WriteString(e.Kind.Error())
	if e.Name != "" {
		b.WriteString(" [")
		b.WriteString(e.Name)
		b.WriteString("]")
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	k, ok := target.(Kind)
	return ok && k == e.Kind
}

var (
	errNilWork      = errors.New("work must not be nil")
	errNilHandle    = errors.New("handle must not be nil")
	errNegativeWait = errors.New("timeout must not be negative")
	errMapSuccess   = errors.New("can't map failure of a successful outcome, use MapValue")
	errEmptyCell    = errors.New("no outcome after join")
)

// KindOf reports how err would be classified by the bridge. A nil error is
// reported as Recoverable.
func KindOf(err error) Kind {
	if err == nil {
		return Recoverable
	}
	if _, ok := fatalPanic(err); ok {
		return Fatal
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Recoverable
}
