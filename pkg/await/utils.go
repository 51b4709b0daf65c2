package await

import (
	"context"
	"errors"
	"reflect"
	"runtime/pprof"
)

const labelGoroutine = "await.goroutine"

func IsNil(i interface{}) bool {
	if i == nil || (reflect.ValueOf(i).Kind() == reflect.Ptr && reflect.ValueOf(i).IsNil()) {
		return true
	}
	return false
}

func IsCancellationError(err error) bool {
	return errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)
}

// GoroutineName returns the name of the bridge goroutine running ctx's unit
// of work. The name is also visible as a label in goroutine profiles.
func GoroutineName(ctx context.Context) (string, bool) {
	return pprof.Label(ctx, labelGoroutine)
}
