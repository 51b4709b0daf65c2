// Package await runs a unit of work on its own goroutine and blocks the
// caller until it finishes, then hands back the outcome as if the work had run
// inline.
//
// Highlights:
// - Outcome[T]: value-or-cause container (Success/Failure, MapValue/MapFailure)
// - Bridge: Run, Call, Wait, Capture and their *Timeout variants
// - Future[T]: write-once Handle; completed handles are settled without a goroutine
// - Kind/Error: closed failure taxonomy, match with errors.Is(err, await.Timeout)
//
// Errors returned by the work come back unchanged. Panics with runtime errors,
// values reporting Fatal() == true, and runtime.Goexit are re-raised on the
// caller; other panics become ExecutionFailed errors. Cancelling the caller's
// context or reaching a timeout stops the wait, not the work.
package await
