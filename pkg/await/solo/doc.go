// Package solo contains single-value, synchronous primitives over
// await.Outcome[T]. They let a caller keep working with a captured outcome
// without re-raising it first.
//
// Highlights:
// - Succeed/Fail/FromCall: construct Outcome[T]
// - Validate/AndValidate: apply validation producing failure on invalid input
// - Switch: move from Outcome[In] to Outcome[Out]
// - Map/DoubleMap: transform successful values (with an optional error map)
// - Try: call a function (Out, error) and convert error to failure
// - Await: run the next step on a bridge goroutine
// - Tee/DoubleTee: side-effect helpers
// - Finally: reduce to a concrete value via success/error handlers
package solo
