// Package thunk compiles resolved members into specialized adapters.
//
// A Thunk is an immutable callable conforming exactly to its target shape:
// it converts each argument through a plan computed once at compile time,
// invokes the backing member, and converts or discards the result. Per-call
// overhead is proportional to the arity, never to a generic reflective
// dispatch path. Thunks close over no mutable state beyond an optionally
// bound receiver and are safe to invoke concurrently.
//
// Build-time failures (incompatible slots, wrong parameter count) are
// returned as errors from Compile and Wrap. Call-time failures (arity
// mismatch on Invoke, a nil bound receiver, a failed dynamic conversion, a
// denied field write) are always raised: Invoke returns them as errors, the
// typed callable obtained from Func panics with the same error values.
package thunk
