// Package convert decides how a single value moves between a declared type
// and a target type.
//
// Verdicts form a ladder (higher is cheaper): Impossible, Explicit, Widening,
// Identity. A plan is computed once per (source, destination) pair at build
// time and applied per call; Identity and Widening plans perform no runtime
// operation at all.
//
// The "no result" side of a call is modeled with a nil reflect.Type: a nil
// destination discards the value, a nil source materializes the destination's
// zero value.
package convert
