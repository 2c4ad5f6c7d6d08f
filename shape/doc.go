// Package shape validates and normalizes target calling shapes.
//
// A shape describes the contract a compiled thunk must satisfy: an ordered
// list of parameter types and at most one result type. A shape descriptor
// is either a func type or an interface type with exactly one method (the
// single abstract call signature). Anything else is rejected up front, so
// the rest of the pipeline never sees an ambiguous contract.
package shape
