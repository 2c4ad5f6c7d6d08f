// Package binding is the public surface of the member binding engine.
//
// A caller supplies a target shape, either a func type or a single-method
// interface type, together with an already-resolved member or a (container,
// name) pair, and receives a compiled thunk conforming to that shape.
//
// Legitimate misses (no such member, no conversion path) yield a nil thunk
// and a nil error by default; WithThrowOnFailure turns them into categorized
// errors instead. Caller mistakes (a nil input, a descriptor without exactly
// one call signature) always error, whatever the policy.
package binding
