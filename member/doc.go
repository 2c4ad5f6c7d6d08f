// Package member models the callable members of a type and resolves a
// (container, name, shape) query to at most one of them.
//
// Resolution pipeline:
//  1. The reserved constructor name short-circuits to constructor search.
//  2. Ordinary names try categories in fixed order: procedure, then
//     property, then field. The first category producing a compatible member
//     wins; later
//     categories are not consulted even if they would fit better.
//  3. Within a category, arity and per-slot convertibility decide whether a
//     candidate matches. Variadic declarations match only at their fixed
//     declared arity.
//
// Properties follow the Go accessor convention: property P on T is the method
// pair P() R and SetP(R). Static members are package-level functions attached
// to a type through a Registry, since Go types carry no static methods of
// their own. The Describer interface is the seam to the host type system; the
// default implementation enumerates members with reflect.
package member
