package member

import "reflect"

// FirstArg is the tri-state "bound first argument" of a search or a compile:
// unset, bound to nil, or bound to a value. The zero value is the unset state.
type FirstArg struct {
	set   bool
	value any
}

// NoFirstArg is the unset state: the member's receiver slot, if any, stays
// part of the public shape.
var NoFirstArg = FirstArg{}

// NullFirstArg binds an explicit nil first argument. During resolution it
// selects static search; compiling an instance member against it is legal and
// defers the failure to call time.
func NullFirstArg() FirstArg { return FirstArg{set: true} }

// BindFirst binds v as the first argument, removing the receiver slot from
// the thunk's public shape. BindFirst(nil) is NullFirstArg().
func BindFirst(v any) FirstArg { return FirstArg{set: true, value: v} }

// Bound reports whether a first argument was supplied at all.
func (f FirstArg) Bound() bool { return f.set }

// IsNull reports whether the bound first argument is nil.
func (f FirstArg) IsNull() bool { return f.set && f.value == nil }

// Value returns the bound value, nil when unset or null.
func (f FirstArg) Value() any { return f.value }

// Type returns the runtime type of the bound value, nil when unset or null.
func (f FirstArg) Type() reflect.Type {
	if !f.set || f.value == nil {
		return nil
	}

	return reflect.TypeOf(f.value)
}
