// Package common holds small helpers shared by the resolution and
// compilation packages.
package common

import "reflect"

// InTypes returns the parameter types of the func type fn, starting at from.
// Method expressions pass from=1 to skip the receiver slot.
func InTypes(fn reflect.Type, from int) []reflect.Type {
	if fn.NumIn() <= from {
		return nil
	}

	out := make([]reflect.Type, 0, fn.NumIn()-from)
	for i := from; i < fn.NumIn(); i++ {
		out = append(out, fn.In(i))
	}

	return out
}

// OutType returns the single result type of the func type fn, or nil when fn
// yields nothing. Func types with multiple results have no single result and
// also return nil; callers filter those out beforehand.
func OutType(fn reflect.Type) reflect.Type {
	if fn.NumOut() != 1 {
		return nil
	}

	return fn.Out(0)
}

// Nilable reports whether t has a nil value.
func Nilable(t reflect.Type) bool {
	switch t.Kind() {
	default:
		return false
	case reflect.Pointer, reflect.Interface, reflect.Map,
		reflect.Slice, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	}
}
