package convert

import (
	"fmt"
	"reflect"
)

// Slot plans an argument slot move. It extends Plan with the by-reference
// rule: a pointer slot whose pointee needs conversion is bridged through a
// private temporary, sacrificing write-back transparency. The callee writes
// into the temporary, never into the caller's storage.
// An identity pointer slot keeps the caller's storage location, so callee
// writes stay visible.
type Slot struct {
	Plan Plan
	// ByRef marks a converted pointer slot bridged via temporary.
	ByRef bool
	// Elem is the pointee plan when ByRef.
	Elem Plan
	// Dst is the destination slot type.
	Dst reflect.Type
}

// SlotFor plans the move of an argument from src into a slot of type dst.
func SlotFor(src, dst reflect.Type) Slot {
	p := For(src, dst)
	if p.Possible() {
		return Slot{Plan: p, Dst: dst}
	}

	if src != nil && dst != nil &&
		src.Kind() == reflect.Pointer && dst.Kind() == reflect.Pointer {
		if ep := For(src.Elem(), dst.Elem()); ep.Possible() {
			return Slot{Plan: p, ByRef: true, Elem: ep, Dst: dst}
		}
	}

	return Slot{Plan: p, Dst: dst}
}

// Possible reports whether the slot can be filled at all.
func (s Slot) Possible() bool { return s.Plan.Possible() || s.ByRef }

// Apply produces the value handed to the callee for this slot.
func (s Slot) Apply(v reflect.Value) (reflect.Value, error) {
	if !s.ByRef {
		return s.Plan.Apply(v)
	}

	if v.IsNil() {
		return reflect.Zero(s.Dst), nil
	}

	ev, err := s.Elem.Apply(v.Elem())
	if err != nil {
		return reflect.Value{}, fmt.Errorf("pointee of slot %s: %w", s.Dst, err)
	}

	tmp := reflect.New(s.Dst.Elem())
	tmp.Elem().Set(ev)

	return tmp, nil
}
