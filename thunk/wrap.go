package thunk

import (
	"fmt"
	"reflect"

	"github.com/fr830/Cyjb/convert"
	"github.com/fr830/Cyjb/member"
	"github.com/fr830/Cyjb/shape"
)

// Wrap adapts an existing thunk into another shape of equal arity, applying
// the same per-slot conversion rules as compilation, including the
// by-reference temporary rule, and the usual return-slot rules. Differing
// arities or an inconvertible slot are build-time errors wrapping
// convert.ErrImpossible.
func Wrap(sh *shape.Shape, src *Thunk) (*Thunk, error) {
	switch {
	case sh == nil:
		return nil, fmt.Errorf("%w: target shape", member.ErrArgumentNull)
	case src == nil:
		return nil, fmt.Errorf("%w: source thunk", member.ErrArgumentNull)
	}

	if sh.NumParams() != src.sh.NumParams() {
		return nil, fmt.Errorf("%w: shape %s supplies %d arguments, thunk %s takes %d",
			convert.ErrImpossible, sh, sh.NumParams(), src.sh, src.sh.NumParams())
	}

	slots := make([]convert.Slot, sh.NumParams())

	for i := range slots {
		s := convert.SlotFor(sh.Param(i), src.sh.Param(i))
		if !s.Possible() {
			return nil, fmt.Errorf("%w: parameter %d: %s", convert.ErrImpossible, i, s.Plan)
		}

		slots[i] = s
	}

	retPlan := convert.For(src.sh.Result(), sh.Result())
	if !retPlan.Possible() {
		return nil, fmt.Errorf("%w: result %s", convert.ErrImpossible, retPlan)
	}

	inner := src.fn

	impl := func(in []reflect.Value) []reflect.Value {
		args := make([]reflect.Value, len(in))
		for i, s := range slots {
			args[i] = applySlot(s, in[i])
		}

		return finish(retPlan, call(inner, args, false), sh.IsVoid())
	}

	return &Thunk{sh: sh, fn: reflect.MakeFunc(sh.FuncType(), impl)}, nil
}
