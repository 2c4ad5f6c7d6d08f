package thunk

import (
	"fmt"
	"reflect"

	"github.com/fr830/Cyjb/convert"
	"github.com/fr830/Cyjb/internal/common"
	"github.com/fr830/Cyjb/member"
	"github.com/fr830/Cyjb/shape"
)

// Compile builds a thunk conforming to sh around the resolved member target.
//
// Binding a first argument removes the receiver slot (the first declared
// parameter, for static members) from the thunk's public shape. Binding nil
// against an instance member is legal to compile and raises ErrNilReceiver
// on every call. A member that cannot satisfy the shape, by parameter count
// or by an inconvertible slot, is a build-time error wrapping
// convert.ErrImpossible.
func Compile(sh *shape.Shape, target *member.Target, first member.FirstArg) (*Thunk, error) {
	switch {
	case sh == nil:
		return nil, fmt.Errorf("%w: target shape", member.ErrArgumentNull)
	case target == nil:
		return nil, fmt.Errorf("%w: callable target", member.ErrArgumentNull)
	}

	if first.Bound() {
		switch {
		case target.Kind == member.KindConstructor:
			return nil, fmt.Errorf("%w: constructors accept no bound first argument", convert.ErrImpossible)
		case target.Static && len(target.Params) == 0:
			return nil, fmt.Errorf("%w: cannot bind a first argument to parameterless %s", convert.ErrImpossible, target)
		}
	}

	if want := target.RequiredArity(first.Bound()); sh.NumParams() != want {
		return nil, fmt.Errorf("%w: shape %s supplies %d arguments, %s requires %d",
			convert.ErrImpossible, sh, sh.NumParams(), target, want)
	}

	switch target.Kind {
	case member.KindConstructor:
		return compileConstructor(sh, target)
	case member.KindFieldGetter, member.KindFieldSetter:
		return compileField(sh, target, first)
	default:
		return compileCall(sh, target, first)
	}
}

// compileCall covers every func-backed member: procedures, statics, and
// property accessors.
func compileCall(sh *shape.Shape, target *member.Target, first member.FirstArg) (*Thunk, error) {
	var (
		prefix  []reflect.Value
		dests   []reflect.Type
		callee  = target.Func()
		dynamic bool
		nilRecv bool
	)

	switch {
	case target.Static && first.Bound():
		bv, err := bindValue(first, target.Params[0])
		if err != nil {
			return nil, err
		}

		prefix = append(prefix, bv)
		dests = target.Params[1:]

	case target.Static:
		dests = target.Params

	case first.IsNull():
		nilRecv = true
		dests = target.Params

	case first.Bound():
		if callee.IsValid() {
			bv, err := bindValue(first, receiverType(target))
			if err != nil {
				return nil, err
			}

			prefix = append(prefix, bv)
		} else {
			// Interface-declared member: bind the method value once.
			mv := reflect.ValueOf(first.Value()).MethodByName(target.Name)
			if !mv.IsValid() {
				return nil, fmt.Errorf("%w: %T has no method %s", member.ErrMemberNotFound, first.Value(), target.Name)
			}

			callee = mv
		}

		dests = target.Params

	default:
		// Interface containers have no method expression; dispatch on the
		// receiver at call time.
		dynamic = !callee.IsValid()
		dests = append([]reflect.Type{receiverType(target)}, target.Params...)
	}

	slots, err := planSlots(sh, dests)
	if err != nil {
		return nil, err
	}

	retPlan, err := planResult(sh, target)
	if err != nil {
		return nil, err
	}

	name, variadic := target.Name, target.Variadic

	impl := func(in []reflect.Value) []reflect.Value {
		if nilRecv {
			panic(fail(fmt.Errorf("%w: %s", ErrNilReceiver, target)))
		}

		fn := callee
		args := make([]reflect.Value, 0, len(prefix)+len(in))
		args = append(args, prefix...)
		rest, restSlots := in, slots

		if dynamic {
			// A Widening plan hands the receiver through untouched, so a
			// concrete implementer in the slot never reaches IsNil.
			recv := applySlot(slots[0], in[0])
			if common.Nilable(recv.Type()) && recv.IsNil() {
				panic(fail(fmt.Errorf("%w: %s", ErrNilReceiver, target)))
			}

			fn = recv.MethodByName(name)
			rest, restSlots = in[1:], slots[1:]
		}

		for i, s := range restSlots {
			args = append(args, applySlot(s, rest[i]))
		}

		return finish(retPlan, call(fn, args, variadic), sh.IsVoid())
	}

	return &Thunk{sh: sh, target: target, fn: reflect.MakeFunc(sh.FuncType(), impl)}, nil
}

func compileField(sh *shape.Shape, target *member.Target, first member.FirstArg) (*Thunk, error) {
	setter := target.Kind == member.KindFieldSetter

	var (
		recvVal reflect.Value
		nilRecv bool
		dests   []reflect.Type
	)

	switch {
	case first.IsNull():
		nilRecv = true
		dests = target.Params

	case first.Bound():
		bv, err := bindValue(first, receiverType(target))
		if err != nil {
			return nil, err
		}

		recvVal = bv
		dests = target.Params

	default:
		dests = append([]reflect.Type{receiverType(target)}, target.Params...)
	}

	slots, err := planSlots(sh, dests)
	if err != nil {
		return nil, err
	}

	retPlan, err := planResult(sh, target)
	if err != nil {
		return nil, err
	}

	bound, idx := first.Bound(), target.FieldIndex()

	impl := func(in []reflect.Value) []reflect.Value {
		if nilRecv {
			panic(fail(fmt.Errorf("%w: %s", ErrNilReceiver, target)))
		}

		rv := recvVal
		rest, restSlots := in, slots

		if !bound {
			rv = applySlot(slots[0], in[0])
			rest, restSlots = in[1:], slots[1:]
		}

		fld, err := fieldOf(rv, idx)
		if err != nil {
			panic(fail(fmt.Errorf("%s: %w", target, err)))
		}

		if setter {
			if !fld.CanSet() {
				panic(fail(fmt.Errorf("%w: field %s of %s is not settable through this receiver",
					ErrAccessDenied, target.Name, target.Owner)))
			}

			fld.Set(applySlot(restSlots[0], rest[0]))

			return nil
		}

		return finish(retPlan, fld, sh.IsVoid())
	}

	return &Thunk{sh: sh, target: target, fn: reflect.MakeFunc(sh.FuncType(), impl)}, nil
}

func compileConstructor(sh *shape.Shape, target *member.Target) (*Thunk, error) {
	slots, err := planSlots(sh, target.Params)
	if err != nil {
		return nil, err
	}

	retPlan, err := planResult(sh, target)
	if err != nil {
		return nil, err
	}

	owner, fields := target.Owner, target.ConstructorFields()
	wantPtr := target.Result != nil && target.Result.Kind() == reflect.Pointer

	impl := func(in []reflect.Value) []reflect.Value {
		pv := reflect.New(owner)

		for i, f := range fields {
			pv.Elem().FieldByIndex(f.Index).Set(applySlot(slots[i], in[i]))
		}

		raw := pv.Elem()
		if wantPtr {
			raw = pv
		}

		return finish(retPlan, raw, sh.IsVoid())
	}

	return &Thunk{sh: sh, target: target, fn: reflect.MakeFunc(sh.FuncType(), impl)}, nil
}

func planSlots(sh *shape.Shape, dests []reflect.Type) ([]convert.Slot, error) {
	slots := make([]convert.Slot, len(dests))

	for i, dst := range dests {
		s := convert.SlotFor(sh.Param(i), dst)
		if !s.Possible() {
			return nil, fmt.Errorf("%w: parameter %d: %s", convert.ErrImpossible, i, s.Plan)
		}

		slots[i] = s
	}

	return slots, nil
}

func planResult(sh *shape.Shape, target *member.Target) (convert.Plan, error) {
	p := convert.For(target.Result, sh.Result())
	if !p.Possible() {
		return p, fmt.Errorf("%w: result %s", convert.ErrImpossible, p)
	}

	return p, nil
}

// bindValue converts the bound first argument into the receiver (or leading
// parameter) slot once, at build time.
func bindValue(first member.FirstArg, dst reflect.Type) (reflect.Value, error) {
	if first.IsNull() {
		if !common.Nilable(dst) {
			return reflect.Value{}, fmt.Errorf("%w: nil first argument for %s", convert.ErrImpossible, dst)
		}

		return reflect.Zero(dst), nil
	}

	p := convert.For(first.Type(), dst)
	if !p.Possible() {
		return reflect.Value{}, fmt.Errorf("%w: first argument %s", convert.ErrImpossible, p)
	}

	return p.Apply(reflect.ValueOf(first.Value()))
}

func receiverType(t *member.Target) reflect.Type {
	if r := t.Receiver(); r != nil {
		return r
	}

	return t.Owner
}

func applySlot(s convert.Slot, v reflect.Value) reflect.Value {
	out, err := s.Apply(v)
	if err != nil {
		panic(fail(err))
	}

	return out
}

func call(fn reflect.Value, args []reflect.Value, variadic bool) reflect.Value {
	var out []reflect.Value
	if variadic {
		out = fn.CallSlice(args)
	} else {
		out = fn.Call(args)
	}

	if len(out) == 0 {
		return reflect.Value{}
	}

	return out[0]
}

func finish(retPlan convert.Plan, raw reflect.Value, void bool) []reflect.Value {
	out, err := retPlan.Apply(raw)
	if err != nil {
		panic(fail(err))
	}

	if void {
		return nil
	}

	return []reflect.Value{out}
}

// fieldOf walks the field index path, dereferencing intermediate pointers.
func fieldOf(v reflect.Value, idx []int) (reflect.Value, error) {
	for _, i := range idx {
		if v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}, fmt.Errorf("%w: nil pointer on the path to the field", ErrNilReceiver)
			}

			v = v.Elem()
		}

		v = v.Field(i)
	}

	return v, nil
}
