package member

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/fr830/Cyjb/convert"
	"github.com/fr830/Cyjb/internal/common"
	"github.com/fr830/Cyjb/shape"
)

var (
	ErrArgumentNull   = errors.New("required argument is missing")
	ErrMemberNotFound = errors.New("member not found")
	ErrNoSuchAccessor = errors.New("member has no such accessor")
)

// Resolver finds at most one member of a container type matching a name, a
// target shape, and a capability mask. A Resolver is stateless apart from its
// Describer and is safe for concurrent use.
type Resolver struct {
	desc Describer
}

// NewResolver returns a Resolver backed by desc. A nil desc falls back to the
// reflect-based DefaultDescriber.
func NewResolver(desc Describer) *Resolver {
	if desc == nil {
		desc = DefaultDescriber()
	}

	return &Resolver{desc: desc}
}

// Resolve searches container for a member named name that can satisfy sh.
//
// The reserved ConstructorName searches constructors only, ignoring the mask.
// Ordinary names try procedures, then properties, then fields; the first
// category producing a compatible member wins. A bound first argument removes
// the receiver slot from the shape: nil pins the search to static members and
// consumes their first declared parameter, a value pins it to the instance
// members of that value's runtime type.
//
// A miss is reported as an error wrapping ErrMemberNotFound, or
// ErrNoSuchAccessor when a property was found but lacks the accessor the
// shape asks for.
func (r *Resolver) Resolve(container reflect.Type, name string, sh *shape.Shape, mask Mask, first FirstArg) (*Target, error) {
	switch {
	case container == nil:
		return nil, fmt.Errorf("%w: container type", ErrArgumentNull)
	case name == "":
		return nil, fmt.Errorf("%w: member name", ErrArgumentNull)
	case sh == nil:
		return nil, fmt.Errorf("%w: target shape", ErrArgumentNull)
	}

	if mask == MaskNone {
		mask = MaskDefault
	}

	if name == ConstructorName {
		return r.constructor(container, sh)
	}

	if mask.Has(InvokeProcedure) {
		if t := r.procedure(container, name, sh, mask, first); t != nil {
			return t, nil
		}
	}

	if mask&(GetProperty|SetProperty) != 0 {
		t, err := r.property(container, name, sh, mask, first)
		if t != nil || err != nil {
			return t, err
		}
	}

	if mask&(GetField|SetField) != 0 {
		if t := r.field(container, name, sh, mask, first); t != nil {
			return t, nil
		}
	}

	return nil, fmt.Errorf("%w: %s.%s matching %s", ErrMemberNotFound, container, name, sh)
}

func (r *Resolver) procedure(container reflect.Type, name string, sh *shape.Shape, mask Mask, first FirstArg) *Target {
	if mask.AllowsStatic() && (!first.Bound() || first.IsNull()) {
		for _, s := range r.desc.Statics(container) {
			if !nameMatches(mask, name, s.Name) {
				continue
			}

			ft := s.Fn.Type()
			if ft.NumOut() > 1 {
				continue
			}

			params := common.InTypes(ft, 0)
			result := common.OutType(ft)

			// A null binding consumes the first declared parameter, the same
			// slot omission compilation performs; the parameter must be able
			// to hold nil.
			slots := params
			if first.IsNull() {
				if len(params) == 0 || !common.Nilable(params[0]) {
					continue
				}

				slots = params[1:]
			}

			if !fits(sh, nil, slots, result) {
				continue
			}

			return &Target{
				Kind:     KindProcedure,
				Owner:    container,
				Name:     s.Name,
				Static:   true,
				Params:   params,
				Result:   result,
				Variadic: ft.IsVariadic(),
				fn:       s.Fn,
			}
		}
	}

	// A null first argument pins the search to statics.
	if first.IsNull() || !mask.AllowsInstance() {
		return nil
	}

	owner, bound := container, false
	if first.Bound() {
		owner, bound = first.Type(), true
	}

	for _, m := range r.methodsFor(owner, bound) {
		if !nameMatches(mask, name, m.Name) {
			continue
		}

		recv, params, result, ok := methodSignature(owner, m)
		if !ok {
			continue
		}

		slots := params
		if !bound {
			slots = append([]reflect.Type{recv}, params...)
		}

		if !fits(sh, nil, slots, result) {
			continue
		}

		return &Target{
			Kind:     KindProcedure,
			Owner:    owner,
			Name:     m.Name,
			Params:   params,
			Result:   result,
			Variadic: m.Type.IsVariadic(),
			fn:       m.Func,
			recv:     recv,
		}
	}

	return nil
}

func (r *Resolver) property(container reflect.Type, name string, sh *shape.Shape, mask Mask, first FirstArg) (*Target, error) {
	wantSetter := sh.IsVoid()

	switch {
	case first.IsNull():
		// Properties follow the instance method convention; nothing static
		// to search.
		return nil, nil
	case !mask.AllowsInstance():
		return nil, nil
	case wantSetter && !mask.Has(SetProperty):
		return nil, nil
	case !wantSetter && !mask.Has(GetProperty):
		return nil, nil
	}

	owner, bound := container, false
	if first.Bound() {
		owner, bound = first.Type(), true
	}

	var getter, setter *reflect.Method

	for _, m := range r.methodsFor(owner, bound) {
		_, params, result, ok := methodSignature(owner, m)
		if !ok {
			continue
		}

		switch {
		case getter == nil && nameMatches(mask, name, m.Name) &&
			len(params) == 0 && result != nil:
			getter = &m

		case setter == nil && nameMatches(mask, "Set"+name, m.Name) &&
			len(params) == 1 && result == nil:
			setter = &m
		}
	}

	if getter == nil && setter == nil {
		return nil, nil
	}

	chosen := getter
	if wantSetter {
		chosen = setter
	}

	if chosen == nil {
		accessor := "getter"
		if wantSetter {
			accessor = "setter"
		}

		return nil, fmt.Errorf("%w: property %s.%s has no %s", ErrNoSuchAccessor, container, name, accessor)
	}

	recv, params, result, _ := methodSignature(owner, *chosen)

	slots := params
	if !bound {
		slots = append([]reflect.Type{recv}, params...)
	}

	if !fits(sh, nil, slots, result) {
		return nil, nil
	}

	kind, memberName := KindPropertyGetter, chosen.Name
	if wantSetter {
		kind, memberName = KindPropertySetter, strings.TrimPrefix(chosen.Name, "Set")
	}

	return &Target{
		Kind:   kind,
		Owner:  owner,
		Name:   memberName,
		Params: params,
		Result: result,
		fn:     chosen.Func,
		recv:   recv,
	}, nil
}

func (r *Resolver) field(container reflect.Type, name string, sh *shape.Shape, mask Mask, first FirstArg) *Target {
	wantSetter := sh.IsVoid()

	switch {
	case first.IsNull():
		return nil
	case !mask.AllowsInstance():
		return nil
	case wantSetter && !mask.Has(SetField):
		return nil
	case !wantSetter && !mask.Has(GetField):
		return nil
	}

	owner, bound := container, false
	if first.Bound() {
		owner, bound = first.Type(), true
	}

	var found *reflect.StructField

	for _, f := range r.desc.Fields(owner) {
		if nameMatches(mask, name, f.Name) {
			found = &f

			break
		}
	}

	if found == nil {
		return nil
	}

	var params []reflect.Type
	result := found.Type
	kind := KindFieldGetter

	if wantSetter {
		params, result = []reflect.Type{found.Type}, nil
		kind = KindFieldSetter
	}

	for _, recv := range receiverForms(owner) {
		slots := params
		if !bound {
			slots = append([]reflect.Type{recv}, params...)
		}

		if !fits(sh, nil, slots, result) {
			continue
		}

		return &Target{
			Kind:   kind,
			Owner:  owner,
			Name:   found.Name,
			Params: params,
			Result: result,
			recv:   recv,
			idx:    found.Index,
		}
	}

	return nil
}

func (r *Resolver) constructor(container reflect.Type, sh *shape.Shape) (*Target, error) {
	base := container
	if base.Kind() == reflect.Pointer {
		base = base.Elem()
	}

	// The shape's return type picks the value or the pointer form.
	result := base
	if ret := sh.Result(); ret != nil &&
		!convert.For(base, ret).Possible() && convert.For(reflect.PointerTo(base), ret).Possible() {
		result = reflect.PointerTo(base)
	}

	if sh.NumParams() == 0 && convert.For(result, sh.Result()).Possible() {
		return &Target{
			Kind:   KindConstructor,
			Owner:  base,
			Name:   ConstructorName,
			Static: true,
			Result: result,
		}, nil
	}

	if base.Kind() == reflect.Struct {
		var slots []reflect.StructField

		for _, f := range r.desc.Fields(base) {
			if len(f.Index) == 1 {
				slots = append(slots, f)
			}
		}

		if len(slots) > 0 && sh.NumParams() == len(slots) {
			params := make([]reflect.Type, len(slots))
			for i, f := range slots {
				params[i] = f.Type
			}

			if fits(sh, nil, params, result) {
				return &Target{
					Kind:   KindConstructor,
					Owner:  base,
					Name:   ConstructorName,
					Static: true,
					Params: params,
					Result: result,
					ctor:   slots,
				}, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: %s has no constructor matching %s", ErrMemberNotFound, container, sh)
}

// methodsFor returns the method candidates of t. A bound search is limited to
// the method set of the bound value's own type: pointer-receiver methods of a
// copied value are not callable and must not match.
func (r *Resolver) methodsFor(t reflect.Type, bound bool) []reflect.Method {
	if !bound {
		return r.desc.Methods(t)
	}

	out := make([]reflect.Method, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		out = append(out, t.Method(i))
	}

	return out
}

// methodSignature splits a method into receiver, declared parameters, and
// result. Interface methods carry no receiver slot in their func type; the
// interface type itself stands in. Methods with multiple results cannot back
// a single-result shape and report !ok.
func methodSignature(owner reflect.Type, m reflect.Method) (recv reflect.Type, params []reflect.Type, result reflect.Type, ok bool) {
	if m.Type.NumOut() > 1 {
		return nil, nil, nil, false
	}

	result = common.OutType(m.Type)

	if owner.Kind() == reflect.Interface {
		return owner, common.InTypes(m.Type, 0), result, true
	}

	return m.Type.In(0), common.InTypes(m.Type, 1), result, true
}

// fits reports whether every shape slot converts into the member slots and
// the member result converts into the shape result. An extra leading
// receiver type may be prepended to the member slots by the caller.
func fits(sh *shape.Shape, recv reflect.Type, params []reflect.Type, result reflect.Type) bool {
	slots := params
	if recv != nil {
		slots = append([]reflect.Type{recv}, params...)
	}

	if sh.NumParams() != len(slots) {
		return false
	}

	for i, dst := range slots {
		if !convert.SlotFor(sh.Param(i), dst).Possible() {
			return false
		}
	}

	return convert.For(result, sh.Result()).Possible()
}

// receiverForms lists the receiver types a field access accepts: the struct
// itself and, for a non-pointer container, a pointer to it.
func receiverForms(t reflect.Type) []reflect.Type {
	if t.Kind() == reflect.Pointer {
		return []reflect.Type{t}
	}

	return []reflect.Type{t, reflect.PointerTo(t)}
}

func nameMatches(mask Mask, want, got string) bool {
	if mask.FoldsCase() {
		return strings.EqualFold(want, got)
	}

	return want == got
}
