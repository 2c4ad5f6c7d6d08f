package convert

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrImpossible is reported when a conversion cannot be planned, or when a
// planned dynamic conversion fails against the actual value at call time.
var ErrImpossible = errors.New("no conversion between types")

// Plan is the per-slot decision of how (or whether) to convert a value.
// A nil Src or Dst marks the "no result" side of a call. Plans are computed
// once at build time and are safe to apply concurrently.
type Plan struct {
	Verdict  Verdict
	Src, Dst reflect.Type

	// assert marks an Explicit plan carried out as a checked dynamic type
	// assertion instead of a value conversion.
	assert bool
}

// For plans the move of a value from src to dst.
//
// A nil dst accepts any source and discards the value. A nil src against a
// value-expecting dst materializes the destination's zero value. Impossible
// is a legitimate outcome, not an error: it tells the caller this candidate
// does not match.
func For(src, dst reflect.Type) Plan {
	switch {
	case dst == nil:
		return Plan{Verdict: Identity, Src: src}

	case src == nil:
		return Plan{Verdict: Explicit, Dst: dst}

	case src == dst:
		return Plan{Verdict: Identity, Src: src, Dst: dst}

	case src.AssignableTo(dst):
		return Plan{Verdict: Widening, Src: src, Dst: dst}

	case src.ConvertibleTo(dst):
		return Plan{Verdict: Explicit, Src: src, Dst: dst}

	case src.Kind() == reflect.Interface && (dst.Kind() == reflect.Interface || dst.Implements(src)):
		// The dynamic value behind src may be a dst; defer to a checked
		// assertion at call time.
		return Plan{Verdict: Explicit, Src: src, Dst: dst, assert: true}

	default:
		return Plan{Verdict: Impossible, Src: src, Dst: dst}
	}
}

// Possible reports whether the plan can be carried out.
func (p Plan) Possible() bool { return p.Verdict.Possible() }

// Discards reports whether the plan throws the source value away.
func (p Plan) Discards() bool { return p.Dst == nil }

// Materializes reports whether the plan produces the destination's zero value
// out of nothing.
func (p Plan) Materializes() bool { return p.Src == nil && p.Dst != nil }

// Identical reports whether the plan is a same-type pass-through.
func (p Plan) Identical() bool {
	return p.Verdict == Identity && p.Src != nil && p.Dst != nil
}

// Apply carries the plan out on v. Identity and Widening return v untouched.
// Discarding plans return an invalid Value; materializing plans ignore v.
func (p Plan) Apply(v reflect.Value) (reflect.Value, error) {
	switch {
	case !p.Possible():
		return reflect.Value{}, fmt.Errorf("%w: %s", ErrImpossible, p)

	case p.Discards():
		return reflect.Value{}, nil

	case p.Materializes():
		return reflect.Zero(p.Dst), nil

	case p.Verdict != Explicit:
		return v, nil

	case p.assert:
		return p.applyAssert(v)

	default:
		return p.applyConvert(v)
	}
}

func (p Plan) applyAssert(v reflect.Value) (reflect.Value, error) {
	if v.IsNil() {
		if p.Dst.Kind() == reflect.Interface {
			return reflect.Zero(p.Dst), nil
		}

		return reflect.Value{}, fmt.Errorf("%w: nil %s cannot become %s", ErrImpossible, p.Src, p.Dst)
	}

	dyn := v.Elem()
	if !dyn.Type().AssignableTo(p.Dst) {
		return reflect.Value{}, fmt.Errorf("%w: dynamic value of type %s is not a %s",
			ErrImpossible, dyn.Type(), p.Dst)
	}

	out := reflect.New(p.Dst).Elem()
	out.Set(dyn)

	return out, nil
}

func (p Plan) applyConvert(v reflect.Value) (reflect.Value, error) {
	// The one conversion reflect can panic on: a slice shorter than the
	// destination array.
	if p.Src.Kind() == reflect.Slice {
		arr := p.Dst
		if arr.Kind() == reflect.Pointer {
			arr = arr.Elem()
		}

		if arr.Kind() == reflect.Array && v.Len() < arr.Len() {
			return reflect.Value{}, fmt.Errorf("%w: slice of length %d is too short for %s",
				ErrImpossible, v.Len(), p.Dst)
		}
	}

	return v.Convert(p.Dst), nil
}

func (p Plan) String() string {
	src, dst := "<none>", "<none>"
	if p.Src != nil {
		src = p.Src.String()
	}

	if p.Dst != nil {
		dst = p.Dst.String()
	}

	return fmt.Sprintf("%s => %s (%s)", src, dst, p.Verdict)
}
