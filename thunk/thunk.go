package thunk

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/fr830/Cyjb/convert"
	"github.com/fr830/Cyjb/internal/common"
	"github.com/fr830/Cyjb/member"
	"github.com/fr830/Cyjb/shape"
)

var (
	ErrArityMismatch = errors.New("argument count does not match thunk arity")
	ErrNilReceiver   = errors.New("thunk is bound to a nil receiver")
	ErrAccessDenied  = errors.New("member is not accessible for this operation")
)

// Thunk is a compiled adapter matching a specific target shape. Immutable;
// safe for concurrent use.
type Thunk struct {
	sh     *shape.Shape
	target *member.Target // nil for wrapped thunks
	fn     reflect.Value
}

// Shape returns the shape the thunk conforms to.
func (t *Thunk) Shape() *shape.Shape { return t.sh }

// Target returns the member backing the thunk, nil for wrapped thunks.
func (t *Thunk) Target() *member.Target { return t.target }

// Func returns the typed callable: a func value of the shape's func type.
// Call-time failures surface as panics carrying the package's error values,
// since the shape's signature has no slot for an error it did not declare.
func (t *Thunk) Func() any { return t.fn.Interface() }

// Invoke is the generic entry point. It validates the argument count first:
// a mismatch reports ErrArityMismatch before any conversion or invocation is
// attempted. Arguments must be assignable to the shape's parameter types.
func (t *Thunk) Invoke(args ...any) (result any, err error) {
	if len(args) != t.sh.NumParams() {
		return nil, fmt.Errorf("%w: got %d arguments, want %d", ErrArityMismatch, len(args), t.sh.NumParams())
	}

	in := make([]reflect.Value, len(args))

	for i, a := range args {
		pt := t.sh.Param(i)

		if a == nil {
			if !common.Nilable(pt) {
				return nil, fmt.Errorf("%w: nil argument %d for %s", convert.ErrImpossible, i, pt)
			}

			in[i] = reflect.Zero(pt)

			continue
		}

		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			return nil, fmt.Errorf("%w: argument %d of type %s for %s", convert.ErrImpossible, i, av.Type(), pt)
		}

		in[i] = av
	}

	defer func() {
		if r := recover(); r != nil {
			ce, ok := r.(callError)
			if !ok {
				panic(r)
			}

			err = ce.err
		}
	}()

	out := t.fn.Call(in)
	if len(out) == 0 {
		return nil, nil
	}

	return out[0].Interface(), nil
}

// callError carries a call-time failure through the typed callable's panic
// path; Invoke unwraps it back into an ordinary error return.
type callError struct {
	err error
}

func (e callError) Error() string { return e.err.Error() }

func (e callError) Unwrap() error { return e.err }

func fail(err error) callError { return callError{err: err} }
