package shape

import (
	"errors"
	"fmt"
	"reflect"
)

var (
	ErrNilDescriptor     = errors.New("shape descriptor is nil")
	ErrInvalidDescriptor = errors.New("shape descriptor does not carry exactly one call signature")
)

// Shape is a validated target calling shape. Immutable once built.
type Shape struct {
	descriptor reflect.Type // func or single-method interface, as supplied
	fn         reflect.Type // normalized func type
}

// For returns the shape described by the type parameter.
//
// Shorthand for FromType(reflect.TypeFor[T]()).
func For[T any]() (*Shape, error) {
	return FromType(reflect.TypeFor[T]())
}

// FromType validates t as a shape descriptor and returns the Shape.
//
// Accepted descriptors:
//   - a func type with at most one result
//   - an interface type with exactly one method
//
// Variadic func types are rejected: a shape fixes its arity.
func FromType(t reflect.Type) (*Shape, error) {
	if t == nil {
		return nil, ErrNilDescriptor
	}

	switch t.Kind() {
	default:
		return nil, fmt.Errorf("%w: %s is not a func or interface type", ErrInvalidDescriptor, t)

	case reflect.Func:
		return fromFunc(t, t)

	case reflect.Interface:
		switch t.NumMethod() {
		default:
			return nil, fmt.Errorf("%w: interface %s has %d methods", ErrInvalidDescriptor, t, t.NumMethod())
		case 0:
			return nil, fmt.Errorf("%w: interface %s has no methods", ErrInvalidDescriptor, t)
		case 1:
			return fromFunc(t, t.Method(0).Type)
		}
	}
}

func fromFunc(descriptor, fn reflect.Type) (*Shape, error) {
	if fn.IsVariadic() {
		return nil, fmt.Errorf("%w: %s is variadic", ErrInvalidDescriptor, descriptor)
	}

	if fn.NumOut() > 1 {
		return nil, fmt.Errorf("%w: %s has %d results", ErrInvalidDescriptor, descriptor, fn.NumOut())
	}

	return &Shape{descriptor: descriptor, fn: fn}, nil
}

// Descriptor returns the type the shape was built from.
func (s *Shape) Descriptor() reflect.Type { return s.descriptor }

// FuncType returns the normalized func type of the shape.
func (s *Shape) FuncType() reflect.Type { return s.fn }

// NumParams returns the number of parameters in the shape.
func (s *Shape) NumParams() int { return s.fn.NumIn() }

// Param returns the i-th parameter type.
func (s *Shape) Param(i int) reflect.Type { return s.fn.In(i) }

// Params returns the ordered parameter types.
func (s *Shape) Params() []reflect.Type {
	params := make([]reflect.Type, s.fn.NumIn())
	for i := range params {
		params[i] = s.fn.In(i)
	}

	return params
}

// Result returns the shape's result type, or nil when the shape yields nothing.
func (s *Shape) Result() reflect.Type {
	if s.fn.NumOut() == 0 {
		return nil
	}

	return s.fn.Out(0)
}

// IsVoid reports whether the shape yields no result.
func (s *Shape) IsVoid() bool { return s.fn.NumOut() == 0 }

func (s *Shape) String() string { return s.descriptor.String() }
