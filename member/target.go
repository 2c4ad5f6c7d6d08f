package member

import (
	"fmt"
	"reflect"
)

// ConstructorName is the reserved member name that selects constructor search.
const ConstructorName = ".ctor"

// Target is a resolved callable member. Targets are immutable descriptors;
// the engine never mutates one after it is returned.
type Target struct {
	// Kind tags which variant of the descriptor is populated.
	Kind Kind
	// Owner is the declaring type.
	Owner reflect.Type
	// Name is the member name as declared (the property name for accessors,
	// ConstructorName for constructors).
	Name string
	// Static is true for members invoked without a receiver.
	Static bool
	// Params are the declared parameter types, receiver excluded. Setters
	// carry their value slot as the last (only) parameter.
	Params []reflect.Type
	// Result is the declared result type, nil when the member yields nothing.
	Result reflect.Type
	// Variadic marks a variable-arity declaration. Such a member still
	// matches only at its fixed declared arity; Params keeps the trailing
	// slice parameter as an ordinary slice-typed slot.
	Variadic bool

	fn   reflect.Value // backing func: method expression or registered static
	recv reflect.Type  // receiver parameter type for instance members
	idx  []int         // field index path for field accessors
	ctor []reflect.StructField // positional slots for constructors
}

// Func returns the backing func value: a method expression (receiver first)
// for instance members, the registered function for statics. Invalid for
// constructors, field accessors, and interface-container methods, which are
// dispatched dynamically.
func (t *Target) Func() reflect.Value { return t.fn }

// Receiver returns the receiver parameter type for instance members, nil for
// static members and constructors.
func (t *Target) Receiver() reflect.Type { return t.recv }

// FieldIndex returns the index path of the backing struct field. Nil for
// non-field members.
func (t *Target) FieldIndex() []int { return t.idx }

// ConstructorFields returns the positional field slots of a synthesized
// constructor, in declaration order. Nil for non-constructors and for the
// zero-argument form.
func (t *Target) ConstructorFields() []reflect.StructField { return t.ctor }

// RequiredArity returns the number of arguments a shape must supply to invoke
// the member: the declared parameters plus a leading receiver slot when the
// member is an instance member and no first argument is bound. Binding a
// first argument to a static member consumes its first declared parameter
// instead of a receiver.
func (t *Target) RequiredArity(bound bool) int {
	n := len(t.Params)

	switch {
	case t.Static && bound && n > 0:
		n--
	case !t.Static && !bound:
		n++
	}

	return n
}

func (t *Target) String() string {
	return fmt.Sprintf("%s %s.%s", t.Kind, t.Owner, t.Name)
}
