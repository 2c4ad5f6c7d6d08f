package member

import (
	"errors"
	"reflect"
	"sync"
)

var (
	ErrNotAFunction = errors.New("registered static member is not a function")
)

// Static is a package-level function attached to a container type under a
// member name.
type Static struct {
	Name string
	Fn   reflect.Value
}

// Describer enumerates the callable members of a container type. It is the
// seam to the host type system; DefaultDescriber enumerates with reflect and
// knows no statics, Registry adds registered package-level functions on top.
type Describer interface {
	// Methods returns the exported methods of t. For a non-pointer t the
	// value method set comes first, followed by the method set of *t, so a
	// resolver trying candidates in order prefers value receivers.
	Methods(t reflect.Type) []reflect.Method
	// Fields returns the visible exported fields of the struct underlying t
	// (one pointer indirection allowed), promoted fields included.
	Fields(t reflect.Type) []reflect.StructField
	// Statics returns the package-level functions attached to t.
	Statics(t reflect.Type) []Static
}

// DefaultDescriber returns the reflect-based Describer with no statics.
func DefaultDescriber() Describer { return reflectDescriber{} }

type reflectDescriber struct{}

func (reflectDescriber) Methods(t reflect.Type) []reflect.Method {
	if t == nil {
		return nil
	}

	out := make([]reflect.Method, 0, t.NumMethod())
	for i := 0; i < t.NumMethod(); i++ {
		out = append(out, t.Method(i))
	}

	if t.Kind() != reflect.Pointer && t.Kind() != reflect.Interface {
		pt := reflect.PointerTo(t)
		for i := 0; i < pt.NumMethod(); i++ {
			out = append(out, pt.Method(i))
		}
	}

	return out
}

func (reflectDescriber) Fields(t reflect.Type) []reflect.StructField {
	if t == nil {
		return nil
	}

	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	if t.Kind() != reflect.Struct {
		return nil
	}

	var out []reflect.StructField
	for _, f := range reflect.VisibleFields(t) {
		if f.PkgPath == "" {
			out = append(out, f)
		}
	}

	return out
}

func (reflectDescriber) Statics(reflect.Type) []Static { return nil }

// Registry is a Describer that attaches package-level functions to container
// types, giving them a static-member form Go types lack natively. The zero
// value is ready to use. Registration and lookup are safe for concurrent use.
type Registry struct {
	reflectDescriber

	mu      sync.RWMutex
	statics map[reflect.Type][]Static
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{} }

// Register attaches fn to the container type under name. fn must be a func
// value; variadic functions are accepted and later match only at their fixed
// declared arity.
func (r *Registry) Register(container reflect.Type, name string, fn any) error {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return ErrNotAFunction
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.statics == nil {
		r.statics = make(map[reflect.Type][]Static)
	}

	r.statics[container] = append(r.statics[container], Static{Name: name, Fn: v})

	return nil
}

// Statics returns the functions registered for t, in registration order.
func (r *Registry) Statics(t reflect.Type) []Static {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.statics[t]
}
