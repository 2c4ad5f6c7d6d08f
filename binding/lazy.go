package binding

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/fr830/Cyjb/member"
	"github.com/fr830/Cyjb/thunk"
)

// Lazy defers resolution and compilation until first use. The first outcome,
// success or failure, is memoized; concurrent first uses build once.
type Lazy struct {
	once func() (*thunk.Thunk, error)
}

// CreateThunkLazy is CreateThunkByName with the work postponed to the first
// Thunk or Invoke call.
func CreateThunkLazy(descriptor reflect.Type, container reflect.Type, name string, opts ...Option) *Lazy {
	return &Lazy{
		once: sync.OnceValues(func() (*thunk.Thunk, error) {
			return CreateThunkByName(descriptor, container, name, opts...)
		}),
	}
}

// Thunk forces the build and returns its memoized outcome.
func (l *Lazy) Thunk() (*thunk.Thunk, error) { return l.once() }

// Invoke forces the build and invokes the thunk. A miss under the default
// nil-result policy is reported as a member.ErrMemberNotFound here, since
// there is no thunk left to call.
func (l *Lazy) Invoke(args ...any) (any, error) {
	t, err := l.once()
	if err != nil {
		return nil, err
	}

	if t == nil {
		return nil, fmt.Errorf("%w: lazy thunk has no member to call", member.ErrMemberNotFound)
	}

	return t.Invoke(args...)
}
