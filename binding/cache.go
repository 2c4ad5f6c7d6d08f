package binding

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/fr830/Cyjb/member"
	"github.com/fr830/Cyjb/thunk"
)

// Key identifies one memoized binding: container type, member name, shape
// descriptor, and search options.
type Key struct {
	Container reflect.Type
	Name      string
	Shape     reflect.Type
	Mask      member.Mask
}

func (k Key) flightKey() string {
	return fmt.Sprintf("%v\x00%s\x00%v\x00%d", k.Container, k.Name, k.Shape, k.Mask)
}

// Cache memoizes thunk builds per key. The first outcome sticks, success or
// failure alike; concurrent first uses of the same key are single-flight,
// unrelated keys never contend. The zero value is ready to use.
type Cache struct {
	group   singleflight.Group
	entries sync.Map // Key -> entry
}

type entry struct {
	t   *thunk.Thunk
	err error
}

// GetOrBuild returns the memoized outcome for key, building it with build on
// first use.
func (c *Cache) GetOrBuild(key Key, build func() (*thunk.Thunk, error)) (*thunk.Thunk, error) {
	if e, ok := c.entries.Load(key); ok {
		cached := e.(entry)

		return cached.t, cached.err
	}

	v, _, _ := c.group.Do(key.flightKey(), func() (any, error) {
		if e, ok := c.entries.Load(key); ok {
			return e.(entry), nil
		}

		t, err := build()
		actual, _ := c.entries.LoadOrStore(key, entry{t: t, err: err})

		return actual.(entry), nil
	})

	cached := v.(entry)

	return cached.t, cached.err
}

// Thunk is GetOrBuild composed over CreateThunkByName, deriving the key from
// the query.
func (c *Cache) Thunk(descriptor reflect.Type, container reflect.Type, name string, opts ...Option) (*thunk.Thunk, error) {
	key := Key{Container: container, Name: name, Shape: descriptor, Mask: newConfig(opts).mask}

	return c.GetOrBuild(key, func() (*thunk.Thunk, error) {
		return CreateThunkByName(descriptor, container, name, opts...)
	})
}
