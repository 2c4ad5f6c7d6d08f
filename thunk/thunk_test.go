package thunk_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fr830/Cyjb/convert"
	"github.com/fr830/Cyjb/member"
	"github.com/fr830/Cyjb/shape"
	"github.com/fr830/Cyjb/thunk"
)

type tank struct {
	Volume int64
	Name   string
}

func (t tank) Report() string { return fmt.Sprintf("%s=%d", t.Name, t.Volume) }

func (t *tank) Fill(n int64) int64 {
	t.Volume += n

	return t.Volume
}

func (t tank) ReadInto(p *int64) { *p = t.Volume }

func (t tank) Sum(ns ...int64) int64 {
	total := t.Volume
	for _, n := range ns {
		total += n
	}

	return total
}

func resolve(t *testing.T, sh *shape.Shape, name string, first member.FirstArg) *member.Target {
	t.Helper()

	target, err := member.NewResolver(nil).Resolve(
		reflect.TypeFor[tank](), name, sh, member.MaskDefault, first)
	require.NoError(t, err)

	return target
}

func mustShape[F any](t *testing.T) *shape.Shape {
	t.Helper()

	sh, err := shape.For[F]()
	require.NoError(t, err)

	return sh
}

func TestCompileProcedure(t *testing.T) {
	t.Parallel()

	t.Run("unbound method with receiver slot", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func(*tank, int64) int64](t)
		th, err := thunk.Compile(sh, resolve(t, sh, "Fill", member.NoFirstArg), member.NoFirstArg)
		require.NoError(t, err)

		fill := th.Func().(func(*tank, int64) int64)
		tk := &tank{Volume: 10}

		assert.Equal(t, int64(15), fill(tk, 5))
		assert.Equal(t, int64(15), tk.Volume)
	})

	t.Run("bound receiver keeps its state across calls", func(t *testing.T) {
		t.Parallel()

		tk := &tank{}
		sh := mustShape[func(int64) int64](t)
		th, err := thunk.Compile(sh, resolve(t, sh, "Fill", member.BindFirst(tk)), member.BindFirst(tk))
		require.NoError(t, err)

		fill := th.Func().(func(int64) int64)

		assert.Equal(t, int64(3), fill(3))
		assert.Equal(t, int64(7), fill(4))
		assert.Equal(t, int64(7), tk.Volume)
	})

	t.Run("result widens into any", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func(tank) any](t)
		th, err := thunk.Compile(sh, resolve(t, sh, "Report", member.NoFirstArg), member.NoFirstArg)
		require.NoError(t, err)

		report := th.Func().(func(tank) any)
		assert.Equal(t, "acid=9", report(tank{Volume: 9, Name: "acid"}))
	})

	t.Run("variadic member called at its fixed arity", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func(tank, []int64) int64](t)
		th, err := thunk.Compile(sh, resolve(t, sh, "Sum", member.NoFirstArg), member.NoFirstArg)
		require.NoError(t, err)

		sum := th.Func().(func(tank, []int64) int64)
		assert.Equal(t, int64(16), sum(tank{Volume: 10}, []int64{1, 2, 3}))
	})

	t.Run("arity mismatch is a build-time error", func(t *testing.T) {
		t.Parallel()

		wide := mustShape[func(*tank, int64) int64](t)
		target := resolve(t, wide, "Fill", member.NoFirstArg)

		_, err := thunk.Compile(mustShape[func(*tank) int64](t), target, member.NoFirstArg)
		assert.ErrorIs(t, err, convert.ErrImpossible)
	})

	t.Run("nil arguments are rejected", func(t *testing.T) {
		t.Parallel()

		_, err := thunk.Compile(nil, nil, member.NoFirstArg)
		assert.ErrorIs(t, err, member.ErrArgumentNull)
	})
}

func TestInvoke(t *testing.T) {
	t.Parallel()

	sh := mustShape[func(tank) string](t)
	th, err := thunk.Compile(sh, resolve(t, sh, "Report", member.NoFirstArg), member.NoFirstArg)
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		t.Parallel()

		got, err := th.Invoke(tank{Volume: 2, Name: "oil"})
		require.NoError(t, err)
		assert.Equal(t, "oil=2", got)
	})

	t.Run("argument count checked before anything else", func(t *testing.T) {
		t.Parallel()

		_, err := th.Invoke()
		assert.ErrorIs(t, err, thunk.ErrArityMismatch)

		_, err = th.Invoke(tank{}, tank{})
		assert.ErrorIs(t, err, thunk.ErrArityMismatch)
	})

	t.Run("unassignable argument", func(t *testing.T) {
		t.Parallel()

		_, err := th.Invoke("not a tank")
		assert.ErrorIs(t, err, convert.ErrImpossible)
	})

	t.Run("nil argument for a value parameter", func(t *testing.T) {
		t.Parallel()

		_, err := th.Invoke(nil)
		assert.ErrorIs(t, err, convert.ErrImpossible)
	})
}

func TestByReference(t *testing.T) {
	t.Parallel()

	t.Run("identity pointer slot writes back", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func(tank, *int64)](t)
		th, err := thunk.Compile(sh, resolve(t, sh, "ReadInto", member.NoFirstArg), member.NoFirstArg)
		require.NoError(t, err)

		read := th.Func().(func(tank, *int64))

		var out int64
		read(tank{Volume: 7}, &out)
		assert.Equal(t, int64(7), out)
	})

	t.Run("converted pointer slot does not write back", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func(tank, *int32)](t)
		th, err := thunk.Compile(sh, resolve(t, sh, "ReadInto", member.NoFirstArg), member.NoFirstArg)
		require.NoError(t, err)

		read := th.Func().(func(tank, *int32))

		var out int32
		read(tank{Volume: 7}, &out)
		assert.Equal(t, int32(0), out)
	})
}

func TestNullFirstArgument(t *testing.T) {
	t.Parallel()

	wide := mustShape[func(*tank, int64) int64](t)
	target := resolve(t, wide, "Fill", member.NoFirstArg)

	sh := mustShape[func(int64) int64](t)
	th, err := thunk.Compile(sh, target, member.NullFirstArg())
	require.NoError(t, err, "compiling against a nil receiver must succeed")

	_, err = th.Invoke(int64(1))
	assert.ErrorIs(t, err, thunk.ErrNilReceiver)

	// The typed callable has no error slot and panics with the same value.
	fill := th.Func().(func(int64) int64)

	defer func() {
		r := recover()
		require.NotNil(t, r)

		err, ok := r.(error)
		require.True(t, ok)
		assert.ErrorIs(t, err, thunk.ErrNilReceiver)
	}()

	fill(1)
}

func TestInterfaceContainer(t *testing.T) {
	t.Parallel()

	stringerType := reflect.TypeFor[fmt.Stringer]()

	sh := mustShape[func(fmt.Stringer) string](t)
	target, err := member.NewResolver(nil).Resolve(stringerType, "String", sh, member.MaskDefault, member.NoFirstArg)
	require.NoError(t, err)

	th, err := thunk.Compile(sh, target, member.NoFirstArg)
	require.NoError(t, err)

	str := th.Func().(func(fmt.Stringer) string)
	assert.Equal(t, "label", str(stringerValue("label")))

	t.Run("nil receiver fails at call time", func(t *testing.T) {
		t.Parallel()

		_, err := th.Invoke(nil)
		assert.ErrorIs(t, err, thunk.ErrNilReceiver)
	})

	t.Run("concrete implementer in the receiver slot", func(t *testing.T) {
		t.Parallel()

		// The receiver slot widens into the interface without any runtime
		// operation, so the dispatch sees the concrete value itself.
		wide := mustShape[func(stringerValue) string](t)
		target, err := member.NewResolver(nil).Resolve(stringerType, "String", wide, member.MaskDefault, member.NoFirstArg)
		require.NoError(t, err)

		th, err := thunk.Compile(wide, target, member.NoFirstArg)
		require.NoError(t, err)

		got, err := th.Invoke(stringerValue("label"))
		require.NoError(t, err)
		assert.Equal(t, "label", got)
	})
}

type stringerValue string

func (s stringerValue) String() string { return string(s) }

func TestStatics(t *testing.T) {
	t.Parallel()

	reg := member.NewRegistry()
	tankType := reflect.TypeFor[tank]()
	require.NoError(t, reg.Register(tankType, "Parse", func(name string) tank {
		return tank{Name: name}
	}))
	require.NoError(t, reg.Register(tankType, "Scale", func(t tank, by int64) int64 {
		return t.Volume * by
	}))
	require.NoError(t, reg.Register(tankType, "Revive", func(p *tank) tank {
		if p == nil {
			return tank{Name: "fresh"}
		}

		return *p
	}))

	r := member.NewResolver(reg)

	t.Run("plain static call", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func(string) tank](t)
		target, err := r.Resolve(tankType, "Parse", sh, member.MaskDefault, member.NoFirstArg)
		require.NoError(t, err)

		th, err := thunk.Compile(sh, target, member.NoFirstArg)
		require.NoError(t, err)

		got, err := th.Invoke("acid")
		require.NoError(t, err)
		assert.Equal(t, tank{Name: "acid"}, got)
	})

	t.Run("binding consumes the first declared parameter", func(t *testing.T) {
		t.Parallel()

		wide := mustShape[func(tank, int64) int64](t)
		target, err := r.Resolve(tankType, "Scale", wide, member.MaskDefault, member.NoFirstArg)
		require.NoError(t, err)

		first := member.BindFirst(tank{Volume: 5})
		th, err := thunk.Compile(mustShape[func(int64) int64](t), target, first)
		require.NoError(t, err)

		got, err := th.Invoke(int64(3))
		require.NoError(t, err)
		assert.Equal(t, int64(15), got)
	})

	t.Run("null binding supplies a nil first parameter", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func() tank](t)
		target, err := r.Resolve(tankType, "Revive", sh, member.MaskDefault, member.NullFirstArg())
		require.NoError(t, err)
		require.True(t, target.Static)

		th, err := thunk.Compile(sh, target, member.NullFirstArg())
		require.NoError(t, err)

		got, err := th.Invoke()
		require.NoError(t, err)
		assert.Equal(t, tank{Name: "fresh"}, got)
	})

	t.Run("binding to a parameterless static is rejected", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, reg.Register(tankType, "Empty", func() tank { return tank{} }))

		sh := mustShape[func() tank](t)
		target, err := r.Resolve(tankType, "Empty", sh, member.MaskDefault, member.NoFirstArg)
		require.NoError(t, err)

		_, err = thunk.Compile(sh, target, member.BindFirst(tank{}))
		assert.ErrorIs(t, err, convert.ErrImpossible)
	})
}

func TestFields(t *testing.T) {
	t.Parallel()

	tankType := reflect.TypeFor[tank]()
	r := member.NewResolver(nil)

	t.Run("getter", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func(tank) string](t)
		target, err := r.Resolve(tankType, "Name", sh, member.MaskDefault, member.NoFirstArg)
		require.NoError(t, err)

		th, err := thunk.Compile(sh, target, member.NoFirstArg)
		require.NoError(t, err)

		got, err := th.Invoke(tank{Name: "acid"})
		require.NoError(t, err)
		assert.Equal(t, "acid", got)
	})

	t.Run("setter through a pointer receiver", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func(*tank, string)](t)
		target, err := r.Resolve(tankType, "Name", sh, member.MaskDefault, member.NoFirstArg)
		require.NoError(t, err)

		th, err := thunk.Compile(sh, target, member.NoFirstArg)
		require.NoError(t, err)

		tk := &tank{}
		th.Func().(func(*tank, string))(tk, "oil")
		assert.Equal(t, "oil", tk.Name)
	})

	t.Run("setter through a value receiver is denied at call time", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func(tank, string)](t)
		target, err := r.Resolve(tankType, "Name", sh, member.MaskDefault, member.NoFirstArg)
		require.NoError(t, err)

		th, err := thunk.Compile(sh, target, member.NoFirstArg)
		require.NoError(t, err)

		_, err = th.Invoke(tank{}, "oil")
		assert.ErrorIs(t, err, thunk.ErrAccessDenied)
	})

	t.Run("bound setter", func(t *testing.T) {
		t.Parallel()

		tk := &tank{}
		first := member.BindFirst(tk)

		sh := mustShape[func(string)](t)
		target, err := r.Resolve(tankType, "Name", sh, member.MaskDefault, first)
		require.NoError(t, err)

		th, err := thunk.Compile(sh, target, first)
		require.NoError(t, err)

		_, err = th.Invoke("oil")
		require.NoError(t, err)
		assert.Equal(t, "oil", tk.Name)
	})

	t.Run("nil pointer receiver fails at call time", func(t *testing.T) {
		t.Parallel()

		first := member.BindFirst((*tank)(nil))

		sh := mustShape[func(string)](t)
		target, err := r.Resolve(tankType, "Name", sh, member.MaskDefault, first)
		require.NoError(t, err)

		th, err := thunk.Compile(sh, target, first)
		require.NoError(t, err)

		_, err = th.Invoke("oil")
		assert.ErrorIs(t, err, thunk.ErrNilReceiver)
	})
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	tankType := reflect.TypeFor[tank]()
	r := member.NewResolver(nil)

	t.Run("zero-argument value form", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func() tank](t)
		target, err := r.Resolve(tankType, member.ConstructorName, sh, member.MaskNone, member.NoFirstArg)
		require.NoError(t, err)

		th, err := thunk.Compile(sh, target, member.NoFirstArg)
		require.NoError(t, err)

		got, err := th.Invoke()
		require.NoError(t, err)
		assert.Equal(t, tank{}, got)
	})

	t.Run("positional form fills fields in declaration order", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func(int64, string) tank](t)
		target, err := r.Resolve(tankType, member.ConstructorName, sh, member.MaskNone, member.NoFirstArg)
		require.NoError(t, err)

		th, err := thunk.Compile(sh, target, member.NoFirstArg)
		require.NoError(t, err)

		got, err := th.Invoke(int64(4), "acid")
		require.NoError(t, err)
		assert.Equal(t, tank{Volume: 4, Name: "acid"}, got)
	})

	t.Run("pointer form allocates", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func() *tank](t)
		target, err := r.Resolve(tankType, member.ConstructorName, sh, member.MaskNone, member.NoFirstArg)
		require.NoError(t, err)

		th, err := thunk.Compile(sh, target, member.NoFirstArg)
		require.NoError(t, err)

		ctor := th.Func().(func() *tank)
		require.NotNil(t, ctor())
	})

	t.Run("binding a first argument is rejected", func(t *testing.T) {
		t.Parallel()

		sh := mustShape[func() tank](t)
		target, err := r.Resolve(tankType, member.ConstructorName, sh, member.MaskNone, member.NoFirstArg)
		require.NoError(t, err)

		_, err = thunk.Compile(sh, target, member.BindFirst(tank{}))
		assert.ErrorIs(t, err, convert.ErrImpossible)
	})
}

func TestWrap(t *testing.T) {
	t.Parallel()

	sh := mustShape[func(tank) string](t)
	src, err := thunk.Compile(sh, resolve(t, sh, "Report", member.NoFirstArg), member.NoFirstArg)
	require.NoError(t, err)

	t.Run("identical shape is behaviorally equivalent", func(t *testing.T) {
		t.Parallel()

		wrapped, err := thunk.Wrap(sh, src)
		require.NoError(t, err)

		want, err := src.Invoke(tank{Volume: 2, Name: "gas"})
		require.NoError(t, err)

		got, err := wrapped.Invoke(tank{Volume: 2, Name: "gas"})
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("result widens", func(t *testing.T) {
		t.Parallel()

		wrapped, err := thunk.Wrap(mustShape[func(tank) any](t), src)
		require.NoError(t, err)
		assert.Nil(t, wrapped.Target())

		got, err := wrapped.Invoke(tank{Volume: 1, Name: "oil"})
		require.NoError(t, err)
		assert.Equal(t, "oil=1", got)
	})

	t.Run("result discards into void", func(t *testing.T) {
		t.Parallel()

		wrapped, err := thunk.Wrap(mustShape[func(tank)](t), src)
		require.NoError(t, err)

		got, err := wrapped.Invoke(tank{})
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("arity must match", func(t *testing.T) {
		t.Parallel()

		_, err := thunk.Wrap(mustShape[func(tank, int) string](t), src)
		assert.ErrorIs(t, err, convert.ErrImpossible)
	})

	t.Run("inconvertible slot", func(t *testing.T) {
		t.Parallel()

		_, err := thunk.Wrap(mustShape[func(chan int) string](t), src)
		assert.ErrorIs(t, err, convert.ErrImpossible)
	})

	t.Run("nil arguments are rejected", func(t *testing.T) {
		t.Parallel()

		_, err := thunk.Wrap(nil, src)
		assert.ErrorIs(t, err, member.ErrArgumentNull)

		_, err = thunk.Wrap(sh, nil)
		assert.ErrorIs(t, err, member.ErrArgumentNull)
	})
}
