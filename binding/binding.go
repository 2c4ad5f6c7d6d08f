package binding

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/fr830/Cyjb/member"
	"github.com/fr830/Cyjb/shape"
	"github.com/fr830/Cyjb/thunk"
)

// Option adjusts a single binding operation.
type Option func(*config)

type config struct {
	first member.FirstArg
	mask  member.Mask
	throw bool
	desc  member.Describer
}

func newConfig(opts []Option) config {
	cfg := config{mask: member.MaskDefault}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

// WithFirstArg binds v as the first argument at build time; the receiver (or
// leading parameter) slot disappears from the thunk's public shape.
// WithFirstArg(nil) binds an explicit nil.
func WithFirstArg(v any) Option {
	return func(c *config) { c.first = member.BindFirst(v) }
}

// WithMask restricts the member search to the given capability mask.
func WithMask(m member.Mask) Option {
	return func(c *config) { c.mask = m }
}

// WithThrowOnFailure turns legitimate misses (member not found, accessor
// missing, no conversion path) into errors instead of a nil thunk.
func WithThrowOnFailure() Option {
	return func(c *config) { c.throw = true }
}

// WithDescriber resolves members through d instead of the default
// reflect-based enumeration. Pass a member.Registry to expose static
// functions.
func WithDescriber(d member.Describer) Option {
	return func(c *config) { c.desc = d }
}

// CreateThunk compiles a thunk conforming to descriptor around an already
// resolved member.
func CreateThunk(descriptor reflect.Type, target *member.Target, opts ...Option) (*thunk.Thunk, error) {
	cfg := newConfig(opts)

	sh, err := shape.FromType(descriptor)
	if err != nil {
		return nil, err
	}

	if target == nil {
		return nil, fmt.Errorf("%w: callable target", member.ErrArgumentNull)
	}

	t, err := thunk.Compile(sh, target, cfg.first)

	return police(cfg, t, err)
}

// CreateThunkByName resolves container.name against descriptor's shape and
// compiles the result.
func CreateThunkByName(descriptor reflect.Type, container reflect.Type, name string, opts ...Option) (*thunk.Thunk, error) {
	cfg := newConfig(opts)

	sh, err := shape.FromType(descriptor)
	if err != nil {
		return nil, err
	}

	target, err := member.NewResolver(cfg.desc).Resolve(container, name, sh, cfg.mask, cfg.first)
	if err != nil {
		return police(cfg, nil, err)
	}

	t, err := thunk.Compile(sh, target, cfg.first)

	return police(cfg, t, err)
}

// Wrap adapts an existing thunk into descriptor's shape.
func Wrap(descriptor reflect.Type, src *thunk.Thunk, opts ...Option) (*thunk.Thunk, error) {
	cfg := newConfig(opts)

	sh, err := shape.FromType(descriptor)
	if err != nil {
		return nil, err
	}

	t, err := thunk.Wrap(sh, src)

	return police(cfg, t, err)
}

// Func resolves container.name and returns the thunk's typed callable as F.
// Misses always error: there is no useful zero value for a func type.
func Func[F any](container reflect.Type, name string, opts ...Option) (F, error) {
	var zero F

	t, err := CreateThunkByName(reflect.TypeFor[F](), container, name, append(opts, WithThrowOnFailure())...)
	if err != nil {
		return zero, err
	}

	return t.Func().(F), nil
}

// police applies the throw-on-failure policy: caller mistakes always
// propagate, legitimate misses become a nil thunk unless throwing.
func police(cfg config, t *thunk.Thunk, err error) (*thunk.Thunk, error) {
	if err == nil {
		return t, nil
	}

	if cfg.throw || alwaysRaised(err) {
		return nil, err
	}

	return nil, nil
}

func alwaysRaised(err error) bool {
	return errors.Is(err, member.ErrArgumentNull) ||
		errors.Is(err, shape.ErrNilDescriptor) ||
		errors.Is(err, shape.ErrInvalidDescriptor)
}
