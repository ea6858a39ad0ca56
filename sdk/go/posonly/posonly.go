package posonly

import (
	"github.com/arpegio/posonly/internal/bind"
	"github.com/arpegio/posonly/internal/boundary"
	"github.com/arpegio/posonly/internal/guard"
	"github.com/arpegio/posonly/internal/model"
	"github.com/arpegio/posonly/internal/registry"
)

// Version is the SDK version, surfaced by the CLI.
const Version = "0.1.0"

// Limit is the sentinel used as a parameter default to mark where the
// positional-only boundary ends. Detection is by identity: only this
// exact value matches, never a value that merely looks like it.
var Limit = model.Limit

// Func is the dynamic call form the guard validates and forwards:
// ordered positional arguments plus keyword arguments by name.
type Func = guard.Func

// Wrapped owns the original callable, its resolved boundary, and the
// rewritten signature. Immutable after Wrap; safe for concurrent calls.
type Wrapped = guard.Guard

// Violation is one positional-only parameter passed by keyword.
type Violation = model.Violation

// ViolationError rejects a call that passed positional-only parameters
// by keyword. Its message format is a compatibility contract.
type ViolationError = model.ViolationError

// ConfigurationError reports an invalid declaration or boundary hint at
// wrap time.
type ConfigurationError = model.ConfigurationError

// UnknownParameterError reports a keyword argument naming no declared
// parameter, raised by the binding layer rather than the guard.
type UnknownParameterError = model.UnknownParameterError

// Registry dispatches dynamic invocations to wrapped callables by name.
type Registry = registry.Registry

// NewRegistry returns an empty callable registry.
func NewRegistry() *Registry { return registry.New() }

// Parameter declares one parameter of the wrapped callable, in order.
type Parameter struct {
	Name             string
	Default          any
	HasDefault       bool
	Variadic         bool
	CollectsKeywords bool
}

// Param declares a required parameter.
func Param(name string) Parameter {
	return Parameter{Name: name}
}

// ParamDefault declares a parameter with a visible default. Passing
// Limit as the default marks the positional-only boundary instead.
func ParamDefault(name string, def any) Parameter {
	return Parameter{Name: name, Default: def, HasDefault: true}
}

// ParamVariadic declares a catch-all for surplus positional arguments.
func ParamVariadic(name string) Parameter {
	return Parameter{Name: name, Variadic: true}
}

// ParamKeywords declares a catch-all for unmatched keyword arguments.
func ParamKeywords(name string) Parameter {
	return Parameter{Name: name, CollectsKeywords: true}
}

// Option configures a single Wrap call.
type Option func(*wrapConfig)

type wrapConfig struct {
	hint boundary.Hint
}

// WithPositional pins the boundary to the first n parameters. It
// overrides both the Limit sentinel and default-based resolution.
func WithPositional(n int) Option {
	return func(c *wrapConfig) { c.hint = boundary.Explicit(n) }
}

// Wrap guards a dynamic callable. With no options the boundary resolves
// from a Limit-defaulted parameter or, failing that, from the first
// parameter carrying a default; with neither, every parameter is
// positional-only.
func Wrap(name string, fn Func, params []Parameter, opts ...Option) (*Wrapped, error) {
	cfg := wrapConfig{hint: boundary.Auto()}
	for _, o := range opts {
		o(&cfg)
	}
	return guard.New(name, fn, toModel(params), cfg.hint)
}

// WrapFunc guards an ordinary Go function, binding its arguments by
// reflection. See the bind rules in the package documentation for the
// accepted function shapes.
func WrapFunc(name string, fn any, params []Parameter, opts ...Option) (*Wrapped, error) {
	declared := toModel(params)
	bound, err := bind.Func(name, fn, declared)
	if err != nil {
		return nil, err
	}
	cfg := wrapConfig{hint: boundary.Auto()}
	for _, o := range opts {
		o(&cfg)
	}
	return guard.New(name, bound, declared, cfg.hint)
}

func toModel(params []Parameter) model.ParamList {
	out := make(model.ParamList, 0, len(params))
	for _, p := range params {
		mp := model.Parameter{
			Name:       p.Name,
			Default:    p.Default,
			HasDefault: p.HasDefault,
		}
		switch {
		case p.Variadic:
			mp.Kind = model.KindVariadic
		case p.CollectsKeywords:
			mp.Kind = model.KindKeywordCatchAll
		}
		out = append(out, mp)
	}
	return out
}
