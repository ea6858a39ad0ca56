// Package posonly enforces positional-only calling conventions on
// dynamically dispatched Go functions. It wraps a callable so that a
// configurable prefix of its parameters may only be supplied
// positionally; passing one of them by keyword fails before the callable
// runs, with an error naming each offending parameter, the value passed,
// and the position it should occupy.
//
// Usage:
//
//	diff := func(left, right string, context int) string { ... }
//	w, err := posonly.WrapFunc("diff", diff, []posonly.Parameter{
//	    posonly.Param("left"),
//	    posonly.Param("right"),
//	    posonly.ParamDefault("context", 3),
//	})
//	w.Signature()                                  // diff(left, right, /, context=3)
//	w.Call(ctx, []any{"a", "b"}, nil)              // forwards
//	w.Call(ctx, nil, map[string]any{"left": "a"})  // *ViolationError
//
// The boundary resolves from an explicit WithPositional count, from a
// parameter whose default is the Limit sentinel, or from the position of
// the first defaulted parameter. The SDK links directly against internal
// packages; external users import github.com/arpegio/posonly/sdk/go/posonly.
package posonly
