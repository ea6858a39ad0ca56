// Package bind adapts ordinary Go functions to the dynamic call form the
// guard forwards to. Binding happens here, on the callable's own side of
// the guard: the guard validates the boundary and hands the invocation
// over unchanged.
package bind

import (
	"context"
	"fmt"
	"reflect"

	"github.com/arpegio/posonly/internal/guard"
	"github.com/arpegio/posonly/internal/model"
)

var (
	ctxType   = reflect.TypeOf((*context.Context)(nil)).Elem()
	errType   = reflect.TypeOf((*error)(nil)).Elem()
	kwMapType = reflect.TypeOf(map[string]any(nil))
)

// Func builds a guard.Func around fn using reflection. The parameter list
// names fn's arguments in order; reflection supplies everything else. The
// shape rules:
//
//   - fn may take a leading context.Context, passed through from the call;
//   - a declared variadic parameter maps onto fn's Go variadic;
//   - a declared keyword catch-all maps onto a trailing map[string]any;
//   - fn may return nothing, a value, an error, or (value, error).
//
// Missing arguments are filled from declared defaults; an argument with
// neither a value nor a default fails the call. A keyword argument naming
// no declared parameter fails with UnknownParameterError unless a keyword
// catch-all collects it. Shape mismatches between fn and the declared
// list are ConfigurationErrors, reported once at bind time.
func Func(name string, fn any, declared model.ParamList) (guard.Func, error) {
	if err := declared.Validate(name); err != nil {
		return nil, err
	}

	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return nil, &model.ConfigurationError{Func: name, Reason: "not a function"}
	}
	t := v.Type()

	in := t.NumIn()
	takesCtx := in > 0 && t.In(0) == ctxType
	if takesCtx {
		in--
	}

	variadic := -1
	keyword := -1
	for i, p := range declared {
		switch p.Kind {
		case model.KindVariadic:
			variadic = i
		case model.KindKeywordCatchAll:
			keyword = i
		}
	}

	if keyword >= 0 {
		last := t.NumIn() - 1
		if t.IsVariadic() || last < 0 || t.In(last) != kwMapType {
			return nil, &model.ConfigurationError{Func: name, Reason: "keyword catch-all requires a trailing map[string]any argument"}
		}
	}
	if variadic >= 0 && !t.IsVariadic() {
		return nil, &model.ConfigurationError{Func: name, Reason: "variadic parameter requires a variadic function"}
	}
	if variadic < 0 && t.IsVariadic() {
		return nil, &model.ConfigurationError{Func: name, Reason: "variadic function requires a variadic parameter"}
	}
	if in != len(declared) {
		return nil, &model.ConfigurationError{
			Func:   name,
			Reason: fmt.Sprintf("function takes %d arguments, %d parameters declared", in, len(declared)),
		}
	}

	onlyErr := false
	switch t.NumOut() {
	case 0:
	case 1:
		onlyErr = t.Out(0) == errType
	case 2:
		if !t.Out(1).Implements(errType) {
			return nil, &model.ConfigurationError{Func: name, Reason: "second return value must be error"}
		}
	default:
		return nil, &model.ConfigurationError{Func: name, Reason: "too many return values"}
	}

	return func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
		slots, err := assign(name, declared, variadic, keyword, args, kwargs)
		if err != nil {
			return nil, err
		}

		offset := 0
		if takesCtx {
			offset = 1
		}
		callIn := make([]reflect.Value, 0, offset+len(slots))
		if takesCtx {
			if ctx == nil {
				ctx = context.Background()
			}
			callIn = append(callIn, reflect.ValueOf(ctx))
		}
		for i, s := range slots {
			argIdx := offset + i
			if i == variadic {
				elem := t.In(t.NumIn() - 1).Elem()
				for _, item := range s.extra {
					rv, err := coerce(name, declared[i].Name, item, elem)
					if err != nil {
						return nil, err
					}
					callIn = append(callIn, rv)
				}
				continue
			}
			want := t.In(argIdx)
			rv, err := coerce(name, declared[i].Name, s.value, want)
			if err != nil {
				return nil, err
			}
			callIn = append(callIn, rv)
		}

		out := v.Call(callIn)
		return results(out, onlyErr)
	}, nil
}

type slot struct {
	value any
	extra []any // variadic overflow
}

// assign maps positional and keyword arguments onto declared parameter
// slots, applying defaults for anything left unfilled.
func assign(fn string, declared model.ParamList, variadic, keyword int, args []any, kwargs map[string]any) ([]slot, error) {
	slots := make([]slot, len(declared))
	filled := make([]bool, len(declared))

	normal := len(declared)
	if idx := declared.CatchAllIndex(); idx < normal {
		normal = idx
	}

	for i, a := range args {
		if i < normal {
			slots[i].value = a
			filled[i] = true
			continue
		}
		if variadic >= 0 {
			slots[variadic].extra = append(slots[variadic].extra, a)
			continue
		}
		return nil, fmt.Errorf("`%s` takes %d positional arguments but %d were given", fn, normal, len(args))
	}
	if variadic >= 0 {
		filled[variadic] = true
	}

	var collected map[string]any
	if keyword >= 0 {
		collected = make(map[string]any)
		slots[keyword].value = collected
		filled[keyword] = true
	}

	for name, value := range kwargs {
		idx, ok := declared.Index(name)
		if !ok || declared[idx].Kind != model.KindPositionalOrKeyword {
			if collected != nil {
				collected[name] = value
				continue
			}
			return nil, &model.UnknownParameterError{Func: fn, Name: name}
		}
		if filled[idx] {
			return nil, fmt.Errorf("`%s` got multiple values for argument '%s'", fn, name)
		}
		slots[idx].value = value
		filled[idx] = true
	}

	for i, p := range declared {
		if filled[i] {
			continue
		}
		if !p.HasDefault {
			return nil, fmt.Errorf("`%s` missing required argument '%s'", fn, p.Name)
		}
		if p.IsLimit() {
			// Hidden boundary slot; the guard refills it with nil and the
			// zero value stands in when it did not.
			slots[i].value = nil
		} else {
			slots[i].value = p.Default
		}
		filled[i] = true
	}

	return slots, nil
}

func coerce(fn, param string, value any, want reflect.Type) (reflect.Value, error) {
	if value == nil {
		return reflect.Zero(want), nil
	}
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(want) {
		return rv, nil
	}
	if rv.Type().ConvertibleTo(want) {
		return rv.Convert(want), nil
	}
	return reflect.Value{}, fmt.Errorf("`%s` argument '%s': cannot use %T as %s", fn, param, value, want)
}

func results(out []reflect.Value, onlyErr bool) (any, error) {
	switch len(out) {
	case 0:
		return nil, nil
	case 1:
		if onlyErr {
			if out[0].IsNil() {
				return nil, nil
			}
			return nil, out[0].Interface().(error)
		}
		return out[0].Interface(), nil
	default:
		var err error
		if !out[1].IsNil() {
			err = out[1].Interface().(error)
		}
		return out[0].Interface(), err
	}
}
