// Package guard wraps a dynamically dispatched callable and rejects
// invocations that pass positional-only parameters by keyword.
package guard

import (
	"context"
	"fmt"
	"sort"

	"github.com/arpegio/posonly/internal/boundary"
	"github.com/arpegio/posonly/internal/model"
	"github.com/arpegio/posonly/internal/sig"
)

// Func is the dynamic call form the guard forwards to: ordered positional
// arguments plus keyword arguments by name.
type Func func(ctx context.Context, args []any, kwargs map[string]any) (any, error)

// Guard owns a callable, its resolved boundary, and the rewritten
// signature string. It is immutable after New and safe for concurrent
// calls as long as the inner callable is.
type Guard struct {
	name      string
	fn        Func
	params    model.ParamList
	k         int
	limitIdx  int
	signature string
}

// New resolves the positional-only boundary for the declared parameter
// list and returns a guard around fn. fn may be nil when the guard is
// used only for classification (Check) and introspection.
func New(name string, fn Func, declared model.ParamList, hint boundary.Hint) (*Guard, error) {
	if name == "" {
		return nil, &model.ConfigurationError{Reason: "callable without a name"}
	}
	res, err := boundary.Resolve(name, declared, hint)
	if err != nil {
		return nil, err
	}
	return &Guard{
		name:      name,
		fn:        fn,
		params:    res.Params,
		k:         res.K,
		limitIdx:  res.LimitIndex,
		signature: sig.Render(name, res.Params, res.K),
	}, nil
}

// Name returns the wrapped callable's name.
func (g *Guard) Name() string { return g.name }

// Boundary returns k: parameters at positions [0, k) are positional-only.
func (g *Guard) Boundary() int { return g.k }

// Signature returns the rewritten signature string, cached at wrap time.
func (g *Guard) Signature() string { return g.signature }

// Params returns a copy of the advertised parameter list.
func (g *Guard) Params() model.ParamList {
	out := make(model.ParamList, len(g.params))
	copy(out, g.params)
	return out
}

// Check classifies kwargs against the boundary without invoking anything.
// It returns nil when the call would be forwarded.
func (g *Guard) Check(kwargs map[string]any) *model.ViolationError {
	var violations []model.Violation
	for name, value := range kwargs {
		idx, ok := g.params.Index(name)
		if !ok || idx >= g.k {
			continue
		}
		violations = append(violations, model.Violation{Name: name, Value: value, Position: idx})
	}
	if len(violations) == 0 {
		return nil
	}
	sort.Slice(violations, func(i, j int) bool {
		return violations[i].Position < violations[j].Position
	})
	return &model.ViolationError{Func: g.name, Violations: violations}
}

// Unknown returns the kwarg names that match no declared parameter, in no
// particular order. It returns nil when the callable has a keyword
// catch-all; those names are collected, not rejected.
func (g *Guard) Unknown(kwargs map[string]any) []string {
	if g.params.HasKeywordCatchAll() {
		return nil
	}
	var names []string
	for name := range kwargs {
		if _, ok := g.params.Index(name); !ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// Call validates the invocation and forwards it to the wrapped callable
// unchanged. On a boundary violation the callable is never invoked.
// Unknown kwarg names pass through to the callable's native error path.
func (g *Guard) Call(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
	if err := g.Check(kwargs); err != nil {
		return nil, err
	}
	if g.fn == nil {
		return nil, fmt.Errorf("`%s` has no implementation bound", g.name)
	}
	if g.limitIdx >= 0 && len(args) >= g.limitIdx {
		// The declared list carried a hidden limit-marked parameter; keep
		// the inner callable's arity by refilling its slot.
		filled := make([]any, 0, len(args)+1)
		filled = append(filled, args[:g.limitIdx]...)
		filled = append(filled, nil)
		filled = append(filled, args[g.limitIdx:]...)
		args = filled
	}
	return g.fn(ctx, args, kwargs)
}
