package posonly

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func diffParams() []Parameter {
	return []Parameter{
		Param("left"),
		Param("right"),
		ParamDefault("context", 3),
	}
}

func wrapDiff(t *testing.T, calls *int, opts ...Option) *Wrapped {
	t.Helper()
	impl := func(left, right string, context int) string {
		*calls++
		return fmt.Sprintf("diff(%s, %s, %d)", left, right, context)
	}
	w, err := WrapFunc("diff", impl, diffParams(), opts...)
	if err != nil {
		t.Fatalf("failed to wrap diff: %v", err)
	}
	return w
}

func TestWrapFuncForwards(t *testing.T) {
	calls := 0
	w := wrapDiff(t, &calls)

	got, err := w.Call(context.Background(), []any{"foo", "bar"}, map[string]any{"context": 5})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if got != "diff(foo, bar, 5)" {
		t.Errorf("result = %v", got)
	}
	if calls != 1 {
		t.Errorf("calls = %d", calls)
	}
}

func TestViolationNeverInvokes(t *testing.T) {
	calls := 0
	w := wrapDiff(t, &calls)

	_, err := w.Call(context.Background(), nil, map[string]any{"right": "bar", "left": "foo"})
	var verr *ViolationError
	if !errors.As(err, &verr) {
		t.Fatalf("got %v, want ViolationError", err)
	}
	if calls != 0 {
		t.Error("callable ran despite the violation")
	}
	want := "The following parameters of `diff` are positional only.\n" +
		"They were used as keyword arguments:\n" +
		" - 'left' ('foo') should be in 1st position\n" +
		" - 'right' ('bar') should be in 2nd position"
	if verr.Error() != want {
		t.Errorf("message:\n%s", verr.Error())
	}
}

func TestSignatureBoundaries(t *testing.T) {
	calls := 0
	auto := wrapDiff(t, &calls)
	if auto.Signature() != "diff(left, right, /, context=3)" {
		t.Errorf("auto signature = %q", auto.Signature())
	}

	all := wrapDiff(t, &calls, WithPositional(3))
	if all.Signature() != "diff(left, right, context, /)" {
		t.Errorf("k=3 signature = %q", all.Signature())
	}

	one := wrapDiff(t, &calls, WithPositional(1))
	if one.Signature() != "diff(left, /, right, context=3)" {
		t.Errorf("k=1 signature = %q", one.Signature())
	}
}

func TestWithPositionalOutOfRange(t *testing.T) {
	impl := func(left, right string, context int) {}
	var cfgErr *ConfigurationError
	if _, err := WrapFunc("diff", impl, diffParams(), WithPositional(4)); !errors.As(err, &cfgErr) {
		t.Errorf("got %v, want ConfigurationError", err)
	}
	if _, err := WrapFunc("diff", impl, diffParams(), WithPositional(-1)); !errors.As(err, &cfgErr) {
		t.Errorf("got %v, want ConfigurationError", err)
	}
}

func TestLimitSentinel(t *testing.T) {
	impl := func(old, new string, end any, context int) string {
		return fmt.Sprintf("%s/%s/%d", old, new, context)
	}
	params := []Parameter{
		Param("old"),
		Param("new"),
		ParamDefault("end", Limit),
		ParamDefault("context", 3),
	}
	w, err := WrapFunc("diff", impl, params)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if w.Signature() != "diff(old, new, /, context=3)" {
		t.Errorf("signature = %q", w.Signature())
	}
	if w.Boundary() != 2 {
		t.Errorf("boundary = %d", w.Boundary())
	}

	got, err := w.Call(context.Background(), []any{"a", "b"}, map[string]any{"context": 7})
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if got != "a/b/7" {
		t.Errorf("result = %v", got)
	}

	if _, err := w.Call(context.Background(), nil, map[string]any{"new": "x"}); err == nil {
		t.Error("expected violation for keyword use of new")
	}
}

func TestUnknownKeywordFromBinder(t *testing.T) {
	calls := 0
	w := wrapDiff(t, &calls)
	_, err := w.Call(context.Background(), []any{"a", "b"}, map[string]any{"bogus": 1})
	var unknown *UnknownParameterError
	if !errors.As(err, &unknown) {
		t.Fatalf("got %v, want UnknownParameterError", err)
	}
}

func TestRegistryDispatch(t *testing.T) {
	calls := 0
	r := NewRegistry()
	if err := r.Register(wrapDiff(t, &calls)); err != nil {
		t.Fatalf("register: %v", err)
	}

	got, err := r.Dispatch(context.Background(), "diff", []any{"x", "y"}, nil)
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if got != "diff(x, y, 3)" {
		t.Errorf("result = %v", got)
	}
}

func TestWrapRawFunc(t *testing.T) {
	inner := func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
		return len(args) + len(kwargs), nil
	}
	w, err := Wrap("tally", inner, []Parameter{Param("a"), Param("b")})
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	if w.Signature() != "tally(a, b, /)" {
		t.Errorf("signature = %q", w.Signature())
	}
	got, err := w.Call(context.Background(), []any{1, 2}, nil)
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if got != 2 {
		t.Errorf("result = %v", got)
	}
}
