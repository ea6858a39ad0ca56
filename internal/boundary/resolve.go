// Package boundary computes how many leading parameters of a callable are
// positional-only.
package boundary

import (
	"fmt"

	"github.com/arpegio/posonly/internal/model"
)

// Hint optionally fixes the boundary to an explicit parameter count.
type Hint struct {
	set bool
	n   int
}

// Explicit returns a hint pinning the boundary to n parameters.
func Explicit(n int) Hint { return Hint{set: true, n: n} }

// Auto returns the zero hint: the boundary is resolved from the limit
// marker or, failing that, from the first defaulted parameter.
func Auto() Hint { return Hint{} }

// Resolution is the outcome of resolving a callable's boundary.
type Resolution struct {
	// Params is the advertised parameter list: the declared list with the
	// limit-marked parameter, if any, removed.
	Params model.ParamList
	// K is the count of leading advertised parameters that are
	// positional-only.
	K int
	// LimitIndex is the declared position of the removed limit-marked
	// parameter, or -1. The call guard refills that slot when forwarding
	// so the inner callable keeps its arity.
	LimitIndex int
}

// Resolve validates the declared parameter list and computes the
// positional-only boundary. Priority: an explicit hint wins, then a
// limit-marked default, then the position of the first defaulted
// parameter; with no defaults at all, every parameter is positional-only.
// The result never extends past the first catch-all parameter.
func Resolve(fn string, declared model.ParamList, hint Hint) (Resolution, error) {
	if err := declared.Validate(fn); err != nil {
		return Resolution{}, err
	}

	limitIdx := -1
	params := make(model.ParamList, 0, len(declared))
	for i, p := range declared {
		if p.IsLimit() {
			if p.Kind != model.KindPositionalOrKeyword {
				return Resolution{}, &model.ConfigurationError{Func: fn, Reason: "limit marker on a catch-all parameter"}
			}
			if limitIdx >= 0 {
				return Resolution{}, &model.ConfigurationError{Func: fn, Reason: "limit marker used more than once"}
			}
			limitIdx = i
			continue
		}
		params = append(params, p)
	}

	clamp := params.CatchAllIndex()

	var k int
	switch {
	case hint.set:
		if hint.n < 0 {
			return Resolution{}, &model.ConfigurationError{Func: fn, Reason: fmt.Sprintf("boundary %d is negative", hint.n)}
		}
		if hint.n > len(params) {
			return Resolution{}, &model.ConfigurationError{
				Func:   fn,
				Reason: fmt.Sprintf("boundary %d exceeds parameter count %d", hint.n, len(params)),
			}
		}
		k = hint.n
	case limitIdx >= 0:
		// Parameters preceding the marker are unchanged by its removal,
		// so the declared index is also the advertised count.
		k = limitIdx
	default:
		k = len(params)
		for i, p := range params {
			if p.HasDefault {
				k = i
				break
			}
		}
	}
	if k > clamp {
		k = clamp
	}

	return Resolution{Params: params, K: k, LimitIndex: limitIdx}, nil
}
