// Package sig reconstructs declaration-style signature strings that
// advertise a callable's positional-only boundary.
package sig

import (
	"strings"

	"github.com/arpegio/posonly/internal/model"
)

// Marker is the conventional positional-only separator.
const Marker = "/"

// Render produces a signature string for a callable whose first k
// parameters are positional-only, e.g. "diff(left, right, /, context=3)".
// Positional-only parameters render by name alone; the rest carry their
// visible defaults. With k == 0 no marker appears.
func Render(name string, params model.ParamList, k int) string {
	parts := make([]string, 0, len(params)+1)
	for i, p := range params {
		if i == k && k > 0 {
			parts = append(parts, Marker)
		}
		parts = append(parts, renderParam(p, i < k))
	}
	if k > 0 && k >= len(params) {
		parts = append(parts, Marker)
	}

	var b strings.Builder
	b.WriteString(name)
	b.WriteString("(")
	b.WriteString(strings.Join(parts, ", "))
	b.WriteString(")")
	return b.String()
}

func renderParam(p model.Parameter, positionalOnly bool) string {
	switch p.Kind {
	case model.KindVariadic:
		return "*" + p.Name
	case model.KindKeywordCatchAll:
		return "**" + p.Name
	}
	if positionalOnly || !p.HasDefault {
		return p.Name
	}
	return p.Name + "=" + model.Repr(p.Default)
}
