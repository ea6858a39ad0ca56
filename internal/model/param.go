package model

// Kind classifies how a parameter accepts values.
type Kind int

const (
	// KindPositionalOrKeyword is a regular parameter: it can be supplied
	// by position or by name unless it falls inside the boundary.
	KindPositionalOrKeyword Kind = iota
	// KindVariadic collects any surplus positional arguments.
	KindVariadic
	// KindKeywordCatchAll collects keyword arguments that do not match a
	// declared parameter name.
	KindKeywordCatchAll
)

// String returns the spec-file spelling of the kind.
func (k Kind) String() string {
	switch k {
	case KindVariadic:
		return "variadic"
	case KindKeywordCatchAll:
		return "keyword"
	default:
		return "normal"
	}
}

// Parameter describes one declared parameter of a callable. Its ordinal
// position is its index in the ParamList it belongs to.
type Parameter struct {
	Name       string
	Kind       Kind
	Default    any
	HasDefault bool
}

// IsLimit reports whether the parameter's default is the boundary limit
// marker. The comparison is by identity: a distinct marker value that
// merely looks like the limit does not match.
func (p Parameter) IsLimit() bool {
	return p.HasDefault && p.Default == any(Limit)
}

// ParamList is an ordered parameter declaration.
type ParamList []Parameter

// Index returns the ordinal position of the named parameter.
func (ps ParamList) Index(name string) (int, bool) {
	for i, p := range ps {
		if p.Name == name {
			return i, true
		}
	}
	return 0, false
}

// CatchAllIndex returns the position of the first catch-all parameter
// (variadic or keyword), or len(ps) when there is none. Parameters at or
// beyond this position can never be positional-only.
func (ps ParamList) CatchAllIndex() int {
	for i, p := range ps {
		if p.Kind != KindPositionalOrKeyword {
			return i
		}
	}
	return len(ps)
}

// HasKeywordCatchAll reports whether the list declares a keyword catch-all.
func (ps ParamList) HasKeywordCatchAll() bool {
	for _, p := range ps {
		if p.Kind == KindKeywordCatchAll {
			return true
		}
	}
	return false
}

// Validate checks structural rules that hold for every callable:
// unique names, at most one parameter per catch-all kind, catch-alls
// last (variadic before keyword), and no defaults on catch-alls.
func (ps ParamList) Validate(fn string) error {
	seen := make(map[string]struct{}, len(ps))
	variadicAt := -1
	keywordAt := -1
	for i, p := range ps {
		if p.Name == "" {
			return &ConfigurationError{Func: fn, Reason: "parameter without a name"}
		}
		if _, dup := seen[p.Name]; dup {
			return &ConfigurationError{Func: fn, Reason: "duplicate parameter name '" + p.Name + "'"}
		}
		seen[p.Name] = struct{}{}

		switch p.Kind {
		case KindVariadic:
			if variadicAt >= 0 {
				return &ConfigurationError{Func: fn, Reason: "more than one variadic parameter"}
			}
			if keywordAt >= 0 {
				return &ConfigurationError{Func: fn, Reason: "variadic parameter after keyword catch-all"}
			}
			if p.HasDefault {
				return &ConfigurationError{Func: fn, Reason: "variadic parameter '" + p.Name + "' cannot have a default"}
			}
			variadicAt = i
		case KindKeywordCatchAll:
			if keywordAt >= 0 {
				return &ConfigurationError{Func: fn, Reason: "more than one keyword catch-all parameter"}
			}
			if p.HasDefault {
				return &ConfigurationError{Func: fn, Reason: "keyword catch-all '" + p.Name + "' cannot have a default"}
			}
			keywordAt = i
		default:
			if variadicAt >= 0 || keywordAt >= 0 {
				return &ConfigurationError{Func: fn, Reason: "parameter '" + p.Name + "' declared after a catch-all"}
			}
		}
	}
	if keywordAt >= 0 && keywordAt != len(ps)-1 {
		return &ConfigurationError{Func: fn, Reason: "keyword catch-all must be the last parameter"}
	}
	return nil
}
