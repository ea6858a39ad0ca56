package model

import (
	"fmt"
	"strings"
)

// ConfigurationError reports an invalid parameter declaration or boundary
// hint. It is returned at wrap time, never during a call.
type ConfigurationError struct {
	Func   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Func == "" {
		return "posonly: " + e.Reason
	}
	return fmt.Sprintf("posonly: invalid configuration for `%s`: %s", e.Func, e.Reason)
}

// UnknownParameterError reports a keyword argument that names no declared
// parameter. It comes from the binding layer, not from the call guard.
type UnknownParameterError struct {
	Func string
	Name string
}

func (e *UnknownParameterError) Error() string {
	return fmt.Sprintf("`%s` got an unexpected keyword argument '%s'", e.Func, e.Name)
}

// Violation records one positional-only parameter that was supplied by
// keyword. Position is the 0-based ordinal the argument should occupy.
type Violation struct {
	Name     string
	Value    any
	Position int
}

// ViolationError is returned when a call supplies positional-only
// parameters as keyword arguments. Violations are ordered ascending by
// their correct ordinal position. The message format is a compatibility
// contract; tooling parses it.
type ViolationError struct {
	Func       string
	Violations []Violation
}

func (e *ViolationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "The following parameters of `%s` are positional only.\n", e.Func)
	b.WriteString("They were used as keyword arguments:")
	for _, v := range e.Violations {
		fmt.Fprintf(&b, "\n - '%s' (%s) should be in %s position",
			v.Name, Repr(v.Value), Ordinal(v.Position+1))
	}
	return b.String()
}
