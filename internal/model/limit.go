package model

// LimitMarker is the type of the boundary sentinel. It carries no state;
// only the identity of the Limit singleton matters.
type LimitMarker struct {
	name string
}

// String identifies the marker in rendered output and debug dumps.
func (m *LimitMarker) String() string { return m.name }

// Limit is the sentinel used as a parameter default to mark where the
// positional-only boundary ends. Detection compares pointer identity, so
// a separately constructed LimitMarker never matches.
var Limit = &LimitMarker{name: "posonly.Limit"}
