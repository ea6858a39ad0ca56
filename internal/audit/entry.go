package audit

import "github.com/google/uuid"

// Decision values recorded per entry.
const (
	DecisionForwarded = "forwarded"
	DecisionRejected  = "rejected"
)

// EntryViolation is one positional-only parameter used as a keyword.
// Position is the 0-based declared ordinal. Argument values are not
// recorded; they may be sensitive and the names and positions are enough
// to replay the decision.
type EntryViolation struct {
	Name     string `json:"name"`
	Position int    `json:"position"`
}

// Entry is one line in the hash-chained JSONL enforcement trail. All
// fields are structs and scalars (no map[string]any) so json.Marshal has
// deterministic field order and the hash chain is reproducible.
type Entry struct {
	Timestamp  string           `json:"ts"`
	TraceID    string           `json:"trace_id"`
	Function   string           `json:"function"`
	Decision   string           `json:"decision"`
	Violations []EntryViolation `json:"violations,omitempty"`
	Signature  string           `json:"signature,omitempty"`
	SpecHash   string           `json:"spec_hash,omitempty"`
	PrevHash   string           `json:"prev_hash"`
}

// NewTraceID returns a fresh trace identifier shared by every entry of
// one enforcement session.
func NewTraceID() string {
	return "t-" + uuid.NewString()
}
