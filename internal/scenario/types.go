// Package scenario runs YAML call cases against an interface spec and
// reports which invocations the guard would forward or reject.
package scenario

// Case is one call under test.
type Case struct {
	Function string         `yaml:"function"`
	Args     []any          `yaml:"args,omitempty"`
	Kwargs   map[string]any `yaml:"kwargs,omitempty"`
	// Expect is "ok" or "violation".
	Expect string `yaml:"expect"`
}

// Scenario is a named collection of call cases. Spec points at the
// interface spec file the cases run against, relative to the scenario
// file.
type Scenario struct {
	Name  string `yaml:"name"`
	Spec  string `yaml:"spec,omitempty"`
	Cases []Case `yaml:"cases"`
}

// CaseResult is the outcome of classifying one case.
type CaseResult struct {
	Index    int    `json:"index"`
	Passed   bool   `json:"passed"`
	Function string `json:"function"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Message  string `json:"message,omitempty"`
}

// RunResult is the outcome of one scenario file.
type RunResult struct {
	File   string       `json:"file"`
	Name   string       `json:"name"`
	Total  int          `json:"total"`
	Passed int          `json:"passed"`
	Failed int          `json:"failed"`
	Cases  []CaseResult `json:"cases"`
}
