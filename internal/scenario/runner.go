package scenario

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arpegio/posonly/internal/guard"
	"github.com/arpegio/posonly/internal/specfile"
)

const (
	// ExpectOK means the guard forwards the call.
	ExpectOK = "ok"
	// ExpectViolation means the guard rejects the call.
	ExpectViolation = "violation"
)

// Run classifies every case against the given guards. Cases are
// independent; no callable is ever invoked.
func Run(s *Scenario, guards map[string]*guard.Guard) *RunResult {
	result := &RunResult{
		Name:  s.Name,
		Total: len(s.Cases),
	}

	for i, c := range s.Cases {
		cr := CaseResult{
			Index:    i + 1,
			Function: c.Function,
			Expected: strings.ToLower(c.Expect),
		}

		g, ok := guards[c.Function]
		if !ok {
			cr.Actual = "error"
			cr.Message = fmt.Sprintf("function `%s` is not declared in the spec", c.Function)
		} else if verr := g.Check(c.Kwargs); verr != nil {
			cr.Actual = ExpectViolation
			cr.Message = verr.Error()
		} else {
			cr.Actual = ExpectOK
		}

		if cr.Actual == cr.Expected {
			cr.Passed = true
			result.Passed++
		} else {
			result.Failed++
		}
		result.Cases = append(result.Cases, cr)
	}

	return result
}

// LoadAndRun loads a scenario file, resolves its interface spec, and runs
// all cases. specPath overrides the spec referenced by the scenario; when
// both are empty the scenario is rejected.
func LoadAndRun(path, specPath string) (*RunResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario %s: %w", path, err)
	}

	var s Scenario
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}

	resolved := specPath
	if resolved == "" {
		if s.Spec == "" {
			return nil, fmt.Errorf("scenario %s references no spec and none was given", path)
		}
		resolved = s.Spec
		if !filepath.IsAbs(resolved) {
			resolved = filepath.Join(filepath.Dir(path), resolved)
		}
	}

	f, err := specfile.Load(resolved)
	if err != nil {
		return nil, fmt.Errorf("load spec: %w", err)
	}
	list, err := f.Guards()
	if err != nil {
		return nil, fmt.Errorf("resolve spec: %w", err)
	}
	guards := make(map[string]*guard.Guard, len(list))
	for _, g := range list {
		guards[g.Name()] = g
	}

	result := Run(&s, guards)
	result.File = path
	return result, nil
}
