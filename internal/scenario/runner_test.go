package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testSpec = `
functions:
  - name: diff
    params:
      - name: left
      - name: right
      - name: context
        default: 3
`

const testScenario = `
name: diff calling conventions
spec: spec.yaml
cases:
  - function: diff
    args: [foo, bar]
    expect: ok
  - function: diff
    kwargs: {left: foo, right: bar}
    expect: violation
  - function: diff
    args: [foo, bar]
    kwargs: {context: 5}
    expect: ok
`

func writeFiles(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "spec.yaml"), []byte(testSpec), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	path := filepath.Join(dir, "cases.yaml")
	if err := os.WriteFile(path, []byte(testScenario), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	return path
}

func TestLoadAndRunAllPass(t *testing.T) {
	path := writeFiles(t)
	r, err := LoadAndRun(path, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.Failed != 0 {
		t.Errorf("failed cases: %+v", r.Cases)
	}
	if r.Passed != 3 {
		t.Errorf("passed = %d, want 3", r.Passed)
	}
	if r.Cases[1].Actual != ExpectViolation {
		t.Errorf("case 2 actual = %s", r.Cases[1].Actual)
	}
	if !strings.Contains(r.Cases[1].Message, "positional only") {
		t.Errorf("violation message missing: %q", r.Cases[1].Message)
	}
}

func TestRunDetectsWrongExpectation(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "spec.yaml"), []byte(testSpec), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	bad := `
name: wrong
spec: spec.yaml
cases:
  - function: diff
    kwargs: {left: foo}
    expect: ok
`
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte(bad), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	r, err := LoadAndRun(path, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.Failed != 1 {
		t.Errorf("failed = %d, want 1", r.Failed)
	}
}

func TestRunUnknownFunction(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "spec.yaml"), []byte(testSpec), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	body := `
name: ghost
spec: spec.yaml
cases:
  - function: ghost
    expect: ok
`
	path := filepath.Join(dir, "ghost.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	r, err := LoadAndRun(path, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if r.Cases[0].Actual != "error" || r.Cases[0].Passed {
		t.Errorf("case = %+v", r.Cases[0])
	}
}

func TestScenarioWithoutSpec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nospec.yaml")
	if err := os.WriteFile(path, []byte("name: x\ncases: []\n"), 0o644); err != nil {
		t.Fatalf("write scenario: %v", err)
	}
	if _, err := LoadAndRun(path, ""); err == nil {
		t.Error("expected error when no spec is referenced")
	}
}

func TestFormatText(t *testing.T) {
	path := writeFiles(t)
	r, err := LoadAndRun(path, "")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	out := FormatText([]*RunResult{r})
	if !strings.Contains(out, "PASS  diff calling conventions (3/3)") {
		t.Errorf("text output:\n%s", out)
	}
	if !strings.Contains(out, "3 of 3 cases passed.") {
		t.Errorf("summary missing:\n%s", out)
	}
}
