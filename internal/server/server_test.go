package server

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arpegio/posonly/internal/audit"
)

const testSpec = `
functions:
  - name: diff
    params:
      - name: left
      - name: right
      - name: context
        default: 3
  - name: join
    positional: 1
    params:
      - name: sep
      - name: parts
        kind: variadic
`

func writeTestSpec(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "spec.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write spec: %v", err)
	}
	return path
}

func newTestServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	cfg := Config{
		SpecPath:     writeTestSpec(t, dir, testSpec),
		AuditLogPath: filepath.Join(dir, "trail.jsonl"),
		HistoryPath:  filepath.Join(dir, "history.db"),
	}
	s, err := New(cfg)
	if err != nil {
		t.Fatalf("failed to create server: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDescribeAll(t *testing.T) {
	s := newTestServer(t)

	result, out, err := s.handleDescribe(context.Background(), &mcpsdk.CallToolRequest{}, DescribeInput{})
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatal("unexpected error result")
	}
	if len(out.Functions) != 2 {
		t.Fatalf("functions = %d", len(out.Functions))
	}
	if out.Functions[0].Signature != "diff(left, right, /, context=3)" {
		t.Errorf("diff signature = %q", out.Functions[0].Signature)
	}
	if out.Functions[1].Signature != "join(sep, /, *parts)" {
		t.Errorf("join signature = %q", out.Functions[1].Signature)
	}
}

func TestDescribeUnknown(t *testing.T) {
	s := newTestServer(t)
	result, out, err := s.handleDescribe(context.Background(), &mcpsdk.CallToolRequest{}, DescribeInput{Function: "ghost"})
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected IsError result")
	}
	if out.Error == "" {
		t.Error("expected error message")
	}
}

func TestCheckForwardsAndRejects(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	result, out, err := s.handleCheck(ctx, &mcpsdk.CallToolRequest{}, CheckInput{
		Function: "diff",
		Args:     []any{"foo", "bar"},
		Kwargs:   map[string]any{"context": 5},
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatal("expected forward")
	}
	if !out.OK || out.Decision != "forwarded" {
		t.Errorf("output = %+v", out)
	}

	result, out, err = s.handleCheck(ctx, &mcpsdk.CallToolRequest{}, CheckInput{
		Function: "diff",
		Kwargs:   map[string]any{"left": "foo", "right": "bar"},
	})
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if result == nil || !result.IsError {
		t.Fatal("expected rejection")
	}
	if out.OK || out.Decision != "rejected" {
		t.Errorf("output = %+v", out)
	}
	if len(out.Violations) != 2 || out.Violations[0].Name != "left" {
		t.Errorf("violations = %+v", out.Violations)
	}
	if !strings.Contains(out.Message, "should be in 1st position") {
		t.Errorf("message = %q", out.Message)
	}
}

func TestCheckRecordsTrail(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()

	s.handleCheck(ctx, &mcpsdk.CallToolRequest{}, CheckInput{Function: "diff", Args: []any{"a", "b"}})
	s.handleCheck(ctx, &mcpsdk.CallToolRequest{}, CheckInput{Function: "diff", Kwargs: map[string]any{"left": "x"}})

	result := audit.Verify(s.cfg.AuditLogPath)
	if !result.Valid || result.Lines != 2 {
		t.Fatalf("trail = %+v", result)
	}

	summary, err := s.callStore.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}
	if len(summary) != 1 || summary[0].Calls != 2 || summary[0].Rejected != 1 {
		t.Errorf("summary = %+v", summary)
	}
}

func TestResolveClassifiesParams(t *testing.T) {
	s := newTestServer(t)
	result, out, err := s.handleResolve(context.Background(), &mcpsdk.CallToolRequest{}, ResolveInput{Function: "diff"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if result != nil && result.IsError {
		t.Fatal("unexpected error result")
	}
	if out.Positional != 2 || len(out.Params) != 3 {
		t.Fatalf("output = %+v", out)
	}
	if !out.Params[0].PositionalOnly || out.Params[2].PositionalOnly {
		t.Errorf("classification = %+v", out.Params)
	}
	if out.Params[2].Default != "3" {
		t.Errorf("default = %q", out.Params[2].Default)
	}
}

func TestReloadSwapsBoundary(t *testing.T) {
	s := newTestServer(t)

	updated := strings.Replace(testSpec, "  - name: diff\n", "  - name: diff\n    positional: 3\n", 1)
	if err := os.WriteFile(s.cfg.SpecPath, []byte(updated), 0o644); err != nil {
		t.Fatalf("rewrite spec: %v", err)
	}
	if err := s.Reload(); err != nil {
		t.Fatalf("reload: %v", err)
	}

	g, ok := s.lookup("diff")
	if !ok {
		t.Fatal("diff missing after reload")
	}
	if g.Boundary() != 3 {
		t.Errorf("boundary after reload = %d, want 3", g.Boundary())
	}
}

func TestReloadKeepsGuardsOnBadSpec(t *testing.T) {
	s := newTestServer(t)
	if err := os.WriteFile(s.cfg.SpecPath, []byte("functions: []\n"), 0o644); err != nil {
		t.Fatalf("rewrite spec: %v", err)
	}
	if err := s.Reload(); err == nil {
		t.Fatal("expected reload error for empty spec")
	}
	if _, ok := s.lookup("diff"); !ok {
		t.Error("previous guards should keep serving after a failed reload")
	}
}
