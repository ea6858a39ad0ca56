package server

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arpegio/posonly/internal/guard"
	"github.com/arpegio/posonly/internal/model"
)

// --- Input/Output types ---

// DescribeInput selects which functions to describe.
type DescribeInput struct {
	Function string `json:"function,omitempty" jsonschema:"function name; empty describes every declared function"`
}

// FunctionInfo is one described function.
type FunctionInfo struct {
	Name       string `json:"name"`
	Signature  string `json:"signature"`
	Positional int    `json:"positional"`
}

// DescribeOutput lists rendered signatures.
type DescribeOutput struct {
	Functions []FunctionInfo `json:"functions,omitempty"`
	Error     string         `json:"error,omitempty"`
}

// CheckInput is a dry-run invocation.
type CheckInput struct {
	Function string         `json:"function" jsonschema:"function to check the call against"`
	Args     []any          `json:"args,omitempty" jsonschema:"positional arguments"`
	Kwargs   map[string]any `json:"kwargs,omitempty" jsonschema:"keyword arguments"`
}

// CheckViolation is one rejected keyword argument.
type CheckViolation struct {
	Name     string `json:"name"`
	Value    string `json:"value"`
	Position int    `json:"position"`
}

// CheckOutput reports whether the call would be forwarded.
type CheckOutput struct {
	OK         bool             `json:"ok"`
	Decision   string           `json:"decision,omitempty"`
	Message    string           `json:"message,omitempty"`
	Violations []CheckViolation `json:"violations,omitempty"`
	Unknown    []string         `json:"unknown,omitempty"`
}

// ResolveInput names the function to classify.
type ResolveInput struct {
	Function string `json:"function" jsonschema:"function whose parameters to classify"`
}

// ParamInfo classifies one advertised parameter.
type ParamInfo struct {
	Name           string `json:"name"`
	Position       int    `json:"position"`
	Kind           string `json:"kind"`
	PositionalOnly bool   `json:"positional_only"`
	Default        string `json:"default,omitempty"`
}

// ResolveOutput is the full parameter classification of one function.
type ResolveOutput struct {
	Function   string      `json:"function"`
	Signature  string      `json:"signature"`
	Positional int         `json:"positional"`
	Params     []ParamInfo `json:"params,omitempty"`
	Error      string      `json:"error,omitempty"`
}

// --- Handlers ---

func (s *Server) handleDescribe(ctx context.Context, req *mcpsdk.CallToolRequest, input DescribeInput) (*mcpsdk.CallToolResult, DescribeOutput, error) {
	var out DescribeOutput

	if input.Function != "" {
		g, ok := s.lookup(input.Function)
		if !ok {
			out.Error = fmt.Sprintf("function `%s` is not declared in the spec", input.Function)
			return &mcpsdk.CallToolResult{IsError: true}, out, nil
		}
		out.Functions = []FunctionInfo{functionInfo(g)}
		return nil, out, nil
	}

	for _, g := range s.functions() {
		out.Functions = append(out.Functions, functionInfo(g))
	}
	return nil, out, nil
}

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	var out CheckOutput

	g, ok := s.lookup(input.Function)
	if !ok {
		out.Message = fmt.Sprintf("function `%s` is not declared in the spec", input.Function)
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}

	verr := g.Check(input.Kwargs)
	s.recordDecision(ctx, g, verr)

	out.Unknown = g.Unknown(input.Kwargs)
	if verr != nil {
		out.Decision = "rejected"
		out.Message = verr.Error()
		for _, v := range verr.Violations {
			out.Violations = append(out.Violations, CheckViolation{
				Name:     v.Name,
				Value:    model.Repr(v.Value),
				Position: v.Position,
			})
		}
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}

	out.OK = true
	out.Decision = "forwarded"
	return nil, out, nil
}

func (s *Server) handleResolve(ctx context.Context, req *mcpsdk.CallToolRequest, input ResolveInput) (*mcpsdk.CallToolResult, ResolveOutput, error) {
	var out ResolveOutput

	g, ok := s.lookup(input.Function)
	if !ok {
		out.Error = fmt.Sprintf("function `%s` is not declared in the spec", input.Function)
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}

	out.Function = g.Name()
	out.Signature = g.Signature()
	out.Positional = g.Boundary()
	for i, p := range g.Params() {
		info := ParamInfo{
			Name:           p.Name,
			Position:       i,
			Kind:           p.Kind.String(),
			PositionalOnly: i < g.Boundary(),
		}
		if p.HasDefault {
			info.Default = model.Repr(p.Default)
		}
		out.Params = append(out.Params, info)
	}
	return nil, out, nil
}

func functionInfo(g *guard.Guard) FunctionInfo {
	return FunctionInfo{
		Name:       g.Name(),
		Signature:  g.Signature(),
		Positional: g.Boundary(),
	}
}

// registerTools adds the posonly tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "posonly_describe",
		Description: "Render the signatures declared by the interface spec, with the positional-only marker at the resolved boundary.",
	}, s.handleDescribe)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "posonly_check",
		Description: "Dry-run a call against the interface spec. Reports whether the guard would forward it or reject it, with the exact violation message.",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "posonly_resolve",
		Description: "Classify every parameter of a declared function: position, kind, default, and whether it is positional-only.",
	}, s.handleResolve)
}
