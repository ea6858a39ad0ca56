// Package server runs the posonly enforcement surface as an MCP server
// over stdio, with hot-reload of the interface spec.
package server

import (
	"context"
	"fmt"
	"sync"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/arpegio/posonly/internal/audit"
	"github.com/arpegio/posonly/internal/guard"
	"github.com/arpegio/posonly/internal/history"
	"github.com/arpegio/posonly/internal/model"
	"github.com/arpegio/posonly/internal/specfile"
)

// Config holds MCP server configuration.
type Config struct {
	SpecPath     string
	AuditLogPath string
	HistoryPath  string
}

// Server exposes the calling-convention surface of an interface spec to
// agent tooling.
type Server struct {
	mu       sync.RWMutex
	guards   map[string]*guard.Guard
	order    []string
	specHash string

	auditLog  *audit.Log
	callStore *history.Store
	traceID   string
	cfg       Config

	mcpServer *mcpsdk.Server
}

// New loads the interface spec and builds the server with its tools.
func New(cfg Config) (*Server, error) {
	if cfg.SpecPath == "" {
		return nil, fmt.Errorf("spec path is required")
	}

	s := &Server{
		cfg:     cfg,
		traceID: audit.NewTraceID(),
	}
	if err := s.Reload(); err != nil {
		return nil, err
	}

	if cfg.AuditLogPath != "" {
		log, err := audit.Open(cfg.AuditLogPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open audit trail: %w", err)
		}
		s.auditLog = log
	}
	if cfg.HistoryPath != "" {
		store, err := history.Open(cfg.HistoryPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open call history: %w", err)
		}
		s.callStore = store
	}

	s.mcpServer = mcpsdk.NewServer(
		&mcpsdk.Implementation{
			Name:    "posonly",
			Version: "0.1.0",
		},
		nil,
	)
	s.registerTools()
	return s, nil
}

// Run starts the MCP server on stdio transport. Blocks until ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcpsdk.StdioTransport{})
}

// Close releases the audit trail and call history.
func (s *Server) Close() error {
	var firstErr error
	if s.auditLog != nil {
		firstErr = s.auditLog.Close()
	}
	if s.callStore != nil {
		if err := s.callStore.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Reload re-reads the interface spec and swaps the resolved guards. A
// spec that fails to load leaves the previous guards serving.
func (s *Server) Reload() error {
	f, hash, err := specfile.LoadWithHash(s.cfg.SpecPath)
	if err != nil {
		return err
	}
	list, err := f.Guards()
	if err != nil {
		return err
	}

	guards := make(map[string]*guard.Guard, len(list))
	order := make([]string, 0, len(list))
	for _, g := range list {
		guards[g.Name()] = g
		order = append(order, g.Name())
	}

	s.mu.Lock()
	s.guards = guards
	s.order = order
	s.specHash = hash
	s.mu.Unlock()
	return nil
}

func (s *Server) lookup(name string) (*guard.Guard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.guards[name]
	return g, ok
}

func (s *Server) functions() []*guard.Guard {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*guard.Guard, 0, len(s.order))
	for _, name := range s.order {
		out = append(out, s.guards[name])
	}
	return out
}

// recordDecision writes one check outcome to the audit trail and call
// history, when configured.
func (s *Server) recordDecision(ctx context.Context, g *guard.Guard, verr *model.ViolationError) {
	decision := audit.DecisionForwarded
	var violations []audit.EntryViolation
	if verr != nil {
		decision = audit.DecisionRejected
		for _, v := range verr.Violations {
			violations = append(violations, audit.EntryViolation{Name: v.Name, Position: v.Position})
		}
	}

	s.mu.RLock()
	specHash := s.specHash
	s.mu.RUnlock()

	if s.auditLog != nil {
		s.auditLog.Record(audit.Entry{
			Timestamp:  time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
			TraceID:    s.traceID,
			Function:   g.Name(),
			Decision:   decision,
			Violations: violations,
			Signature:  g.Signature(),
			SpecHash:   specHash,
		})
	}
	if s.callStore != nil {
		s.callStore.Record(ctx, g.Name(), decision, len(violations))
	}
}
