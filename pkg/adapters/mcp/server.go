package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/turing/internal/presentation/graph"
	"github.com/aretw0/turing/pkg/domain"
	"github.com/aretw0/turing/pkg/runner"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// MachinesURI is the resource listing every loadable machine.
const MachinesURI = "turing://machines"

// RunArgs are the arguments of the run_machine tool.
type RunArgs struct {
	Name     string `json:"name"`
	Input    string `json:"input"`
	MaxSteps int    `json:"max_steps,omitempty"`
}

// NameArgs are the arguments of tools addressing a single machine.
type NameArgs struct {
	Name string `json:"name"`
}

// MachineList is the result of list_machines.
type MachineList struct {
	Machines []string `json:"machines" jsonschema_description:"Names of the loadable machines"`
}

// MachineDescription is the result of describe_machine.
type MachineDescription struct {
	Definition *domain.Definition `json:"definition" jsonschema_description:"The machine definition as loaded"`
	Graph      string             `json:"graph" jsonschema_description:"Mermaid flowchart of the transition table"`
}

// Server exposes a Runner as an MCP server.
type Server struct {
	runner    *runner.Runner
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(r *runner.Runner, version string) *Server {
	s := &Server{
		runner:    r,
		mcpServer: server.NewMCPServer("turing-mcp", version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves MCP over SSE on port until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		slog.Info("shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_machines",
		mcp.WithDescription("List the names of the Turing machines that can be run."),
		mcp.WithOutputSchema[MachineList](),
	), mcp.NewStructuredToolHandler(s.handleList))

	s.mcpServer.AddTool(mcp.NewTool("describe_machine",
		mcp.WithDescription("Return a machine definition and a Mermaid graph of its transitions."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithOutputSchema[MachineDescription](),
	), mcp.NewStructuredToolHandler(s.handleDescribe))

	s.mcpServer.AddTool(mcp.NewTool("run_machine",
		mcp.WithDescription("Run a machine on an input word. The verdict is accept, reject, or error when the step bound is reached."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Machine name")),
		mcp.WithString("input", mcp.Description("Input word loaded on the first tape")),
		mcp.WithNumber("max_steps", mcp.Description("Step bound for this run (optional)")),
		mcp.WithOutputSchema[domain.RunRecord](),
	), mcp.NewStructuredToolHandler(s.handleRun))
}

func (s *Server) handleList(ctx context.Context, _ mcp.CallToolRequest, _ map[string]any) (MachineList, error) {
	names, err := s.runner.Loader.List(ctx)
	if err != nil {
		return MachineList{}, fmt.Errorf("list failed: %w", err)
	}
	return MachineList{Machines: names}, nil
}

func (s *Server) handleDescribe(ctx context.Context, _ mcp.CallToolRequest, args NameArgs) (MachineDescription, error) {
	def, err := s.runner.Loader.Load(ctx, args.Name)
	if err != nil {
		return MachineDescription{}, err
	}
	m, err := s.runner.Machine(ctx, args.Name)
	if err != nil {
		return MachineDescription{}, err
	}
	return MachineDescription{Definition: def, Graph: graph.GenerateMermaid(m, nil)}, nil
}

func (s *Server) handleRun(ctx context.Context, _ mcp.CallToolRequest, args RunArgs) (domain.RunRecord, error) {
	if args.Name == "" {
		return domain.RunRecord{}, errors.New("name is required")
	}
	if args.MaxSteps < 0 {
		return domain.RunRecord{}, fmt.Errorf("%w: %d", domain.ErrInvalidStepBound, args.MaxSteps)
	}

	rec, err := s.runner.Run(ctx, args.Name, args.Input, args.MaxSteps)
	if err != nil {
		slog.Warn("MCP run failed", "machine", args.Name, "error", err)
		return domain.RunRecord{}, fmt.Errorf("run failed: %w", err)
	}
	return *rec, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(MachinesURI, "Available Turing machines",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		names, err := s.runner.Loader.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list machines: %w", err)
		}
		jsonBytes, err := json.Marshal(MachineList{Machines: names})
		if err != nil {
			return nil, err
		}

		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      MachinesURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
