// Package mcp exposes the resolution engine as an MCP server so agent
// tooling can query issue states over stdio or SSE.
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/verdict-dev/verdict/internal/presentation/graph"
	"github.com/verdict-dev/verdict/pkg/domain"
)

// ResolveResponse is the structured reply of the resolve_state tool.
type ResolveResponse struct {
	State     string   `json:"state,omitempty" jsonschema_description:"The selected state, empty when none matched"`
	Matched   bool     `json:"matched" jsonschema_description:"True when exactly one state was selected"`
	Ambiguous bool     `json:"ambiguous" jsonschema_description:"True when more than one state survived"`
	Enabled   []string `json:"enabled,omitempty" jsonschema_description:"All states whose conditions held"`
	Engaged   []string `json:"engaged,omitempty" jsonschema_description:"Enabled states that were not overridden"`
}

// Engine defines the interface required by the MCP server.
type Engine interface {
	ResolveValues(values map[string]any) (domain.Outcome, error)
	States() []domain.StateInfo
}

// Server wraps the resolution engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, version string) *Server {
	s := &Server{
		engine:    engine,
		mcpServer: server.NewMCPServer("verdict-mcp", version),
	}
	s.registerTools()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE and blocks
// until ctx is cancelled or the listener fails.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		slog.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	resolveTool := mcp.NewTool("resolve_state",
		mcp.WithDescription("Resolve the state of an issue from its metadata. Metadata is a JSON object of identifier to value."),
		mcp.WithString("metadata", mcp.Required(), mcp.Description("JSON object mapping metadata identifiers to values")),
		mcp.WithOutputSchema[ResolveResponse](),
	)
	s.mcpServer.AddTool(resolveTool, mcp.NewStructuredToolHandler(s.handleResolve))

	s.mcpServer.AddTool(mcp.NewTool("list_states",
		mcp.WithDescription("List the validated state definitions with their conditions and relations."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		jsonBytes, err := json.Marshal(s.engine.States())
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("encoding states failed: %v", err)), nil
		}
		return mcp.NewToolResultText(string(jsonBytes)), nil
	})

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the state graph as Mermaid flowchart text."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return mcp.NewToolResultText(graph.GenerateMermaid(s.engine.States(), nil)), nil
	})
}

func (s *Server) handleResolve(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (ResolveResponse, error) {
	metaStr, _ := args["metadata"].(string)
	values := make(map[string]any)
	if metaStr != "" {
		if err := json.Unmarshal([]byte(metaStr), &values); err != nil {
			return ResolveResponse{}, fmt.Errorf("metadata is not a JSON object: %w", err)
		}
	}

	outcome, err := s.engine.ResolveValues(values)
	var ambErr *domain.AmbiguousStateError
	if err != nil && !errors.As(err, &ambErr) {
		return ResolveResponse{}, err
	}

	return ResolveResponse{
		State:     outcome.State,
		Matched:   outcome.Matched,
		Ambiguous: ambErr != nil,
		Enabled:   outcome.Enabled,
		Engaged:   outcome.Engaged,
	}, nil
}
