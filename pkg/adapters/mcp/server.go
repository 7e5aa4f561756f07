package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/logica/internal/logging"
	"github.com/aretw0/logica/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// DocumentsURI is the resource listing the stored documents.
const DocumentsURI = "logica://documents"

// DocumentArgs selects a document.
type DocumentArgs struct {
	Document string `json:"document"`
}

// ItemsArgs are the arguments of list_rules.
type ItemsArgs struct {
	Document string `json:"document"`
	Hidden   bool   `json:"hidden"`
}

// RenameArgs are the arguments of rename_identifier.
type RenameArgs struct {
	Document string `json:"document"`
	Old      string `json:"old"`
	New      string `json:"new"`
}

// RemoveArgs are the arguments of remove_rule.
type RemoveArgs struct {
	Document string `json:"document"`
	Index    int    `json:"index"`
}

// DocumentsResponse lists the stored document IDs.
type DocumentsResponse struct {
	Documents []string `json:"documents" jsonschema_description:"Stored document IDs"`
}

// ItemsResponse lists the logic items of a document.
type ItemsResponse struct {
	Items []ports.RuleItem `json:"items" jsonschema_description:"Logic items, hidden ones last"`
}

// RenameResponse reports a rename.
type RenameResponse struct {
	Changed int `json:"changed" jsonschema_description:"Number of rewritten properties"`
}

// LintResponse lists the problems in a document.
type LintResponse struct {
	Issues []ports.LintIssue `json:"issues" jsonschema_description:"Problems found, errors and warnings"`
	Errors int               `json:"errors" jsonschema_description:"Number of issues with severity error"`
}

// Server exposes a RuleService as an MCP server.
type Server struct {
	service   ports.RuleService
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(service ports.RuleService, version string, opts ...Option) *Server {
	s := &Server{
		service:   service,
		mcpServer: server.NewMCPServer("logica-mcp", strings.TrimSpace(version)),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{Addr: addr, Handler: mux}
	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
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

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func documentParam() mcp.ToolOption {
	return mcp.WithString("document", mcp.Required(), mcp.Description("Document ID"))
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_documents",
		mcp.WithDescription("List the stored survey documents."),
		mcp.WithOutputSchema[DocumentsResponse](),
	), mcp.NewStructuredToolHandler(s.handleDocuments))

	s.mcpServer.AddTool(mcp.NewTool("list_rules",
		mcp.WithDescription("List the logic items of a document: one expression and the operations it drives."),
		documentParam(),
		mcp.WithBoolean("hidden", mcp.Description("Also list calculated values and validators")),
		mcp.WithOutputSchema[ItemsResponse](),
	), mcp.NewStructuredToolHandler(s.handleItems))

	s.mcpServer.AddTool(mcp.NewTool("rename_identifier",
		mcp.WithDescription("Rename a question or calculated value and rewrite every expression that references it."),
		documentParam(),
		mcp.WithString("old", mcp.Required(), mcp.Description("Current name")),
		mcp.WithString("new", mcp.Required(), mcp.Description("New name")),
		mcp.WithOutputSchema[RenameResponse](),
	), mcp.NewStructuredToolHandler(s.handleRename))

	s.mcpServer.AddTool(mcp.NewTool("remove_rule",
		mcp.WithDescription("Delete a logic item, clearing every property it wrote."),
		documentParam(),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("Item index as returned by list_rules")),
	), mcp.NewStructuredToolHandler(s.handleRemove))

	s.mcpServer.AddTool(mcp.NewTool("lint_document",
		mcp.WithDescription("Check the syntax and references of every logic expression."),
		documentParam(),
		mcp.WithOutputSchema[LintResponse](),
	), mcp.NewStructuredToolHandler(s.handleLint))

	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Render the rule dependency graph as a Mermaid flowchart."),
		documentParam(),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		id, err := request.RequireString("document")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		out, err := s.service.Graph(ctx, id)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("graph failed: %v", err)), nil
		}
		return mcp.NewToolResultText(out), nil
	})
}

func (s *Server) handleDocuments(ctx context.Context, _ mcp.CallToolRequest, _ struct{}) (DocumentsResponse, error) {
	ids, err := s.service.Documents(ctx)
	if err != nil {
		return DocumentsResponse{}, fmt.Errorf("list failed: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return DocumentsResponse{Documents: ids}, nil
}

func (s *Server) handleItems(ctx context.Context, _ mcp.CallToolRequest, args ItemsArgs) (ItemsResponse, error) {
	items, err := s.service.Items(ctx, args.Document, args.Hidden)
	if err != nil {
		return ItemsResponse{}, fmt.Errorf("list failed: %w", err)
	}
	if items == nil {
		items = []ports.RuleItem{}
	}
	return ItemsResponse{Items: items}, nil
}

func (s *Server) handleRename(ctx context.Context, _ mcp.CallToolRequest, args RenameArgs) (RenameResponse, error) {
	changed, err := s.service.Rename(ctx, args.Document, args.Old, args.New)
	if err != nil {
		return RenameResponse{}, fmt.Errorf("rename failed: %w", err)
	}
	s.logger.Info("identifier renamed via MCP", "document_id", args.Document, "old", args.Old, "new", args.New)
	return RenameResponse{Changed: changed}, nil
}

func (s *Server) handleRemove(ctx context.Context, _ mcp.CallToolRequest, args RemoveArgs) (map[string]bool, error) {
	if err := s.service.RemoveItem(ctx, args.Document, args.Index); err != nil {
		return nil, fmt.Errorf("remove failed: %w", err)
	}
	return map[string]bool{"removed": true}, nil
}

func (s *Server) handleLint(ctx context.Context, _ mcp.CallToolRequest, args DocumentArgs) (LintResponse, error) {
	issues, err := s.service.Lint(ctx, args.Document)
	if err != nil {
		return LintResponse{}, fmt.Errorf("lint failed: %w", err)
	}
	resp := LintResponse{Issues: issues}
	if resp.Issues == nil {
		resp.Issues = []ports.LintIssue{}
	}
	for _, i := range issues {
		if i.Severity == "error" {
			resp.Errors++
		}
	}
	return resp, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(DocumentsURI, "Stored survey documents",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		ids, err := s.service.Documents(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list documents: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      DocumentsURI,
				MIMEType: "text/plain",
				Text:     strings.Join(ids, "\n"),
			},
		}, nil
	})
}
