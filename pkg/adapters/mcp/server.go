// Package mcp exposes the formatter and the catalog as Model Context Protocol tools.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/animefmt"
	"github.com/aretw0/animefmt/internal/logging"
	"github.com/aretw0/animefmt/pkg/domain"
	"github.com/aretw0/animefmt/pkg/format"
	"github.com/aretw0/animefmt/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const (
	defaultPerPage = 10
	exampleURI     = "animefmt://example-block"
)

// FormatResponse is the result of format_block.
type FormatResponse struct {
	Matched bool                `json:"matched" jsonschema_description:"Whether the text is a valid structured block"`
	Record  *domain.FieldRecord `json:"record,omitempty" jsonschema_description:"The parsed fields"`
	Markup  string              `json:"markup,omitempty" jsonschema_description:"Telegram HTML card"`
}

// SearchResponse is the result of search_catalog.
type SearchResponse struct {
	Items    []domain.SearchResultItem `json:"items" jsonschema_description:"Matching anime on this page"`
	PageInfo domain.PageInfo           `json:"page_info" jsonschema_description:"Pagination details"`
}

// CardResponse is the result of render_media.
type CardResponse struct {
	Markup   string `json:"markup" jsonschema_description:"Telegram HTML card"`
	CoverURL string `json:"cover_url,omitempty" jsonschema_description:"Cover image to attach"`
}

// Server exposes animefmt over MCP.
type Server struct {
	gateway   ports.CatalogGateway
	renderer  *format.Renderer
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance. gateway may be nil, in which
// case only the offline tools are registered.
func NewServer(renderer *format.Renderer, gateway ports.CatalogGateway, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		gateway:   gateway,
		renderer:  renderer,
		logger:    logger,
		mcpServer: server.NewMCPServer("animefmt-mcp", strings.TrimSpace(animefmt.Version)),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the MCP endpoints over Server-Sent Events on addr until ctx is done.
// baseURL is the externally visible address clients use to post messages.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.sseRouter(baseURL),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
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

func (s *Server) sseRouter(baseURL string) http.Handler {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	r := chi.NewRouter()
	r.Use(corsMiddleware)
	r.Handle("/sse", sseServer.SSEHandler())
	r.Handle("/message", sseServer.MessageHandler())
	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	formatTool := mcp.NewTool("format_block",
		mcp.WithDescription("Parse a structured anime block and render the channel card."),
		mcp.WithString("text", mcp.Required(), mcp.Description("The structured block: title line, eight labeled fields, synopsis")),
		mcp.WithOutputSchema[FormatResponse](),
	)
	s.mcpServer.AddTool(formatTool, mcp.NewStructuredToolHandler(s.handleFormatBlock))

	if s.gateway == nil {
		return
	}

	searchTool := mcp.NewTool("search_catalog",
		mcp.WithDescription("Search the anime catalog by title."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Title to search for")),
		mcp.WithNumber("page", mcp.Description("Page number, starting at 1 (optional)")),
		mcp.WithOutputSchema[SearchResponse](),
	)
	s.mcpServer.AddTool(searchTool, mcp.NewStructuredToolHandler(s.handleSearch))

	mediaTool := mcp.NewTool("render_media",
		mcp.WithDescription("Render the channel card for one catalog entry."),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("Catalog id, as returned by search_catalog")),
		mcp.WithOutputSchema[CardResponse](),
	)
	s.mcpServer.AddTool(mediaTool, mcp.NewStructuredToolHandler(s.handleRenderMedia))
}

func (s *Server) handleFormatBlock(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (FormatResponse, error) {
	text, _ := args["text"].(string)
	record, ok := format.Parse(text)
	if !ok {
		return FormatResponse{Matched: false}, nil
	}
	card := s.renderer.Render(record, "")
	return FormatResponse{Matched: true, Record: &record, Markup: card.Text}, nil
}

func (s *Server) handleSearch(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (SearchResponse, error) {
	query, _ := args["query"].(string)
	query = strings.TrimSpace(query)
	if query == "" {
		return SearchResponse{}, errors.New("query must not be empty")
	}
	page := 1
	if p, ok := args["page"].(float64); ok && p >= 1 {
		page = int(p)
	}

	result, err := s.gateway.Search(ctx, query, page, defaultPerPage)
	if err != nil {
		s.logger.Error("MCP search failed", "query", query, "err", err)
		return SearchResponse{}, fmt.Errorf("search failed: %w", err)
	}
	return SearchResponse{Items: result.Items, PageInfo: result.PageInfo}, nil
}

func (s *Server) handleRenderMedia(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (CardResponse, error) {
	id, ok := args["id"].(float64)
	if !ok || id < 1 {
		return CardResponse{}, errors.New("id must be a positive number")
	}

	detail, err := s.gateway.Media(ctx, int(id))
	if err != nil {
		s.logger.Error("MCP media lookup failed", "id", int(id), "err", err)
		return CardResponse{}, fmt.Errorf("lookup failed: %w", err)
	}
	card := s.renderer.Render(format.FromMedia(*detail), detail.CoverImageURL)
	return CardResponse{Markup: card.Text, CoverURL: card.CoverURL}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(exampleURI, "Structured block example",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      exampleURI,
				MIMEType: "text/plain",
				Text:     format.ExampleBlock,
			},
		}, nil
	})
}
