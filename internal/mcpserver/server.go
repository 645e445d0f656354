// Package mcpserver exposes the skill library over the Model Context
// Protocol so other MCP clients can query it.
package mcpserver

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/skillet-ai/skillet/internal/errors"
	"github.com/skillet-ai/skillet/internal/skill"
)

// Version is set by the linker at build time.
var Version = "dev"

// New creates an MCP server with the skill tools registered.
func New(lib *skill.Library, logger *slog.Logger) *mcp.Server {
	svc := &skillService{lib: lib, logger: logger}

	server := mcp.NewServer(&mcp.Implementation{
		Name:    "skillet",
		Version: Version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "list_skills",
		Description: "List every available skill with its name, description and keywords.",
	}, svc.ListSkills)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_skills",
		Description: "Search skills by keyword or topic. Returns the best matches ranked by relevance.",
	}, svc.SearchSkills)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_skill",
		Description: "Get the full content of a named skill.",
	}, svc.GetSkill)

	return server
}

// Run serves MCP over stdio until the context is cancelled.
func Run(ctx context.Context, lib *skill.Library, logger *slog.Logger) error {
	logger.Info("serving MCP over stdio", "skills", lib.Len())
	return New(lib, logger).Run(ctx, &mcp.StdioTransport{})
}

// RunHTTP serves MCP over streamable HTTP on addr until the context is
// cancelled.
func RunHTTP(ctx context.Context, lib *skill.Library, logger *slog.Logger, addr string) error {
	server := New(lib, logger)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	logger.Info("serving MCP over HTTP", "addr", addr, "skills", lib.Len())
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "mcp http server")
	}
	return nil
}
