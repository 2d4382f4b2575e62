// Package mcp exposes the report editor to AI clients over the Model
// Context Protocol. Tools route through the report controller so AI edits
// share the same history and persistence path as the browser.
package mcp

import (
	"net/http"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/tlsguqwn-ship-it/rising-report/internal/common"
	"github.com/tlsguqwn-ship-it/rising-report/internal/marketdata"
	"github.com/tlsguqwn-ship-it/rising-report/internal/report"
)

// Handler is the HTTP handler for the MCP endpoint.
// It wraps mcp-go's StreamableHTTPServer and delegates to it.
type Handler struct {
	streamable *mcpserver.StreamableHTTPServer
	logger     *common.Logger
}

// NewHandler creates an MCP handler with the editor tool set registered.
// market may be nil when market data is disabled.
func NewHandler(ctrl *report.Controller, market *marketdata.Service, logger *common.Logger) *Handler {
	mcpSrv := mcpserver.NewMCPServer(
		"rising-report",
		common.GetVersion(),
		mcpserver.WithToolCapabilities(true),
	)

	toolCount := registerEditorTools(mcpSrv, ctrl, market)
	mcpSrv.AddTool(versionTool(), versionToolHandler())

	streamable := mcpserver.NewStreamableHTTPServer(mcpSrv,
		mcpserver.WithStateLess(true),
	)

	logger.Info().
		Int("tools", toolCount+1).
		Msg("MCP handler initialized")

	return &Handler{
		streamable: streamable,
		logger:     logger,
	}
}

// ServeHTTP delegates to the mcp-go StreamableHTTPServer. The editor is a
// single-user local tool, so there is no per-user context to extract.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.streamable.ServeHTTP(w, r)
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

func textResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
	}
}
