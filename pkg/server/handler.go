package server

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/sfbridge/mcp/pkg/mcp"
)

// ServerName and ServerVersion identify this server in the MCP handshake.
const (
	ServerName    = "sfbridge"
	ServerVersion = "0.3.0"
)

// NewHandler creates the HTTP handler for the MCP server
func NewHandler(bus *ToolBusService, logger zerolog.Logger) http.Handler {
	srv := mcp.NewServer(ServerName, ServerVersion, logger)

	srv.Register("tools/list", bus.HandleListTools)
	srv.Register("tools/call", bus.HandleCallTool)

	logger.Info().Msg("MCP server initialized with report tool bus")
	return srv
}
