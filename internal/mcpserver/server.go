package mcpserver

import (
	"errors"

	"github.com/mark3labs/mcp-go/server"
)

const (
	serverName    = "obsctl"
	serverVersion = "0.1.0"

	instructions = "Tools expose daily note append, task updates, search, and summaries."
)

// NewServer creates an MCP server with the vault tools registered on h.
func NewServer(h *Handlers) (*server.MCPServer, error) {
	if h == nil || h.Ledger == nil || h.Journal == nil || h.Searcher == nil {
		return nil, errors.New("mcpserver: incomplete handlers")
	}

	s := server.NewMCPServer(
		serverName,
		serverVersion,
		server.WithToolCapabilities(true),
		server.WithInstructions(instructions),
	)

	s.AddTool(appendDailyNoteTool(), h.HandleAppendDailyNote)
	s.AddTool(updateTaskStatusTool(), h.HandleUpdateTaskStatus)
	s.AddTool(queryKnowledgeTool(), h.HandleQueryKnowledge)
	s.AddTool(summarizeTodayTool(), h.HandleSummarizeToday)

	return s, nil
}
