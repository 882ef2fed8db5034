// Package main implements the obsctl MCP server.
//
// The server exposes the vault (daily notes, task ledger, search) as MCP
// tools and communicates via stdio JSON-RPC (Model Context Protocol).
package main

import (
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/JamesPrial/obsctl/internal/config"
	"github.com/JamesPrial/obsctl/internal/mcpserver"
)

func run() int {
	errLogger := log.New(os.Stderr, "[mcp-server] ", log.LstdFlags)

	app, err := config.Load("")
	if err != nil {
		errLogger.Printf("Failed to load configuration: %v", err)
		return 1
	}

	handlers, err := mcpserver.NewHandlers(app, errLogger)
	if err != nil {
		errLogger.Printf("Failed to open vault: %v", err)
		return 1
	}

	srv, err := mcpserver.NewServer(handlers)
	if err != nil {
		errLogger.Printf("Failed to create MCP server: %v", err)
		return 1
	}

	if err := server.ServeStdio(srv, server.WithErrorLogger(errLogger)); err != nil {
		errLogger.Printf("Server error: %v", err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(run())
}
