// Prdpilot: a guided PRD interview engine, exposed as an MCP server.
//
// A universal MCP server that integrates with any AI coding tool
// (Claude Code, OpenCode, Gemini CLI, Codex, Cursor, VS Code Copilot)
// and walks a user through a structured product-requirements interview,
// scoring their answers and assembling a PRD document from them.
//
// Usage:
//
//	prdpilot serve    # Start MCP server (stdio transport)
package main

import (
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	prdserver "github.com/prdpilot/prdpilot/internal/server"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
		os.Exit(0)
	case "--version", "-v", "version":
		fmt.Printf("prdpilot v%s\n", prdserver.Version)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run() error {
	s, cleanup, err := prdserver.New()
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}
	defer cleanup()

	// MCP owns stdout; the stdio server manages its own lifecycle and
	// returns when the transport closes.
	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `prdpilot v%s — Guided PRD Interview MCP Server

Usage:
  prdpilot serve    Start the MCP server (stdio transport)

Configuration:
  Add to your AI tool's MCP config:

  {
    "mcpServers": {
      "prdpilot": {
        "command": "prdpilot",
        "args": ["serve"]
      }
    }
  }

Environment:
  PRDPILOT_DB_PATH      Session database path (default ~/.prdpilot/sessions.db)
  PRDPILOT_CACHE_SIZE   Hydrated-session LRU cache size (default 64)
`, prdserver.Version)
}
