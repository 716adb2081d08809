// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents to query the portfolio knowledge base via stdio
package commands

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/sushinbandha/portfolio-assistant/internal/mcp"
)

var mcpCorpus string

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Exposes the portfolio assistant over MCP (Model Context Protocol) on
stdio, so LLM agents can ask grounded questions and search the
knowledge base directly.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  folio mcp

  # Configure in an MCP client config:
  # {
  #   "mcpServers": {
  #     "portfolio": {
  #       "command": "folio",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	cmd.Flags().StringVar(&mcpCorpus, "corpus", "", "Snapshot path (default: configured corpus path)")

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	// Load .env file if it exists (for API keys)
	if err := godotenv.Load(); err != nil && !quiet {
		log.Printf("No .env file found (this is okay for production): %v", err)
	}

	if os.Getenv("OPENAI_API_KEY") == "" {
		log.Println("Warning: OPENAI_API_KEY not set - ask_portfolio will be unavailable")
	}

	stack, err := newRetrievalStack(mcpCorpus)
	if err != nil {
		return fmt.Errorf("failed to initialize retrieval stack: %w", err)
	}

	server := mcpserver.NewMCPServer(
		"Portfolio Assistant",
		"1.0.0",
	)

	mcp.RegisterTools(server, stack.assistant(), stack.retriever, stack.store, stack.cfg.SiteOwner)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !quiet {
		log.Println("Portfolio MCP server starting on stdio...")
	}

	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	select {
	case <-ctx.Done():
		if !quiet {
			log.Println("Shutdown signal received, shutting down...")
		}
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	return nil
}
