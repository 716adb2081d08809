// ABOUTME: MCP tool definitions and registration for the portfolio server
// ABOUTME: Exposes the assistant and raw knowledge-base search as tools
package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/sushinbandha/portfolio-assistant/internal/core"
)

// RegisterTools registers all MCP tools with the server
func RegisterTools(server *mcpserver.MCPServer, assistant *core.Assistant, retriever *core.Retriever, corpus core.CorpusSource, owner string) *Handlers {
	handlers := &Handlers{
		assistant: assistant,
		retriever: retriever,
		corpus:    corpus,
		owner:     owner,
	}

	// 1. ask_portfolio - Ask the assistant a grounded question
	server.AddTool(mcp.Tool{
		Name:        "ask_portfolio",
		Description: "Ask a question about " + owner + "'s background, projects, and skills. Answers are grounded in the portfolio knowledge base.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"question": map[string]interface{}{
					"type":        "string",
					"description": "Question to ask about the portfolio",
				},
			},
			Required: []string{"question"},
		},
	}, handlers.AskPortfolio)

	// 2. search_knowledge - Raw retrieval without generation
	server.AddTool(mcp.Tool{
		Name:        "search_knowledge",
		Description: "Search the portfolio knowledge base directly and return matching chunks with relevance scores. No language model is involved.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "Search query for the knowledge base",
				},
				"max_results": map[string]interface{}{
					"type":        "number",
					"description": "Maximum number of results to return (default: 5)",
					"default":     5,
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchKnowledge)

	return handlers
}
