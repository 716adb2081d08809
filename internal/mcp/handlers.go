// ABOUTME: MCP tool handler implementations for the portfolio server
// ABOUTME: Bridges tool calls onto the assistant and the retriever
package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/sushinbandha/portfolio-assistant/internal/core"
	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

// sessionKey identifies MCP traffic to the rate limiter; all MCP callers
// share one quota bucket since there is no per-client address here.
const sessionKey = "mcp"

// Handlers contains the handler functions for all MCP tools
type Handlers struct {
	assistant *core.Assistant
	retriever *core.Retriever
	corpus    core.CorpusSource
	owner     string
}

// AskPortfolio handles the ask_portfolio tool
func (h *Handlers) AskPortfolio(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	question, err := request.RequireString("question")
	if err != nil {
		return mcp.NewToolResultError("question argument is required and must be a string"), nil
	}

	messages := []models.Message{{Role: models.RoleUser, Content: question}}
	reply, err := h.assistant.Answer(ctx, sessionKey, messages)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrRateLimited):
			return mcp.NewToolResultError("rate limit exceeded, try again later"), nil
		case errors.Is(err, core.ErrUnavailable):
			return mcp.NewToolResultError("assistant is not available: no language model configured"), nil
		default:
			return mcp.NewToolResultError(fmt.Sprintf("failed to answer: %v", err)), nil
		}
	}

	return mcp.NewToolResultText(reply.Message), nil
}

// SearchKnowledge handles the search_knowledge tool
func (h *Handlers) SearchKnowledge(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	maxResults := request.GetInt("max_results", 5)

	chunks, err := h.corpus.Chunks()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("knowledge base not loaded: %v", err)), nil
	}

	results, err := h.retriever.Search(ctx, query, chunks)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}
	if maxResults > 0 && len(results) > maxResults {
		results = results[:maxResults]
	}

	matches := make([]map[string]interface{}, 0, len(results))
	for _, result := range results {
		matches = append(matches, map[string]interface{}{
			"id":         result.Chunk.ID,
			"source":     result.Chunk.Metadata.Source,
			"text":       result.Chunk.Text,
			"similarity": result.Similarity,
		})
	}

	response := map[string]interface{}{
		"strategy": h.retriever.Strategy(),
		"count":    len(matches),
		"matches":  matches,
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}

	return mcp.NewToolResultText(string(responseJSON)), nil
}
