// ABOUTME: Renders ranked search results into a bounded context block
// ABOUTME: Pure formatting over already-ranked input; never reorders
package core

import (
	"fmt"
	"strings"

	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

// NoContextFound is the fixed sentinel returned when retrieval produced no
// qualifying chunks. The orchestrator switches to a decline-and-redirect
// prompt when it sees this instead of inventing an answer.
const NoContextFound = "No relevant information found in the knowledge base."

// contextSeparator delimits document blocks in the formatted context
const contextSeparator = "\n\n---\n\n"

// FormatContextForLLM renders each result as a labeled block with provenance
// and relevance, joined by a separator. Empty input yields the sentinel.
func FormatContextForLLM(results []models.SearchResult) string {
	if len(results) == 0 {
		return NoContextFound
	}

	blocks := make([]string, len(results))
	for i, result := range results {
		blocks[i] = fmt.Sprintf("[Document %d: %s] (Relevance: %.1f%%)\n%s",
			i+1,
			result.Chunk.Metadata.Source,
			result.Similarity*100,
			result.Chunk.Text,
		)
	}
	return strings.Join(blocks, contextSeparator)
}
