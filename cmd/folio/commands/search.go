// ABOUTME: CLI command to search the knowledge base
// ABOUTME: Supports lexical and cosine retrieval with table or JSON output
package commands

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	searchLimit  int
	searchCorpus string
)

// NewSearchCmd creates the search command
func NewSearchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the knowledge base",
		Long: `Search the knowledge base and print matching chunks with scores.

Uses the configured retrieval strategy: lexical keyword matching by
default, or cosine similarity over embeddings when
PORTFOLIO_RETRIEVAL_STRATEGY=cosine and an API key is set.

Examples:
  folio search "machine learning projects"
  folio search --limit 10 "PSEG"
  folio search --format json "certifications"`,
		Args: cobra.ExactArgs(1),
		RunE: runSearch,
	}

	cmd.Flags().IntVar(&searchLimit, "limit", 5, "Maximum results to return")
	cmd.Flags().StringVar(&searchCorpus, "corpus", "", "Snapshot path (default: configured corpus path)")

	return cmd
}

func runSearch(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	if err := validatePositiveInt(searchLimit, "limit"); err != nil {
		return err
	}

	stack, err := newRetrievalStack(searchCorpus)
	if err != nil {
		return err
	}

	chunks, err := stack.store.Chunks()
	if err != nil {
		return fmt.Errorf("loading knowledge base: %w", err)
	}

	query := args[0]
	results, err := stack.retriever.Search(cmd.Context(), query, chunks)
	if err != nil {
		return fmt.Errorf("searching knowledge base: %w", err)
	}
	if len(results) > searchLimit {
		results = results[:searchLimit]
	}

	if len(results) == 0 {
		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "No matches found for query: %s\n", query)
		}
		return nil
	}

	if outputFormat == "json" {
		jsonData, err := json.MarshalIndent(results, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling JSON: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n", jsonData)
	} else {
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "SCORE\tSOURCE\tCHUNK\tPREVIEW\n")
		fmt.Fprintf(w, "-----\t------\t-----\t-------\n")
		for _, result := range results {
			fmt.Fprintf(w, "%.3f\t%s\t%d/%d\t%s\n",
				result.Similarity,
				truncate(result.Chunk.Metadata.Source, 25),
				result.Chunk.Metadata.ChunkIndex+1,
				result.Chunk.Metadata.TotalChunks,
				truncate(result.Chunk.Text, 60))
		}
		w.Flush()

		if !quiet {
			fmt.Fprintf(cmd.OutOrStdout(), "\nFound %d result(s) using %s retrieval\n",
				len(results), stack.retriever.Strategy())
		}
	}

	return nil
}
