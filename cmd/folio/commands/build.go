// ABOUTME: CLI command to build the knowledge base snapshot
// ABOUTME: Chunks bio documents and optionally embeds them via OpenAI
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sushinbandha/portfolio-assistant/internal/config"
	"github.com/sushinbandha/portfolio-assistant/internal/corpus"
	"github.com/sushinbandha/portfolio-assistant/internal/llm"
)

var (
	buildSource    string
	buildOutput    string
	buildEmbed     bool
	buildMaxTokens int
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the knowledge base snapshot",
		Long: `Build the knowledge base snapshot from bio documents.

Chunks every markdown and text file in the source directory into
sentence-bounded pieces and writes an embedding snapshot plus a
summary file. With --embed, chunks are embedded via the OpenAI API;
without it, the snapshot supports lexical retrieval only.

Examples:
  folio build --source ./docs
  folio build --source ./docs --output data/embeddings.json --embed`,
		RunE: runBuild,
	}

	cmd.Flags().StringVar(&buildSource, "source", "docs", "Directory of source documents")
	cmd.Flags().StringVar(&buildOutput, "output", "", "Snapshot path (default: configured corpus path)")
	cmd.Flags().BoolVar(&buildEmbed, "embed", false, "Generate embeddings via OpenAI")
	cmd.Flags().IntVar(&buildMaxTokens, "max-tokens", 0, "Approximate chunk size in tokens (0 = default)")

	return cmd
}

func runBuild(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	output := buildOutput
	if output == "" {
		output = cfg.CorpusPath
	}

	var embedder corpus.BatchEmbedder
	if buildEmbed {
		if cfg.OpenAIKey == "" {
			return fmt.Errorf("--embed requires OPENAI_API_KEY")
		}
		client, err := llm.NewClientWithConfig(&llm.ClientConfig{
			APIKey:         cfg.OpenAIKey,
			EmbeddingModel: cfg.EmbeddingModel,
			MaxRetries:     cfg.MaxRetries,
			RetryDelay:     cfg.RetryDelay,
			Timeout:        cfg.Timeout,
		})
		if err != nil {
			return fmt.Errorf("initializing OpenAI client: %w", err)
		}
		embedder = client
	}

	builder := corpus.NewBuilder(buildMaxTokens, embedder)
	chunks, err := builder.BuildFromDirectory(cmd.Context(), buildSource)
	if err != nil {
		return fmt.Errorf("building corpus: %w", err)
	}

	if err := corpus.WriteSnapshot(output, chunks); err != nil {
		return fmt.Errorf("writing snapshot: %w", err)
	}

	if !quiet {
		mode := "lexical-only"
		if buildEmbed {
			mode = "embedded"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d chunks (%s) to %s\n", len(chunks), mode, output)
	}
	return nil
}
