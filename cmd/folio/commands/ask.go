// ABOUTME: CLI command to ask the assistant a one-shot question
// ABOUTME: Runs the full retrieval and generation pipeline from the terminal
package commands

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sushinbandha/portfolio-assistant/internal/models"
)

var askCorpus string

// NewAskCmd creates the ask command
func NewAskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask <question>",
		Short: "Ask the assistant a question",
		Long: `Ask the assistant a question about the portfolio.

Retrieves relevant chunks from the knowledge base and generates a
grounded answer. Requires OPENAI_API_KEY.

Examples:
  folio ask "What did Sushin work on at PSEG?"
  folio ask --corpus data/embeddings.json "What certifications are listed?"`,
		Args: cobra.ExactArgs(1),
		RunE: runAsk,
	}

	cmd.Flags().StringVar(&askCorpus, "corpus", "", "Snapshot path (default: configured corpus path)")

	return cmd
}

func runAsk(cmd *cobra.Command, args []string) error {
	// Load .env for API keys
	_ = godotenv.Load()

	stack, err := newRetrievalStack(askCorpus)
	if err != nil {
		return err
	}
	if stack.client == nil {
		return fmt.Errorf("ask requires OPENAI_API_KEY")
	}

	messages := []models.Message{{Role: models.RoleUser, Content: args[0]}}
	reply, err := stack.assistant().Answer(cmd.Context(), "cli", messages)
	if err != nil {
		return fmt.Errorf("answering question: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), reply.Message)
	if verbose {
		fmt.Fprintf(cmd.OutOrStdout(), "\n(%d requests remaining this hour)\n", reply.Remaining)
	}
	return nil
}
