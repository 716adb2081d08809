// ABOUTME: Root CLI command with global flags and subcommand registration
// ABOUTME: Defines the folio command tree and shared output settings
package commands

import (
	"github.com/spf13/cobra"
)

var (
	verbose      bool
	quiet        bool
	outputFormat string
)

const banner = `
███████╗ ██████╗ ██╗     ██╗ ██████╗
██╔════╝██╔═══██╗██║     ██║██╔═══██╗
█████╗  ██║   ██║██║     ██║██║   ██║
██╔══╝  ██║   ██║██║     ██║██║   ██║
██║     ╚██████╔╝███████╗██║╚██████╔╝
╚═╝      ╚═════╝ ╚══════╝╚═╝ ╚═════╝
`

// NewRootCmd creates the root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folio",
		Short: "Portfolio assistant toolkit",
		Long: banner + `
folio manages the portfolio assistant's knowledge base and lets you
query it from the command line.

Build an embedding snapshot from your bio documents, search it with
lexical or cosine retrieval, ask the assistant one-shot questions, or
expose the whole thing to LLM agents over MCP.`,
		SilenceUsage: true,
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	cmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-essential output")
	cmd.PersistentFlags().StringVar(&outputFormat, "format", "auto", "Output format: auto, table, json")
	cmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Subcommands
	cmd.AddCommand(NewBuildCmd())
	cmd.AddCommand(NewSearchCmd())
	cmd.AddCommand(NewAskCmd())
	cmd.AddCommand(NewMCPCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command
func Execute() error {
	return NewRootCmd().Execute()
}
