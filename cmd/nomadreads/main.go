package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nomadreads/nomadreads-server/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "nomadreads",
		Short: "NomadReads CLI - query and inspect the recommendation service",
		Long: `nomadreads talks to a running recommendation server and exposes the
pieces of the service that are useful offline.

Examples:
  nomadreads recommend "Lisbon" --locale pt
  nomadreads domain uk
  nomadreads schema
  nomadreads prompts validate -f prompts.yaml`,
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newRecommendCmd())
	rootCmd.AddCommand(newDomainCmd())
	rootCmd.AddCommand(newSchemaCmd())
	rootCmd.AddCommand(newPromptsCmd())

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output")
	return rootCmd
}
