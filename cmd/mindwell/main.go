// Package main provides the entry point for the MindWell API server and its
// maintenance commands.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mindwell",
		Short:         "MindWell wellness tracker API",
		Long:          "MindWell records mood, journal, drawing and exercise activity and derives weekly wellness scores via a REST API.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newTokenCmd(),
		newValidateCmd(),
	)
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
