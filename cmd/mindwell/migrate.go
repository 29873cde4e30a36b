package main

import (
	"context"
	"fmt"
	"time"

	"github.com/jonathan/mindwell/internal/config"
	"github.com/jonathan/mindwell/internal/db"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var printOnly bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply the database schema",
		Long:  `Apply the embedded schema to DATABASE_URL. Every statement is idempotent, so the command is safe to re-run.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if printOnly {
				_, err := fmt.Fprint(cmd.OutOrStdout(), db.Schema())
				return err
			}
			cfg, err := config.NewServerConfig()
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
			defer cancel()

			database, err := db.Connect(ctx, cfg.DatabaseURL)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()

			if err := database.Migrate(ctx); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Schema applied")
			return nil
		},
	}
	cmd.Flags().BoolVar(&printOnly, "print", false, "Print the schema instead of applying it")
	return cmd
}
