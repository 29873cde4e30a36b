package main

import (
	"fmt"

	"github.com/jonathan/mindwell/internal/config"
	"github.com/jonathan/mindwell/internal/server"
	"github.com/spf13/cobra"
)

func newTokenCmd() *cobra.Command {
	var (
		userID string
		email  string
		hours  int
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token",
		Long:  `Sign an HS256 token with JWT_SECRET for local testing against the API.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.NewAuthConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("hours") {
				cfg.ExpirationHours = hours
			}

			jwtService, err := server.NewJWTService(cfg)
			if err != nil {
				return err
			}
			token, err := jwtService.GenerateToken(userID, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&userID, "user", demoUserID, "Subject (user ID) of the token")
	cmd.Flags().StringVar(&email, "email", demoUserEmail, "Email claim of the token")
	cmd.Flags().IntVar(&hours, "hours", 24, "Token lifetime in hours (overrides JWT_EXPIRATION_HOURS)")
	return cmd
}
