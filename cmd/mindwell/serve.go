package main

import (
	"context"
	"fmt"

	"github.com/jonathan/mindwell/internal/config"
	"github.com/jonathan/mindwell/internal/logger"
	"github.com/jonathan/mindwell/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long:  `Start an HTTP server that exposes the MindWell REST endpoints under /api.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadServerConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			return runServe(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVar(&port, "port", 4000, "Port to listen on (overrides PORT)")
	return cmd
}

func loadServerConfig() (server.Config, error) {
	srv, err := config.NewServerConfig()
	if err != nil {
		return server.Config{}, err
	}
	auth, err := config.NewAuthConfig()
	if err != nil {
		return server.Config{}, err
	}
	ai, err := config.NewAIConfig()
	if err != nil {
		return server.Config{}, err
	}
	cache, err := config.NewCacheConfig()
	if err != nil {
		return server.Config{}, err
	}
	return server.Config{
		Server:  srv,
		Auth:    auth,
		AI:      ai,
		Cache:   cache,
		Content: config.NewContentConfig(),
	}, nil
}

func runServe(ctx context.Context, cfg server.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	log, err := logger.New(cfg.Server.LogMode, cfg.Server.LogHashSalt)
	if err != nil {
		return err
	}
	defer log.Sync()

	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Start()
}
