package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/jobad-assistant/internal/server"
	"github.com/jonathan/jobad-assistant/internal/server/ratelimit"
)

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the form page and JSON API",
		Long:  `Start an HTTP server with the recruiter form, the generation and export endpoints and /health.`,
		RunE:  runServe,
	}
	cmd.Flags().Int("port", 0, "Port to listen on (default from config or PORT, else 8080)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := setup(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	port := a.cfg.Port
	if p, _ := cmd.Flags().GetInt("port"); p != 0 {
		port = p
	}

	srv, err := server.New(server.Config{
		Port:          port,
		Generator:     a.generator,
		Style:         a.cfg.StyleOptions(),
		Params:        a.defaultParams(),
		CredentialErr: a.clientErr,
		RateLimit:     ratelimit.LoadConfig(getenv),
		Logger:        a.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	a.logger.Info("configuration loaded", "port", port, "provider", a.llmConfig.Provider, "shape", a.generator.Shape())
	return srv.Run(ctx)
}
