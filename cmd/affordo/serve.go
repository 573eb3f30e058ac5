package main

import (
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/affordo/internal/server"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve [input-file]",
		Short: "Serve the calculator as a JSON HTTP API",
		Long: `Start an HTTP server exposing the scenario, grid, comparison and solver calculations.
An input file, when given, replaces the built-in defaults that requests
are merged over.

Endpoints:
  GET  /health
  GET  /api/v1/defaults
  GET  /api/v1/states
  POST /api/v1/scenario
  POST /api/v1/grid
  GET  /api/v1/templates
  POST /api/v1/compare
  POST /api/v1/solve
  POST /api/v1/frontier`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, err := setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			cfg, err := loadConfiguration(args)
			if err != nil {
				return err
			}

			if port, _ := cmd.Flags().GetString("port"); port != "" {
				settings.Port = port
			}
			if settings.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			srv := server.New(server.Options{
				Defaults:    cfg,
				Logger:      logger,
				CORSOrigins: settings.CORSOrigins,
				Version:     version,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := net.JoinHostPort("", settings.Port)
			logger.Info("Starting affordo API",
				zap.String("addr", addr),
				zap.String("env", settings.Env),
				zap.String("version", version),
			)
			return srv.ListenAndServe(ctx, addr)
		},
	}
	cmd.Flags().StringP("port", "p", "", "Port to listen on (overrides AFFORDO_PORT)")
	return cmd
}
