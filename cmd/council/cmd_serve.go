package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/unbobounbobo/press-council/internal/catalog"
	"github.com/unbobounbobo/press-council/internal/openrouter"
	"github.com/unbobounbobo/press-council/internal/webserver"
)

func newServeCommand() *cobra.Command {
	var (
		port        int
		dataDir     string
		servCatalog string
		corsOrigins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the press-council HTTP API",
		Long: `Start the HTTP API server.

The server exposes the catalog, conversation CRUD, and synchronous plus
streaming (server-sent events) run endpoints. It binds to loopback only.

Requires OPENROUTER_API_KEY in the environment.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			apiKey := os.Getenv("OPENROUTER_API_KEY")
			if apiKey == "" {
				return fmt.Errorf("OPENROUTER_API_KEY is not set")
			}

			cat, err := catalog.Load(servCatalog)
			if err != nil {
				return fmt.Errorf("failed to load catalog: %w", err)
			}

			srv, err := webserver.New(webserver.Config{
				Port:           port,
				DataDir:        dataDir,
				Catalog:        cat,
				Caller:         openrouter.New(openrouter.Config{APIKey: apiKey}),
				Logger:         slog.Default(),
				AllowedOrigins: corsOrigins,
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.ListenAndServe(ctx)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 8000, "Port to listen on")
	cmd.Flags().StringVar(&dataDir, "data-dir", "conversations", "Directory for conversation files")
	cmd.Flags().StringVar(&servCatalog, "catalog", "council.yaml", "Catalog overlay file (missing file uses the builtin catalog)")
	cmd.Flags().StringArrayVar(&corsOrigins, "cors-origin", nil, "Allowed CORS origin (can be repeated)")

	return cmd
}
