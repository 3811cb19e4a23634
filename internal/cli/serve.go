package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/arcstrata/internal/server"
)

// serveCommand creates the serve command for the HTTP layout service.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP layout service",
		Long: `Start the HTTP layout service.

Endpoints:
  GET  /healthz        liveness probe
  POST /v1/layout      lay out one sentence (JSON body)
  POST /v1/documents   lay out a document (?input=json|yaml|toml|conllu)
  POST /v1/check       report crossings and dangling edges

The service shares the CLI's cache configuration, so a Redis backend
(cache.backend = redis) lets several instances share layouts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg := c.config()
			if addr == "" {
				addr = cfg.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			srv := server.New(runner, c.Logger, server.Options{
				Alternatives: cfg.Render.Alternatives,
				Concurrency:  cfg.Batch.Concurrency,
			})
			printInfo("Serving layouts on %s", addr)
			return srv.ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default: server.addr, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}
