package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/pseudoloc/internal/server"
	"github.com/matzehuels/pseudoloc/pkg/observability"
)

// serveCommand runs the HTTP API until interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		noCache   bool
		noMetrics bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the localization HTTP API",
		Long: `Serve the localization API:

  GET  /healthz                  liveness and version
  GET  /v1/transforms            available transforms
  POST /v1/transform             {"value": "...", "transforms": [...]}
  POST /v1/documents/{format}    raw resx/json/yaml/toml body
  GET  /metrics                  Prometheus metrics

Requests without transforms use the configured list (default: extralength,
accents, brackets). An explicit empty list ("transforms": [] or
?transforms=) runs no transforms.

The listen address and timeouts come from the [server] config section;
--addr overrides the address. The server shuts down gracefully on SIGINT or
SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := c.config()
			if err != nil {
				return err
			}
			ids, err := cfg.TransformIDs()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Server.Addr = addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer c.closeRunner(runner)

			opts := server.Options{
				Addr:         cfg.Server.Addr,
				ReadTimeout:  cfg.Server.ReadTimeout.Duration,
				WriteTimeout: cfg.Server.WriteTimeout.Duration,
				MaxBodyBytes: cfg.Server.MaxBodyBytes,
				Transforms:   ids,
				Logger:       logger,
			}
			if !noMetrics {
				opts.Metrics = server.NewMetrics()
				opts.Metrics.Install()
				defer observability.Reset()
			}

			printInfo(cmd.OutOrStdout(), "Serving on %s", StyleHighlight.Render(opts.Addr))
			return server.New(runner, opts).ListenAndServe(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable the document cache")
	cmd.Flags().BoolVar(&noMetrics, "no-metrics", false, "disable /metrics and hook instrumentation")

	return cmd
}
