package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/matzehuels/buttonhalo/internal/server"
	"github.com/matzehuels/buttonhalo/pkg/errors"
	"github.com/matzehuels/buttonhalo/pkg/observability"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout and render API over HTTP",
		Long: `Serve the layout and render API over HTTP.

Routes:
  GET  /healthz             build information
  POST /v1/layout           scenario body -> placement JSON
  POST /v1/render/{format}  scenario body -> artifact

Scenario bodies are JSON by default; send Content-Type application/yaml or
application/toml for the other formats.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.Serve.Addr
			}
			return c.runServe(cmd.Context(), cmd.OutOrStdout(), addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, w io.Writer, addr string, noCache bool) error {
	if err := errors.ValidateAddr(addr); err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	logger := loggerFromContext(ctx)
	defer observability.Register(observability.NewLogHooks(logger))()

	cfg := server.DefaultConfig()
	cfg.Addr = addr
	newPrinter(w).info("Serving on %s", StyleHighlight.Render(addr))
	return server.New(cfg, runner, logger).ListenAndServe(ctx)
}
