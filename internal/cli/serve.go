package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rdpishibashi/revision-management/internal/server"
	"github.com/rdpishibashi/revision-management/pkg/config"
	"github.com/rdpishibashi/revision-management/pkg/pipeline"
)

// serveCommand creates the serve command for the upload web UI.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr       string
		configPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the upload-and-view HTTP server",
		Long: `Run the HTTP server for uploading ledger workbooks and viewing
family trees in the browser.

Configuration is read from a TOML file when --config is given; flags
override individual values.

Examples:
  revtree serve
  revtree serve --addr :9090
  revtree serve --config revtree.toml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Default()
			if configPath != "" {
				var err error
				if cfg, err = config.LoadFile(configPath); err != nil {
					return err
				}
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	cmd.Flags().StringVar(&configPath, "config", "", "TOML config file")

	return cmd
}

// runServe wires the configured cache into a runner and blocks on the server.
func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	ch, err := newCacheFromConfig(cfg.Cache)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}

	runner := pipeline.NewRunner(ch, c.Logger)
	defer runner.Close()

	return server.New(cfg, runner, ch, c.Logger).Run(ctx)
}
