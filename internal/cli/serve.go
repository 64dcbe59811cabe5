package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/viewmorph/viewmorph/internal/server"
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	configPath string // TOML config file
	addr       string // listen address override
}

// serveCommand creates the serve command for the animation API.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the animation HTTP API",
		Long: `Run the animation HTTP API.

The server keeps datasets and animation definitions in its record
store and prepares transitions in the background. Backends are
selected through a TOML config file; without one the server runs
with an in-memory store and a file cache.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), &opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML config file")
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (overrides the config file)")

	return cmd
}

// runServe builds the configured backends and serves until the context
// is cancelled.
func (c *CLI) runServe(ctx context.Context, opts *serveOpts) error {
	cfg, err := server.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Addr = opts.addr
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cch, err := cfg.BuildCache(ctx)
	if err != nil {
		return err
	}
	st, err := cfg.BuildStore(ctx)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Store:  st,
		Cache:  cch,
		Logger: c.Logger,
	})
	defer func() {
		if cerr := srv.Close(context.Background()); cerr != nil {
			c.Logger.Error("shutdown incomplete", "error", cerr)
		}
	}()

	c.Logger.Info("serving", "addr", cfg.Addr, "cache", cfg.Cache.Backend, "store", cfg.Store.Backend)
	return srv.ListenAndServe(ctx, cfg.Addr)
}
